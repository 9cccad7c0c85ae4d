//
//  Copyright 2023 PayPal Inc.
//
//  Licensed to the Apache Software Foundation (ASF) under one or more
//  contributor license agreements.  See the NOTICE file distributed with
//  this work for additional information regarding copyright ownership.
//  The ASF licenses this file to You under the Apache License, Version 2.0
//  (the "License"); you may not use this file except in compliance with
//  the License.  You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package wire

import (
	"errors"
	"testing"
)

func buildList(t *testing.T, v Version, entries ...*Object) *Object {
	t.Helper()
	list := New(v, tTlvList)
	for _, e := range entries {
		if err := list.Append(e); err != nil {
			t.Fatal(err)
		}
	}
	return list
}

func TestListExhaustion(t *testing.T) {
	tests := []struct {
		name    string
		entries []*Object
		types   []ObjectType
	}{
		{"empty", nil, nil},
		{"one", []*Object{New(V13, tTlvA)}, []ObjectType{tTlvA}},
		{"many", []*Object{New(V13, tTlvA), newTlvB(V13, []byte("abc")), New(V13, tTlvB), New(V13, tTlvA)},
			[]ObjectType{tTlvA, tTlvB, tTlvB, tTlvA}},
	}
	for _, tc := range tests {
		list := buildList(t, V13, tc.entries...)
		it := list.Iterator()
		sum := 0
		var types []ObjectType
		for e := it.Next(); e != nil; e = it.Next() {
			sum += e.Length()
			types = append(types, e.Type())
		}
		if it.Err() != nil {
			t.Errorf("%s: %s", tc.name, it.Err())
		}
		if sum != list.Length() || it.Consumed() != list.Length() {
			t.Errorf("%s: entries sum to %d, list is %d", tc.name, sum, list.Length())
		}
		if len(types) != len(tc.types) {
			t.Errorf("%s: %d entries, want %d", tc.name, len(types), len(tc.types))
			continue
		}
		for i := range types {
			if types[i] != tc.types[i] {
				t.Errorf("%s: entry %d is %s, want %s", tc.name, i, TypeName(types[i]), TypeName(tc.types[i]))
			}
		}
		if it.Next() != nil {
			t.Errorf("%s: iterator restarted", tc.name)
		}
	}
}

func TestListUnknownEntryDegrades(t *testing.T) {
	unknown := New(V12, tTlv)
	unknown.SetU16(fTlvType, 0x99)
	list := buildList(t, V12, unknown, New(V12, tTlvA))
	entries, err := list.Entries()
	if err != nil || len(entries) != 2 {
		t.Fatalf("entries %d err %v", len(entries), err)
	}
	if entries[0].Type() != tTlv || entries[1].Type() != tTlvA {
		t.Errorf("got %s, %s", entries[0], entries[1])
	}
}

func TestListMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		good int
	}{
		{"truncated header", []byte{0, 1, 0, 8, 0, 0, 0, 0, 0, 2}, 1},
		{"length past end", []byte{0, 2, 0, 9, 0, 0, 0, 0}, 0},
		{"length below fixed", []byte{0, 1, 0, 4, 0, 0, 0, 0}, 0},
		{"zero length", []byte{0, 9, 0, 0}, 0},
	}
	for _, tc := range tests {
		list := FromBytes(tc.raw, V13, tTlvList)
		entries, err := list.Entries()
		if !errors.Is(err, ErrMalformedEntry) {
			t.Errorf("%s: got %v, want ErrMalformedEntry", tc.name, err)
		}
		if len(entries) != tc.good {
			t.Errorf("%s: %d good entries, want %d", tc.name, len(entries), tc.good)
		}
	}
}

func TestListAppendChecks(t *testing.T) {
	list := New(V13, tTlvList)
	if err := list.Append(New(V12, tTlvA)); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("got %v, want ErrVersionMismatch", err)
	}
	expectPanic(t, "wrong entry type", func() { list.Append(New(V13, tScalars)) })
	expectPanic(t, "not a list", func() { New(V13, tMsg).Iterator() })
	if !list.IsList() || New(V13, tMsg).IsList() {
		t.Errorf("IsList")
	}
}

func TestAppendSelf(t *testing.T) {
	list := buildList(t, V13, New(V13, tTlvA))
	entries, _ := list.Entries()
	if err := list.Append(entries[0]); err != nil {
		t.Fatal(err)
	}
	if n, err := list.Count(); n != 2 || err != nil {
		t.Errorf("count %d err %v", n, err)
	}
}

// Keys list bound from a 40 byte parent, three entries of 8, 12 and 4 bytes.
func TestKeysAppendScenario(t *testing.T) {
	for _, v := range Versions {
		msg := New(v, tMsg)
		if err := msg.SetDataAt(kMsgFixed, make([]byte, 16)); err != nil {
			t.Fatal(err)
		}
		if msg.Length() != 40 {
			t.Fatalf("parent is %d bytes", msg.Length())
		}
		keys := msg.Bind(tTlvList, 40, 0, fMsgKeysLen)
		for _, e := range []*Object{New(v, tTlvA), newTlvB(v, make([]byte, 8)), New(v, tTlvB)} {
			if err := keys.Append(e); err != nil {
				t.Fatal(err)
			}
		}
		if msg.GetU16(fMsgKeysLen) != 24 {
			t.Errorf("v%s: keys length field %d", v, msg.GetU16(fMsgKeysLen))
		}
		if msg.GetU16(fHdrLength) != 64 || msg.Length() != 64 {
			t.Errorf("v%s: message length %d", v, msg.GetU16(fHdrLength))
		}
	}
}

func TestIterateWhileResizing(t *testing.T) {
	msg := New(V13, tMsg)
	keys := msg.Bind(tTlvList, kMsgFixed, 0, fMsgKeysLen)
	for _, e := range []*Object{New(V13, tTlvB), New(V13, tTlvA), New(V13, tTlvB)} {
		if err := keys.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	it := keys.Iterator()
	first := it.Next()
	if first == nil || first.Type() != tTlvB {
		t.Fatalf("first entry %v", first)
	}
	if err := first.SetDataAt(4, []byte("abcdef")); err != nil {
		t.Fatal(err)
	}
	if it.Consumed() != 10 {
		t.Errorf("consumed %d after growing the first entry", it.Consumed())
	}
	var rest []ObjectType
	for e := it.Next(); e != nil; e = it.Next() {
		rest = append(rest, e.Type())
	}
	if it.Err() != nil || len(rest) != 2 || rest[0] != tTlvA || rest[1] != tTlvB {
		t.Fatalf("rest %v err %v", rest, it.Err())
	}
	if it.Consumed() != keys.Length() || keys.Length() != 22 || msg.GetU16(fMsgKeysLen) != 22 {
		t.Errorf("consumed %d list %d keys_len %d", it.Consumed(), keys.Length(), msg.GetU16(fMsgKeysLen))
	}

	// shrinking the entry just returned
	it = keys.Iterator()
	first = it.Next()
	if err := first.ReplaceAt(4, 6, nil); err != nil {
		t.Fatal(err)
	}
	if n, err := countRest(it); n != 2 || err != nil {
		t.Errorf("after shrink: %d entries err %v", n, err)
	}
}

func countRest(it *Iterator) (int, error) {
	n := 0
	for e := it.Next(); e != nil; e = it.Next() {
		n++
	}
	return n, it.Err()
}
