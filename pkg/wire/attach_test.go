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
	"bytes"
	"errors"
	"testing"
)

func TestBindAliases(t *testing.T) {
	msg := New(V12, tMsg)
	child := msg.Bind(tScalars, 0, 24, nil)
	child.SetU8(fScSmall, 0x5a)
	if msg.Bytes()[20] != 0x5a {
		t.Errorf("bound child does not alias its parent")
	}
	if child.Parent() != msg || child.Version() != V12 {
		t.Errorf("link or version not carried")
	}
	expectPanic(t, "bind past end", func() { msg.Bind(tScalars, 8, 24, nil) })
	if _, err := msg.TryBind(tScalars, 8, 24, nil); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("got %v, want ErrInvalidLength", err)
	}
	expectPanic(t, "foreign length field", func() { msg.Bind(tTlvList, 24, 0, fTlvLength) })
}

func TestDupIndependence(t *testing.T) {
	for _, v := range Versions {
		orig := New(v, tMsg)
		mac := MacAddr{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
		orig.SetMAC(fMsgMac, mac)
		dup := orig.Dup()
		if dup.Parent() != nil || dup.Store() == orig.Store() || dup.Offset() != 0 {
			t.Fatalf("v%s: dup shares state with the original", v)
		}
		orig.SetMAC(fMsgMac, MacAddr{})
		if dup.GetMAC(fMsgMac) != mac {
			t.Errorf("v%s: dup changed with the original: %s", v, dup.GetMAC(fMsgMac))
		}
		if err := dup.SetDataAt(kMsgFixed, []byte{1, 2, 3, 4}); err != nil {
			t.Fatal(err)
		}
		if orig.Length() != kMsgFixed || orig.GetU16(fHdrLength) != kMsgFixed {
			t.Errorf("v%s: original length changed with the dup", v)
		}
	}
}

func TestDupOfBoundChild(t *testing.T) {
	msg := New(V13, tMsg)
	keys := msg.Bind(tTlvList, kMsgFixed, 0, fMsgKeysLen)
	a := New(V13, tTlvA)
	a.SetU32(fTlvAValue, 99)
	if err := keys.Append(a); err != nil {
		t.Fatal(err)
	}
	entries, err := keys.Entries()
	if err != nil || len(entries) != 1 {
		t.Fatalf("entries %d err %v", len(entries), err)
	}
	copied := entries[0].Dup()
	if copied.Length() != 8 || copied.GetU32(fTlvAValue) != 99 {
		t.Errorf("dup of bound entry: %s", copied)
	}
	if err = copied.ReplaceAt(4, 4, []byte{1, 2, 3, 4, 5, 6, 7, 8}); err != nil {
		t.Fatal(err)
	}
	if msg.Length() != kMsgFixed+8 || msg.GetU16(fMsgKeysLen) != 8 {
		t.Errorf("mutating a dup reached its source")
	}
}

func TestTrailingData(t *testing.T) {
	msg := New(V10, tMsg)
	data := []byte("hello world")
	if err := msg.SetDataAt(kMsgFixed, data); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(msg.DataAt(kMsgFixed), data) {
		t.Errorf("data %q", msg.DataAt(kMsgFixed))
	}
	if msg.GetU16(fHdrLength) != uint16(kMsgFixed+len(data)) {
		t.Errorf("length word %d", msg.GetU16(fHdrLength))
	}
	if err := msg.SetDataAt(kMsgFixed, []byte("hi")); err != nil {
		t.Fatal(err)
	}
	if msg.Length() != kMsgFixed+2 || msg.Store().Len() != kMsgFixed+2 {
		t.Errorf("shrink: length %d store %d", msg.Length(), msg.Store().Len())
	}
	// data aliasing the store itself
	if err := msg.SetDataAt(kMsgFixed, msg.Bytes()[:10]); err != nil {
		t.Fatal(err)
	}
	if msg.Length() != kMsgFixed+10 || msg.DataAt(kMsgFixed)[0] != uint8(V10) || msg.DataAt(kMsgFixed)[1] != 7 {
		t.Errorf("self-aliased data not copied first: % x", msg.DataAt(kMsgFixed))
	}
}

func TestPropagationThroughNestedBinds(t *testing.T) {
	msg := New(V13, tMsg)
	if err := msg.SetDataAt(kMsgFixed, []byte{0xde, 0xad}); err != nil {
		t.Fatal(err)
	}
	keys := msg.Bind(tTlvList, kMsgFixed, 0, fMsgKeysLen)
	for _, e := range []*Object{New(V13, tTlvA), newTlvB(V13, []byte("12345678")), New(V13, tTlvB)} {
		if err := keys.Append(e); err != nil {
			t.Fatal(err)
		}
	}
	if keys.Length() != 24 || msg.GetU16(fMsgKeysLen) != 24 {
		t.Fatalf("keys length %d field %d", keys.Length(), msg.GetU16(fMsgKeysLen))
	}
	if msg.Length() != kMsgFixed+24+2 || msg.GetU16(fHdrLength) != kMsgFixed+24+2 {
		t.Fatalf("message length %d word %d", msg.Length(), msg.GetU16(fHdrLength))
	}

	it := keys.Iterator()
	it.Next()
	b := it.Next()
	prefix := append([]byte(nil), msg.Bytes()[:b.Offset()]...)
	if err := b.SetDataAt(4, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if b.Length() != 5 || b.GetU16(fTlvLength) != 5 {
		t.Errorf("entry length %d word %d", b.Length(), b.GetU16(fTlvLength))
	}
	if keys.Length() != 17 || msg.GetU16(fMsgKeysLen) != 17 {
		t.Errorf("keys length %d field %d", keys.Length(), msg.GetU16(fMsgKeysLen))
	}
	if msg.Length() != kMsgFixed+17+2 || msg.GetU16(fHdrLength) != uint16(msg.Length()) {
		t.Errorf("message length %d word %d", msg.Length(), msg.GetU16(fHdrLength))
	}
	if !bytes.Equal(prefix[:2], msg.Bytes()[:2]) || !bytes.Equal(prefix[4:], msg.Bytes()[4:b.Offset()]) {
		t.Errorf("bytes before the mutation changed")
	}
	if !bytes.Equal(msg.DataAt(msg.Length()-2), []byte{0xde, 0xad}) {
		t.Errorf("trailing bytes not shifted intact: % x", msg.Bytes())
	}
	if n, err := keys.Count(); n != 3 || err != nil {
		t.Errorf("count %d err %v after mutation", n, err)
	}
}

func TestLengthOverflowLeavesStoreUntouched(t *testing.T) {
	outer := New(V13, tOuter)
	before := append([]byte(nil), outer.Bytes()...)
	err := outer.SetDataAt(8, make([]byte, 0x10000))
	if !errors.Is(err, ErrLengthOverflow) {
		t.Fatalf("got %v, want ErrLengthOverflow", err)
	}
	if outer.Length() != 8 || !bytes.Equal(before, outer.Bytes()) || outer.Store().Len() != 8 {
		t.Errorf("failed mutation left traces")
	}

	msg := New(V13, tMsg)
	keys := msg.Bind(tTlvList, kMsgFixed, 0, fMsgKeysLen)
	msg.SetU16(fMsgKeysLen, 0xfffe)
	if err = keys.Append(New(V13, tTlvB)); !errors.Is(err, ErrLengthOverflow) {
		t.Errorf("child length field overflow: got %v", err)
	}
}

func TestPaddedChild(t *testing.T) {
	outer := New(V13, tOuter)
	inner := New(V13, tInner)
	if err := outer.SetDataAt(8, append(inner.Bytes(), 0, 0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	in, err := outer.BindPadded(tInner, 8, 4, 8)
	if err != nil {
		t.Fatal(err)
	}
	list := in.BindRest(tInnerList, 4, nil)

	if err = list.Append(New(V13, tTlvA)); err != nil {
		t.Fatal(err)
	}
	if in.Length() != 12 || in.GetU16(fInnerLength) != 12 {
		t.Errorf("inner length %d word %d", in.Length(), in.GetU16(fInnerLength))
	}
	if outer.Length() != 24 || outer.GetU16(fOuterLength) != 24 || outer.Store().Len() != 24 {
		t.Errorf("outer length %d word %d store %d", outer.Length(), outer.GetU16(fOuterLength), outer.Store().Len())
	}

	if err = list.Append(New(V13, tTlvB)); err != nil {
		t.Fatal(err)
	}
	if in.Length() != 16 || outer.Length() != 24 || outer.Store().Len() != 24 {
		t.Errorf("exact fit: inner %d outer %d store %d", in.Length(), outer.Length(), outer.Store().Len())
	}

	if err = list.Append(New(V13, tTlvB)); err != nil {
		t.Fatal(err)
	}
	if in.Length() != 20 || outer.Length() != 32 || outer.GetU16(fOuterLength) != 32 {
		t.Errorf("repad: inner %d outer %d", in.Length(), outer.Length())
	}
	if !bytes.Equal(outer.Bytes()[28:], []byte{0, 0, 0, 0}) {
		t.Errorf("padding not zero: % x", outer.Bytes()[28:])
	}
}
