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
	"fmt"
)

// Iterator walks the entries of a list object. It is forward only; call
// Iterator again to start over.
type Iterator struct {
	list   *Object
	elem   *ElemInfo
	cursor int
	last   *Object
	err    error
	done   bool
}

// IsList reports whether o holds a sequence of entries.
func (o *Object) IsList() bool {
	return elemOf(o.objType) != nil
}

func (o *Object) mustList() *ElemInfo {
	elem := elemOf(o.objType)
	if elem == nil {
		panic(fmt.Sprintf("wire: %s is not a list", o.TypeName()))
	}
	return elem
}

func (o *Object) Iterator() *Iterator {
	return &Iterator{list: o, elem: o.mustList()}
}

// Next binds the next entry, or returns nil at the end of the list or on a
// malformed entry. Err tells the two apart.
func (it *Iterator) Next() *Object {
	if it.done {
		return nil
	}
	it.sync()
	remain := it.list.length - it.cursor
	if remain == 0 {
		it.done = true
		return nil
	}
	probe := it.list.bind(it.elem.Base, it.cursor, remain, nil, 0)
	t := it.elem.Base
	if it.elem.Classify != nil {
		t = it.elem.Classify(probe)
	}
	n, err := entryLength(probe, t)
	if err != nil {
		it.err = err
		it.done = true
		return nil
	}
	entry := it.list.bind(t, it.cursor, n, nil, 0)
	it.cursor += n
	it.last = entry
	return entry
}

// sync moves the cursor to the current end of the last returned entry,
// which may have been resized by the caller.
func (it *Iterator) sync() {
	if it.last != nil {
		it.cursor = it.last.offset - it.list.offset + it.last.length
	}
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Consumed returns the number of list bytes covered by the entries
// returned so far.
func (it *Iterator) Consumed() int {
	it.sync()
	return it.cursor
}

// entryLength determines the length of an entry of type t that starts at
// the probe and may extend to its end.
func entryLength(probe *Object, t ObjectType) (int, error) {
	v := probe.version
	remain := probe.length
	fixed := FixedLength(v, t)
	if fixed == Absent || fixed > remain {
		return 0, ErrMalformedEntry
	}
	n := fixed
	if rule := lengthRuleOf(t); rule != nil && rule.Field.IsPresent(v) {
		rel := rule.Field.Offsets.Get(v)
		if rel+rule.Field.WidthFor(v) > remain {
			return 0, ErrMalformedEntry
		}
		n = int(probe.store.uintAt(probe.offset+rel, rule.Field.WidthFor(v))) + rule.Bias
	}
	if n <= 0 || n < fixed || n > remain {
		return 0, ErrMalformedEntry
	}
	return n, nil
}

// Entries binds every entry of the list.
func (o *Object) Entries() ([]*Object, error) {
	var entries []*Object
	it := o.Iterator()
	for e := it.Next(); e != nil; e = it.Next() {
		entries = append(entries, e)
	}
	return entries, it.Err()
}

func (o *Object) Count() (int, error) {
	n := 0
	it := o.Iterator()
	for e := it.Next(); e != nil; e = it.Next() {
		n++
	}
	return n, it.Err()
}

// Append copies entry to the end of the list and propagates the growth.
func (o *Object) Append(entry *Object) error {
	elem := o.mustList()
	if entry.version != o.version {
		return ErrVersionMismatch
	}
	if !IsA(entry.objType, elem.Base) {
		panic(fmt.Sprintf("wire: cannot append %s to %s", entry.TypeName(), o.TypeName()))
	}
	return o.ReplaceAt(o.length, 0, entry.Bytes())
}
