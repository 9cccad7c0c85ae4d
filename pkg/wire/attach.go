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

func alignUp(n int, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// Bind returns a child of type t aliasing length bytes at off within o.
// lengthField, if not nil, is the field of o that records the child's
// length and is kept in step when the child grows or shrinks.
func (o *Object) Bind(t ObjectType, off int, length int, lengthField *Field) *Object {
	if off < 0 || length < 0 || off+length > o.length {
		panic(fmt.Sprintf("wire: bind [%d,+%d) outside %s", off, length, o))
	}
	return o.bind(t, off, length, lengthField, 0)
}

// TryBind is Bind for ranges derived from wire data.
func (o *Object) TryBind(t ObjectType, off int, length int, lengthField *Field) (*Object, error) {
	if off < 0 || length < 0 || off+length > o.length {
		return nil, ErrInvalidLength
	}
	return o.bind(t, off, length, lengthField, 0), nil
}

// BindRest binds everything from off to the end of o.
func (o *Object) BindRest(t ObjectType, off int, lengthField *Field) *Object {
	return o.Bind(t, off, o.length-off, lengthField)
}

// BindPadded binds a child whose region in o is padded with zeros to a
// multiple of align. The padding is maintained when the child changes size.
func (o *Object) BindPadded(t ObjectType, off int, length int, align int) (*Object, error) {
	if off < 0 || length < 0 || off+alignUp(length, align) > o.length {
		return nil, ErrInvalidLength
	}
	return o.bind(t, off, length, nil, align), nil
}

func (o *Object) bind(t ObjectType, off int, length int, lengthField *Field, align int) *Object {
	lookupType(t)
	if lengthField != nil && !IsA(o.objType, lengthField.Owner) {
		panic(fmt.Sprintf("wire: length field %s does not belong to %s", lengthField, o.TypeName()))
	}
	return &Object{
		store:   o.store,
		offset:  o.offset + off,
		length:  length,
		version: o.version,
		objType: t,
		link:    &linkT{parent: o, lengthField: lengthField, align: align},
	}
}

// Dup copies o into a store of its own. The copy has no parent.
func (o *Object) Dup() *Object {
	store := NewByteStore(o.length)
	store.buf = append(store.buf, o.Bytes()...)
	return &Object{
		store:   store,
		length:  o.length,
		version: o.version,
		objType: o.objType,
	}
}

// DataAt returns the bytes from off to the end of o without copying.
func (o *Object) DataAt(off int) []byte {
	if off < 0 || off > o.length {
		panic(fmt.Sprintf("wire: data offset %d outside %s", off, o))
	}
	return o.store.buf[o.offset+off : o.offset+o.length]
}

// SetDataAt replaces everything from off to the end of o with data.
func (o *Object) SetDataAt(off int, data []byte) error {
	return o.ReplaceAt(off, o.length-off, data)
}

// ReplaceAt replaces oldLen bytes at off within o with data and adjusts
// the length of o and of every ancestor. Nothing is modified when an error
// is returned.
func (o *Object) ReplaceAt(off int, oldLen int, data []byte) error {
	if off < 0 || oldLen < 0 || off+oldLen > o.length {
		panic(fmt.Sprintf("wire: replace [%d,+%d) outside %s", off, oldLen, o))
	}
	delta := len(data) - oldLen
	if delta == 0 {
		copy(o.store.buf[o.offset+off:], data)
		return nil
	}
	steps, err := o.planDelta(delta)
	if err != nil {
		return err
	}
	// data may point into the store, which is about to shift
	data = append([]byte(nil), data...)
	if err = o.store.ReplaceRegion(o.offset+off, oldLen, data); err != nil {
		return err
	}
	o.propagate(steps)
	return nil
}

// planDelta walks the ancestor chain and returns the delta seen at each
// level, padding included. It fails if any length word would overflow or
// the store would exceed its limit.
func (o *Object) planDelta(delta int) ([]int, error) {
	var steps []int
	growth := delta
	d := delta
	for cur := o; cur != nil; {
		newLen := cur.length + d
		if newLen < 0 {
			return nil, ErrInvalidLength
		}
		if rule := lengthRuleOf(cur.objType); rule != nil && rule.Field.IsPresent(cur.version) {
			enc := newLen - rule.Bias
			if enc < 0 || uint64(enc) > rule.Field.MaxValue(cur.version) {
				return nil, ErrLengthOverflow
			}
		}
		steps = append(steps, d)
		l := cur.link
		if l == nil {
			break
		}
		if l.align > 1 {
			padOld := alignUp(cur.length, l.align) - cur.length
			padNew := alignUp(newLen, l.align) - newLen
			growth += padNew - padOld
			d += padNew - padOld
		}
		if l.lengthField != nil {
			val := int64(l.parent.getUint(l.lengthField)) + int64(d)
			if val < 0 || uint64(val) > l.lengthField.MaxValue(cur.version) {
				return nil, ErrLengthOverflow
			}
		}
		cur = l.parent
	}
	if growth > 0 && o.store.Len()+growth > CurrentLimits().MaxStoreSize {
		return nil, ErrStoreOverflow
	}
	return steps, nil
}

// propagate applies the per level deltas computed by planDelta.
func (o *Object) propagate(steps []int) {
	cur := o
	for i, d := range steps {
		oldLen := cur.length
		cur.length += d
		cur.writeLength()
		l := cur.link
		if l == nil {
			return
		}
		if l.align > 1 {
			padOld := alignUp(oldLen, l.align) - oldLen
			padNew := alignUp(cur.length, l.align) - cur.length
			if padOld != padNew {
				if err := cur.store.ReplaceRegion(cur.offset+cur.length, padOld, make([]byte, padNew)); err != nil {
					panic(fmt.Sprintf("wire: padding update failed after planning: %s", err))
				}
			}
		}
		if l.lengthField != nil && i+1 < len(steps) {
			p := l.parent
			p.setUint(l.lengthField, p.getUint(l.lengthField)+uint64(int64(steps[i+1])))
		}
		cur = l.parent
	}
}
