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
	"io"
)

type linkT struct {
	parent      *Object
	lengthField *Field
	align       int
}

// Object is a typed, versioned view of a byte range in a ByteStore.
// Objects sharing a store must not be mutated concurrently.
type Object struct {
	store   *ByteStore
	offset  int
	length  int
	version Version
	objType ObjectType
	link    *linkT
}

// New allocates a store for a fresh object of type t, sized to the type's
// fixed length for v, and stamps the constant discriminators of t and its
// ancestors. It panics if t has no definition for v.
func New(v Version, t ObjectType) *Object {
	ti := lookupType(t)
	n := ti.Lengths.Get(v)
	if n == Absent {
		panic(fmt.Sprintf("wire: %s not defined for version %s", ti.Name, v))
	}
	lim := CurrentLimits()
	capacity := lim.DefaultCapacity
	if growsOf(t) {
		capacity = lim.MessageCapacity
	}
	if capacity < n {
		capacity = n
	}
	store := NewByteStore(capacity)
	store.Grow(n)

	o := &Object{
		store:   store,
		length:  n,
		version: v,
		objType: t,
	}
	o.stampConsts()
	o.writeLength()
	return o
}

// Init views the first length bytes of store as an object of type t. A
// negative length takes the whole store.
func Init(store *ByteStore, v Version, t ObjectType, length int) *Object {
	v.index()
	lookupType(t)
	if length < 0 {
		length = store.Len()
	}
	if length > store.Len() {
		panic(fmt.Sprintf("wire: init length %d exceeds store of %d bytes", length, store.Len()))
	}
	return &Object{
		store:   store,
		length:  length,
		version: v,
		objType: t,
	}
}

// FromBytes views buf as an object of type t. buf becomes the backing
// storage; mutations write through to it until the store reallocates.
func FromBytes(buf []byte, v Version, t ObjectType) *Object {
	return Init(NewByteStoreFromBuffer(buf), v, t, -1)
}

// Coerce re-tags o as t. The bytes are left alone.
func (o *Object) Coerce(t ObjectType) error {
	n := lookupType(t).Lengths.Get(o.version)
	if n == Absent {
		return ErrVersionMismatch
	}
	if o.length < n {
		return ErrBufferTooShort
	}
	o.objType = t
	return nil
}

func (o *Object) stampConsts() {
	var chain []*TypeInfo
	for t := o.objType; t != TypeNone; {
		ti := lookupType(t)
		chain = append(chain, ti)
		t = ti.Parent
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, c := range chain[i].Consts {
			val := c.Values.Get(o.version)
			if val == Absent || !c.Field.IsPresent(o.version) {
				continue
			}
			o.setUint(c.Field, uint64(val))
		}
	}
}

// writeLength stores o's length in its own length word, if it has one.
func (o *Object) writeLength() {
	rule := lengthRuleOf(o.objType)
	if rule == nil || !rule.Field.IsPresent(o.version) {
		return
	}
	o.setUint(rule.Field, uint64(o.length-rule.Bias))
}

// EncodedLength reads o's own length word. ok is false when the type does
// not encode its length.
func (o *Object) EncodedLength() (n int, ok bool) {
	rule := lengthRuleOf(o.objType)
	if rule == nil || !rule.Field.IsPresent(o.version) {
		return 0, false
	}
	return int(o.getUint(rule.Field)) + rule.Bias, true
}

func (o *Object) Version() Version {
	return o.version
}

func (o *Object) Type() ObjectType {
	return o.objType
}

func (o *Object) TypeName() string {
	return TypeName(o.objType)
}

func (o *Object) IsA(t ObjectType) bool {
	return IsA(o.objType, t)
}

func (o *Object) Offset() int {
	return o.offset
}

func (o *Object) Length() int {
	return o.length
}

func (o *Object) Store() *ByteStore {
	return o.store
}

// Parent returns the object o was bound from, or nil.
func (o *Object) Parent() *Object {
	if o.link == nil {
		return nil
	}
	return o.link.parent
}

// Bytes returns o's bytes without copying.
func (o *Object) Bytes() []byte {
	return o.store.buf[o.offset : o.offset+o.length]
}

func (o *Object) String() string {
	return fmt.Sprintf("%s(v%s, off=%d, len=%d)", o.TypeName(), o.version, o.offset, o.length)
}

// PrettyPrint writes every accessible field of o.
func (o *Object) PrettyPrint(w io.Writer) {
	fmt.Fprintf(w, "%s\n", o)
	for _, f := range FieldsOf(o.objType) {
		if !o.Has(f) {
			continue
		}
		fmt.Fprintf(w, "  %-16s: %s\n", f.Name, o.FormatField(f))
	}
}
