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
	"fmt"

	"github.com/golang/glog"
)

type FieldKind uint8

const (
	KindU8 FieldKind = iota
	KindU16
	KindU32
	KindU64
	KindMAC
	KindString
	KindPortNo
	KindBytes
)

var kindNames = [...]string{"u8", "u16", "u32", "u64", "mac", "string", "port_no", "bytes"}

func (k FieldKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("FieldKind(%d)", uint8(k))
}

// Field describes one fixed width field of a type. Offsets are relative to
// the start of the owning object.
type Field struct {
	Name    string
	Owner   ObjectType
	Kind    FieldKind
	Width   int
	Offsets PerVersion
}

type MacAddr [6]byte

func (m MacAddr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

const (
	// legacy 16 bit reserved port range and its 32 bit equivalent
	kPortReservedV10 = 0xff00
	kPortReservedExt = 0xffff0000
)

// NewField declares a field of owner. Width is implied by kind except for
// KindString and KindBytes.
func NewField(owner ObjectType, name string, kind FieldKind, offsets PerVersion, width ...int) *Field {
	f := &Field{Name: name, Owner: owner, Kind: kind, Offsets: offsets}
	switch kind {
	case KindU8:
		f.Width = 1
	case KindU16:
		f.Width = 2
	case KindU32:
		f.Width = 4
	case KindU64:
		f.Width = 8
	case KindMAC:
		f.Width = 6
	case KindPortNo:
		f.Width = 4
	case KindString, KindBytes:
		if len(width) != 1 || width[0] <= 0 {
			panic(fmt.Sprintf("wire: field %s needs an explicit width", name))
		}
		f.Width = width[0]
	}
	fieldsByType[owner] = append(fieldsByType[owner], f)
	return f
}

// WidthFor returns the encoded width in bytes for version v.
func (f *Field) WidthFor(v Version) int {
	if f.Kind == KindPortNo && v == V10 {
		return 2
	}
	return f.Width
}

// IsPresent reports whether f is defined for version v.
func (f *Field) IsPresent(v Version) bool {
	return f.Offsets.Get(v) != Absent
}

func (f *Field) String() string {
	return TypeName(f.Owner) + "." + f.Name
}

// MaxValue is the largest value the field can encode for version v.
func (f *Field) MaxValue(v Version) uint64 {
	w := f.WidthFor(v)
	if w >= 8 {
		return ^uint64(0)
	}
	return 1<<(8*uint(w)) - 1
}

// pos validates the field against the object and returns its absolute
// store offset.
func (o *Object) pos(f *Field) int {
	if !IsA(o.objType, f.Owner) {
		panic(fmt.Sprintf("wire: field %s accessed on %s", f, o.TypeName()))
	}
	rel := f.Offsets.Get(o.version)
	if rel == Absent {
		panic(fmt.Sprintf("wire: field %s not defined for version %s", f, o.version))
	}
	if rel+f.WidthFor(o.version) > o.length {
		panic(fmt.Sprintf("wire: field %s at %d beyond %s of length %d", f, rel, o.TypeName(), o.length))
	}
	return o.offset + rel
}

// Has reports whether f can be accessed on o.
func (o *Object) Has(f *Field) bool {
	return IsA(o.objType, f.Owner) && f.IsPresent(o.version) &&
		f.Offsets.Get(o.version)+f.WidthFor(o.version) <= o.length
}

func (o *Object) getUint(f *Field) uint64 {
	return o.store.uintAt(o.pos(f), f.WidthFor(o.version))
}

func (o *Object) setUint(f *Field, val uint64) {
	off := o.pos(f)
	switch f.WidthFor(o.version) {
	case 1:
		o.store.PutU8At(off, uint8(val))
	case 2:
		o.store.PutU16At(off, uint16(val))
	case 4:
		o.store.PutU32At(off, uint32(val))
	case 8:
		o.store.PutU64At(off, val)
	default:
		panic(fmt.Sprintf("wire: field %s is not an integer", f))
	}
}

func (o *Object) mustKind(f *Field, kinds ...FieldKind) {
	for _, k := range kinds {
		if f.Kind == k {
			return
		}
	}
	panic(fmt.Sprintf("wire: field %s is %s, not %v", f, f.Kind, kinds))
}

func (o *Object) GetU8(f *Field) uint8 {
	o.mustKind(f, KindU8)
	return uint8(o.getUint(f))
}

func (o *Object) SetU8(f *Field, v uint8) {
	o.mustKind(f, KindU8)
	o.setUint(f, uint64(v))
}

func (o *Object) GetU16(f *Field) uint16 {
	o.mustKind(f, KindU16)
	return uint16(o.getUint(f))
}

func (o *Object) SetU16(f *Field, v uint16) {
	o.mustKind(f, KindU16)
	o.setUint(f, uint64(v))
}

func (o *Object) GetU32(f *Field) uint32 {
	o.mustKind(f, KindU32)
	return uint32(o.getUint(f))
}

func (o *Object) SetU32(f *Field, v uint32) {
	o.mustKind(f, KindU32)
	o.setUint(f, uint64(v))
}

func (o *Object) GetU64(f *Field) uint64 {
	o.mustKind(f, KindU64)
	return o.getUint(f)
}

func (o *Object) SetU64(f *Field, v uint64) {
	o.mustKind(f, KindU64)
	o.setUint(f, v)
}

// GetUint reads any integer field, including port numbers, widened to 64 bits.
func (o *Object) GetUint(f *Field) uint64 {
	o.mustKind(f, KindU8, KindU16, KindU32, KindU64, KindPortNo)
	if f.Kind == KindPortNo {
		return uint64(o.GetPortNo(f))
	}
	return o.getUint(f)
}

// SetUint writes any integer field. Values are truncated to the field width.
func (o *Object) SetUint(f *Field, v uint64) {
	o.mustKind(f, KindU8, KindU16, KindU32, KindU64, KindPortNo)
	if f.Kind == KindPortNo {
		o.SetPortNo(f, uint32(v))
		return
	}
	o.setUint(f, v)
}

// GetPortNo returns a 32 bit port number. Version 1.0 encodes 16 bits and
// its reserved range is mapped to the 32 bit reserved range.
func (o *Object) GetPortNo(f *Field) uint32 {
	o.mustKind(f, KindPortNo)
	off := o.pos(f)
	if o.version == V10 {
		p := uint32(o.store.U16At(off))
		if p >= kPortReservedV10 {
			p |= kPortReservedExt
		}
		return p
	}
	return o.store.U32At(off)
}

func (o *Object) SetPortNo(f *Field, p uint32) {
	o.mustKind(f, KindPortNo)
	off := o.pos(f)
	if o.version == V10 {
		if p > 0xffff && p < kPortReservedExt|kPortReservedV10 {
			glog.V(2).Infof("port %#x truncated to 16 bits for %s", p, f)
		}
		o.store.PutU16At(off, uint16(p))
		return
	}
	o.store.PutU32At(off, p)
}

func (o *Object) GetMAC(f *Field) (m MacAddr) {
	o.mustKind(f, KindMAC)
	off := o.pos(f)
	copy(m[:], o.store.buf[off:off+6])
	return
}

func (o *Object) SetMAC(f *Field, m MacAddr) {
	o.mustKind(f, KindMAC)
	off := o.pos(f)
	copy(o.store.buf[off:off+6], m[:])
}

// GetString returns a fixed width string up to the first NUL.
func (o *Object) GetString(f *Field) string {
	o.mustKind(f, KindString)
	off := o.pos(f)
	raw := o.store.buf[off : off+f.Width]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}

// SetString writes s NUL padded to the field width, truncating if longer.
func (o *Object) SetString(f *Field, s string) {
	o.mustKind(f, KindString)
	off := o.pos(f)
	dst := o.store.buf[off : off+f.Width]
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// GetBytes returns a copy of a fixed width byte field.
func (o *Object) GetBytes(f *Field) []byte {
	o.mustKind(f, KindBytes)
	off := o.pos(f)
	out := make([]byte, f.Width)
	copy(out, o.store.buf[off:off+f.Width])
	return out
}

// SetBytes writes b zero padded to the field width, truncating if longer.
func (o *Object) SetBytes(f *Field, b []byte) {
	o.mustKind(f, KindBytes)
	off := o.pos(f)
	dst := o.store.buf[off : off+f.Width]
	n := copy(dst, b)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// FormatField renders the value of f for display.
func (o *Object) FormatField(f *Field) string {
	switch f.Kind {
	case KindMAC:
		return o.GetMAC(f).String()
	case KindString:
		return fmt.Sprintf("%q", o.GetString(f))
	case KindBytes:
		return fmt.Sprintf("%x", o.GetBytes(f))
	default:
		return fmt.Sprintf("%#x", o.GetUint(f))
	}
}
