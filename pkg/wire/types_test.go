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
	"testing"
)

// Test-only schema exercising every engine path without the protocol catalog.
const (
	tHdr ObjectType = iota + 1
	tMsg
	tTlv
	tTlvA
	tTlvB
	tTlvList
	tScalars
	tV13Only
	tOuter
	tInner
	tInnerList
)

var (
	fHdrVersion = NewField(tHdr, "version", KindU8, All(0))
	fHdrType    = NewField(tHdr, "type", KindU8, All(1))
	fHdrLength  = NewField(tHdr, "length", KindU16, All(2))
	fHdrXid     = NewField(tHdr, "xid", KindU32, All(4))

	fMsgKeysLen = NewField(tMsg, "keys_len", KindU16, All(8))
	fMsgFlags   = NewField(tMsg, "flags", KindU16, All(10))
	fMsgPort    = NewField(tMsg, "port", KindPortNo, All(12))
	fMsgMac     = NewField(tMsg, "hw_addr", KindMAC, All(16))

	fTlvType   = NewField(tTlv, "type", KindU16, All(0))
	fTlvLength = NewField(tTlv, "length", KindU16, All(2))
	fTlvAValue = NewField(tTlvA, "value", KindU32, All(4))

	fScName  = NewField(tScalars, "name", KindString, All(0), 8)
	fScBig   = NewField(tScalars, "big", KindU64, All(8))
	fScRaw   = NewField(tScalars, "raw", KindBytes, All(16), 4)
	fScSmall = NewField(tScalars, "small", KindU8, All(20))
	fScOnly  = NewField(tScalars, "only13", KindU16, Only(22, V13))

	fOuterLength = NewField(tOuter, "length", KindU16, All(2))
	fInnerLength = NewField(tInner, "length", KindU16, All(2))
)

const kMsgFixed = 24

func classifyTestTlv(o *Object) ObjectType {
	if o.Length() < 2 {
		return tTlv
	}
	switch o.store.U16At(o.offset) {
	case 1:
		return tTlvA
	case 2:
		return tTlvB
	}
	return tTlv
}

func init() {
	RegisterType(tHdr, TypeInfo{
		Name:    "hdr",
		Lengths: All(8),
		Length:  &LengthRule{Field: fHdrLength},
		Consts:  []ConstValue{{Field: fHdrVersion, Values: PerVersion{1, 2, 3, 4}}},
		Grows:   true,
		Generic: true,
	})
	RegisterType(tMsg, TypeInfo{
		Name:    "msg",
		Parent:  tHdr,
		Lengths: All(kMsgFixed),
		Consts:  []ConstValue{{Field: fHdrType, Values: All(7)}},
	})
	RegisterType(tTlv, TypeInfo{
		Name:    "tlv",
		Lengths: All(4),
		Length:  &LengthRule{Field: fTlvLength},
		Generic: true,
	})
	RegisterType(tTlvA, TypeInfo{
		Name:    "tlv_a",
		Parent:  tTlv,
		Lengths: All(8),
		Consts:  []ConstValue{{Field: fTlvType, Values: All(1)}},
	})
	RegisterType(tTlvB, TypeInfo{
		Name:    "tlv_b",
		Parent:  tTlv,
		Lengths: All(4),
		Consts:  []ConstValue{{Field: fTlvType, Values: All(2)}},
	})
	RegisterType(tTlvList, TypeInfo{
		Name:    "list(tlv)",
		Lengths: All(0),
		Elem:    &ElemInfo{Base: tTlv, Classify: classifyTestTlv},
	})
	RegisterType(tScalars, TypeInfo{
		Name:    "scalars",
		Lengths: All(24),
	})
	RegisterType(tV13Only, TypeInfo{
		Name:    "v13_only",
		Lengths: Only(8, V13),
	})
	RegisterType(tOuter, TypeInfo{
		Name:    "outer",
		Lengths: All(8),
		Length:  &LengthRule{Field: fOuterLength},
		Grows:   true,
	})
	RegisterType(tInner, TypeInfo{
		Name:    "inner",
		Lengths: All(4),
		Length:  &LengthRule{Field: fInnerLength},
	})
	RegisterType(tInnerList, TypeInfo{
		Name:    "list(inner)",
		Lengths: All(0),
		Elem:    &ElemInfo{Base: tTlv, Classify: classifyTestTlv},
	})
}

func newTlvB(v Version, data []byte) *Object {
	o := New(v, tTlvB)
	if err := o.SetDataAt(4, data); err != nil {
		panic(err)
	}
	return o
}

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}
