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
	"testing"
)

func TestFieldRoundTrip(t *testing.T) {
	for _, v := range Versions {
		o := New(v, tScalars)
		o.SetString(fScName, "eth0")
		o.SetU64(fScBig, 0x1122334455667788)
		o.SetBytes(fScRaw, []byte{1, 2})
		o.SetU8(fScSmall, 0xfe)

		if o.GetString(fScName) != "eth0" {
			t.Errorf("v%s: name %q", v, o.GetString(fScName))
		}
		if o.GetU64(fScBig) != 0x1122334455667788 {
			t.Errorf("v%s: big %x", v, o.GetU64(fScBig))
		}
		if !bytes.Equal(o.GetBytes(fScRaw), []byte{1, 2, 0, 0}) {
			t.Errorf("v%s: raw % x", v, o.GetBytes(fScRaw))
		}
		if o.GetU8(fScSmall) != 0xfe {
			t.Errorf("v%s: small %x", v, o.GetU8(fScSmall))
		}
		if v == V13 {
			o.SetU16(fScOnly, 7)
			if o.GetU16(fScOnly) != 7 {
				t.Errorf("v13 only field")
			}
		} else {
			if o.Has(fScOnly) {
				t.Errorf("v%s: field reported present", v)
			}
			expectPanic(t, "absent field", func() { o.GetU16(fScOnly) })
		}
	}
}

func TestStringTruncationAndPadding(t *testing.T) {
	o := New(V13, tScalars)
	o.SetString(fScName, "a-very-long-name")
	if o.GetString(fScName) != "a-very-l" {
		t.Errorf("got %q", o.GetString(fScName))
	}
	o.SetString(fScName, "ab")
	if !bytes.Equal(o.Bytes()[:8], []byte{'a', 'b', 0, 0, 0, 0, 0, 0}) {
		t.Errorf("not NUL padded: % x", o.Bytes()[:8])
	}
}

func TestPortNo(t *testing.T) {
	tests := []struct {
		v      Version
		set    uint32
		expect uint32
		raw    []byte
	}{
		{V10, 5, 5, []byte{0, 5}},
		{V10, 0xfffffffd, 0xfffffffd, []byte{0xff, 0xfd}},
		{V10, 0xff00, 0xffffff00, []byte{0xff, 0x00}},
		{V10, 0x12345, 0x2345, []byte{0x23, 0x45}},
		{V13, 0xfffffffd, 0xfffffffd, []byte{0xff, 0xff, 0xff, 0xfd}},
		{V11, 0x12345, 0x12345, []byte{0, 1, 0x23, 0x45}},
	}
	for _, tc := range tests {
		o := New(tc.v, tMsg)
		o.SetPortNo(fMsgPort, tc.set)
		if got := o.GetPortNo(fMsgPort); got != tc.expect {
			t.Errorf("v%s set %#x: got %#x, want %#x", tc.v, tc.set, got, tc.expect)
		}
		if raw := o.Bytes()[12 : 12+len(tc.raw)]; !bytes.Equal(raw, tc.raw) {
			t.Errorf("v%s set %#x: raw % x", tc.v, tc.set, raw)
		}
		if o.GetUint(fMsgPort) != uint64(tc.expect) {
			t.Errorf("GetUint on port field")
		}
	}
}

func TestFieldMisuse(t *testing.T) {
	o := New(V13, tMsg)
	expectPanic(t, "wrong owner", func() { o.GetU16(fTlvType) })
	expectPanic(t, "wrong kind", func() { o.GetU32(fMsgFlags) })
	short := FromBytes(make([]byte, 8), V13, tHdr)
	short.objType = tMsg
	expectPanic(t, "beyond object", func() { short.GetMAC(fMsgMac) })
}

func TestMaxValue(t *testing.T) {
	if fMsgPort.MaxValue(V10) != 0xffff || fMsgPort.MaxValue(V13) != 0xffffffff {
		t.Errorf("port widths")
	}
	if fScBig.MaxValue(V13) != ^uint64(0) || fScSmall.MaxValue(V13) != 0xff {
		t.Errorf("integer widths")
	}
}
