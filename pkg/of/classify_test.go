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

package of

import (
	"testing"

	"ofwire/pkg/wire"
)

func rootOf(t wire.ObjectType) wire.ObjectType {
	for wire.ParentOf(t) != wire.TypeNone {
		t = wire.ParentOf(t)
	}
	return t
}

// Every specific type built with New classifies back to itself from its
// root type.
func TestClassifyRoundTrip(t *testing.T) {
	checked := 0
	for _, e := range catalog {
		root := rootOf(e.t)
		if e.info.Generic || root == e.t {
			continue
		}
		for _, v := range wire.Versions {
			if !wire.IsAvailable(v, e.t) {
				continue
			}
			o := wire.New(v, e.t)
			probe := wire.FromBytes(append([]byte(nil), o.Bytes()...), v, root)
			if got := Classify(probe); got != e.t {
				t.Errorf("v%s: %s classified as %s", v, e.info.Name, wire.TypeName(got))
			}
			checked++
		}
	}
	if checked < 100 {
		t.Errorf("only %d classifications checked", checked)
	}
}

func header(v wire.Version, typ uint8, length int) []byte {
	buf := make([]byte, length)
	buf[0] = uint8(v)
	buf[1] = typ
	wire.EncByteOrder.PutUint16(buf[2:], uint16(length))
	return buf
}

func TestClassifyDefaulting(t *testing.T) {
	bsn := func(v wire.Version, subtype uint32, length int) []byte {
		buf := header(v, 4, length)
		wire.EncByteOrder.PutUint32(buf[8:], kExperimenterBsn)
		wire.EncByteOrder.PutUint32(buf[12:], subtype)
		return buf
	}
	clientReply := bsn(wire.V13, 81, 24)
	clientReply[20] = 9
	nicira := header(wire.V12, 4, 16)
	wire.EncByteOrder.PutUint32(nicira[8:], kExperimenterNicira)
	wire.EncByteOrder.PutUint32(nicira[12:], 12345)
	unknownVendor := header(wire.V11, 4, 16)
	wire.EncByteOrder.PutUint32(unknownVendor[8:], 0xabcdef)
	statsUnknown := header(wire.V13, 18, 16)
	wire.EncByteOrder.PutUint16(statsUnknown[8:], 77)
	bsnStats := header(wire.V13, 19, 24)
	wire.EncByteOrder.PutUint16(bsnStats[8:], kStatsTypeExperimenter)
	wire.EncByteOrder.PutUint32(bsnStats[16:], kExperimenterBsn)
	wire.EncByteOrder.PutUint32(bsnStats[20:], 999)
	flowModUnknown := header(wire.V13, 14, 56)
	flowModUnknown[25] = 42

	tests := []struct {
		name   string
		v      wire.Version
		raw    []byte
		expect wire.ObjectType
	}{
		{"unknown type", wire.V13, header(wire.V13, 99, 8), TypeHeader},
		{"hello", wire.V10, header(wire.V10, 0, 8), TypeHello},
		{"unknown vendor", wire.V11, unknownVendor, TypeExperimenter},
		{"bsn unknown subtype", wire.V13, bsn(wire.V13, 999, 16), TypeBsnHeader},
		{"bsn client add", wire.V10, bsn(wire.V10, 80, 48), TypeBsnClientAdd},
		{"nicira unknown subtype", wire.V12, nicira, TypeNiciraHeader},
		{"unknown client type", wire.V13, clientReply, TypeBsnClientReply},
		{"unknown stats type", wire.V13, statsUnknown, TypeStatsRequest},
		{"bsn stats unknown subtype", wire.V13, bsnStats, TypeBsnStatsReply},
		{"unknown flow command", wire.V13, flowModUnknown, TypeFlowMod},
		{"truncated experimenter", wire.V10, header(wire.V10, 4, 8), TypeHeader},
		{"truncated client add", wire.V13, bsn(wire.V13, 80, 16), TypeBsnHeader},
		{"barrier in 1.0", wire.V10, header(wire.V10, 18, 8), TypeBarrierRequest},
		{"stats in 1.3", wire.V13, header(wire.V13, 18, 16), TypeDescStatsRequest},
		{"gentable add before 1.3", wire.V12, bsn(wire.V12, 46, 40), TypeBsnHeader},
	}
	for _, tc := range tests {
		o := wire.FromBytes(tc.raw, tc.v, TypeHeader)
		if got := Classify(o); got != tc.expect {
			t.Errorf("%s: got %s, want %s", tc.name, wire.TypeName(got), wire.TypeName(tc.expect))
		}
	}
}

func TestEntryClassifiers(t *testing.T) {
	out := wire.New(wire.V13, TypeActionOutput)
	if got := ClassifyAction(wire.FromBytes(out.Bytes(), wire.V13, TypeAction)); got != TypeActionOutput {
		t.Errorf("action: %s", wire.TypeName(got))
	}
	gt := wire.New(wire.V11, TypeInstructionGotoTable)
	if got := ClassifyInstruction(wire.FromBytes(gt.Bytes(), wire.V11, TypeInstruction)); got != TypeInstructionGotoTable {
		t.Errorf("instruction: %s", wire.TypeName(got))
	}
	eth := wire.New(wire.V12, TypeOxmEthType)
	if got := ClassifyOXM(wire.FromBytes(eth.Bytes(), wire.V12, TypeOxm)); got != TypeOxmEthType {
		t.Errorf("oxm: %s", wire.TypeName(got))
	}
	masked := append([]byte(nil), eth.Bytes()...)
	masked[2] |= 1
	if got := ClassifyOXM(wire.FromBytes(masked, wire.V12, TypeOxm)); got != TypeOxm {
		t.Errorf("masked oxm: %s", wire.TypeName(got))
	}
	name := wire.New(wire.V13, TypeBsnTlvName)
	if got := ClassifyBsnTlv(wire.FromBytes(name.Bytes(), wire.V13, TypeBsnTlv)); got != TypeBsnTlvName {
		t.Errorf("bsn tlv: %s", wire.TypeName(got))
	}
	pd := wire.New(wire.V10, TypePortDesc)
	if ClassifyPortDesc(pd) != TypePortDesc {
		t.Errorf("port desc")
	}
	// pop_vlan does not exist in 1.0
	raw := []byte{0, 18, 0, 8, 0, 0, 0, 0}
	if got := ClassifyAction(wire.FromBytes(raw, wire.V10, TypeAction)); got != TypeAction {
		t.Errorf("1.0 pop_vlan: %s", wire.TypeName(got))
	}
}
