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
	"bytes"
	"fmt"

	"ofwire/pkg/wire"
)

func mustBe(o *wire.Object, types ...wire.ObjectType) {
	for _, t := range types {
		if o.IsA(t) {
			return
		}
	}
	panic(fmt.Sprintf("of: %s is not a %s", o.TypeName(), wire.TypeName(types[0])))
}

func alignUp(n int, align int) int {
	return (n + align - 1) / align * align
}

// EchoData returns the payload of an echo request or reply without copying.
func EchoData(o *wire.Object) []byte {
	mustBe(o, TypeEchoRequest, TypeEchoReply)
	return o.DataAt(kHeaderLen)
}

func SetEchoData(o *wire.Object, data []byte) error {
	mustBe(o, TypeEchoRequest, TypeEchoReply)
	return o.SetDataAt(kHeaderLen, data)
}

func ErrorData(o *wire.Object) []byte {
	mustBe(o, TypeErrorMsg)
	return o.DataAt(12)
}

func SetErrorData(o *wire.Object, data []byte) error {
	mustBe(o, TypeErrorMsg)
	return o.SetDataAt(12, data)
}

// FlowModCommand reads the command, which is 16 bits wide in 1.0 and 8 bits
// later.
func FlowModCommand(o *wire.Object) uint8 {
	if o.Version() == wire.V10 {
		return uint8(o.GetU16(FieldFlowModCommandV10))
	}
	return o.GetU8(FieldFlowModCommand)
}

func SetFlowModCommand(o *wire.Object, cmd uint8) {
	if o.Version() == wire.V10 {
		o.SetU16(FieldFlowModCommandV10, uint16(cmd))
		return
	}
	o.SetU8(FieldFlowModCommand, cmd)
}

// FlowModMatchOffset returns where the match starts and how many bytes it
// occupies, padding included.
func FlowModMatchOffset(o *wire.Object) (off int, padded int, err error) {
	mustBe(o, TypeFlowMod)
	switch o.Version() {
	case wire.V10:
		return 8, 40, nil
	case wire.V11:
		return 48, 88, nil
	}
	n := int(o.GetU16(FieldFlowModMatchLength))
	if n < 4 || 48+alignUp(n, kOxmMatchAlign) > o.Length() {
		return 0, 0, ErrInvalidMessageSize
	}
	return 48, alignUp(n, kOxmMatchAlign), nil
}

// FlowModMatchBind binds the match in place. In 1.2 and later the match is
// kept padded to 8 bytes as it grows or shrinks.
func FlowModMatchBind(o *wire.Object) (*wire.Object, error) {
	off, padded, err := FlowModMatchOffset(o)
	if err != nil {
		return nil, err
	}
	switch o.Version() {
	case wire.V10:
		return o.Bind(TypeMatchV1, off, padded, nil), nil
	case wire.V11:
		return o.Bind(TypeMatchV2, off, padded, nil), nil
	}
	return o.BindPadded(TypeMatch, off, int(o.GetU16(FieldFlowModMatchLength)), kOxmMatchAlign)
}

// FlowModMatch returns a copy of the match.
func FlowModMatch(o *wire.Object) (*wire.Object, error) {
	m, err := FlowModMatchBind(o)
	if err != nil {
		return nil, err
	}
	return m.Dup(), nil
}

// SetFlowModMatch replaces the match, padding it as the version requires.
func SetFlowModMatch(o *wire.Object, match *wire.Object) error {
	off, padded, err := FlowModMatchOffset(o)
	if err != nil {
		return err
	}
	if match.Version() != o.Version() {
		return wire.ErrVersionMismatch
	}
	switch o.Version() {
	case wire.V10:
		mustBe(match, TypeMatchV1)
	case wire.V11:
		mustBe(match, TypeMatchV2)
	default:
		mustBe(match, TypeMatch)
	}
	data := match.Bytes()
	if n := alignUp(len(data), kOxmMatchAlign); n != len(data) {
		data = append(append([]byte(nil), data...), make([]byte, n-len(data))...)
	}
	return o.ReplaceAt(off, padded, data)
}

// FlowModInstructionsBind binds the instructions following the match.
func FlowModInstructionsBind(o *wire.Object) (*wire.Object, error) {
	if o.Version() == wire.V10 {
		panic("of: flow_mod 1.0 carries actions, not instructions")
	}
	off, padded, err := FlowModMatchOffset(o)
	if err != nil {
		return nil, err
	}
	return o.BindRest(TypeListInstruction, off+padded, nil), nil
}

// FlowModActionsBind binds the 1.0 action list.
func FlowModActionsBind(o *wire.Object) *wire.Object {
	mustBe(o, TypeFlowMod)
	if o.Version() != wire.V10 {
		panic("of: flow_mod after 1.0 carries instructions, not actions")
	}
	return o.BindRest(TypeListAction, wire.FixedLength(wire.V10, TypeFlowMod), nil)
}

func NewMatch(v wire.Version) *wire.Object {
	switch v {
	case wire.V10:
		return wire.New(v, TypeMatchV1)
	case wire.V11:
		return wire.New(v, TypeMatchV2)
	}
	return wire.New(v, TypeMatch)
}

func MatchOxmBind(m *wire.Object) *wire.Object {
	mustBe(m, TypeMatch)
	return m.BindRest(TypeListOxm, 4, nil)
}

func MatchAppendOXM(m *wire.Object, oxm *wire.Object) error {
	return MatchOxmBind(m).Append(oxm)
}

// InstructionActionsBind binds the action list of apply and write actions
// instructions.
func InstructionActionsBind(o *wire.Object) *wire.Object {
	mustBe(o, TypeInstructionApplyActions, TypeInstructionWriteActions)
	return o.BindRest(TypeListAction, 8, nil)
}

func packetOutActionsRange(o *wire.Object) (off int, n int, err error) {
	mustBe(o, TypePacketOut)
	off = wire.FixedLength(o.Version(), TypePacketOut)
	n = int(o.GetU16(FieldPacketOutActionsLen))
	if off+n > o.Length() {
		return 0, 0, ErrInvalidMessageSize
	}
	return
}

// PacketOutActionsBind binds the action list. Growing it updates
// actions_len and the message length.
func PacketOutActionsBind(o *wire.Object) (*wire.Object, error) {
	off, n, err := packetOutActionsRange(o)
	if err != nil {
		return nil, err
	}
	return o.TryBind(TypeListAction, off, n, FieldPacketOutActionsLen)
}

func PacketOutActions(o *wire.Object) (*wire.Object, error) {
	l, err := PacketOutActionsBind(o)
	if err != nil {
		return nil, err
	}
	return l.Dup(), nil
}

func SetPacketOutActions(o *wire.Object, actions *wire.Object) error {
	mustBe(actions, TypeListAction)
	if actions.Version() != o.Version() {
		return wire.ErrVersionMismatch
	}
	l, err := PacketOutActionsBind(o)
	if err != nil {
		return err
	}
	return l.SetDataAt(0, actions.Bytes())
}

func PacketOutData(o *wire.Object) ([]byte, error) {
	off, n, err := packetOutActionsRange(o)
	if err != nil {
		return nil, err
	}
	return o.DataAt(off + n), nil
}

func SetPacketOutData(o *wire.Object, data []byte) error {
	off, n, err := packetOutActionsRange(o)
	if err != nil {
		return err
	}
	return o.SetDataAt(off+n, data)
}

func PortStatusDescBind(o *wire.Object) *wire.Object {
	mustBe(o, TypePortStatus)
	return o.Bind(TypePortDesc, 16, wire.FixedLength(o.Version(), TypePortDesc), nil)
}

func PortStatusDesc(o *wire.Object) *wire.Object {
	return PortStatusDescBind(o).Dup()
}

func SetPortStatusDesc(o *wire.Object, desc *wire.Object) error {
	mustBe(desc, TypePortDesc)
	if desc.Version() != o.Version() {
		return wire.ErrVersionMismatch
	}
	d := PortStatusDescBind(o)
	return o.ReplaceAt(16, d.Length(), desc.Bytes())
}

func PortDescStatsEntriesBind(o *wire.Object) *wire.Object {
	mustBe(o, TypePortDescStatsReply)
	return o.BindRest(TypeListPortDesc, 16, nil)
}

// GentableKeysBind binds the key TLVs of a gentable entry add. Appending to
// the keys updates key_length and the message length.
func GentableKeysBind(o *wire.Object) (*wire.Object, error) {
	mustBe(o, TypeBsnGentableEntryAdd)
	return o.TryBind(TypeListBsnTlv, kGentableEntryAddLen, int(o.GetU16(FieldGentableKeyLength)), FieldGentableKeyLength)
}

func GentableKeys(o *wire.Object) (*wire.Object, error) {
	l, err := GentableKeysBind(o)
	if err != nil {
		return nil, err
	}
	return l.Dup(), nil
}

func GentableValuesBind(o *wire.Object) (*wire.Object, error) {
	mustBe(o, TypeBsnGentableEntryAdd)
	off := kGentableEntryAddLen + int(o.GetU16(FieldGentableKeyLength))
	if off > o.Length() {
		return nil, ErrInvalidMessageSize
	}
	return o.BindRest(TypeListBsnTlv, off, nil), nil
}

func GentableStatsEntriesBind(o *wire.Object) *wire.Object {
	mustBe(o, TypeBsnGentableEntryStatsReply)
	return o.BindRest(TypeListBsnGentableEntryStatsEntry, 24, nil)
}

func EntryKeysBind(e *wire.Object) (*wire.Object, error) {
	mustBe(e, TypeBsnGentableEntryStatsEntry)
	return e.TryBind(TypeListBsnTlv, 4, int(e.GetU16(FieldEntryKeyLength)), FieldEntryKeyLength)
}

func EntryStatsBind(e *wire.Object) (*wire.Object, error) {
	mustBe(e, TypeBsnGentableEntryStatsEntry)
	off := 4 + int(e.GetU16(FieldEntryKeyLength))
	if off > e.Length() {
		return nil, ErrInvalidMessageSize
	}
	return e.BindRest(TypeListBsnTlv, off, nil), nil
}

func BsnTlvName(o *wire.Object) string {
	mustBe(o, TypeBsnTlvName)
	return string(bytes.TrimRight(o.DataAt(4), "\x00"))
}

func SetBsnTlvName(o *wire.Object, name string) error {
	mustBe(o, TypeBsnTlvName)
	return o.SetDataAt(4, []byte(name))
}
