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
	"ofwire/pkg/wire"
)

const (
	TypeHeader wire.ObjectType = iota + 1
	TypeHello
	TypeErrorMsg
	TypeEchoRequest
	TypeEchoReply
	TypeFeaturesRequest
	TypeBarrierRequest
	TypeBarrierReply

	TypeExperimenter
	TypeBsnHeader
	TypeBsnClientAdd
	TypeBsnClientReply
	TypeBsnClientReplyHost
	TypeBsnClientReplySwitch
	TypeBsnGentableEntryAdd
	TypeNiciraHeader
	TypeNiciraRoleRequest
	TypeNiciraRoleReply

	TypePacketOut
	TypeFlowMod
	TypeFlowAdd
	TypeFlowModify
	TypeFlowModifyStrict
	TypeFlowDelete
	TypeFlowDeleteStrict
	TypePortStatus

	TypeStatsRequest
	TypeStatsReply
	TypeDescStatsRequest
	TypeDescStatsReply
	TypePortDescStatsRequest
	TypePortDescStatsReply
	TypeExperimenterStatsRequest
	TypeExperimenterStatsReply
	TypeBsnStatsRequest
	TypeBsnStatsReply
	TypeBsnGentableEntryStatsRequest
	TypeBsnGentableEntryStatsReply
	TypeBsnGentableEntryStatsEntry

	TypePortDesc
	TypeMatchV1
	TypeMatchV2
	TypeMatch

	TypeOxm
	TypeOxmInPort
	TypeOxmEthDst
	TypeOxmEthSrc
	TypeOxmEthType
	TypeOxmVlanVid
	TypeOxmIpv4Src
	TypeOxmIpv4Dst

	TypeAction
	TypeActionOutput
	TypeActionSetVlanVid
	TypeActionPopVlan
	TypeActionGroup
	TypeActionExperimenter

	TypeInstruction
	TypeInstructionGotoTable
	TypeInstructionWriteMetadata
	TypeInstructionWriteActions
	TypeInstructionApplyActions
	TypeInstructionClearActions
	TypeInstructionMeter

	TypeBsnTlv
	TypeBsnTlvPort
	TypeBsnTlvMac
	TypeBsnTlvRxPackets
	TypeBsnTlvTxPackets
	TypeBsnTlvVlanVid
	TypeBsnTlvIdleTimeout
	TypeBsnTlvTxBytes
	TypeBsnTlvName

	TypeListAction
	TypeListInstruction
	TypeListOxm
	TypeListBsnTlv
	TypeListPortDesc
	TypeListBsnGentableEntryStatsEntry
)

const (
	kExperimenterBsn    = 0x005c16c7
	kExperimenterNicira = 0x00002320

	kStatsTypeDesc         = 0
	kStatsTypePortDesc     = 13
	kStatsTypeExperimenter = 0xffff

	kPortDescLenV10 = 48
	kPortDescLen    = 64

	kDescStrLen   = 256
	kSerialNumLen = 32
)

const (
	FlowCommandAdd uint8 = iota
	FlowCommandModify
	FlowCommandModifyStrict
	FlowCommandDelete
	FlowCommandDeleteStrict
)

const (
	BsnClientTypeHost   uint8 = 1
	BsnClientTypeSwitch uint8 = 2
)

var (
	allVersions = wire.PerVersion{1, 2, 3, 4}
	absent      = wire.Absent
)

type typeEntry struct {
	t    wire.ObjectType
	info wire.TypeInfo
}

// catalog lists every registered type in registration order.
var catalog []typeEntry

func register(t wire.ObjectType, info wire.TypeInfo) {
	wire.RegisterType(t, info)
	catalog = append(catalog, typeEntry{t: t, info: info})
}

func c(f *wire.Field, values wire.PerVersion) wire.ConstValue {
	return wire.ConstValue{Field: f, Values: values}
}

func elem(base wire.ObjectType) *wire.ElemInfo {
	return &wire.ElemInfo{Base: base, Classify: Classify}
}

// msgType returns the header type code for each version.
func msgType(v10, v11 int) wire.PerVersion {
	return wire.PerVersion{v10, v11, v11, v11}
}

func init() {
	registerMessages()
	registerExperimenters()
	registerStats()
	registerStructs()
	registerLists()
	buildDispatchIndex()
}

func registerMessages() {
	register(TypeHeader, wire.TypeInfo{
		Name:    "of_header",
		Lengths: wire.All(kHeaderLen),
		Length:  &wire.LengthRule{Field: FieldHeaderLength},
		Consts:  []wire.ConstValue{c(FieldHeaderVersion, allVersions)},
		Grows:   true,
		Generic: true,
	})
	simple := []struct {
		t    wire.ObjectType
		name string
		code wire.PerVersion
		n    int
	}{
		{TypeHello, "of_hello", wire.All(0), kHeaderLen},
		{TypeErrorMsg, "of_error_msg", wire.All(1), 12},
		{TypeEchoRequest, "of_echo_request", wire.All(2), kHeaderLen},
		{TypeEchoReply, "of_echo_reply", wire.All(3), kHeaderLen},
		{TypeFeaturesRequest, "of_features_request", wire.All(5), kHeaderLen},
		{TypeBarrierRequest, "of_barrier_request", msgType(18, 20), kHeaderLen},
		{TypeBarrierReply, "of_barrier_reply", msgType(19, 21), kHeaderLen},
	}
	for _, s := range simple {
		register(s.t, wire.TypeInfo{
			Name:    s.name,
			Parent:  TypeHeader,
			Lengths: wire.All(s.n),
			Consts:  []wire.ConstValue{c(FieldHeaderType, s.code)},
		})
	}

	register(TypePacketOut, wire.TypeInfo{
		Name:    "of_packet_out",
		Parent:  TypeHeader,
		Lengths: wire.PerVersion{16, 24, 24, 24},
		Consts:  []wire.ConstValue{c(FieldHeaderType, wire.All(13))},
	})
	register(TypePortStatus, wire.TypeInfo{
		Name:    "of_port_status",
		Parent:  TypeHeader,
		Lengths: wire.PerVersion{16 + kPortDescLenV10, 16 + kPortDescLen, 16 + kPortDescLen, 16 + kPortDescLen},
		Consts:  []wire.ConstValue{c(FieldHeaderType, wire.All(12))},
	})
	register(TypeFlowMod, wire.TypeInfo{
		Name:    "of_flow_mod",
		Parent:  TypeHeader,
		Lengths: wire.PerVersion{72, 136, 56, 56},
		Consts: []wire.ConstValue{
			c(FieldHeaderType, wire.All(14)),
			c(FieldFlowModMatchType, wire.PerVersion{absent, 0, 1, 1}),
			c(FieldFlowModMatchLength, wire.PerVersion{absent, 88, 4, 4}),
		},
		Generic: true,
	})
	commands := []struct {
		t    wire.ObjectType
		name string
		cmd  uint8
	}{
		{TypeFlowAdd, "of_flow_add", FlowCommandAdd},
		{TypeFlowModify, "of_flow_modify", FlowCommandModify},
		{TypeFlowModifyStrict, "of_flow_modify_strict", FlowCommandModifyStrict},
		{TypeFlowDelete, "of_flow_delete", FlowCommandDelete},
		{TypeFlowDeleteStrict, "of_flow_delete_strict", FlowCommandDeleteStrict},
	}
	for _, fc := range commands {
		register(fc.t, wire.TypeInfo{
			Name:    fc.name,
			Parent:  TypeFlowMod,
			Lengths: wire.PerVersion{72, 136, 56, 56},
			Consts: []wire.ConstValue{
				c(FieldFlowModCommandV10, wire.Only(int(fc.cmd), wire.V10)),
				c(FieldFlowModCommand, wire.From(int(fc.cmd), wire.V11)),
			},
		})
	}
}

func registerExperimenters() {
	register(TypeExperimenter, wire.TypeInfo{
		Name:    "of_experimenter",
		Parent:  TypeHeader,
		Lengths: wire.PerVersion{12, 16, 16, 16},
		Consts:  []wire.ConstValue{c(FieldHeaderType, wire.All(4))},
		Generic: true,
	})
	register(TypeBsnHeader, wire.TypeInfo{
		Name:    "of_bsn_header",
		Parent:  TypeExperimenter,
		Lengths: wire.All(16),
		Consts:  []wire.ConstValue{c(FieldExperimenterId, wire.All(kExperimenterBsn))},
		Generic: true,
	})
	register(TypeNiciraHeader, wire.TypeInfo{
		Name:    "of_nicira_header",
		Parent:  TypeExperimenter,
		Lengths: wire.All(16),
		Consts:  []wire.ConstValue{c(FieldExperimenterId, wire.All(kExperimenterNicira))},
		Generic: true,
	})
	register(TypeNiciraRoleRequest, wire.TypeInfo{
		Name:    "of_nicira_controller_role_request",
		Parent:  TypeNiciraHeader,
		Lengths: wire.All(20),
		Consts:  []wire.ConstValue{c(FieldNiciraSubtype, wire.All(10))},
	})
	register(TypeNiciraRoleReply, wire.TypeInfo{
		Name:    "of_nicira_controller_role_reply",
		Parent:  TypeNiciraHeader,
		Lengths: wire.All(20),
		Consts:  []wire.ConstValue{c(FieldNiciraSubtype, wire.All(11))},
	})
	register(TypeBsnClientAdd, wire.TypeInfo{
		Name:    "of_bsn_client_add",
		Parent:  TypeBsnHeader,
		Lengths: wire.All(48),
		Consts:  []wire.ConstValue{c(FieldBsnSubtype, wire.All(80))},
	})
	register(TypeBsnClientReply, wire.TypeInfo{
		Name:    "of_bsn_client_reply",
		Parent:  TypeBsnHeader,
		Lengths: wire.All(24),
		Consts:  []wire.ConstValue{c(FieldBsnSubtype, wire.All(81))},
		Generic: true,
	})
	register(TypeBsnClientReplyHost, wire.TypeInfo{
		Name:    "of_bsn_client_reply_host",
		Parent:  TypeBsnClientReply,
		Lengths: wire.All(36),
		Consts:  []wire.ConstValue{c(FieldBsnClientReplyClientType, wire.All(int(BsnClientTypeHost)))},
	})
	register(TypeBsnClientReplySwitch, wire.TypeInfo{
		Name:    "of_bsn_client_reply_switch",
		Parent:  TypeBsnClientReply,
		Lengths: wire.All(32),
		Consts:  []wire.ConstValue{c(FieldBsnClientReplyClientType, wire.All(int(BsnClientTypeSwitch)))},
	})
	register(TypeBsnGentableEntryAdd, wire.TypeInfo{
		Name:    "of_bsn_gentable_entry_add",
		Parent:  TypeBsnHeader,
		Lengths: wire.Only(kGentableEntryAddLen, wire.V13),
		Consts:  []wire.ConstValue{c(FieldBsnSubtype, wire.All(46))},
	})
}

func registerStats() {
	register(TypeStatsRequest, wire.TypeInfo{
		Name:    "of_stats_request",
		Parent:  TypeHeader,
		Lengths: wire.PerVersion{12, 16, 16, 16},
		Consts:  []wire.ConstValue{c(FieldHeaderType, msgType(16, 18))},
		Generic: true,
	})
	register(TypeStatsReply, wire.TypeInfo{
		Name:    "of_stats_reply",
		Parent:  TypeHeader,
		Lengths: wire.PerVersion{12, 16, 16, 16},
		Consts:  []wire.ConstValue{c(FieldHeaderType, msgType(17, 19))},
		Generic: true,
	})
	descReply := 4*kDescStrLen + kSerialNumLen
	for _, s := range []struct {
		t      wire.ObjectType
		parent wire.ObjectType
		field  *wire.Field
		name   string
		code   int
		body   int
		ver    wire.PerVersion
	}{
		{TypeDescStatsRequest, TypeStatsRequest, FieldStatsType, "of_desc_stats_request", kStatsTypeDesc, 0, wire.All(0)},
		{TypeDescStatsReply, TypeStatsReply, FieldStatsReplyType, "of_desc_stats_reply", kStatsTypeDesc, descReply, wire.All(0)},
		{TypePortDescStatsRequest, TypeStatsRequest, FieldStatsType, "of_port_desc_stats_request", kStatsTypePortDesc, 0, wire.Only(0, wire.V13)},
		{TypePortDescStatsReply, TypeStatsReply, FieldStatsReplyType, "of_port_desc_stats_reply", kStatsTypePortDesc, 0, wire.Only(0, wire.V13)},
		{TypeExperimenterStatsRequest, TypeStatsRequest, FieldStatsType, "of_experimenter_stats_request", kStatsTypeExperimenter, 8, wire.All(0)},
		{TypeExperimenterStatsReply, TypeStatsReply, FieldStatsReplyType, "of_experimenter_stats_reply", kStatsTypeExperimenter, 8, wire.All(0)},
	} {
		lengths := wire.PerVersion{12 + s.body, 16 + s.body, 16 + s.body, 16 + s.body}
		for i, n := range s.ver {
			if n == absent {
				lengths[i] = absent
			}
		}
		register(s.t, wire.TypeInfo{
			Name:    s.name,
			Parent:  s.parent,
			Lengths: lengths,
			Consts:  []wire.ConstValue{c(s.field, wire.All(s.code))},
			Generic: s.code == kStatsTypeExperimenter,
		})
	}
	register(TypeBsnStatsRequest, wire.TypeInfo{
		Name:    "of_bsn_stats_request",
		Parent:  TypeExperimenterStatsRequest,
		Lengths: wire.PerVersion{20, 24, 24, 24},
		Consts:  []wire.ConstValue{c(FieldExperimenterStatsId, wire.All(kExperimenterBsn))},
		Generic: true,
	})
	register(TypeBsnStatsReply, wire.TypeInfo{
		Name:    "of_bsn_stats_reply",
		Parent:  TypeExperimenterStatsReply,
		Lengths: wire.PerVersion{20, 24, 24, 24},
		Consts:  []wire.ConstValue{c(FieldExperimenterStatsReplyId, wire.All(kExperimenterBsn))},
		Generic: true,
	})
	register(TypeBsnGentableEntryStatsRequest, wire.TypeInfo{
		Name:    "of_bsn_gentable_entry_stats_request",
		Parent:  TypeBsnStatsRequest,
		Lengths: wire.Only(28, wire.V13),
		Consts:  []wire.ConstValue{c(FieldExperimenterStatsSubtype, wire.All(3))},
	})
	register(TypeBsnGentableEntryStatsReply, wire.TypeInfo{
		Name:    "of_bsn_gentable_entry_stats_reply",
		Parent:  TypeBsnStatsReply,
		Lengths: wire.Only(24, wire.V13),
		Consts:  []wire.ConstValue{c(FieldExperimenterStatsReplySubtype, wire.All(3))},
	})
	register(TypeBsnGentableEntryStatsEntry, wire.TypeInfo{
		Name:    "of_bsn_gentable_entry_stats_entry",
		Lengths: wire.Only(4, wire.V13),
		Length:  &wire.LengthRule{Field: FieldEntryLength},
	})
}

func registerStructs() {
	register(TypePortDesc, wire.TypeInfo{
		Name:    "of_port_desc",
		Lengths: wire.PerVersion{kPortDescLenV10, kPortDescLen, kPortDescLen, kPortDescLen},
	})
	register(TypeMatchV1, wire.TypeInfo{
		Name:    "of_match_v1",
		Lengths: wire.Only(40, wire.V10),
	})
	register(TypeMatchV2, wire.TypeInfo{
		Name:    "of_match_v2",
		Lengths: wire.Only(88, wire.V11),
		Consts: []wire.ConstValue{
			c(FieldMatchV2Type, wire.All(0)),
			c(FieldMatchV2Length, wire.All(88)),
		},
	})
	register(TypeMatch, wire.TypeInfo{
		Name:    "of_match_v3",
		Lengths: wire.From(4, wire.V12),
		Length:  &wire.LengthRule{Field: FieldMatchLength},
		Consts:  []wire.ConstValue{c(FieldMatchType, wire.All(1))},
	})

	register(TypeOxm, wire.TypeInfo{
		Name:    "of_oxm",
		Lengths: wire.From(4, wire.V12),
		Length:  &wire.LengthRule{Field: FieldOxmLength, Bias: 4},
		Generic: true,
	})
	for _, x := range []struct {
		t      wire.ObjectType
		name   string
		header uint32
	}{
		{TypeOxmInPort, "of_oxm_in_port", 0x80000004},
		{TypeOxmEthDst, "of_oxm_eth_dst", 0x80000606},
		{TypeOxmEthSrc, "of_oxm_eth_src", 0x80000806},
		{TypeOxmEthType, "of_oxm_eth_type", 0x80000a02},
		{TypeOxmVlanVid, "of_oxm_vlan_vid", 0x80000c02},
		{TypeOxmIpv4Src, "of_oxm_ipv4_src", 0x80001604},
		{TypeOxmIpv4Dst, "of_oxm_ipv4_dst", 0x80001804},
	} {
		register(x.t, wire.TypeInfo{
			Name:    x.name,
			Parent:  TypeOxm,
			Lengths: wire.From(4+int(x.header&0xff), wire.V12),
			Consts:  []wire.ConstValue{c(FieldOxmHeader, wire.All(int(x.header)))},
		})
	}

	register(TypeAction, wire.TypeInfo{
		Name:    "of_action",
		Lengths: wire.All(4),
		Length:  &wire.LengthRule{Field: FieldActionLength},
		Generic: true,
	})
	for _, a := range []struct {
		t       wire.ObjectType
		name    string
		code    int
		lengths wire.PerVersion
	}{
		{TypeActionOutput, "of_action_output", 0, wire.PerVersion{8, 16, 16, 16}},
		{TypeActionSetVlanVid, "of_action_set_vlan_vid", 1, wire.PerVersion{8, 8, absent, absent}},
		{TypeActionPopVlan, "of_action_pop_vlan", 18, wire.From(8, wire.V11)},
		{TypeActionGroup, "of_action_group", 22, wire.From(8, wire.V11)},
		{TypeActionExperimenter, "of_action_experimenter", 0xffff, wire.All(8)},
	} {
		register(a.t, wire.TypeInfo{
			Name:    a.name,
			Parent:  TypeAction,
			Lengths: a.lengths,
			Consts:  []wire.ConstValue{c(FieldActionType, wire.All(a.code))},
		})
	}

	register(TypeInstruction, wire.TypeInfo{
		Name:    "of_instruction",
		Lengths: wire.From(4, wire.V11),
		Length:  &wire.LengthRule{Field: FieldInstructionLength},
		Generic: true,
	})
	for _, in := range []struct {
		t       wire.ObjectType
		name    string
		code    int
		lengths wire.PerVersion
	}{
		{TypeInstructionGotoTable, "of_instruction_goto_table", 1, wire.From(8, wire.V11)},
		{TypeInstructionWriteMetadata, "of_instruction_write_metadata", 2, wire.From(24, wire.V11)},
		{TypeInstructionWriteActions, "of_instruction_write_actions", 3, wire.From(8, wire.V11)},
		{TypeInstructionApplyActions, "of_instruction_apply_actions", 4, wire.From(8, wire.V11)},
		{TypeInstructionClearActions, "of_instruction_clear_actions", 5, wire.From(8, wire.V11)},
		{TypeInstructionMeter, "of_instruction_meter", 6, wire.Only(8, wire.V13)},
	} {
		register(in.t, wire.TypeInfo{
			Name:    in.name,
			Parent:  TypeInstruction,
			Lengths: in.lengths,
			Consts:  []wire.ConstValue{c(FieldInstructionType, wire.All(in.code))},
		})
	}

	register(TypeBsnTlv, wire.TypeInfo{
		Name:    "of_bsn_tlv",
		Lengths: wire.Only(4, wire.V13),
		Length:  &wire.LengthRule{Field: FieldBsnTlvLength},
		Generic: true,
	})
	for _, tlv := range []struct {
		t    wire.ObjectType
		name string
		code int
		n    int
	}{
		{TypeBsnTlvPort, "of_bsn_tlv_port", 0, 8},
		{TypeBsnTlvMac, "of_bsn_tlv_mac", 1, 10},
		{TypeBsnTlvRxPackets, "of_bsn_tlv_rx_packets", 2, 12},
		{TypeBsnTlvTxPackets, "of_bsn_tlv_tx_packets", 3, 12},
		{TypeBsnTlvVlanVid, "of_bsn_tlv_vlan_vid", 6, 6},
		{TypeBsnTlvIdleTimeout, "of_bsn_tlv_idle_timeout", 7, 8},
		{TypeBsnTlvTxBytes, "of_bsn_tlv_tx_bytes", 39, 12},
		{TypeBsnTlvName, "of_bsn_tlv_name", 52, 4},
	} {
		register(tlv.t, wire.TypeInfo{
			Name:    tlv.name,
			Parent:  TypeBsnTlv,
			Lengths: wire.Only(tlv.n, wire.V13),
			Consts:  []wire.ConstValue{c(FieldBsnTlvType, wire.All(tlv.code))},
		})
	}
}

func registerLists() {
	for _, l := range []struct {
		t     wire.ObjectType
		name  string
		entry wire.ObjectType
		ver   wire.PerVersion
	}{
		{TypeListAction, "list(of_action)", TypeAction, wire.All(0)},
		{TypeListInstruction, "list(of_instruction)", TypeInstruction, wire.From(0, wire.V11)},
		{TypeListOxm, "list(of_oxm)", TypeOxm, wire.From(0, wire.V12)},
		{TypeListBsnTlv, "list(of_bsn_tlv)", TypeBsnTlv, wire.Only(0, wire.V13)},
		{TypeListPortDesc, "list(of_port_desc)", TypePortDesc, wire.All(0)},
		{TypeListBsnGentableEntryStatsEntry, "list(of_bsn_gentable_entry_stats_entry)", TypeBsnGentableEntryStatsEntry, wire.Only(0, wire.V13)},
	} {
		register(l.t, wire.TypeInfo{
			Name:    l.name,
			Lengths: l.ver,
			Elem:    elem(l.entry),
		})
	}
}
