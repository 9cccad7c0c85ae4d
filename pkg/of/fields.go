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
	kHeaderLen           = 8
	kGentableEntryAddLen = 40
	kOxmMatchAlign       = 8
)

var (
	all = wire.All
	v11 = func(off int) wire.PerVersion { return wire.From(off, wire.V11) }
	v12 = func(off int) wire.PerVersion { return wire.From(off, wire.V12) }
	v13 = func(off int) wire.PerVersion { return wire.Only(off, wire.V13) }
)

// common header
var (
	FieldHeaderVersion = wire.NewField(TypeHeader, "version", wire.KindU8, all(0))
	FieldHeaderType    = wire.NewField(TypeHeader, "type", wire.KindU8, all(1))
	FieldHeaderLength  = wire.NewField(TypeHeader, "length", wire.KindU16, all(2))
	FieldHeaderXid     = wire.NewField(TypeHeader, "xid", wire.KindU32, all(4))
)

var (
	FieldErrorType = wire.NewField(TypeErrorMsg, "err_type", wire.KindU16, all(8))
	FieldErrorCode = wire.NewField(TypeErrorMsg, "code", wire.KindU16, all(10))
)

// experimenter messages
var (
	FieldExperimenterId = wire.NewField(TypeExperimenter, "experimenter", wire.KindU32, all(8))

	// The 1.0 vendor header ends at the vendor id, so the subtype belongs
	// to each vendor's header.
	FieldBsnSubtype    = wire.NewField(TypeBsnHeader, "subtype", wire.KindU32, all(12))
	FieldNiciraSubtype = wire.NewField(TypeNiciraHeader, "subtype", wire.KindU32, all(12))

	FieldNiciraRoleRequestRole = wire.NewField(TypeNiciraRoleRequest, "role", wire.KindU32, all(16))
	FieldNiciraRoleReplyRole   = wire.NewField(TypeNiciraRoleReply, "role", wire.KindU32, all(16))

	FieldBsnClientAddClientType = wire.NewField(TypeBsnClientAdd, "client_type", wire.KindU8, all(16))
	FieldBsnClientAddVlanVid    = wire.NewField(TypeBsnClientAdd, "vlan_vid", wire.KindU16, all(18))
	FieldBsnClientAddHwAddr     = wire.NewField(TypeBsnClientAdd, "hw_addr", wire.KindMAC, all(20))
	FieldBsnClientAddIpv4       = wire.NewField(TypeBsnClientAdd, "ipv4", wire.KindU32, all(28))
	FieldBsnClientAddName       = wire.NewField(TypeBsnClientAdd, "name", wire.KindString, all(32), 16)

	FieldBsnClientReplyStatus     = wire.NewField(TypeBsnClientReply, "status", wire.KindU32, all(16))
	FieldBsnClientReplyClientType = wire.NewField(TypeBsnClientReply, "client_type", wire.KindU8, all(20))
	FieldBsnClientReplyHostHwAddr = wire.NewField(TypeBsnClientReplyHost, "hw_addr", wire.KindMAC, all(24))
	FieldBsnClientReplyHostIpv4   = wire.NewField(TypeBsnClientReplyHost, "ipv4", wire.KindU32, all(32))
	FieldBsnClientReplySwitchDpid = wire.NewField(TypeBsnClientReplySwitch, "dpid", wire.KindU64, all(24))

	FieldGentableTableId   = wire.NewField(TypeBsnGentableEntryAdd, "table_id", wire.KindU16, all(16))
	FieldGentableKeyLength = wire.NewField(TypeBsnGentableEntryAdd, "key_length", wire.KindU16, all(18))
	FieldGentableChecksum  = wire.NewField(TypeBsnGentableEntryAdd, "checksum", wire.KindBytes, all(20), 16)
	FieldGentableFlags     = wire.NewField(TypeBsnGentableEntryAdd, "flags", wire.KindU32, all(36))
)

var (
	FieldPacketOutBufferId   = wire.NewField(TypePacketOut, "buffer_id", wire.KindU32, all(8))
	FieldPacketOutInPort     = wire.NewField(TypePacketOut, "in_port", wire.KindPortNo, all(12))
	FieldPacketOutActionsLen = wire.NewField(TypePacketOut, "actions_len", wire.KindU16, wire.PerVersion{14, 16, 16, 16})
)

// flow_mod moved nearly every field between 1.0 and 1.1
var (
	FieldFlowModCookie      = wire.NewField(TypeFlowMod, "cookie", wire.KindU64, wire.PerVersion{48, 8, 8, 8})
	FieldFlowModCookieMask  = wire.NewField(TypeFlowMod, "cookie_mask", wire.KindU64, v11(16))
	FieldFlowModTableId     = wire.NewField(TypeFlowMod, "table_id", wire.KindU8, v11(24))
	FieldFlowModCommandV10  = wire.NewField(TypeFlowMod, "_command", wire.KindU16, wire.Only(56, wire.V10))
	FieldFlowModCommand     = wire.NewField(TypeFlowMod, "command", wire.KindU8, v11(25))
	FieldFlowModIdleTimeout = wire.NewField(TypeFlowMod, "idle_timeout", wire.KindU16, wire.PerVersion{58, 26, 26, 26})
	FieldFlowModHardTimeout = wire.NewField(TypeFlowMod, "hard_timeout", wire.KindU16, wire.PerVersion{60, 28, 28, 28})
	FieldFlowModPriority    = wire.NewField(TypeFlowMod, "priority", wire.KindU16, wire.PerVersion{62, 30, 30, 30})
	FieldFlowModBufferId    = wire.NewField(TypeFlowMod, "buffer_id", wire.KindU32, wire.PerVersion{64, 32, 32, 32})
	FieldFlowModOutPort     = wire.NewField(TypeFlowMod, "out_port", wire.KindPortNo, wire.PerVersion{68, 36, 36, 36})
	FieldFlowModOutGroup    = wire.NewField(TypeFlowMod, "out_group", wire.KindU32, v11(40))
	FieldFlowModFlags       = wire.NewField(TypeFlowMod, "flags", wire.KindU16, wire.PerVersion{70, 44, 44, 44})
	FieldFlowModMatchType   = wire.NewField(TypeFlowMod, "_match_type", wire.KindU16, v11(48))
	FieldFlowModMatchLength = wire.NewField(TypeFlowMod, "_match_length", wire.KindU16, v11(50))
)

var (
	FieldPortStatusReason = wire.NewField(TypePortStatus, "reason", wire.KindU8, all(8))
)

// multipart
var (
	FieldStatsType  = wire.NewField(TypeStatsRequest, "stats_type", wire.KindU16, all(8))
	FieldStatsFlags = wire.NewField(TypeStatsRequest, "flags", wire.KindU16, all(10))

	FieldStatsReplyType  = wire.NewField(TypeStatsReply, "stats_type", wire.KindU16, all(8))
	FieldStatsReplyFlags = wire.NewField(TypeStatsReply, "flags", wire.KindU16, all(10))

	FieldDescMfr    = wire.NewField(TypeDescStatsReply, "mfr_desc", wire.KindString, wire.PerVersion{12, 16, 16, 16}, kDescStrLen)
	FieldDescHw     = wire.NewField(TypeDescStatsReply, "hw_desc", wire.KindString, wire.PerVersion{268, 272, 272, 272}, kDescStrLen)
	FieldDescSw     = wire.NewField(TypeDescStatsReply, "sw_desc", wire.KindString, wire.PerVersion{524, 528, 528, 528}, kDescStrLen)
	FieldDescSerial = wire.NewField(TypeDescStatsReply, "serial_num", wire.KindString, wire.PerVersion{780, 784, 784, 784}, kSerialNumLen)
	FieldDescDp     = wire.NewField(TypeDescStatsReply, "dp_desc", wire.KindString, wire.PerVersion{812, 816, 816, 816}, kDescStrLen)

	FieldExperimenterStatsId      = wire.NewField(TypeExperimenterStatsRequest, "experimenter", wire.KindU32, wire.PerVersion{12, 16, 16, 16})
	FieldExperimenterStatsSubtype = wire.NewField(TypeExperimenterStatsRequest, "subtype", wire.KindU32, wire.PerVersion{16, 20, 20, 20})

	FieldExperimenterStatsReplyId      = wire.NewField(TypeExperimenterStatsReply, "experimenter", wire.KindU32, wire.PerVersion{12, 16, 16, 16})
	FieldExperimenterStatsReplySubtype = wire.NewField(TypeExperimenterStatsReply, "subtype", wire.KindU32, wire.PerVersion{16, 20, 20, 20})

	FieldGentableStatsTableId = wire.NewField(TypeBsnGentableEntryStatsRequest, "table_id", wire.KindU16, v13(24))

	FieldEntryLength    = wire.NewField(TypeBsnGentableEntryStatsEntry, "length", wire.KindU16, v13(0))
	FieldEntryKeyLength = wire.NewField(TypeBsnGentableEntryStatsEntry, "key_length", wire.KindU16, v13(2))
)

var (
	FieldPortDescPortNo     = wire.NewField(TypePortDesc, "port_no", wire.KindPortNo, all(0))
	FieldPortDescHwAddr     = wire.NewField(TypePortDesc, "hw_addr", wire.KindMAC, wire.PerVersion{2, 8, 8, 8})
	FieldPortDescName       = wire.NewField(TypePortDesc, "name", wire.KindString, wire.PerVersion{8, 16, 16, 16}, 16)
	FieldPortDescConfig     = wire.NewField(TypePortDesc, "config", wire.KindU32, wire.PerVersion{24, 32, 32, 32})
	FieldPortDescState      = wire.NewField(TypePortDesc, "state", wire.KindU32, wire.PerVersion{28, 36, 36, 36})
	FieldPortDescCurr       = wire.NewField(TypePortDesc, "curr", wire.KindU32, wire.PerVersion{32, 40, 40, 40})
	FieldPortDescAdvertised = wire.NewField(TypePortDesc, "advertised", wire.KindU32, wire.PerVersion{36, 44, 44, 44})
	FieldPortDescSupported  = wire.NewField(TypePortDesc, "supported", wire.KindU32, wire.PerVersion{40, 48, 48, 48})
	FieldPortDescPeer       = wire.NewField(TypePortDesc, "peer", wire.KindU32, wire.PerVersion{44, 52, 52, 52})
	FieldPortDescCurrSpeed  = wire.NewField(TypePortDesc, "curr_speed", wire.KindU32, v11(56))
	FieldPortDescMaxSpeed   = wire.NewField(TypePortDesc, "max_speed", wire.KindU32, v11(60))
)

// matches
var (
	FieldMatchV1Wildcards = wire.NewField(TypeMatchV1, "wildcards", wire.KindU32, all(0))
	FieldMatchV1InPort    = wire.NewField(TypeMatchV1, "in_port", wire.KindPortNo, all(4))
	FieldMatchV1EthSrc    = wire.NewField(TypeMatchV1, "eth_src", wire.KindMAC, all(6))
	FieldMatchV1EthDst    = wire.NewField(TypeMatchV1, "eth_dst", wire.KindMAC, all(12))
	FieldMatchV1VlanVid   = wire.NewField(TypeMatchV1, "vlan_vid", wire.KindU16, all(18))
	FieldMatchV1EthType   = wire.NewField(TypeMatchV1, "eth_type", wire.KindU16, all(22))
	FieldMatchV1Ipv4Src   = wire.NewField(TypeMatchV1, "ipv4_src", wire.KindU32, all(28))
	FieldMatchV1Ipv4Dst   = wire.NewField(TypeMatchV1, "ipv4_dst", wire.KindU32, all(32))

	FieldMatchV2Type      = wire.NewField(TypeMatchV2, "type", wire.KindU16, all(0))
	FieldMatchV2Length    = wire.NewField(TypeMatchV2, "length", wire.KindU16, all(2))
	FieldMatchV2InPort    = wire.NewField(TypeMatchV2, "in_port", wire.KindPortNo, all(4))
	FieldMatchV2Wildcards = wire.NewField(TypeMatchV2, "wildcards", wire.KindU32, all(8))
	FieldMatchV2EthSrc    = wire.NewField(TypeMatchV2, "eth_src", wire.KindMAC, all(12))
	FieldMatchV2EthDst    = wire.NewField(TypeMatchV2, "eth_dst", wire.KindMAC, all(24))
	FieldMatchV2VlanVid   = wire.NewField(TypeMatchV2, "vlan_vid", wire.KindU16, all(36))
	FieldMatchV2EthType   = wire.NewField(TypeMatchV2, "eth_type", wire.KindU16, all(40))

	FieldMatchType   = wire.NewField(TypeMatch, "type", wire.KindU16, v12(0))
	FieldMatchLength = wire.NewField(TypeMatch, "length", wire.KindU16, v12(2))

	FieldOxmHeader  = wire.NewField(TypeOxm, "type_len", wire.KindU32, v12(0))
	FieldOxmLength  = wire.NewField(TypeOxm, "_length", wire.KindU8, v12(3))
	FieldOxmInPort  = wire.NewField(TypeOxmInPort, "value", wire.KindU32, v12(4))
	FieldOxmEthDst  = wire.NewField(TypeOxmEthDst, "value", wire.KindMAC, v12(4))
	FieldOxmEthSrc  = wire.NewField(TypeOxmEthSrc, "value", wire.KindMAC, v12(4))
	FieldOxmEthType = wire.NewField(TypeOxmEthType, "value", wire.KindU16, v12(4))
	FieldOxmVlanVid = wire.NewField(TypeOxmVlanVid, "value", wire.KindU16, v12(4))
	FieldOxmIpv4Src = wire.NewField(TypeOxmIpv4Src, "value", wire.KindU32, v12(4))
	FieldOxmIpv4Dst = wire.NewField(TypeOxmIpv4Dst, "value", wire.KindU32, v12(4))
)

// actions and instructions
var (
	FieldActionType   = wire.NewField(TypeAction, "type", wire.KindU16, all(0))
	FieldActionLength = wire.NewField(TypeAction, "len", wire.KindU16, all(2))

	FieldActionOutputPort   = wire.NewField(TypeActionOutput, "port", wire.KindPortNo, all(4))
	FieldActionOutputMaxLen = wire.NewField(TypeActionOutput, "max_len", wire.KindU16, wire.PerVersion{6, 8, 8, 8})
	FieldActionVlanVid      = wire.NewField(TypeActionSetVlanVid, "vlan_vid", wire.KindU16, all(4))
	FieldActionGroupId      = wire.NewField(TypeActionGroup, "group_id", wire.KindU32, v11(4))
	FieldActionExperimenter = wire.NewField(TypeActionExperimenter, "experimenter", wire.KindU32, all(4))

	FieldInstructionType   = wire.NewField(TypeInstruction, "type", wire.KindU16, v11(0))
	FieldInstructionLength = wire.NewField(TypeInstruction, "len", wire.KindU16, v11(2))

	FieldGotoTableId       = wire.NewField(TypeInstructionGotoTable, "table_id", wire.KindU8, v11(4))
	FieldWriteMetadata     = wire.NewField(TypeInstructionWriteMetadata, "metadata", wire.KindU64, v11(8))
	FieldWriteMetadataMask = wire.NewField(TypeInstructionWriteMetadata, "metadata_mask", wire.KindU64, v11(16))
	FieldMeterId           = wire.NewField(TypeInstructionMeter, "meter_id", wire.KindU32, v13(4))
)

var (
	FieldBsnTlvType   = wire.NewField(TypeBsnTlv, "type", wire.KindU16, v13(0))
	FieldBsnTlvLength = wire.NewField(TypeBsnTlv, "length", wire.KindU16, v13(2))

	FieldBsnTlvPort        = wire.NewField(TypeBsnTlvPort, "value", wire.KindPortNo, v13(4))
	FieldBsnTlvMac         = wire.NewField(TypeBsnTlvMac, "value", wire.KindMAC, v13(4))
	FieldBsnTlvRxPackets   = wire.NewField(TypeBsnTlvRxPackets, "value", wire.KindU64, v13(4))
	FieldBsnTlvTxPackets   = wire.NewField(TypeBsnTlvTxPackets, "value", wire.KindU64, v13(4))
	FieldBsnTlvVlanVid     = wire.NewField(TypeBsnTlvVlanVid, "value", wire.KindU16, v13(4))
	FieldBsnTlvIdleTimeout = wire.NewField(TypeBsnTlvIdleTimeout, "value", wire.KindU32, v13(4))
	FieldBsnTlvTxBytes     = wire.NewField(TypeBsnTlvTxBytes, "value", wire.KindU64, v13(4))
)
