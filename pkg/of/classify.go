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
	"fmt"

	"github.com/golang/glog"

	"ofwire/pkg/stats"
	"ofwire/pkg/wire"
)

type discKey struct {
	parent  wire.ObjectType
	field   *wire.Field
	version wire.Version
	value   uint64
}

var (
	// refiners maps each type that has variants to the fields whose value
	// selects the variant. The first field defined for the version is used.
	refiners = map[wire.ObjectType][]*wire.Field{
		TypeHeader:                   {FieldHeaderType},
		TypeExperimenter:             {FieldExperimenterId},
		TypeBsnHeader:                {FieldBsnSubtype},
		TypeNiciraHeader:             {FieldNiciraSubtype},
		TypeBsnClientReply:           {FieldBsnClientReplyClientType},
		TypeFlowMod:                  {FieldFlowModCommandV10, FieldFlowModCommand},
		TypeStatsRequest:             {FieldStatsType},
		TypeStatsReply:               {FieldStatsReplyType},
		TypeExperimenterStatsRequest: {FieldExperimenterStatsId},
		TypeExperimenterStatsReply:   {FieldExperimenterStatsReplyId},
		TypeBsnStatsRequest:          {FieldExperimenterStatsSubtype},
		TypeBsnStatsReply:            {FieldExperimenterStatsReplySubtype},
		TypeAction:                   {FieldActionType},
		TypeInstruction:              {FieldInstructionType},
		TypeOxm:                      {FieldOxmHeader},
		TypeBsnTlv:                   {FieldBsnTlvType},
	}

	// dispatchIndex is derived from the constant discriminators of every
	// registered type and is read only after init.
	dispatchIndex = map[discKey]wire.ObjectType{}
)

func buildDispatchIndex() {
	for _, e := range catalog {
		fields := refiners[e.info.Parent]
		if len(fields) == 0 {
			continue
		}
		for _, cv := range e.info.Consts {
			if !containsField(fields, cv.Field) {
				continue
			}
			for _, v := range wire.Versions {
				val := cv.Values.Get(v)
				if val == wire.Absent || !cv.Field.IsPresent(v) || !wire.IsAvailable(v, e.t) {
					continue
				}
				k := discKey{parent: e.info.Parent, field: cv.Field, version: v, value: uint64(val)}
				if prev, ok := dispatchIndex[k]; ok {
					panic(fmt.Sprintf("of: %s and %s share discriminator %s=%#x in %s",
						wire.TypeName(prev), e.info.Name, cv.Field, val, v))
				}
				dispatchIndex[k] = e.t
			}
		}
	}
}

func containsField(fields []*wire.Field, f *wire.Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

func refinerFor(t wire.ObjectType, v wire.Version) *wire.Field {
	for _, f := range refiners[t] {
		if f.IsPresent(v) {
			return f
		}
	}
	return nil
}

// peek reads a discriminator without the accessor checks. ok is false if
// the field lies beyond the object.
func peek(o *wire.Object, f *wire.Field) (val uint64, ok bool) {
	v := o.Version()
	rel := f.Offsets.Get(v)
	w := f.WidthFor(v)
	if rel < 0 || rel+w > o.Length() {
		return 0, false
	}
	b := o.Bytes()[rel : rel+w]
	switch w {
	case 1:
		val = uint64(b[0])
	case 2:
		val = uint64(wire.EncByteOrder.Uint16(b))
	case 4:
		val = uint64(wire.EncByteOrder.Uint32(b))
	case 8:
		val = wire.EncByteOrder.Uint64(b)
	default:
		return 0, false
	}
	return val, true
}

// Classify returns the most specific type o's bytes describe, starting from
// o's current type. Unrecognized or truncated discriminators leave the
// least specific type that is known to match.
func Classify(o *wire.Object) wire.ObjectType {
	return classifyFrom(o, o.Type())
}

func classifyFrom(o *wire.Object, t wire.ObjectType) wire.ObjectType {
	v := o.Version()
	for {
		f := refinerFor(t, v)
		if f == nil {
			return t
		}
		val, ok := peek(o, f)
		if !ok {
			return t
		}
		next, found := dispatchIndex[discKey{parent: t, field: f, version: v, value: val}]
		if !found {
			glog.V(3).Infof("unrecognized %s=%#x in version %s, using %s", f, val, v, wire.TypeName(t))
			stats.RecordUnknown(wire.TypeName(t))
			return t
		}
		if wire.FixedLength(v, next) > o.Length() {
			return t
		}
		t = next
	}
}

func ClassifyAction(o *wire.Object) wire.ObjectType {
	return classifyFrom(o, TypeAction)
}

func ClassifyInstruction(o *wire.Object) wire.ObjectType {
	return classifyFrom(o, TypeInstruction)
}

func ClassifyOXM(o *wire.Object) wire.ObjectType {
	return classifyFrom(o, TypeOxm)
}

func ClassifyBsnTlv(o *wire.Object) wire.ObjectType {
	return classifyFrom(o, TypeBsnTlv)
}

// ClassifyPortDesc exists for symmetry with the other entry classifiers;
// port descriptions have no variants.
func ClassifyPortDesc(o *wire.Object) wire.ObjectType {
	return TypePortDesc
}
