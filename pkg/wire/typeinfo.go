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
	"sort"
)

type ObjectType uint16

const TypeNone ObjectType = 0

type (
	// LengthRule locates the word where an object encodes its own length.
	// The encoded value is Length() - Bias.
	LengthRule struct {
		Field *Field
		Bias  int
	}

	// ConstValue is a discriminator stamped by New. Absent entries are
	// skipped for that version.
	ConstValue struct {
		Field  *Field
		Values PerVersion
	}

	ElemInfo struct {
		Base     ObjectType
		Classify func(entry *Object) ObjectType
	}

	TypeInfo struct {
		Name    string
		Parent  ObjectType
		Lengths PerVersion
		Length  *LengthRule
		Consts  []ConstValue
		Elem    *ElemInfo
		// Grows marks top-level messages; New reserves MessageCapacity.
		Grows bool
		// Generic marks fallback tags chosen for unrecognized discriminators.
		Generic bool
	}
)

var (
	typeTable    = map[ObjectType]*TypeInfo{}
	typeByName   = map[string]ObjectType{}
	fieldsByType = map[ObjectType][]*Field{}
)

// RegisterType adds t to the process wide type table. It is meant to be
// called from package init functions and panics on duplicates.
func RegisterType(t ObjectType, info TypeInfo) {
	if t == TypeNone {
		panic("wire: cannot register TypeNone")
	}
	if _, ok := typeTable[t]; ok {
		panic(fmt.Sprintf("wire: type %d (%s) registered twice", t, info.Name))
	}
	if info.Parent != TypeNone {
		if _, ok := typeTable[info.Parent]; !ok {
			panic(fmt.Sprintf("wire: parent of %s not registered", info.Name))
		}
	}
	ti := info
	typeTable[t] = &ti
	typeByName[info.Name] = t
}

func lookupType(t ObjectType) *TypeInfo {
	if ti, ok := typeTable[t]; ok {
		return ti
	}
	panic(fmt.Sprintf("wire: unknown object type %d", t))
}

func TypeName(t ObjectType) string {
	if ti, ok := typeTable[t]; ok {
		return ti.Name
	}
	return fmt.Sprintf("ObjectType(%d)", t)
}

func TypeByName(name string) (t ObjectType, ok bool) {
	t, ok = typeByName[name]
	return
}

// Types returns all registered types in ascending order.
func Types() []ObjectType {
	types := make([]ObjectType, 0, len(typeTable))
	for t := range typeTable {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func ParentOf(t ObjectType) ObjectType {
	return lookupType(t).Parent
}

// IsA reports whether t is base or derives from it.
func IsA(t ObjectType, base ObjectType) bool {
	for t != TypeNone {
		if t == base {
			return true
		}
		t = lookupType(t).Parent
	}
	return false
}

func IsGeneric(t ObjectType) bool {
	return lookupType(t).Generic
}

// IsAvailable reports whether t has a wire definition for v.
func IsAvailable(v Version, t ObjectType) bool {
	ti, ok := typeTable[t]
	return ok && v.IsSupported() && ti.Lengths.Get(v) != Absent
}

// FixedLength returns the minimum encoded length of t for v, or Absent.
func FixedLength(v Version, t ObjectType) int {
	return lookupType(t).Lengths.Get(v)
}

func lengthRuleOf(t ObjectType) *LengthRule {
	for t != TypeNone {
		ti := lookupType(t)
		if ti.Length != nil {
			return ti.Length
		}
		t = ti.Parent
	}
	return nil
}

func elemOf(t ObjectType) *ElemInfo {
	for t != TypeNone {
		ti := lookupType(t)
		if ti.Elem != nil {
			return ti.Elem
		}
		t = ti.Parent
	}
	return nil
}

func growsOf(t ObjectType) bool {
	for t != TypeNone {
		ti := lookupType(t)
		if ti.Grows {
			return true
		}
		t = ti.Parent
	}
	return false
}

// FieldsOf returns the fields of t and its ancestors, outermost first.
func FieldsOf(t ObjectType) []*Field {
	var chain []ObjectType
	for t != TypeNone {
		chain = append(chain, t)
		t = lookupType(t).Parent
	}
	var fields []*Field
	for i := len(chain) - 1; i >= 0; i-- {
		fields = append(fields, fieldsByType[chain[i]]...)
	}
	return fields
}
