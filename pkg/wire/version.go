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
)

type Version uint8

const (
	VersionUnknown Version = 0
	V10            Version = 1
	V11            Version = 2
	V12            Version = 3
	V13            Version = 4
)

const NumVersions = 4

// Absent marks a length or offset that does not exist for a version.
const Absent = -1

var (
	Versions = []Version{V10, V11, V12, V13}

	versionNames = [NumVersions]string{"1.0", "1.1", "1.2", "1.3"}
)

// PerVersion holds one value per supported version, indexed by Version-1.
type PerVersion [NumVersions]int

// All returns a PerVersion with the same value for every version.
func All(v int) PerVersion {
	return PerVersion{v, v, v, v}
}

// Only returns a PerVersion holding v for the listed versions and Absent
// elsewhere.
func Only(v int, versions ...Version) (p PerVersion) {
	for i := range p {
		p[i] = Absent
	}
	for _, ver := range versions {
		p[ver.index()] = v
	}
	return
}

// From returns a PerVersion holding v for first and every later version.
func From(v int, first Version) (p PerVersion) {
	for i := range p {
		if i >= first.index() {
			p[i] = v
		} else {
			p[i] = Absent
		}
	}
	return
}

func (p PerVersion) Get(v Version) int {
	return p[v.index()]
}

func (v Version) IsSupported() bool {
	return v >= V10 && v <= V13
}

func (v Version) index() int {
	if !v.IsSupported() {
		panic(fmt.Sprintf("wire: unsupported version %d", uint8(v)))
	}
	return int(v) - 1
}

func (v Version) String() string {
	if v.IsSupported() {
		return versionNames[v.index()]
	}
	return fmt.Sprintf("Unsupported(%d)", uint8(v))
}
