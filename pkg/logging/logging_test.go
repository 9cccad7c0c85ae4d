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

package logging

import (
	"flag"
	"strings"
	"testing"

	"ofwire/pkg/of"
	"ofwire/pkg/wire"
)

func TestInitLogging(t *testing.T) {
	saved := flag.Lookup("v").Value.String()
	defer flag.Set("v", saved)

	for _, tc := range []struct {
		level string
		v     string
		debug bool
	}{
		{"error", "1", false},
		{"WARNING", "2", false},
		{"info", "3", false},
		{"debug", "4", true},
		{"verbose", "5", true},
		{"nonsense", "2", false},
	} {
		InitLogging(tc.level)
		if got := flag.Lookup("v").Value.String(); got != tc.v {
			t.Errorf("%s: -v=%s, expected %s", tc.level, got, tc.v)
		}
		if DebugEnabled() != tc.debug {
			t.Errorf("%s: DebugEnabled() = %v", tc.level, !tc.debug)
		}
	}
}

func TestKeyValueBuffer(t *testing.T) {
	o := wire.FromBytes([]byte{0x04, 0x03, 0x00, 0x08, 0, 0, 0, 1}, wire.V13, of.TypeEchoReply)
	s := NewKVBufferForLog().AddStatus("ok").AddObjectInfo(o).String()
	if !strings.HasPrefix(s, "st=ok,type=of_echo_reply,") || !strings.Contains(s, ",v=1.3,len=8,fp=") {
		t.Errorf("got %q", s)
	}
	if strings.Contains(s, "off=") {
		t.Errorf("offset 0 should be omitted: %q", s)
	}
}
