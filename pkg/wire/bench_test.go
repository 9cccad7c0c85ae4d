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

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		New(V13, tMsg)
	}
}

func BenchmarkFieldAccess(b *testing.B) {
	msg := New(V13, tMsg)
	for i := 0; i < b.N; i++ {
		msg.SetU16(fMsgFlags, uint16(i))
		if msg.GetU16(fMsgFlags) != uint16(i) {
			b.FailNow()
		}
	}
}

func BenchmarkAppendPropagate(b *testing.B) {
	entry := newTlvB(V13, []byte{1, 2, 3, 4})
	for i := 0; i < b.N; i++ {
		msg := New(V13, tMsg)
		keys := msg.Bind(tTlvList, kMsgFixed, 0, fMsgKeysLen)
		for j := 0; j < 8; j++ {
			if keys.Append(entry) != nil {
				b.FailNow()
			}
		}
	}
}

func BenchmarkIterate(b *testing.B) {
	msg := New(V13, tMsg)
	keys := msg.Bind(tTlvList, kMsgFixed, 0, fMsgKeysLen)
	for j := 0; j < 16; j++ {
		keys.Append(newTlvB(V13, []byte{1, 2, 3, 4}))
	}
	for i := 0; i < b.N; i++ {
		if n, err := keys.Count(); n != 16 || err != nil {
			b.FailNow()
		}
	}
}

func BenchmarkDup(b *testing.B) {
	msg := New(V13, tMsg)
	for i := 0; i < b.N; i++ {
		msg.Dup()
	}
}
