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
	"bytes"
	"flag"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"ofwire/pkg/util"
	"ofwire/pkg/wire"
)

// glog verbosity per level name.
var logLevels = map[string]int{
	"error":   1,
	"warning": 2,
	"info":    3,
	"debug":   4,
	"verbose": 5,
}

// InitLogging sets glog verbosity from a level name and sends output to
// stderr unless a log dir was given on the command line.
func InitLogging(level string) {
	v, ok := logLevels[strings.ToLower(level)]
	if !ok {
		glog.Warningf("unknown log level %q, using warning", level)
		v = logLevels["warning"]
	}
	setFlag("v", strconv.Itoa(v))
	if f := flag.Lookup("log_dir"); f == nil || f.Value.String() == "" {
		setFlag("logtostderr", "true")
	}
}

func DebugEnabled() bool {
	if f := flag.Lookup("v"); f != nil {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			return n >= logLevels["debug"]
		}
	}
	return false
}

func setFlag(name, value string) {
	if err := flag.Set(name, value); err != nil {
		glog.Warningf("fail to set -%s: %s", name, err)
	}
}

// KeyValueBuffer builds "k=v,k=v" log lines.
type KeyValueBuffer struct {
	bytes.Buffer
	delimiter     byte
	pairDelimiter byte
}

func NewKVBufferForLog() *KeyValueBuffer {
	return &KeyValueBuffer{
		delimiter:     '=',
		pairDelimiter: ',',
	}
}

var (
	logDataKeyType    = []byte("type")
	logDataKeyVersion = []byte("v")
	logDataKeyOffset  = []byte("off")
	logDataKeyLength  = []byte("len")
	logDataKeyStatus  = []byte("st")
	logDataKeyData    = []byte("data")
	logDataKeyFp      = []byte("fp")
)

func (b *KeyValueBuffer) AddBytes(key []byte, value []byte) *KeyValueBuffer {
	if b.Len() > 0 {
		b.WriteByte(b.pairDelimiter)
	}
	b.Write(key)
	b.WriteByte(b.delimiter)
	b.Write(value)
	return b
}

func (b *KeyValueBuffer) Add(key []byte, value string) *KeyValueBuffer {
	return b.AddBytes(key, []byte(value))
}

func (b *KeyValueBuffer) AddInt(key []byte, value int) *KeyValueBuffer {
	return b.Add(key, strconv.Itoa(value))
}

func (b *KeyValueBuffer) AddStatus(st string) *KeyValueBuffer {
	return b.Add(logDataKeyStatus, st)
}

func (b *KeyValueBuffer) AddHexData(data []byte) *KeyValueBuffer {
	return b.Add(logDataKeyData, util.ToHexString(data))
}

// AddObjectInfo logs the identity of an object. The encoded bytes are added
// as a fingerprint, not in full.
func (b *KeyValueBuffer) AddObjectInfo(o *wire.Object) *KeyValueBuffer {
	b.Add(logDataKeyType, o.TypeName()).
		Add(logDataKeyVersion, o.Version().String())
	if o.Offset() != 0 {
		b.AddInt(logDataKeyOffset, o.Offset())
	}
	b.AddInt(logDataKeyLength, o.Length())
	return b.Add(logDataKeyFp, strconv.FormatUint(uint64(util.Fingerprint(o.Bytes())), 16))
}
