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
	"github.com/golang/glog"

	"ofwire/pkg/stats"
	"ofwire/pkg/wire"
)

type Decoder struct {
	// Strict rejects messages that only classify to a generic type.
	Strict bool
}

var DefaultDecoder = &Decoder{}

func Decode(buf []byte) (*wire.Object, error) {
	return DefaultDecoder.Decode(buf)
}

// PeekMessageLength returns the length declared in the header at the start
// of buf.
func PeekMessageLength(buf []byte) (int, error) {
	if len(buf) < kHeaderLen {
		return 0, wire.ErrBufferTooShort
	}
	n := int(wire.EncByteOrder.Uint16(buf[2:4]))
	if n < kHeaderLen {
		return 0, ErrInvalidMessageSize
	}
	return n, nil
}

// Decode views the message at the start of buf as its most specific type.
// The returned object aliases buf; bytes after the declared message length
// are ignored and never written.
func (d *Decoder) Decode(buf []byte) (msg *wire.Object, err error) {
	var (
		v   wire.Version
		n   int
		typ = wire.TypeNone
	)
	defer func() {
		status := stats.StatusSuccess
		if err != nil {
			status = err.Error()
		}
		name := "unknown"
		if typ != wire.TypeNone {
			name = wire.TypeName(typ)
		}
		stats.RecordDecode(name, v.String(), status, n)
	}()

	if n, err = PeekMessageLength(buf); err != nil {
		return
	}
	v = wire.Version(buf[0])
	if !v.IsSupported() {
		err = ErrUnsupportedVersion
		return
	}
	if n > len(buf) {
		err = ErrTruncatedMessage
		return
	}
	msg = wire.FromBytes(buf[:n:n], v, TypeHeader)
	typ = Classify(msg)
	if d.Strict && wire.IsGeneric(typ) {
		glog.V(2).Infof("strict decode rejects %s (%d bytes)", wire.TypeName(typ), n)
		err = ErrUnrecognizedMessage
		msg = nil
		return
	}
	if err = msg.Coerce(typ); err != nil {
		msg = nil
	}
	return
}

// DecodeAll decodes back to back messages. It stops at the first error and
// returns the messages decoded so far.
func (d *Decoder) DecodeAll(buf []byte) (msgs []*wire.Object, err error) {
	for len(buf) > 0 {
		var msg *wire.Object
		if msg, err = d.Decode(buf); err != nil {
			return
		}
		msgs = append(msgs, msg)
		buf = buf[msg.Length():]
	}
	return
}
