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
	"encoding/binary"
	"fmt"
	"sync"
)

var EncByteOrder = binary.BigEndian

const (
	kDefaultCapacity = 64
	kMessageCapacity = 512
	kMaxStoreSize    = 1 << 20
)

type Limits struct {
	DefaultCapacity int
	MessageCapacity int
	MaxStoreSize    int
}

var (
	limitsMtx     sync.RWMutex
	currentLimits = Limits{
		DefaultCapacity: kDefaultCapacity,
		MessageCapacity: kMessageCapacity,
		MaxStoreSize:    kMaxStoreSize,
	}
)

// Configure replaces the allocation limits. Zero values keep the current
// setting.
func Configure(l Limits) {
	limitsMtx.Lock()
	defer limitsMtx.Unlock()
	if l.DefaultCapacity > 0 {
		currentLimits.DefaultCapacity = l.DefaultCapacity
	}
	if l.MessageCapacity > 0 {
		currentLimits.MessageCapacity = l.MessageCapacity
	}
	if l.MaxStoreSize > 0 {
		currentLimits.MaxStoreSize = l.MaxStoreSize
	}
}

func CurrentLimits() Limits {
	limitsMtx.RLock()
	defer limitsMtx.RUnlock()
	return currentLimits
}

// ByteStore is a growable buffer. len(buf) is the number of bytes in use and
// cap(buf) the capacity.
type ByteStore struct {
	buf []byte
}

func NewByteStore(capacity int) *ByteStore {
	if capacity < 0 {
		panic(fmt.Sprintf("wire: negative store capacity %d", capacity))
	}
	return &ByteStore{buf: make([]byte, 0, capacity)}
}

// NewByteStoreFromBuffer adopts buf as backing storage. All of buf is in use.
func NewByteStoreFromBuffer(buf []byte) *ByteStore {
	return &ByteStore{buf: buf}
}

func (s *ByteStore) Len() int {
	return len(s.buf)
}

func (s *ByteStore) Cap() int {
	return cap(s.buf)
}

// Bytes returns the bytes in use. The slice is invalidated by any call that
// changes the store's size.
func (s *ByteStore) Bytes() []byte {
	return s.buf
}

// Grow makes sure at least n bytes are in use, zero-filling the newly
// exposed region. It never shrinks.
func (s *ByteStore) Grow(n int) {
	used := len(s.buf)
	if n <= used {
		return
	}
	if n > cap(s.buf) {
		newCap := 2 * cap(s.buf)
		if newCap < n {
			newCap = n
		}
		buf := make([]byte, n, newCap)
		copy(buf, s.buf)
		s.buf = buf
		return
	}
	s.buf = s.buf[:n]
	tail := s.buf[used:n]
	for i := range tail {
		tail[i] = 0
	}
}

// ReplaceRegion replaces the oldLen bytes at off with data, shifting the
// suffix of the store as needed. Bytes before off and the shifted suffix
// are preserved. data must not alias the store.
func (s *ByteStore) ReplaceRegion(off int, oldLen int, data []byte) error {
	used := len(s.buf)
	if off < 0 || oldLen < 0 || off+oldLen > used {
		panic(fmt.Sprintf("wire: region [%d,+%d) outside store of %d bytes", off, oldLen, used))
	}
	newLen := len(data)
	delta := newLen - oldLen
	switch {
	case delta > 0:
		if used+delta > CurrentLimits().MaxStoreSize {
			return ErrStoreOverflow
		}
		s.Grow(used + delta)
		copy(s.buf[off+newLen:], s.buf[off+oldLen:used])
	case delta < 0:
		copy(s.buf[off+newLen:], s.buf[off+oldLen:used])
		s.buf = s.buf[:used+delta]
	}
	copy(s.buf[off:off+newLen], data)
	return nil
}

func (s *ByteStore) check(off int, width int) {
	if off < 0 || off+width > len(s.buf) {
		panic(fmt.Sprintf("wire: access [%d,+%d) outside store of %d bytes", off, width, len(s.buf)))
	}
}

func (s *ByteStore) U8At(off int) uint8 {
	s.check(off, 1)
	return s.buf[off]
}

func (s *ByteStore) PutU8At(off int, v uint8) {
	s.check(off, 1)
	s.buf[off] = v
}

func (s *ByteStore) U16At(off int) uint16 {
	s.check(off, 2)
	return EncByteOrder.Uint16(s.buf[off:])
}

func (s *ByteStore) PutU16At(off int, v uint16) {
	s.check(off, 2)
	EncByteOrder.PutUint16(s.buf[off:], v)
}

func (s *ByteStore) U32At(off int) uint32 {
	s.check(off, 4)
	return EncByteOrder.Uint32(s.buf[off:])
}

func (s *ByteStore) PutU32At(off int, v uint32) {
	s.check(off, 4)
	EncByteOrder.PutUint32(s.buf[off:], v)
}

func (s *ByteStore) U64At(off int) uint64 {
	s.check(off, 8)
	return EncByteOrder.Uint64(s.buf[off:])
}

func (s *ByteStore) PutU64At(off int, v uint64) {
	s.check(off, 8)
	EncByteOrder.PutUint64(s.buf[off:], v)
}

func (s *ByteStore) uintAt(off int, width int) uint64 {
	switch width {
	case 1:
		return uint64(s.U8At(off))
	case 2:
		return uint64(s.U16At(off))
	case 4:
		return uint64(s.U32At(off))
	case 8:
		return s.U64At(off)
	}
	panic(fmt.Sprintf("wire: no integer of width %d", width))
}
