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

package insp

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"ofwire/pkg/cmd"
	"ofwire/pkg/of"
	"ofwire/pkg/util"
	"ofwire/pkg/wire"
)

type (
	cmdBenchT struct {
		cmd.Command
		num     int
		version string
	}

	benchOp struct {
		name string
		run  func(v wire.Version) error
		hist *hdrhistogram.Histogram
		errs int
	}
)

var benchPool = util.NewSyncBytePool(512)

func (c *cmdBenchT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.SetSynopsis("[-n <iterations>] [-version 1.3]")
	c.IntOption(&c.num, "n", 100000, "number of iterations per operation")
	c.StringOption(&c.version, "version", "1.3", "protocol version, 1.0 to 1.3")
	c.AddDetails("\tMeasures the latency of building, growing, copying and decoding a\n" +
		"\tgentable entry add with three key TLVs, or a packet out with two\n" +
		"\toutput actions before 1.3.\n")
}

func (c *cmdBenchT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if c.num <= 0 {
		err = fmt.Errorf("-n must be positive")
		return
	}
	_, err = parseVersion(c.version)
	return
}

func parseVersion(s string) (wire.Version, error) {
	for _, v := range wire.Versions {
		if v.String() == s {
			return v, nil
		}
	}
	return wire.VersionUnknown, fmt.Errorf("unsupported version %q", s)
}

// benchMessage builds the sample message for v and returns it with the list
// that the append benchmark grows.
func benchMessage(v wire.Version) (msg *wire.Object, grow func(*wire.Object) (*wire.Object, error), err error) {
	if wire.IsAvailable(v, of.TypeBsnGentableEntryAdd) {
		msg = wire.New(v, of.TypeBsnGentableEntryAdd)
		var keys *wire.Object
		if keys, err = of.GentableKeysBind(msg); err != nil {
			return
		}
		port := wire.New(v, of.TypeBsnTlvPort)
		port.SetPortNo(of.FieldBsnTlvPort, 7)
		tx := wire.New(v, of.TypeBsnTlvTxBytes)
		tx.SetU64(of.FieldBsnTlvTxBytes, 1<<40)
		for _, e := range []*wire.Object{port, tx, wire.New(v, of.TypeBsnTlvName)} {
			if err = keys.Append(e); err != nil {
				return
			}
		}
		return msg, of.GentableValuesBind, nil
	}
	msg = wire.New(v, of.TypePacketOut)
	msg.SetPortNo(of.FieldPacketOutInPort, 1)
	var actions *wire.Object
	if actions, err = of.PacketOutActionsBind(msg); err != nil {
		return
	}
	for port := uint32(2); port < 4; port++ {
		out := wire.New(v, of.TypeActionOutput)
		out.SetPortNo(of.FieldActionOutputPort, port)
		if err = actions.Append(out); err != nil {
			return
		}
	}
	return msg, of.PacketOutActionsBind, nil
}

func growEntry(v wire.Version) *wire.Object {
	if wire.IsAvailable(v, of.TypeBsnTlvIdleTimeout) {
		return wire.New(v, of.TypeBsnTlvIdleTimeout)
	}
	return wire.New(v, of.TypeActionExperimenter)
}

func newBenchOps(v wire.Version) ([]*benchOp, error) {
	sample, grow, err := benchMessage(v)
	if err != nil {
		return nil, err
	}
	encoded := sample.Bytes()
	entry := growEntry(v)

	ops := []*benchOp{
		{name: "build", run: func(v wire.Version) error {
			_, _, err := benchMessage(v)
			return err
		}},
		{name: "append", run: func(v wire.Version) error {
			list, err := grow(sample.Dup())
			if err != nil {
				return err
			}
			return list.Append(entry)
		}},
		{name: "dup", run: func(v wire.Version) error {
			sample.Dup()
			return nil
		}},
		{name: "decode", run: func(v wire.Version) error {
			buf := append(benchPool.Get(), encoded...)
			defer benchPool.Put(buf)
			m, err := of.Decode(buf)
			if err == nil && m.Type() != sample.Type() {
				err = of.ErrWrongMessageType
			}
			return err
		}},
	}
	for _, op := range ops {
		op.hist = hdrhistogram.New(1, int64(10*time.Second), 3)
	}
	return ops, nil
}

func (c *cmdBenchT) Exec() {
	c.Validate()

	v, _ := parseVersion(c.version)
	ops, err := newBenchOps(v)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, op := range ops {
		for i := 0; i < c.num; i++ {
			start := time.Now()
			err := op.run(v)
			op.hist.RecordValue(int64(time.Since(start)))
			if err != nil {
				op.errs++
			}
		}
	}
	writeBenchResult(os.Stdout, v, ops)
}

func writeBenchResult(w io.Writer, v wire.Version, ops []*benchOp) {
	d := func(ns int64) time.Duration {
		return time.Duration(ns)
	}
	fmt.Fprintf(w, "\nversion %s\n", v)
	fmt.Fprintln(w, "  operation |    count |       min |       50% |       95% |       99% |    99.99% |       max |  errors")
	fmt.Fprintln(w, "------------+----------+-----------+-----------+-----------+-----------+-----------+-----------+--------")
	for _, op := range ops {
		h := op.hist
		fmt.Fprintf(w, "%11s %10d %11s %11s %11s %11s %11s %11s %8d\n",
			op.name, h.TotalCount(), d(h.Min()), d(h.ValueAtQuantile(50.)), d(h.ValueAtQuantile(95.)),
			d(h.ValueAtQuantile(99.)), d(h.ValueAtQuantile(99.99)), d(h.Max()), op.errs)
	}
}

func init() {
	c := &cmdBenchT{}
	c.Init("bench", "measure encode and decode latency")

	cmd.Register(c)
}
