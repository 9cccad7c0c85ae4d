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
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/golang/snappy"

	"ofwire/pkg/cmd"
	"ofwire/pkg/logging"
	"ofwire/pkg/of"
	"ofwire/pkg/util"
	"ofwire/pkg/wire"
)

const maxFailureData = 32

type cmdInspMsgT struct {
	cmd.Command
	file   string
	snappy bool
	strict bool
	noDump bool
	msg    []byte
}

func (c *cmdInspMsgT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.SetSynopsis("[options] <hex-string>\n\t" + name + " [options] -f <capture-file>")
	c.StringOption(&c.file, "f|file", "", "read concatenated messages from a file instead of the argument")
	c.BoolOption(&c.snappy, "snappy", false, "the file is a snappy framed stream")
	c.BoolOption(&c.strict, "strict", false, "reject messages that only match a generic type")
	c.BoolOption(&c.noDump, "no-dump", false, "do not print the hex dump")
	c.AddDetails("\tDecodes each message, prints its classified type, the fields of\n" +
		"\tthe type and its fingerprint, then dumps the bytes.\n")
	c.AddExample(name+" 0404000800000001", "decode an echo request")
	c.AddExample(name+" -snappy -f capture.sz", "decode a compressed capture")
}

func (c *cmdInspMsgT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if c.file != "" {
		c.msg, err = readCapture(c.file, c.snappy)
		return
	}
	if c.NArg() < 1 {
		err = fmt.Errorf("missing hex msg")
		return
	}
	hexStr := strings.Join(c.Args(), "")
	hexStr = strings.TrimPrefix(strings.ReplaceAll(hexStr, " ", ""), "0x")
	c.msg, err = hex.DecodeString(hexStr)
	return
}

func readCapture(file string, compressed bool) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if compressed {
		r = snappy.NewReader(f)
	}
	return ioutil.ReadAll(r)
}

func (c *cmdInspMsgT) Exec() {
	c.Validate()

	decoder := of.Decoder{Strict: c.strict || of.DefaultDecoder.Strict}
	msgs, err := decoder.DecodeAll(c.msg)
	for i, m := range msgs {
		if len(msgs) > 1 {
			fmt.Printf("\n#%d ", i)
		}
		c.writeMessage(os.Stdout, m)
	}
	if err != nil {
		consumed := 0
		for _, m := range msgs {
			consumed += m.Length()
		}
		fmt.Printf("\nerror at byte %d: %s\n", consumed, err)
		glog.Warningf("decode failed %s", failureInfo(consumed, c.msg[consumed:], err))
		if !c.noDump && consumed < len(c.msg) {
			util.HexDump(os.Stdout, c.msg[consumed:])
		}
	}
}

func (c *cmdInspMsgT) writeMessage(w io.Writer, m *wire.Object) {
	fmt.Fprintf(w, "%s fingerprint=%016x\n", m, util.Fingerprint(m.Bytes()))
	m.PrettyPrint(w)
	writeLists(w, m, "  ")
	if !c.noDump {
		util.HexDump(w, m.Bytes())
	}
	glog.V(2).Infof("decoded %s", decodedInfo(m))
}

func decodedInfo(m *wire.Object) string {
	st := "ok"
	if wire.IsGeneric(m.Type()) {
		st = "generic"
	}
	return logging.NewKVBufferForLog().AddStatus(st).AddObjectInfo(m).String()
}

// failureInfo keeps at most maxFailureData bytes of the undecoded rest.
func failureInfo(consumed int, rest []byte, err error) string {
	if len(rest) > maxFailureData {
		rest = rest[:maxFailureData]
	}
	return logging.NewKVBufferForLog().
		AddInt([]byte("off"), consumed).
		AddStatus(err.Error()).
		AddHexData(rest).String()
}

// writeLists prints the entries of the variable length lists a message
// carries.
func writeLists(w io.Writer, m *wire.Object, indent string) {
	for _, l := range listsOf(m) {
		if l.list == nil {
			fmt.Fprintf(w, "%s%s\n", indent, l.name)
			continue
		}
		entries, err := l.list.Entries()
		fmt.Fprintf(w, "%s%s: %d entries\n", indent, l.name, len(entries))
		for _, e := range entries {
			fmt.Fprintf(w, "%s  - %s\n", indent, e)
			var buf bytes.Buffer
			e.PrettyPrint(&buf)
			for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
				fmt.Fprintf(w, "%s    %s\n", indent, line)
			}
			writeLists(w, e, indent+"    ")
		}
		if err != nil {
			fmt.Fprintf(w, "%s  ! %s\n", indent, err)
		}
	}
}

type namedList struct {
	name string
	list *wire.Object
}

func listsOf(m *wire.Object) (lists []namedList) {
	defer func() {
		if r := recover(); r != nil {
			lists = append(lists, namedList{name: fmt.Sprintf("malformed: %v", r)})
		}
	}()
	add := func(name string, l *wire.Object, err error) {
		if err != nil {
			lists = append(lists, namedList{name: name + " (" + err.Error() + ")"})
			return
		}
		lists = append(lists, namedList{name, l})
	}
	switch {
	case m.IsA(of.TypeFlowMod):
		if m.Version() == wire.V10 {
			add("actions", of.FlowModActionsBind(m), nil)
		} else {
			l, err := of.FlowModInstructionsBind(m)
			add("instructions", l, err)
		}
		if m.Version() >= wire.V12 {
			if match, err := of.FlowModMatchBind(m); err == nil {
				add("oxms", of.MatchOxmBind(match), nil)
			}
		}
	case m.IsA(of.TypePacketOut):
		l, err := of.PacketOutActionsBind(m)
		add("actions", l, err)
	case m.IsA(of.TypeBsnGentableEntryAdd):
		l, err := of.GentableKeysBind(m)
		add("keys", l, err)
		l, err = of.GentableValuesBind(m)
		add("values", l, err)
	case m.IsA(of.TypeBsnGentableEntryStatsReply):
		add("entries", of.GentableStatsEntriesBind(m), nil)
	case m.IsA(of.TypeBsnGentableEntryStatsEntry):
		l, err := of.EntryKeysBind(m)
		add("keys", l, err)
		l, err = of.EntryStatsBind(m)
		add("stats", l, err)
	case m.IsA(of.TypePortDescStatsReply):
		add("ports", of.PortDescStatsEntriesBind(m), nil)
	case m.IsA(of.TypeInstructionWriteActions), m.IsA(of.TypeInstructionApplyActions):
		add("actions", of.InstructionActionsBind(m), nil)
	}
	return
}

func init() {
	c := &cmdInspMsgT{}
	c.Init("inspect", "decode and print OpenFlow messages")

	cmd.Register(c)
}
