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
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/golang/snappy"

	"ofwire/pkg/cmd"
	"ofwire/pkg/of"
	"ofwire/pkg/wire"
)

type (
	cmdCaptureT struct {
		cmd.Command
		out  string
		msgs [][]byte
	}
	cmdTypesT struct {
		cmd.Command
	}
)

func (c *cmdCaptureT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.SetSynopsis("-o <file> <hex-string> ...")
	c.StringOption(&c.out, "o|out", "", "output file")
	c.AddDetails("\tValidates each message and writes them back to back into a snappy\n" +
		"\tframed file that inspect -snappy -f reads.\n")
}

func (c *cmdCaptureT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if c.out == "" {
		return fmt.Errorf("missing -o")
	}
	if c.NArg() == 0 {
		return fmt.Errorf("no message")
	}
	for _, arg := range c.Args() {
		var msg []byte
		if msg, err = hex.DecodeString(strings.TrimPrefix(arg, "0x")); err != nil {
			return
		}
		if _, err = of.Decode(msg); err != nil {
			return fmt.Errorf("%s: %s", arg, err)
		}
		c.msgs = append(c.msgs, msg)
	}
	return
}

func (c *cmdCaptureT) Exec() {
	c.Validate()

	f, err := os.Create(c.out)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()
	w := snappy.NewBufferedWriter(f)
	n := 0
	for _, m := range c.msgs {
		if _, err = w.Write(m); err != nil {
			break
		}
		n += len(m)
	}
	if err == nil {
		err = w.Close()
	}
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d messages, %d bytes written to %s\n", len(c.msgs), n, c.out)
}

func (c *cmdTypesT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.SetSynopsis("[<type-name-prefix>]")
}

// Exec prints the fixed length of each registered type per version, "-"
// where the type has no definition.
func (c *cmdTypesT) Exec() {
	c.Validate()

	prefix := c.Arg(0)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "type\tparent")
	for _, v := range wire.Versions {
		fmt.Fprintf(w, "\t%s", v)
	}
	fmt.Fprintln(w)
	for _, t := range wire.Types() {
		name := wire.TypeName(t)
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		parent := "-"
		if p := wire.ParentOf(t); p != wire.TypeNone {
			parent = wire.TypeName(p)
		}
		fmt.Fprintf(w, "%s\t%s", name, parent)
		for _, v := range wire.Versions {
			if wire.IsAvailable(v, t) {
				fmt.Fprintf(w, "\t%d", wire.FixedLength(v, t))
			} else {
				fmt.Fprint(w, "\t-")
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func init() {
	cp := &cmdCaptureT{}
	cp.Init("capture", "write hex messages to a snappy capture file")
	cmd.Register(cp)

	ty := &cmdTypesT{}
	ty.Init("types", "list the registered wire types")
	cmd.Register(ty)
}
