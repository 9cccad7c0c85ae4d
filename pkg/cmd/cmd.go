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

package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/golang/glog"

	"ofwire/pkg/cfg"
	"ofwire/pkg/logging"
	"ofwire/pkg/version"
)

var (
	commands = make(map[string]ICommand)
)

type (
	ICommand interface {
		GetName() string
		GetDesc() string
		GetSynopsis() string
		GetDetails() string
		GetOptionDesc() string
		GetExample() string
		Init(name string, desc string)
		Exec()
		Parse(args []string) error
		PrintUsage()
	}

	// Command carries the options every ofwire tool command accepts:
	// a config file, property overrides and log verbosity.
	Command struct {
		Option
		name       string
		desc       string
		synopsis   string
		details    string
		examples   string
		optConfig  string
		optSets    propertyList
		optLogLvl  string
		optVModule string
	}

	propertyList []string
)

func (p *propertyList) String() string {
	return strings.Join(*p, ",")
}

func (p *propertyList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func (c *Command) Init(name string, desc string) {
	c.name = name
	c.desc = desc
	c.Option.Init(name, flag.ContinueOnError)
	c.StringOption(&c.optConfig, "c|config", "", "toml config file")
	c.ValueOption(&c.optSets, "set", "override a config property, e.g. -set Wire.MaxStoreSize=4096. may be repeated")
	c.StringOption(&c.optLogLvl, "log-level", "", "error, warning, info, debug or verbose. overrides LogLevel of the config")
	c.StringOption(&c.optVModule, "vmodule", "", "comma-separated list of pattern=N settings for file-filtered logging")
	c.Option.Usage = c.PrintUsage
}

func (c *Command) SetSynopsis(str string) {
	c.synopsis = str
}

func (c *Command) GetName() string {
	return c.name
}

func (c *Command) GetDesc() string {
	return c.desc
}

func (c *Command) GetSynopsis() string {
	return c.synopsis
}

func (c *Command) GetDetails() string {
	return c.details
}

func (c *Command) GetExample() string {
	return c.examples
}

func (c *Command) AddExample(cmdExample string, desc string) {
	c.examples += desc + "\n\t\t" + cmdExample + "\n\n"
}

func (c *Command) AddDetails(txt string) {
	c.details += txt
}

func (c *Command) Write(w io.Writer) {
	wo := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := usageTemplate.Execute(wo, c); err != nil {
		fmt.Fprintln(w, err)
	}
	wo.Flush()
}

func (c *Command) PrintUsage() {
	var buf bytes.Buffer
	c.Write(&buf)
	page(&buf, c.Write)
}

// Parse parses the command line, then loads and applies the configuration.
func (c *Command) Parse(arguments []string) (err error) {
	if err = c.Option.Parse(arguments); err != nil {
		return
	}
	if err = cfg.LoadConfig(c.optConfig, c.optSets...); err != nil {
		return
	}
	if c.optLogLvl != "" {
		cfg.Conf.LogLevel = c.optLogLvl
	}
	logging.InitLogging(cfg.Conf.LogLevel)
	if c.optVModule != "" {
		if err = flag.Set("vmodule", c.optVModule); err != nil {
			return
		}
	}
	cfg.Conf.Apply()
	if logging.DebugEnabled() {
		cfg.Conf.Dump()
	}
	return
}

func (c *Command) Validate() {
	if !c.Parsed() {
		glog.Exit("not parsed")
	}
}

func Register(c ICommand) bool {
	if _, found := commands[c.GetName()]; found {
		fmt.Printf("Command %s has been registered.", c.GetName())
		return false
	}
	commands[c.GetName()] = c
	return true
}

func GetCommand(name string) ICommand {
	return commands[name]
}

// ParseCommandLine finds the first argument naming a registered command and
// returns it with the arguments that follow it.
func ParseCommandLine() (cmd ICommand, args []string) {
	for i := 1; i < len(os.Args); i++ {
		if cmd = GetCommand(os.Args[i]); cmd != nil {
			args = append(args, os.Args[i+1:]...)
			return
		}
	}
	return
}

func Write(w io.Writer) {
	progName := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "\nUSAGE\n  %s [-version] <command> [options] [<args>] \n\n", progName)
	WriteCommand(w)
}

func WriteCommand(w io.Writer) {
	if len(commands) == 0 {
		return
	}
	fmt.Fprintln(w, "\nCOMMAND")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "    * %s\n      %s\n", n, commands[n].GetDesc())
	}
}

func PrintUsage() {
	var buf bytes.Buffer
	Write(&buf)
	page(&buf, Write)
}

func page(buf *bytes.Buffer, fallback func(io.Writer)) {
	less := exec.Command("less")
	less.Stdin = buf
	less.Stdout = os.Stdout
	if err := less.Run(); err != nil {
		fallback(os.Stdout)
	}
}

func PrintVersionOrUsage() {
	var option Option
	var displayVersion bool
	option.Init(filepath.Base(os.Args[0]), flag.ContinueOnError)
	option.BoolOption(&displayVersion, "version", false, "display version info.")
	option.Usage = PrintUsage
	if err := option.Parse(os.Args[1:]); err == nil {
		if displayVersion {
			version.PrintVersionInfo()
		} else {
			PrintUsage()
		}
	}
}
