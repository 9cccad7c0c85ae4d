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

package cfg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ofwire/pkg/of"
	"ofwire/pkg/wire"
)

const testToml = `
LogLevel = "info"

[Wire]
  DefaultCapacity = 128
  MaxStoreSize = 8192

[Dispatch]
  Strict = true
`

func TestPropertiesCaseInsensitive(t *testing.T) {
	var p Properties
	if err := p.ReadFromTomlBytes([]byte(testToml)); err != nil {
		t.Fatal(err)
	}
	if v, ok := p.GetValue("wire.defaultcapacity").(int64); !ok || v != 128 {
		t.Errorf("wire.defaultcapacity = %v", p.GetValue("wire.defaultcapacity"))
	}
	if v := p.GetValue("WIRE.nosuch"); v != nil {
		t.Errorf("expected nil, got %v", v)
	}
	if err := p.SetFromString("Dispatch.Strict=false"); err != nil {
		t.Fatal(err)
	}
	if v := p.GetValue("dispatch.strict"); v != false {
		t.Errorf("dispatch.strict = %v", v)
	}
}

func TestPropertiesMergeTypeMismatch(t *testing.T) {
	var p, o Properties
	if err := p.ReadFromTomlBytes([]byte(testToml)); err != nil {
		t.Fatal(err)
	}
	o.SetKeyValue("wire.MaxStoreSize", "big")
	if err := p.Merge(&o); err == nil {
		t.Error("expected type mismatch")
	}
}

func TestWriteToKVList(t *testing.T) {
	var p Properties
	if err := p.ReadFromTomlBytes([]byte(testToml)); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	p.WriteToKVList(&buf)
	out := buf.String()
	for _, want := range []string{"LogLevel=info", "Wire.MaxStoreSize=8192", "Dispatch.Strict=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	saved := Conf
	defer func() { Conf = saved }()

	file := filepath.Join(t.TempDir(), "ofwire.toml")
	if err := os.WriteFile(file, []byte(testToml), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadConfig(file, "Wire.MessageCapacity=1024"); err != nil {
		t.Fatal(err)
	}
	if Conf.LogLevel != "info" || !Conf.Dispatch.Strict {
		t.Errorf("unexpected %+v", Conf)
	}
	if Conf.Wire.DefaultCapacity != 128 || Conf.Wire.MaxStoreSize != 8192 || Conf.Wire.MessageCapacity != 1024 {
		t.Errorf("unexpected wire config %+v", Conf.Wire)
	}
	if Conf.Otel.Port != 4318 {
		t.Errorf("otel defaults not applied: %+v", Conf.Otel)
	}
}

func TestLoadConfigBadOverride(t *testing.T) {
	saved := Conf
	defer func() { Conf = saved }()
	if err := LoadConfig("", "nokeyvalue"); err == nil {
		t.Error("expected error")
	}
}

func TestApply(t *testing.T) {
	savedLim := wire.CurrentLimits()
	savedStrict := of.DefaultDecoder.Strict
	defer func() {
		wire.Configure(savedLim)
		of.DefaultDecoder.Strict = savedStrict
	}()

	c := Config{
		Wire:     WireConfig{DefaultCapacity: 32, MessageCapacity: 4096, MaxStoreSize: 2048},
		Dispatch: DispatchConfig{Strict: true},
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Wire.MessageCapacity != 2048 {
		t.Errorf("message capacity not clamped: %d", c.Wire.MessageCapacity)
	}
	c.Apply()
	lim := wire.CurrentLimits()
	if lim.DefaultCapacity != 32 || lim.MaxStoreSize != 2048 {
		t.Errorf("limits not applied: %+v", lim)
	}
	if !of.DefaultDecoder.Strict {
		t.Error("strict not applied")
	}
}
