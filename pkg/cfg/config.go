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

// Package cfg loads the ofwire configuration.
package cfg

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"

	"ofwire/pkg/of"
	"ofwire/pkg/stats"
	"ofwire/pkg/wire"
)

type WireConfig struct {
	DefaultCapacity int
	MessageCapacity int
	MaxStoreSize    int
}

type DispatchConfig struct {
	// Strict rejects messages that only classify to a generic type.
	Strict bool
}

type Config struct {
	LogLevel string
	Wire     WireConfig
	Dispatch DispatchConfig
	Otel     stats.Config
}

var Conf = Config{
	LogLevel: "warning",
	Wire: WireConfig{
		DefaultCapacity: wire.CurrentLimits().DefaultCapacity,
		MessageCapacity: wire.CurrentLimits().MessageCapacity,
		MaxStoreSize:    wire.CurrentLimits().MaxStoreSize,
	},
}

// LoadConfig reads file, if not empty, into Conf and applies "key=value"
// overrides on top of it.
func LoadConfig(file string, overrides ...string) (err error) {
	var props Properties
	if err = props.ReadFrom(&Conf); err != nil {
		return
	}
	if file != "" {
		var fromFile Properties
		if err = fromFile.ReadFromTomlFile(file); err != nil {
			glog.Errorf("config error : %s", err)
			return
		}
		if err = props.Merge(&fromFile); err != nil {
			return
		}
	}
	for _, kv := range overrides {
		if err = props.SetFromString(kv); err != nil {
			return
		}
	}
	var c Config
	if err = props.WriteTo(&c); err != nil {
		return
	}
	if err = c.Validate(); err != nil {
		return
	}
	Conf = c
	return
}

// LoadFromBytes replaces Conf with a TOML document.
func LoadFromBytes(b []byte) (err error) {
	c := Conf
	if _, err = toml.Decode(string(b), &c); err != nil {
		return
	}
	if err = c.Validate(); err != nil {
		return
	}
	Conf = c
	return
}

func (c *Config) Validate() error {
	lim := wire.CurrentLimits()
	if c.Wire.DefaultCapacity <= 0 {
		c.Wire.DefaultCapacity = lim.DefaultCapacity
	}
	if c.Wire.MessageCapacity <= 0 {
		c.Wire.MessageCapacity = lim.MessageCapacity
	}
	if c.Wire.MaxStoreSize <= 0 {
		c.Wire.MaxStoreSize = lim.MaxStoreSize
	}
	if c.Wire.MessageCapacity > c.Wire.MaxStoreSize {
		c.Wire.MessageCapacity = c.Wire.MaxStoreSize
	}
	if c.LogLevel == "" {
		c.LogLevel = "warning"
	}
	c.Otel.Validate()
	return nil
}

// Apply pushes the settings into the wire and dispatch packages.
func (c *Config) Apply() {
	wire.Configure(wire.Limits{
		DefaultCapacity: c.Wire.DefaultCapacity,
		MessageCapacity: c.Wire.MessageCapacity,
		MaxStoreSize:    c.Wire.MaxStoreSize,
	})
	of.DefaultDecoder.Strict = c.Dispatch.Strict
}

func (c *Config) Dump() {
	var buf bytes.Buffer
	toml.NewEncoder(&buf).Encode(c)
	glog.Info(buf.String())
}
