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

package stats

import (
	"github.com/golang/glog"
)

type Config struct {
	Enabled     bool
	Host        string
	Port        uint32
	Poolname    string
	Resolution  uint32
	UseTls      bool
	SizeBuckets []float64
}

var defaultSizeBuckets = []float64{16, 32, 64, 128, 256, 512, 1024, 4096, 16384, 65535}

func (c *Config) Validate() {
	c.setDefaultIfNotDefined()
}

func (c *Config) setDefaultIfNotDefined() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 4318
	}
	if c.Resolution == 0 {
		c.Resolution = 60
	}
	if c.Poolname == "" {
		c.Poolname = "ofwire"
	}
	if c.SizeBuckets == nil {
		c.SizeBuckets = defaultSizeBuckets
	}
}

func (c *Config) Dump() {
	glog.Infof("Otel Enabled: %t", c.Enabled)
	glog.Infof("Host : %s", c.Host)
	glog.Infof("Port: %d", c.Port)
	glog.Infof("Poolname: %s", c.Poolname)
	glog.Infof("Resolution: %d", c.Resolution)
	glog.Infof("UseTls: %t", c.UseTls)
	glog.Info("Size Buckets: ", c.SizeBuckets)
}
