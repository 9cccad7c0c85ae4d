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

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	_ "ofwire/cmd/tools/cmd/insp"
	"ofwire/pkg/cfg"
	"ofwire/pkg/cmd"
	"ofwire/pkg/stats"
)

func main() {
	defer glog.Flush()

	if command, args := cmd.ParseCommandLine(); command != nil {
		if err := command.Parse(args); err != nil {
			fmt.Printf("* command '%s' failed. %s\n", command.GetName(), err)
			return
		}
		if cfg.Conf.Otel.Enabled {
			if err := stats.Initialize(&cfg.Conf.Otel); err != nil {
				glog.Errorf("fail to initialize metrics: %s", err)
			}
		}
		command.Exec()
		if stats.IsEnabled() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := stats.Shutdown(ctx); err != nil {
				glog.Warningf("metrics shutdown: %s", err)
			}
		}
	} else {
		cmd.PrintVersionOrUsage()
	}
}
