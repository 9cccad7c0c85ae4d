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
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"
)

type (
	// Properties holds TOML configuration as a tree with case insensitive
	// keys, so that files and command line overrides can be merged before
	// being decoded into a typed struct.
	//
	// Not goroutine safe.
	Properties struct {
		kvMap map[string]keyValue
	}
	keyValue struct {
		key   string
		value interface{}
	}
)

// ReadFrom reads properties from a struct or a map.
func (p *Properties) ReadFrom(i interface{}) (err error) {
	var buf bytes.Buffer
	if i != nil {
		if err = toml.NewEncoder(&buf).Encode(i); err != nil {
			return
		}
	}
	return p.ReadFromToml(&buf)
}

func (p *Properties) ReadFromToml(r io.Reader) (err error) {
	m := make(map[string]interface{})
	if _, err = toml.DecodeReader(r, &m); err == nil {
		p.setFrom(m)
	}
	return
}

func (p *Properties) ReadFromTomlBytes(b []byte) error {
	return p.ReadFromToml(bytes.NewReader(b))
}

func (p *Properties) ReadFromTomlFile(file string) (err error) {
	m := make(map[string]interface{})
	if _, err = toml.DecodeFile(file, &m); err == nil {
		p.setFrom(m)
	}
	return
}

func (p *Properties) WriteToToml(w io.Writer) error {
	m := make(map[string]interface{})
	setMap(m, p.kvMap)
	return toml.NewEncoder(w).Encode(m)
}

// WriteTo decodes the properties into a struct or map.
func (p *Properties) WriteTo(v interface{}) (err error) {
	var buf bytes.Buffer
	if err = p.WriteToToml(&buf); err != nil {
		return
	}
	_, err = toml.Decode(buf.String(), v)
	return
}

// Merge overrides properties with those of another Properties. Existing
// values keep their type.
func (p *Properties) Merge(overrides *Properties) error {
	if p.kvMap == nil {
		p.kvMap = make(map[string]keyValue)
	}
	return merge(p.kvMap, overrides.kvMap)
}

// WriteToKVList writes one dot delimited key=value per line, sorted.
func (p *Properties) WriteToKVList(w io.Writer) {
	var lines []string
	for _, v := range p.kvMap {
		lines = appendKeyValue(lines, v.key, v)
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func (p *Properties) GetValue(dotDelimitedKey string) interface{} {
	return getValueFromMap(p.kvMap, strings.Split(dotDelimitedKey, "."))
}

func (p *Properties) SetKeyValue(dotDelimitedKey string, v interface{}) error {
	keys := strings.Split(dotDelimitedKey, ".")
	tmap := make(map[string]keyValue)
	cm := tmap
	for len(keys) > 1 {
		nmap := make(map[string]keyValue)
		cm[strings.ToLower(keys[0])] = keyValue{keys[0], nmap}
		cm = nmap
		keys = keys[1:]
	}
	cm[strings.ToLower(keys[0])] = keyValue{keys[0], v}
	if p.kvMap == nil {
		p.kvMap = make(map[string]keyValue)
	}
	return merge(p.kvMap, tmap)
}

// SetFromString parses "a.b=value" with TOML value syntax. Bare words are
// taken as strings.
func (p *Properties) SetFromString(kv string) error {
	i := strings.IndexByte(kv, '=')
	if i <= 0 {
		return fmt.Errorf("invalid property %q, expected key=value", kv)
	}
	key, raw := strings.TrimSpace(kv[:i]), strings.TrimSpace(kv[i+1:])
	var holder struct{ V interface{} }
	if _, err := toml.Decode("V = "+raw, &holder); err != nil {
		holder.V = raw
	}
	return p.SetKeyValue(key, holder.V)
}

func appendKeyValue(lines []string, k string, v keyValue) []string {
	if vm, ok := v.value.(map[string]keyValue); ok {
		for _, sv := range vm {
			lines = appendKeyValue(lines, k+"."+sv.key, sv)
		}
		return lines
	}
	return append(lines, fmt.Sprintf("%s=%v", k, v.value))
}

func (p *Properties) setFrom(m map[string]interface{}) {
	p.kvMap = make(map[string]keyValue)
	setKvMap(p.kvMap, m)
}

func merge(to, from map[string]keyValue) error {
	for k, v := range from {
		vm, vIsMap := v.value.(map[string]keyValue)
		toV, found := to[k]
		if !found {
			if vIsMap {
				nmap := make(map[string]keyValue)
				to[k] = keyValue{v.key, nmap}
				if err := merge(nmap, vm); err != nil {
					return err
				}
			} else {
				to[k] = v
			}
			continue
		}
		toMap, toIsMap := toV.value.(map[string]keyValue)
		switch {
		case toIsMap && vIsMap:
			if err := merge(toMap, vm); err != nil {
				return err
			}
		case reflect.TypeOf(toV.value) == reflect.TypeOf(v.value):
			to[k] = keyValue{toV.key, v.value}
		default:
			return fmt.Errorf("type mismatch for %s. target: %T  source: %T", v.key, toV.value, v.value)
		}
	}
	return nil
}

func getValueFromMap(m map[string]keyValue, keys []string) interface{} {
	if len(keys) == 0 {
		return nil
	}
	v, ok := m[strings.ToLower(keys[0])]
	if !ok {
		return nil
	}
	vm, isMap := v.value.(map[string]keyValue)
	if len(keys) == 1 {
		if isMap {
			nmap := make(map[string]interface{})
			setMap(nmap, vm)
			return nmap
		}
		return v.value
	}
	if !isMap {
		return nil
	}
	return getValueFromMap(vm, keys[1:])
}

func setKvMap(to map[string]keyValue, from map[string]interface{}) {
	for k, v := range from {
		lkey := strings.ToLower(k)
		if _, found := to[lkey]; found {
			glog.Warningf("key: %s found, skip", k)
			continue
		}
		if vm, ok := v.(map[string]interface{}); ok {
			kvmap := make(map[string]keyValue)
			to[lkey] = keyValue{key: k, value: kvmap}
			setKvMap(kvmap, vm)
		} else {
			to[lkey] = keyValue{k, v}
		}
	}
}

func setMap(to map[string]interface{}, from map[string]keyValue) {
	for _, v := range from {
		if _, found := to[v.key]; found {
			glog.Warningf("key: %s found, skip", v.key)
			continue
		}
		if vm, ok := v.value.(map[string]keyValue); ok {
			nmap := make(map[string]interface{})
			to[v.key] = nmap
			setMap(nmap, vm)
		} else {
			to[v.key] = v.value
		}
	}
}
