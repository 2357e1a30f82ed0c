// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the subset of replay.Config that a shared --config
// file may set as a default; explicit flags always take precedence.
type fileConfig struct {
	SnapshotPrefix    string `yaml:"snapshotPrefix"`
	ComparePrefix     string `yaml:"comparePrefix"`
	SnapshotFrequency string `yaml:"snapshotFrequency"`
	CompareFrequency  string `yaml:"compareFrequency"`
	WaitOnFinish      bool   `yaml:"waitOnFinish"`
	DoubleBuffer      bool   `yaml:"doubleBuffer"`
	CoreProfile       bool   `yaml:"coreProfile"`
}

// loadConfigFile decodes path in strict mode: an unrecognised key is a
// hard error rather than a silent no-op.
func loadConfigFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, errors.Wrapf(err, "reading config %q", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		return fileConfig{}, errors.Wrapf(err, "parsing config %q", path)
	}
	return fc, nil
}
