// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package caserun

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultOutputExt is the extension given to output files derived from the
// input path.
const DefaultOutputExt = ".out"

// Config is the file representation of the engine options.
//
//	mode: parallel
//	workers: 8
//	window: 32
//	progress_interval: 5s
//	output_ext: .out
type Config struct {
	Mode             string `yaml:"mode"`
	Workers          int    `yaml:"workers"`
	Window           int    `yaml:"window"`
	ProgressInterval string `yaml:"progress_interval"`
	OutputExt        string `yaml:"output_ext"`
}

// LoadConfig reads a YAML Config from path. Unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML Config and validates it. Empty input yields the
// zero Config.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	if c.Mode != "" {
		if _, err := ParseMode(c.Mode); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: negative workers %d", c.Workers)
	}
	if c.Window < 0 {
		return fmt.Errorf("config: negative window %d", c.Window)
	}
	if c.ProgressInterval != "" {
		if _, err := time.ParseDuration(c.ProgressInterval); err != nil {
			return fmt.Errorf("config: progress_interval: %w", err)
		}
	}
	return nil
}

// Ext returns the configured output extension or DefaultOutputExt.
func (c Config) Ext() string {
	if c.OutputExt == "" {
		return DefaultOutputExt
	}
	return c.OutputExt
}

// Options converts c to engine options. Zero fields keep the defaults.
// c is assumed to be valid.
func (c Config) Options() []Option {
	var opts []Option
	if m, err := ParseMode(c.Mode); err == nil {
		opts = append(opts, WithMode(m))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	if c.Window > 0 {
		opts = append(opts, WithWindow(c.Window))
	}
	if d, err := time.ParseDuration(c.ProgressInterval); err == nil && d > 0 {
		opts = append(opts, WithProgress(d))
	}
	return opts
}
