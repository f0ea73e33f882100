// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// Config controls optional decoder behavior. The zero value behaves
// like DefaultConfig, since a zero YieldBatch is treated as 1.
type Config struct {
	// StrictBlocks upgrades block-level diagnostics (IndexOutOfRange,
	// CountMismatch, CorruptBlock) to a fatal error that aborts Load,
	// for hosts that would rather reject a model than render it partially.
	StrictBlocks bool `yaml:"strict_blocks"`

	// YieldBatch is the number of geometry blocks produced between
	// cooperative yield hook invocations in LoadStreaming. Zero or
	// negative is treated as 1.
	YieldBatch int `yaml:"yield_batch"`

	// MaterialFactory, when non-nil, is called once per first-use style
	// id to build a host-specific material descriptor in place of the
	// decoder's own *Style value. Not serializable; never set from YAML.
	MaterialFactory func(*Style) any `yaml:"-"`

	// ModelID is stamped into every emitted MeshNode's UserData, letting
	// a host that has loaded several WexBIM files into one scene tell
	// their nodes apart in a pick result.
	ModelID int32 `yaml:"model_id"`
}

// DefaultConfig returns the decoder's default configuration: lenient
// block handling, one block per yield batch, no material factory.
func DefaultConfig() *Config {

	return &Config{
		StrictBlocks: false,
		YieldBatch:   1,
	}
}

// LoadConfig reads a YAML configuration file from path, starting from
// DefaultConfig and overlaying whatever fields the file sets.
func LoadConfig(path string) (*Config, error) {

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.YieldBatch <= 0 {
		cfg.YieldBatch = 1
	}
	return cfg, nil
}
