// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package config handles stax run configuration files.
//
// A configuration is read from TOML (.toml) or YAML (.yaml, .yml):
//
//	[stack]
//	max-depth = 1024
//
//	[arith]
//	overflow = "trap"
//
//	[log]
//	level = "debug"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"stax/vm"
)

// Config is a stax run configuration.
type Config struct {
	Stack Stack `toml:"stack" yaml:"stack"`
	Arith Arith `toml:"arith" yaml:"arith"`
	Log   Log   `toml:"log" yaml:"log"`
}

// Stack configures the operand stack.
type Stack struct {
	MaxDepth int `toml:"max-depth" yaml:"max-depth"` // 0 for unlimited
}

// Arith configures integer arithmetic.
type Arith struct {
	Overflow string `toml:"overflow" yaml:"overflow"` // "wrap" or "trap"
}

// Log configures diagnostics on stderr.
type Log struct {
	Level string `toml:"level" yaml:"level"` // zerolog level name
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Arith: Arith{Overflow: "wrap"},
		Log:   Log{Level: "warn"},
	}
}

// Load reads the configuration file at path on top of Default.
// The format is chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return nil, fmt.Errorf("%s: unknown config format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks c for values the VM can not use.
func (c *Config) Validate() error {
	if c.Stack.MaxDepth < 0 {
		return fmt.Errorf("stack.max-depth must not be negative, got %d", c.Stack.MaxDepth)
	}
	if _, err := c.overflow(); err != nil {
		return fmt.Errorf("arith.overflow: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func (c *Config) overflow() (vm.Overflow, error) {
	if c.Arith.Overflow == "" {
		return vm.WrapOnOverflow, nil
	}
	return vm.ParseOverflow(c.Arith.Overflow)
}

// LogLevel returns the zerolog level named by Log.Level.  An
// empty level means warn.
func (c *Config) LogLevel() (zerolog.Level, error) {
	if c.Log.Level == "" {
		return zerolog.WarnLevel, nil
	}
	return zerolog.ParseLevel(c.Log.Level)
}

// VMOptions converts c into VM options logging to log.  c must
// be valid.
func (c *Config) VMOptions(log *zerolog.Logger) vm.Options {
	overflow, _ := c.overflow()
	return vm.Options{
		MaxDepth: c.Stack.MaxDepth,
		Overflow: overflow,
		Log:      log,
	}
}
