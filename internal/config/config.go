// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// listdiff.Option.
package config

import "go.uber.org/zap"

// Dispatch describes where the edit script is computed.
type Dispatch int

const (
	// Decide based on the trimmed problem size.
	DispatchAuto Dispatch = iota

	// Always compute in the calling goroutine.
	DispatchLocal

	// Always offload to a worker.
	DispatchRemote
)

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Where to run the computation.
	Dispatch Dispatch

	// Logger used to trace the worker protocol. Never nil, defaults to a nop logger.
	Logger *zap.Logger
}

// Default is the default configuration.
var Default = Config{
	Dispatch: DispatchAuto,
	Logger:   zap.NewNop(),
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Local Flag = 1 << iota
	Remote
	Logger
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Local:
		return "listdiff.Local"
	case Remote:
		return "listdiff.Remote"
	case Logger:
		return "listdiff.Logger"
	default:
		panic("never reached")
	}
}
