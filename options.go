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

package listdiff

import (
	"go.uber.org/zap"

	"znkr.io/listdiff/internal/config"
)

// Option configures the behavior of comparison functions.
type Option = config.Option

// Remote forces the computation onto a worker irrespective of the input size.
func Remote() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Dispatch = config.DispatchRemote
		return config.Remote
	}
}

// Local forces the computation to run in the calling goroutine irrespective of the input size.
func Local() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Dispatch = config.DispatchLocal
		return config.Local
	}
}

// Logger sets the logger used to trace the worker protocol at debug level. The default is a nop
// logger; passing nil keeps the default.
func Logger(log *zap.Logger) Option {
	return func(cfg *config.Config) config.Flag {
		if log != nil {
			cfg.Logger = log
		}
		return config.Logger
	}
}
