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

package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/config"
)

func TestFromOptions(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "remote",
			opts: []config.Option{
				listdiff.Remote(),
			},
			want: config.Config{
				Dispatch: config.DispatchRemote,
				Logger:   config.Default.Logger,
			},
		},
		{
			name: "local",
			opts: []config.Option{
				listdiff.Local(),
			},
			want: config.Config{
				Dispatch: config.DispatchLocal,
				Logger:   config.Default.Logger,
			},
		},
		{
			name: "logger",
			opts: []config.Option{
				listdiff.Logger(logger),
			},
			want: config.Config{
				Dispatch: config.Default.Dispatch,
				Logger:   logger,
			},
		},
		{
			name: "nil-logger-keeps-default",
			opts: []config.Option{
				listdiff.Logger(nil),
			},
			want: config.Default,
		},
		{
			name: "override",
			opts: []config.Option{
				listdiff.Remote(),
				listdiff.Local(),
			},
			want: config.Config{
				Dispatch: config.DispatchLocal,
				Logger:   config.Default.Logger,
			},
		},
	}

	// Loggers are opaque, comparing them by identity is all we need here.
	sameLogger := cmp.Comparer(func(a, b *zap.Logger) bool { return a == b })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, config.Local|config.Remote|config.Logger)
			if diff := cmp.Diff(tt.want, got, sameLogger); diff != "" {
				t.Errorf("FromOptions(...) result is different [-want, +got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsDisallowed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("FromOptions(...) with a disallowed option did not panic")
		}
	}()
	config.FromOptions([]config.Option{listdiff.Remote()}, config.Local)
}
