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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTrimCommon(t *testing.T) {
	tests := []struct {
		name       string
		x, y       []string
		wantOffset int
		wantX      []string
		wantY      []string
	}{
		{
			name:       "identical",
			x:          []string{"a", "b", "c"},
			y:          []string{"a", "b", "c"},
			wantOffset: 3,
			wantX:      nil,
			wantY:      nil,
		},
		{
			name:       "disjoint",
			x:          []string{"a", "b"},
			y:          []string{"c", "d"},
			wantOffset: 0,
			wantX:      []string{"a", "b"},
			wantY:      []string{"c", "d"},
		},
		{
			name:       "prefix-only",
			x:          []string{"a", "b", "x"},
			y:          []string{"a", "b", "y"},
			wantOffset: 2,
			wantX:      []string{"x"},
			wantY:      []string{"y"},
		},
		{
			name:       "suffix-only",
			x:          []string{"x", "b", "c"},
			y:          []string{"y", "b", "c"},
			wantOffset: 0,
			wantX:      []string{"x"},
			wantY:      []string{"y"},
		},
		{
			name:       "prefix-and-suffix",
			x:          []string{"a", "x", "c"},
			y:          []string{"a", "y", "c"},
			wantOffset: 1,
			wantX:      []string{"x"},
			wantY:      []string{"y"},
		},
		{
			name:       "empty",
			x:          nil,
			y:          nil,
			wantOffset: 0,
			wantX:      nil,
			wantY:      nil,
		},
		{
			name:       "prefix-is-all-of-x",
			x:          []string{"a", "b"},
			y:          []string{"a", "b", "c"},
			wantOffset: 2,
			wantX:      nil,
			wantY:      []string{"c"},
		},
		{
			name:       "overlapping-prefix-suffix",
			x:          []string{"a", "a"},
			y:          []string{"a", "a", "a"},
			wantOffset: 2,
			wantX:      nil,
			wantY:      []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, xs, ys := trimCommon(tt.x, tt.y, func(a, b string) bool { return a == b })
			if offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", offset, tt.wantOffset)
			}
			if diff := cmp.Diff(tt.wantX, norm(xs)); diff != "" {
				t.Errorf("trimmed x is different [-want, +got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantY, norm(ys)); diff != "" {
				t.Errorf("trimmed y is different [-want, +got]:\n%s", diff)
			}
		})
	}
}
