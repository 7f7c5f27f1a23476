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

package listdiff_test

import (
	"context"
	"fmt"

	"znkr.io/listdiff"
)

// Compute the edit script between two lists of fruit.
func ExampleDiffSync() {
	x := []string{"coconut", "nut", "peanut"}
	y := []string{"kiwi", "coconut", "maracuja", "nut", "banana"}
	for _, op := range listdiff.DiffSync(x, y) {
		fmt.Printf("%v %v at %d\n", op.Op, op.Item, op.Index)
	}
	// Output:
	// Insert kiwi at 0
	// Insert maracuja at 2
	// Insert banana at 4
	// Delete peanut at 5
}

// Compute the edit script on a worker and replay it. The worker only ever sees item hashes, the
// fruit stays on this side.
func ExampleDiff() {
	x := []string{"coconut", "nut", "peanut"}
	y := []string{"kiwi", "coconut", "maracuja", "nut", "banana"}
	ops, err := listdiff.Diff(context.Background(), x, y, listdiff.Remote())
	if err != nil {
		panic(err)
	}
	applied, err := listdiff.Apply(x, ops)
	if err != nil {
		panic(err)
	}
	fmt.Println(applied)
	// Output:
	// [kiwi coconut maracuja nut banana]
}
