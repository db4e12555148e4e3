// Copyright 2025 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the construction-time configuration for segments.
package config

import (
	"fmt"

	ts "github.com/TimeWtr/TurboRing"
)

// Config selects the storage engine and transmutation strategy backing a
// segment. Both choices are fixed for the lifetime of the segment; the
// segment API does not change with either.
type Config struct {
	// StorageKind the storage engine holding record slots.
	StorageKind ts.StorageKind
	// TransmuteMode the strategy validating byte reinterpretation.
	TransmuteMode ts.TransmuteMode
	// EnableMetrics whether the segment reports indicator data.
	EnableMetrics bool
}

// Default a slice backed segment with per-call transmutation checks and
// no indicator collection.
func Default() Config {
	return Config{
		StorageKind:   ts.StorageSlice,
		TransmuteMode: ts.RuntimeChecked,
	}
}

func (c Config) Validate() error {
	if !c.StorageKind.Validate() {
		return fmt.Errorf("invalid storage kind: %d", c.StorageKind)
	}
	if !c.TransmuteMode.Validate() {
		return fmt.Errorf("invalid transmute mode: %d", c.TransmuteMode)
	}
	return nil
}
