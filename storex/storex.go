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

// Package storex provides the fixed-capacity contiguous backing memory
// engines that hold record slots for a segment.
package storex

// Storage is a contiguous, fixed-capacity block of record slots.
//
// Every physical index in [0, Capacity()) is a valid, always addressable
// slot. Ranges passed to View and Write are physical and must not wrap;
// the segment splits wrapping ranges before calling into storage.
//
// A storage engine is exclusively owned by the segment that created it and
// is released exactly once, when the segment is released.
type Storage[T any] interface {
	// Capacity the number of record slots. Immutable for the lifetime
	// of the engine.
	Capacity() int

	// View returns a zero-copy typed view over a contiguous physical
	// range of slots.
	View(start, count int) ([]T, error)

	// Write copies records into a contiguous physical range of slots
	// beginning at start.
	Write(start int, src []T) error

	// Release frees the backing memory. The first call releases, any
	// further calls are no-ops.
	Release() error
}
