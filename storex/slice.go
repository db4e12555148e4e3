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

package storex

import (
	"fmt"

	"github.com/TimeWtr/TurboRing/errorx"
)

// SliceStorage keeps record slots in a runtime managed array. The array is
// sized once at construction and never reallocated, so views handed out
// stay valid until release.
type SliceStorage[T any] struct {
	slots    []T
	capacity int
	released bool
}

// NewSlice allocates storage for exactly capacity records.
func NewSlice[T any](capacity int) (*SliceStorage[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", errorx.ErrInvalidCapacity, capacity)
	}

	return &SliceStorage[T]{
		slots:    make([]T, capacity),
		capacity: capacity,
	}, nil
}

func (s *SliceStorage[T]) Capacity() int {
	return s.capacity
}

func (s *SliceStorage[T]) View(start, count int) ([]T, error) {
	if err := s.check(start, count); err != nil {
		return nil, err
	}
	return s.slots[start : start+count], nil
}

func (s *SliceStorage[T]) Write(start int, src []T) error {
	if err := s.check(start, len(src)); err != nil {
		return err
	}
	copy(s.slots[start:], src)
	return nil
}

func (s *SliceStorage[T]) Release() error {
	s.slots = nil
	s.released = true
	return nil
}

func (s *SliceStorage[T]) check(start, count int) error {
	if s.released {
		return errorx.ErrReleased
	}
	if start < 0 || count < 0 || start+count > s.capacity {
		return fmt.Errorf("%w: physical range [%d, %d) with capacity %d",
			errorx.ErrIndexOutOfRange, start, start+count, s.capacity)
	}
	return nil
}
