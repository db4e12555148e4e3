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
	"unsafe"

	"github.com/TimeWtr/TurboRing/castx"
	"github.com/TimeWtr/TurboRing/errorx"
)

// HeapStorage keeps record slots in a single fixed-size byte block sized
// exactly for capacity records. The runtime zeroes the block at allocation,
// so no view ever observes uninitialized memory. Records move in and out of
// the block through the castx layer.
type HeapStorage[T any] struct {
	block    []byte
	caster   castx.Caster[T]
	capacity int
	recSize  int
	released bool
}

// NewHeap allocates a zeroed block for exactly capacity records.
//
// The record layout is proven against the caster up front, so casts on the
// read and write paths cannot fail later for layout reasons.
func NewHeap[T any](capacity int, caster castx.Caster[T]) (*HeapStorage[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", errorx.ErrInvalidCapacity, capacity)
	}

	var zero T
	recSize := int(unsafe.Sizeof(zero))
	block := make([]byte, capacity*recSize)
	if _, err := caster.View(block); err != nil {
		return nil, err
	}

	return &HeapStorage[T]{
		block:    block,
		caster:   caster,
		capacity: capacity,
		recSize:  recSize,
	}, nil
}

func (h *HeapStorage[T]) Capacity() int {
	return h.capacity
}

func (h *HeapStorage[T]) View(start, count int) ([]T, error) {
	if err := h.check(start, count); err != nil {
		return nil, err
	}
	return h.caster.View(h.block[start*h.recSize : (start+count)*h.recSize])
}

func (h *HeapStorage[T]) Write(start int, src []T) error {
	if err := h.check(start, len(src)); err != nil {
		return err
	}

	b, err := h.caster.Bytes(src)
	if err != nil {
		return err
	}
	copy(h.block[start*h.recSize:], b)
	return nil
}

func (h *HeapStorage[T]) Release() error {
	h.block = nil
	h.released = true
	return nil
}

func (h *HeapStorage[T]) check(start, count int) error {
	if h.released {
		return errorx.ErrReleased
	}
	if start < 0 || count < 0 || start+count > h.capacity {
		return fmt.Errorf("%w: physical range [%d, %d) with capacity %d",
			errorx.ErrIndexOutOfRange, start, start+count, h.capacity)
	}
	return nil
}
