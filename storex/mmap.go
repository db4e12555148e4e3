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

	"golang.org/x/sys/unix"

	"github.com/TimeWtr/TurboRing/castx"
	"github.com/TimeWtr/TurboRing/errorx"
)

// memoryMapper abstracts the raw mapping syscalls so tests can exercise
// the failure and release paths.
type memoryMapper interface {
	Mmap(length int) ([]byte, error)
	Munmap(p []byte) error
}

type anonMapper struct{}

func (anonMapper) Mmap(length int) ([]byte, error) {
	return unix.Mmap(-1, 0, length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func (anonMapper) Munmap(p []byte) error {
	return unix.Munmap(p)
}

// MmapStorage keeps record slots in memory obtained outside the Go heap,
// either an anonymous mapping it owns or a caller supplied region it wraps.
//
// The region layout is a bare contiguous array: a record at physical index
// i lives at base + i*sizeof(T), no header. Anonymous mappings are page
// aligned, which satisfies any record alignment; wrapped regions have their
// alignment verified through the castx layer. An owned mapping is unmapped
// exactly once, on the first Release.
type MmapStorage[T any] struct {
	region   []byte
	mapper   memoryMapper
	caster   castx.Caster[T]
	capacity int
	recSize  int
	owned    bool
	released bool
}

// NewMmap obtains an anonymous mapping for exactly capacity records.
func NewMmap[T any](capacity int, caster castx.Caster[T]) (*MmapStorage[T], error) {
	return newMmap[T](capacity, caster, anonMapper{})
}

func newMmap[T any](capacity int, caster castx.Caster[T], mapper memoryMapper) (*MmapStorage[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", errorx.ErrInvalidCapacity, capacity)
	}

	var zero T
	recSize := int(unsafe.Sizeof(zero))
	region, err := mapper.Mmap(capacity * recSize)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v",
			errorx.ErrAllocationFailure, capacity*recSize, err)
	}

	// Unmap on the construction failure path so nothing leaks.
	if _, err = caster.View(region); err != nil {
		_ = mapper.Munmap(region)
		return nil, err
	}

	return &MmapStorage[T]{
		region:   region,
		mapper:   mapper,
		caster:   caster,
		capacity: capacity,
		recSize:  recSize,
		owned:    true,
	}, nil
}

// Wrap adapts a caller supplied byte region as storage, for example a
// memory-mapped file. The region must hold a whole number of records and
// start on an address aligned for T. The caller keeps ownership: Release
// detaches from the region but never unmaps it.
func Wrap[T any](region []byte, caster castx.Caster[T]) (*MmapStorage[T], error) {
	records, err := caster.View(region)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty region", errorx.ErrInvalidCapacity)
	}

	var zero T
	return &MmapStorage[T]{
		region:   region,
		caster:   caster,
		capacity: len(records),
		recSize:  int(unsafe.Sizeof(zero)),
	}, nil
}

func (m *MmapStorage[T]) Capacity() int {
	return m.capacity
}

func (m *MmapStorage[T]) View(start, count int) ([]T, error) {
	if err := m.check(start, count); err != nil {
		return nil, err
	}
	return m.caster.View(m.region[start*m.recSize : (start+count)*m.recSize])
}

func (m *MmapStorage[T]) Write(start int, src []T) error {
	if err := m.check(start, len(src)); err != nil {
		return err
	}

	b, err := m.caster.Bytes(src)
	if err != nil {
		return err
	}
	copy(m.region[start*m.recSize:], b)
	return nil
}

func (m *MmapStorage[T]) Release() error {
	if m.released {
		return nil
	}
	m.released = true

	region := m.region
	m.region = nil
	if !m.owned {
		return nil
	}

	if err := m.mapper.Munmap(region); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}

func (m *MmapStorage[T]) check(start, count int) error {
	if m.released {
		return errorx.ErrReleased
	}
	if start < 0 || count < 0 || start+count > m.capacity {
		return fmt.Errorf("%w: physical range [%d, %d) with capacity %d",
			errorx.ErrIndexOutOfRange, start, start+count, m.capacity)
	}
	return nil
}
