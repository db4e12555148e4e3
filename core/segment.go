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

package core

import (
	"fmt"
	"unsafe"

	"github.com/TimeWtr/TurboRing/errorx"
	"github.com/TimeWtr/TurboRing/metrics"
	"github.com/TimeWtr/TurboRing/storex"
)

// Segment is a fixed-capacity ring buffer of records over a pluggable
// storage engine.
//
// head is the physical index of the logically oldest record and length the
// number of currently valid records; logical index i lives at physical slot
// (head+i) % capacity. Invariants head < capacity and length <= capacity
// hold after every operation, including failed ones.
//
// A segment is single owner. It performs no internal synchronization;
// callers needing concurrent access must wrap it in their own mutual
// exclusion. No operation blocks: pushes and queries are O(1), bulk
// operations are O(k) in the records they touch.
type Segment[T any] struct {
	storage  storex.Storage[T]
	head     int
	length   int
	capacity int
	mc       metrics.Recorder
	ctrl     metrics.Controller
}

// Len the number of currently valid records.
func (s *Segment[T]) Len() int {
	return s.length
}

// Capacity the maximum number of records, fixed at construction.
func (s *Segment[T]) Capacity() int {
	return s.capacity
}

// Remaining the number of records that fit without eviction.
func (s *Segment[T]) Remaining() int {
	return s.capacity - s.length
}

func (s *Segment[T]) IsEmpty() bool {
	return s.length == 0
}

func (s *Segment[T]) IsFull() bool {
	return s.length == s.capacity
}

// Push appends one record strictly. When the segment is full it fails with
// errorx.ErrBufferFull and leaves the segment completely unchanged.
func (s *Segment[T]) Push(record T) error {
	if s.length == s.capacity {
		s.recordWrite(0, errorx.ErrBufferFull)
		return errorx.ErrBufferFull
	}

	if err := s.writeAt(s.length, []T{record}); err != nil {
		s.recordWrite(0, err)
		return err
	}
	s.length++
	s.recordWrite(1, nil)
	return nil
}

// PushWithTrim appends one record, overwriting the oldest record when the
// segment is full. On a full segment the slot at head is rewritten and head
// advances; length stays at capacity. The only possible failure is a
// released storage engine.
func (s *Segment[T]) PushWithTrim(record T) error {
	if s.length < s.capacity {
		if err := s.writeAt(s.length, []T{record}); err != nil {
			s.recordWrite(0, err)
			return err
		}
		s.length++
		s.recordWrite(1, nil)
		return nil
	}

	// Full: the oldest slot is the one being reclaimed.
	if err := s.storage.Write(s.head, []T{record}); err != nil {
		s.recordWrite(0, err)
		return err
	}
	s.head = (s.head + 1) % s.capacity
	s.recordEvict(1)
	s.recordWrite(1, nil)
	return nil
}

// Append appends records strictly, all or nothing. If the batch exceeds the
// remaining capacity the call fails with errorx.ErrBufferFull and no record
// is written. An empty batch is a no-op that always succeeds.
func (s *Segment[T]) Append(records []T) error {
	if len(records) == 0 {
		return nil
	}
	if len(records) > s.Remaining() {
		s.recordWrite(0, errorx.ErrBufferFull)
		return fmt.Errorf("%w: %d records with %d remaining",
			errorx.ErrBufferFull, len(records), s.Remaining())
	}

	if err := s.writeAt(s.length, records); err != nil {
		s.recordWrite(0, err)
		return err
	}
	s.length += len(records)
	s.recordWrite(len(records), nil)
	return nil
}

// AppendWithTrim appends records, evicting as many of the oldest records as
// needed. It succeeds for any batch length; records that could never survive
// the eviction of a batch longer than capacity are skipped outright. The
// surviving suffix lands in at most two physical writes.
func (s *Segment[T]) AppendWithTrim(records []T) error {
	if len(records) == 0 {
		return nil
	}

	// Records beyond the last capacity entries are evicted before they
	// would ever become visible.
	skipped := 0
	if len(records) > s.capacity {
		skipped = len(records) - s.capacity
		records = records[skipped:]
	}

	evicted := skipped
	if over := len(records) - s.Remaining(); over > 0 {
		s.Trim(over)
		evicted += over
	}

	if err := s.writeAt(s.length, records); err != nil {
		s.recordWrite(0, err)
		return err
	}
	s.length += len(records)
	if evicted > 0 {
		s.recordEvict(evicted)
	}
	s.recordWrite(len(records), nil)
	return nil
}

// Query returns the record at a logical index, 0 being the oldest.
func (s *Segment[T]) Query(logical int) (T, error) {
	var zero T
	if logical < 0 || logical >= s.length {
		s.recordRead(0, errorx.ErrIndexOutOfRange)
		return zero, fmt.Errorf("%w: logical index %d with length %d",
			errorx.ErrIndexOutOfRange, logical, s.length)
	}

	slot, err := s.storage.View(s.physical(logical), 1)
	if err != nil {
		s.recordRead(0, err)
		return zero, err
	}
	s.recordRead(1, nil)
	return slot[0], nil
}

// CopyInto bulk reads count records starting at logical index start into
// dst. The read is split into at most two contiguous physical copies around
// the wrap point, so throughput tracks the backing memory bandwidth rather
// than a per-record loop. Returns the number of records copied.
func (s *Segment[T]) CopyInto(start, count int, dst []T) (int, error) {
	if start < 0 || count < 0 || start+count > s.length {
		s.recordRead(0, errorx.ErrIndexOutOfRange)
		return 0, fmt.Errorf("%w: logical range [%d, %d) with length %d",
			errorx.ErrIndexOutOfRange, start, start+count, s.length)
	}
	if len(dst) < count {
		s.recordRead(0, errorx.ErrIndexOutOfRange)
		return 0, fmt.Errorf("%w: destination holds %d of %d records",
			errorx.ErrIndexOutOfRange, len(dst), count)
	}
	if count == 0 {
		return 0, nil
	}

	phys := s.physical(start)
	first := min(count, s.capacity-phys)
	older, err := s.storage.View(phys, first)
	if err != nil {
		s.recordRead(0, err)
		return 0, err
	}
	copy(dst, older)

	if first < count {
		newer, err := s.storage.View(0, count-first)
		if err != nil {
			s.recordRead(0, err)
			return first, err
		}
		copy(dst[first:], newer)
	}

	s.recordRead(count, nil)
	return count, nil
}

// Records returns a zero-copy view of the current contents in logical
// order, as up to two contiguous chunks around the wrap point. The newer
// chunk is empty while the contents have not wrapped.
func (s *Segment[T]) Records() (older, newer []T) {
	if s.length == 0 {
		return nil, nil
	}

	first := min(s.length, s.capacity-s.head)
	older, err := s.storage.View(s.head, first)
	if err != nil {
		return nil, nil
	}
	if first == s.length {
		return older, nil
	}

	newer, err = s.storage.View(0, s.length-first)
	if err != nil {
		return older, nil
	}
	return older, newer
}

// Trim drops the n oldest records. This is a constant-time head advance,
// not a shift. n >= Len() behaves as Clear, n <= 0 is a no-op.
func (s *Segment[T]) Trim(n int) {
	if n <= 0 {
		return
	}
	if n >= s.length {
		s.Clear()
		return
	}
	s.head = (s.head + n) % s.capacity
	s.length -= n
}

// Clear resets bookkeeping without deallocating or touching storage
// contents; subsequent pushes simply overwrite stale bytes.
func (s *Segment[T]) Clear() {
	s.head = 0
	s.length = 0
}

// Release frees the backing storage exactly once and stops indicator
// collection. The segment must not be used afterwards; operations on a
// released segment fail with errorx.ErrReleased.
func (s *Segment[T]) Release() error {
	err := s.storage.Release()
	if s.mc != nil {
		s.mc.RecordRelease()
	}
	if s.ctrl != nil {
		s.ctrl.Stop()
	}
	return err
}

func (s *Segment[T]) physical(logical int) int {
	return (s.head + logical) % s.capacity
}

// writeAt writes records starting at a logical offset, splitting the write
// into at most two contiguous physical ranges around the wrap point.
//
// Invariant: logical + len(records) <= capacity.
func (s *Segment[T]) writeAt(logical int, records []T) error {
	start := s.physical(logical)
	first := min(len(records), s.capacity-start)
	if err := s.storage.Write(start, records[:first]); err != nil {
		return err
	}
	if first < len(records) {
		return s.storage.Write(0, records[first:])
	}
	return nil
}

func (s *Segment[T]) recordWrite(count int, err error) {
	if s.mc == nil {
		return
	}
	var zero T
	s.mc.RecordWrite(int64(count), int64(count)*int64(unsafe.Sizeof(zero)), err)
}

func (s *Segment[T]) recordRead(count int, err error) {
	if s.mc == nil {
		return
	}
	var zero T
	s.mc.RecordRead(int64(count), int64(count)*int64(unsafe.Sizeof(zero)), err)
}

func (s *Segment[T]) recordEvict(count int) {
	if s.mc == nil {
		return
	}
	s.mc.RecordEvict(int64(count))
}
