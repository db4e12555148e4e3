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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	ts "github.com/TimeWtr/TurboRing"
	"github.com/TimeWtr/TurboRing/castx"
	"github.com/TimeWtr/TurboRing/errorx"
	metrics_mocks "github.com/TimeWtr/TurboRing/mocks/metrics"
	"github.com/TimeWtr/TurboRing/storex"
)

type variant struct {
	name string
	kind ts.StorageKind
	mode ts.TransmuteMode
}

func variants() []variant {
	return []variant{
		{"slice/runtime-checked", ts.StorageSlice, ts.RuntimeChecked},
		{"slice/proof-checked", ts.StorageSlice, ts.ProofChecked},
		{"heap/runtime-checked", ts.StorageHeap, ts.RuntimeChecked},
		{"heap/proof-checked", ts.StorageHeap, ts.ProofChecked},
		{"mmap/runtime-checked", ts.StorageMmap, ts.RuntimeChecked},
		{"mmap/proof-checked", ts.StorageMmap, ts.ProofChecked},
	}
}

func newTestSegment(t *testing.T, v variant, capacity int) *Segment[uint64] {
	t.Helper()
	seg, err := New[uint64](capacity, WithStorage(v.kind), WithTransmuteMode(v.mode))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = seg.Release()
	})
	return seg
}

// contents reads the whole segment through CopyInto.
func contents(t *testing.T, seg *Segment[uint64]) []uint64 {
	t.Helper()
	out := make([]uint64, seg.Len())
	n, err := seg.CopyInto(0, seg.Len(), out)
	require.NoError(t, err)
	require.Equal(t, seg.Len(), n)
	return out
}

func TestSegment_InvalidCapacity(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			_, err := New[uint64](0, WithStorage(v.kind), WithTransmuteMode(v.mode))
			require.ErrorIs(t, err, errorx.ErrInvalidCapacity)
		})
	}
}

func TestSegment_PushAndQuery(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 8)
			require.True(t, seg.IsEmpty())
			require.Equal(t, 8, seg.Capacity())

			for i := uint64(0); i < 5; i++ {
				require.NoError(t, seg.Push(i*100))
				assert.Equal(t, int(i)+1, seg.Len())
			}

			for i := 0; i < 5; i++ {
				got, err := seg.Query(i)
				require.NoError(t, err)
				assert.Equal(t, uint64(i)*100, got)
			}

			_, err := seg.Query(5)
			require.ErrorIs(t, err, errorx.ErrIndexOutOfRange)
		})
	}
}

func TestSegment_QueryEmpty(t *testing.T) {
	seg := newTestSegment(t, variants()[0], 4)
	for _, idx := range []int{-1, 0, 1, 3} {
		_, err := seg.Query(idx)
		require.ErrorIs(t, err, errorx.ErrIndexOutOfRange)
	}
}

func TestSegment_StrictPushWhenFull(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 3)
			require.NoError(t, seg.Append([]uint64{1, 2, 3}))
			require.True(t, seg.IsFull())

			before := contents(t, seg)
			err := seg.Push(4)
			require.ErrorIs(t, err, errorx.ErrBufferFull)

			// Strong failure atomicity: nothing observable changed.
			assert.Equal(t, 3, seg.Len())
			assert.Equal(t, 3, seg.Capacity())
			assert.Equal(t, before, contents(t, seg))
		})
	}
}

func TestSegment_PushWithTrim(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 3)
			require.NoError(t, seg.Append([]uint64{1, 2, 3}))

			require.NoError(t, seg.PushWithTrim(4))
			assert.Equal(t, 3, seg.Len())
			assert.Equal(t, []uint64{2, 3, 4}, contents(t, seg))

			// query(0) now equals the previous query(1), shifted by one.
			got, err := seg.Query(0)
			require.NoError(t, err)
			assert.Equal(t, uint64(2), got)
		})
	}
}

func TestSegment_PushWithTrimCapacityOne(t *testing.T) {
	seg := newTestSegment(t, variants()[0], 1)
	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, seg.PushWithTrim(i))
		assert.Equal(t, 1, seg.Len())
		assert.Equal(t, []uint64{i}, contents(t, seg))
	}
}

func TestSegment_AppendMatchesSequentialPushes(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			batch := []uint64{7, 8, 9, 10}

			appended := newTestSegment(t, v, 8)
			require.NoError(t, appended.Append([]uint64{1, 2}))
			require.NoError(t, appended.Append(batch))

			pushed := newTestSegment(t, v, 8)
			require.NoError(t, pushed.Append([]uint64{1, 2}))
			for _, r := range batch {
				require.NoError(t, pushed.Push(r))
			}

			assert.Equal(t, contents(t, pushed), contents(t, appended))
		})
	}
}

func TestSegment_AppendAllOrNothing(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 4)
			require.NoError(t, seg.Append([]uint64{1, 2, 3}))

			err := seg.Append([]uint64{4, 5})
			require.ErrorIs(t, err, errorx.ErrBufferFull)

			// No partial write happened.
			assert.Equal(t, 3, seg.Len())
			assert.Equal(t, []uint64{1, 2, 3}, contents(t, seg))

			// The batch that exactly fits still lands.
			require.NoError(t, seg.Append([]uint64{4}))
			assert.Equal(t, []uint64{1, 2, 3, 4}, contents(t, seg))
		})
	}
}

func TestSegment_AppendEmptyIsNoop(t *testing.T) {
	seg := newTestSegment(t, variants()[0], 2)
	require.NoError(t, seg.Append([]uint64{1, 2}))
	require.NoError(t, seg.Append(nil))
	require.NoError(t, seg.AppendWithTrim(nil))
	assert.Equal(t, []uint64{1, 2}, contents(t, seg))
}

func TestSegment_AppendWithTrimSlidingWindow(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 4)

			// m >= n single pushes: contents are exactly the last n records.
			for i := uint64(1); i <= 10; i++ {
				require.NoError(t, seg.AppendWithTrim([]uint64{i}))
			}
			assert.Equal(t, []uint64{7, 8, 9, 10}, contents(t, seg))

			// A batch longer than capacity keeps only its own tail.
			require.NoError(t, seg.AppendWithTrim([]uint64{20, 21, 22, 23, 24, 25}))
			assert.Equal(t, []uint64{22, 23, 24, 25}, contents(t, seg))

			// A batch that partially evicts.
			require.NoError(t, seg.AppendWithTrim([]uint64{30, 31}))
			assert.Equal(t, []uint64{24, 25, 30, 31}, contents(t, seg))
		})
	}
}

func TestSegment_CopyIntoAcrossWrap(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 4)
			require.NoError(t, seg.Append([]uint64{1, 2, 3, 4}))

			// Advance head past the wrap point.
			seg.Trim(2)
			require.NoError(t, seg.Append([]uint64{5, 6}))
			assert.Equal(t, []uint64{3, 4, 5, 6}, contents(t, seg))

			// A sub-range that crosses the physical wrap.
			out := make([]uint64, 2)
			n, err := seg.CopyInto(1, 2, out)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, []uint64{4, 5}, out)
		})
	}
}

func TestSegment_CopyIntoChecks(t *testing.T) {
	seg := newTestSegment(t, variants()[0], 4)
	require.NoError(t, seg.Append([]uint64{1, 2, 3}))

	t.Run("range beyond length", func(t *testing.T) {
		_, err := seg.CopyInto(2, 2, make([]uint64, 2))
		require.ErrorIs(t, err, errorx.ErrIndexOutOfRange)
	})

	t.Run("negative start", func(t *testing.T) {
		_, err := seg.CopyInto(-1, 1, make([]uint64, 1))
		require.ErrorIs(t, err, errorx.ErrIndexOutOfRange)
	})

	t.Run("destination too small", func(t *testing.T) {
		_, err := seg.CopyInto(0, 3, make([]uint64, 2))
		require.ErrorIs(t, err, errorx.ErrIndexOutOfRange)
	})

	t.Run("zero count", func(t *testing.T) {
		n, err := seg.CopyInto(1, 0, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestSegment_Records(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 4)

			older, newer := seg.Records()
			assert.Empty(t, older)
			assert.Empty(t, newer)

			require.NoError(t, seg.Append([]uint64{1, 2, 3}))
			older, newer = seg.Records()
			assert.Equal(t, []uint64{1, 2, 3}, older)
			assert.Empty(t, newer)

			// Wrap the contents.
			seg.Trim(2)
			require.NoError(t, seg.Append([]uint64{4, 5, 6}))
			older, newer = seg.Records()
			assert.Equal(t, []uint64{3, 4}, older)
			assert.Equal(t, []uint64{5, 6}, newer)
		})
	}
}

func TestSegment_TrimAndClear(t *testing.T) {
	seg := newTestSegment(t, variants()[0], 4)
	require.NoError(t, seg.Append([]uint64{1, 2, 3, 4}))

	seg.Trim(0)
	assert.Equal(t, 4, seg.Len())

	seg.Trim(1)
	assert.Equal(t, []uint64{2, 3, 4}, contents(t, seg))
	assert.Equal(t, 1, seg.Remaining())

	// Trimming more than length behaves as Clear.
	seg.Trim(10)
	assert.True(t, seg.IsEmpty())
	assert.Equal(t, 4, seg.Capacity())
}

// Scenario: capacity 4, fill with A..D, strict push rejects E, trimming
// push evicts the oldest.
func TestSegment_FullThenTrimScenario(t *testing.T) {
	const (
		recA = uint64('A')
		recB = uint64('B')
		recC = uint64('C')
		recD = uint64('D')
		recE = uint64('E')
	)

	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 4)
			require.NoError(t, seg.Append([]uint64{recA, recB, recC, recD}))
			require.Equal(t, 4, seg.Len())
			require.True(t, seg.IsFull())

			err := seg.Push(recE)
			require.ErrorIs(t, err, errorx.ErrBufferFull)
			assert.Equal(t, []uint64{recA, recB, recC, recD}, contents(t, seg))

			require.NoError(t, seg.PushWithTrim(recE))
			assert.Equal(t, []uint64{recB, recC, recD, recE}, contents(t, seg))

			got, err := seg.Query(0)
			require.NoError(t, err)
			assert.Equal(t, recB, got)
			got, err = seg.Query(3)
			require.NoError(t, err)
			assert.Equal(t, recE, got)
		})
	}
}

// Scenario: clear resets bookkeeping but not capacity, and the next push
// lands at logical index 0 over the stale bytes.
func TestSegment_ClearThenReuseScenario(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			seg := newTestSegment(t, v, 3)
			require.NoError(t, seg.Append([]uint64{11, 22}))

			seg.Clear()
			assert.Zero(t, seg.Len())
			assert.Equal(t, 3, seg.Capacity())

			require.NoError(t, seg.Push(33))
			got, err := seg.Query(0)
			require.NoError(t, err)
			assert.Equal(t, uint64(33), got)
			assert.Equal(t, []uint64{33}, contents(t, seg))
		})
	}
}

func TestSegment_FromWrappedStorage(t *testing.T) {
	caster := castx.Checked[uint64]()
	records := []uint64{0, 0, 0, 0}
	region, err := caster.Bytes(records)
	require.NoError(t, err)

	storage, err := storex.Wrap[uint64](region, caster)
	require.NoError(t, err)
	seg, err := FromStorage[uint64](storage)
	require.NoError(t, err)
	require.Equal(t, 4, seg.Capacity())

	require.NoError(t, seg.Append([]uint64{1, 2, 3}))

	// The segment writes straight into the caller's memory.
	assert.Equal(t, []uint64{1, 2, 3, 0}, records)

	require.NoError(t, seg.Release())
}

func TestSegment_UseAfterRelease(t *testing.T) {
	seg, err := New[uint64](4, WithStorage(ts.StorageMmap))
	require.NoError(t, err)
	require.NoError(t, seg.Append([]uint64{1, 2}))
	require.NoError(t, seg.Release())

	err = seg.Push(3)
	require.ErrorIs(t, err, errorx.ErrReleased)
	err = seg.PushWithTrim(3)
	require.ErrorIs(t, err, errorx.ErrReleased)
	_, err = seg.Query(0)
	require.ErrorIs(t, err, errorx.ErrReleased)
}

func TestSegment_MetricsRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mc := metrics_mocks.NewMockRecorder(ctrl)
	mc.EXPECT().RecordAlloc(int64(3 * 8))
	mc.EXPECT().RecordWrite(int64(1), int64(8), nil).Times(3)
	mc.EXPECT().RecordWrite(int64(0), int64(0), gomock.Any())
	mc.EXPECT().RecordEvict(int64(1))
	mc.EXPECT().RecordWrite(int64(1), int64(8), nil)
	mc.EXPECT().RecordRead(int64(1), int64(8), nil)
	mc.EXPECT().RecordRelease()

	seg, err := New[uint64](3, WithRecorder(mc))
	require.NoError(t, err)

	require.NoError(t, seg.Push(1))
	require.NoError(t, seg.Push(2))
	require.NoError(t, seg.Push(3))
	require.ErrorIs(t, seg.Push(4), errorx.ErrBufferFull)
	require.NoError(t, seg.PushWithTrim(5))

	_, err = seg.Query(0)
	require.NoError(t, err)

	require.NoError(t, seg.Release())
}

func TestSegment_MetricsCollectorLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	seg, err := New[uint64](16, WithMetrics(ts.PrometheusCollector))
	require.NoError(t, err)

	require.NoError(t, seg.Append([]uint64{1, 2, 3}))
	require.NoError(t, seg.PushWithTrim(4))

	// Release stops the batch collector goroutine.
	require.NoError(t, seg.Release())
}
