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

package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// BatchCollector Collector for reporting indicator data in batches,
// abstracted to provide interface to the caller
type BatchCollector interface {
	Controller
	Recorder
}

// Controller Batch update controller
type Controller interface {
	Start() // Start asynchronous batch update
	Stop()  // Stop asynchronous batch updates
	Flush() // Force immediate batch update
}

// Recorder Interface provided to the caller
//
//go:generate mockgen -destination=../mocks/metrics/recorder_mock.go -package metrics_mocks github.com/TimeWtr/TurboRing/metrics Recorder
type Recorder interface {
	RecordWrite(count, size int64, err error) // Report write data
	RecordRead(count, size int64, err error)  // Report read data
	RecordEvict(count int64)                  // Report overwrite-oldest evictions
	RecordAlloc(size int64)                   // Report backing memory allocation
	RecordRelease()                           // Report storage release
}

// Write Indicators for writing data
type Write struct {
	writeCounts int64 // The total number of records written
	writeSizes  int64 // total size written
	writeErrors int64 // Write failure error count
}

func (w *Write) Reset() {
	atomic.StoreInt64(&w.writeCounts, 0)
	atomic.StoreInt64(&w.writeSizes, 0)
	atomic.StoreInt64(&w.writeErrors, 0)
}

// Read Indicators for reading data
type Read struct {
	readCounts int64 // The total number of records read
	readSizes  int64 // The total size read
	readErrors int64 // Read error count
}

func (r *Read) Reset() {
	atomic.StoreInt64(&r.readCounts, 0)
	atomic.StoreInt64(&r.readSizes, 0)
	atomic.StoreInt64(&r.readErrors, 0)
}

// Supporting Eviction and storage lifecycle indicators
type Supporting struct {
	evictCounts   int64 // The number of records evicted by trims
	allocSizes    int64 // Backing memory obtained at construction
	releaseCounts int64 // Storage engines released
}

func (s *Supporting) Reset() {
	atomic.StoreInt64(&s.evictCounts, 0)
	atomic.StoreInt64(&s.allocSizes, 0)
	atomic.StoreInt64(&s.releaseCounts, 0)
}

var _ BatchCollector = (*BatchCollectImpl)(nil)

// BatchCollectImpl Batch indicator collector, encapsulates the underlying
// collector and adds a scheduled task that regularly writes indicator data
// to the underlying collector
type BatchCollectImpl struct {
	w    *Write        // Write data indicator
	r    *Read         // Read data indicator
	sp   *Supporting   // Supporting indicators
	mc   Collector     // Bottom-level indicator collector
	t    *time.Ticker  // timer
	sem  chan struct{} // shutdown the timer
	once sync.Once
	wg   sync.WaitGroup
}

func NewBatchCollector(mc Collector) *BatchCollectImpl {
	const duration = time.Second * 5
	b := &BatchCollectImpl{
		w:   &Write{},
		r:   &Read{},
		sp:  &Supporting{},
		mc:  mc,
		t:   time.NewTicker(duration),
		sem: make(chan struct{}),
	}

	b.mc.CollectSwitcher(true)

	return b
}

func (b *BatchCollectImpl) Start() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-b.t.C:
				b.Flush()
			case <-b.sem:
				return
			}
		}
	}()
}

func (b *BatchCollectImpl) Stop() {
	b.once.Do(func() {
		close(b.sem)
		b.t.Stop()
	})
	b.wg.Wait()
	// Whatever accumulated since the last tick still has to be reported.
	b.Flush()
}

func (b *BatchCollectImpl) Flush() {
	b.mc.ObserveWrite(
		float64(atomic.LoadInt64(&b.w.writeCounts)),
		float64(atomic.LoadInt64(&b.w.writeSizes)),
		float64(atomic.LoadInt64(&b.w.writeErrors)))
	b.w.Reset()

	b.mc.ObserveRead(
		float64(atomic.LoadInt64(&b.r.readCounts)),
		float64(atomic.LoadInt64(&b.r.readSizes)),
		float64(atomic.LoadInt64(&b.r.readErrors)))
	b.r.Reset()

	b.mc.ObserveEvict(float64(atomic.LoadInt64(&b.sp.evictCounts)))
	if alloc := atomic.LoadInt64(&b.sp.allocSizes); alloc > 0 {
		b.mc.ObserveAlloc(float64(alloc))
	}
	b.mc.ObserveRelease(float64(atomic.LoadInt64(&b.sp.releaseCounts)))
	b.sp.Reset()
}

func (b *BatchCollectImpl) RecordWrite(count, size int64, err error) {
	atomic.AddInt64(&b.w.writeCounts, count)
	atomic.AddInt64(&b.w.writeSizes, size)
	if err != nil {
		atomic.AddInt64(&b.w.writeErrors, 1)
	}
}

func (b *BatchCollectImpl) RecordRead(count, size int64, err error) {
	atomic.AddInt64(&b.r.readCounts, count)
	atomic.AddInt64(&b.r.readSizes, size)
	if err != nil {
		atomic.AddInt64(&b.r.readErrors, 1)
	}
}

func (b *BatchCollectImpl) RecordEvict(count int64) {
	atomic.AddInt64(&b.sp.evictCounts, count)
}

func (b *BatchCollectImpl) RecordAlloc(size int64) {
	atomic.AddInt64(&b.sp.allocSizes, size)
}

func (b *BatchCollectImpl) RecordRelease() {
	atomic.AddInt64(&b.sp.releaseCounts, 1)
}
