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
	"errors"
	"fmt"
	"unsafe"

	ts "github.com/TimeWtr/TurboRing"
	"github.com/TimeWtr/TurboRing/castx"
	"github.com/TimeWtr/TurboRing/config"
	"github.com/TimeWtr/TurboRing/errorx"
	"github.com/TimeWtr/TurboRing/metrics"
	"github.com/TimeWtr/TurboRing/storex"
)

type segmentOptions struct {
	cfg  config.Config
	mc   metrics.Recorder
	ctrl metrics.Controller
}

type Options func(o *segmentOptions) error

// WithStorage selects the storage engine holding record slots.
func WithStorage(kind ts.StorageKind) Options {
	return func(o *segmentOptions) error {
		if !kind.Validate() {
			return fmt.Errorf("invalid storage kind: %d", kind)
		}
		o.cfg.StorageKind = kind
		return nil
	}
}

// WithTransmuteMode selects the strategy validating byte reinterpretation.
func WithTransmuteMode(mode ts.TransmuteMode) Options {
	return func(o *segmentOptions) error {
		if !mode.Validate() {
			return fmt.Errorf("invalid transmute mode: %d", mode)
		}
		o.cfg.TransmuteMode = mode
		return nil
	}
}

// WithMetrics Enable indicator collection and specify the collector type
func WithMetrics(collector ts.CollectorType) Options {
	return func(o *segmentOptions) error {
		if !collector.Validate() {
			return errors.New("invalid metrics collector")
		}

		o.cfg.EnableMetrics = true
		switch collector {
		case ts.PrometheusCollector:
			bc := metrics.NewBatchCollector(metrics.NewPrometheus())
			o.mc = bc
			o.ctrl = bc
		case ts.OpenTelemetryCollector:
		}

		return nil
	}
}

// WithRecorder injects a prepared indicator recorder. Intended for callers
// that batch indicator data across several segments, and for tests.
func WithRecorder(mc metrics.Recorder) Options {
	return func(o *segmentOptions) error {
		o.cfg.EnableMetrics = true
		o.mc = mc
		return nil
	}
}

// New constructs an empty segment over a newly allocated storage engine of
// the given capacity. Fails with errorx.ErrInvalidCapacity when capacity is
// zero and wraps errorx.ErrAllocationFailure when backing memory cannot be
// obtained; nothing is leaked on a construction failure.
func New[T any](capacity int, opts ...Options) (*Segment[T], error) {
	o := segmentOptions{cfg: config.Default()}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	caster, err := newCaster[T](o.cfg.TransmuteMode)
	if err != nil {
		return nil, err
	}
	storage, err := newStorage[T](o.cfg.StorageKind, capacity, caster)
	if err != nil {
		return nil, err
	}

	return newSegment(storage, &o), nil
}

// FromStorage constructs a segment over a prepared storage engine, for
// example one wrapping a caller supplied buffer via storex.Wrap.
func FromStorage[T any](storage storex.Storage[T], opts ...Options) (*Segment[T], error) {
	o := segmentOptions{cfg: config.Default()}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if storage.Capacity() <= 0 {
		return nil, fmt.Errorf("%w: %d", errorx.ErrInvalidCapacity, storage.Capacity())
	}
	return newSegment(storage, &o), nil
}

func newSegment[T any](storage storex.Storage[T], o *segmentOptions) *Segment[T] {
	s := &Segment[T]{
		storage:  storage,
		capacity: storage.Capacity(),
		mc:       o.mc,
		ctrl:     o.ctrl,
	}

	if s.ctrl != nil {
		s.ctrl.Start()
	}
	if s.mc != nil {
		var zero T
		s.mc.RecordAlloc(int64(s.capacity) * int64(unsafe.Sizeof(zero)))
	}
	return s
}

func newCaster[T any](mode ts.TransmuteMode) (castx.Caster[T], error) {
	switch mode {
	case ts.RuntimeChecked:
		return castx.Checked[T](), nil
	case ts.ProofChecked:
		return castx.Proven[T]()
	default:
		return nil, fmt.Errorf("invalid transmute mode: %d", mode)
	}
}

func newStorage[T any](kind ts.StorageKind, capacity int, caster castx.Caster[T]) (storex.Storage[T], error) {
	switch kind {
	case ts.StorageSlice:
		return storex.NewSlice[T](capacity)
	case ts.StorageHeap:
		return storex.NewHeap[T](capacity, caster)
	case ts.StorageMmap:
		return storex.NewMmap[T](capacity, caster)
	default:
		return nil, fmt.Errorf("invalid storage kind: %d", kind)
	}
}
