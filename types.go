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

package turboring

// StorageKind selects the storage engine that backs a segment.
type StorageKind int

const (
	// StorageSlice keeps record slots in a runtime managed array.
	StorageSlice StorageKind = iota + 1
	// StorageHeap keeps record slots in a single fixed-size heap block.
	StorageHeap
	// StorageMmap keeps record slots in an anonymous memory mapping
	// obtained outside the Go heap.
	StorageMmap
)

func (k StorageKind) Validate() bool {
	switch k {
	case StorageSlice, StorageHeap, StorageMmap:
		return true
	default:
		return false
	}
}

func (k StorageKind) String() string {
	switch k {
	case StorageSlice:
		return "slice"
	case StorageHeap:
		return "heap"
	case StorageMmap:
		return "mmap"
	default:
		return "unknown"
	}
}

// TransmuteMode selects the strategy used to reinterpret raw bytes as
// typed records.
type TransmuteMode int

const (
	// RuntimeChecked validates size, alignment and bit-pattern validity
	// of the record type at every reinterpretation.
	RuntimeChecked TransmuteMode = iota + 1
	// ProofChecked discharges the bit-pattern validity proof once, when
	// the caster is declared, and keeps only the size and alignment
	// checks on the hot path. Ineligible types are rejected before any
	// caster instance exists.
	ProofChecked
)

func (m TransmuteMode) Validate() bool {
	switch m {
	case RuntimeChecked, ProofChecked:
		return true
	default:
		return false
	}
}

func (m TransmuteMode) String() string {
	switch m {
	case RuntimeChecked:
		return "runtime-checked"
	case ProofChecked:
		return "proof-checked"
	default:
		return "unknown"
	}
}

// CollectorType the type of metrics collector.
type CollectorType int

const (
	PrometheusCollector CollectorType = iota + 1
	OpenTelemetryCollector
)

func (c CollectorType) Validate() bool {
	switch c {
	case PrometheusCollector, OpenTelemetryCollector:
		return true
	default:
		return false
	}
}
