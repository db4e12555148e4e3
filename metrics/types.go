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

// Collector Indicator monitoring interface
type Collector interface {
	CollectSwitcher(enable bool) // collector switch
	WriteMetrics
	ReadMetrics
	EvictMetrics
	StorageMetrics
}

// WriteMetrics Write operation indicator
type WriteMetrics interface {
	// ObserveWrite Number of records written, size of writes, number of errors
	ObserveWrite(counts, bytes, errors float64)
}

// ReadMetrics Read operation indicator
type ReadMetrics interface {
	// ObserveRead Number of records read, size of reads, number of errors
	ObserveRead(counts, bytes, errors float64)
}

// EvictMetrics Overwrite-oldest eviction indicator
type EvictMetrics interface {
	// ObserveEvict Number of records evicted by trims
	ObserveEvict(counts float64)
}

// StorageMetrics Backing storage lifecycle indicators
type StorageMetrics interface {
	// ObserveAlloc Bytes of backing memory obtained at construction
	ObserveAlloc(bytes float64)
	// ObserveRelease Number of storage engines released
	ObserveRelease(counts float64)
}
