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
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mc       *Prometheus
	registry *prometheus.Registry // Indicator registry
)

// GetHandler Return HTTP handler for docking with various frameworks
func GetHandler() http.Handler {
	return promhttp.HandlerFor(
		registry,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	)
}

var _ Collector = (*Prometheus)(nil)

type Prometheus struct {
	enabled       bool                 // Whether to enable indicator collection
	writeCounter  prometheus.Counter   // The total number of records written
	writeSizes    prometheus.Counter   // total size written
	writeErrors   prometheus.Counter   // Write failure error count
	readCounter   prometheus.Counter   // The total number of records read
	readSizes     prometheus.Counter   // The total size read
	readErrors    prometheus.Counter   // Read error count
	evictCounter  prometheus.Counter   // The number of records evicted by trims
	allocSizes    prometheus.Histogram // Backing memory obtained at construction
	releaseCounts prometheus.Counter   // Storage engines released
}

func NewPrometheus() *Prometheus {
	mc = &Prometheus{}
	registry = prometheus.NewRegistry()
	return mc.register()
}

func (p *Prometheus) register() *Prometheus {
	const namespace = "turbo_ring"
	p.writeCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "write_counts_total",
		Help:      "Number of records written into segments.",
	})
	registry.MustRegister(p.writeCounter)

	p.writeSizes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "write_sizes_total",
		Help:      "Number of bytes written into segments.",
	})
	registry.MustRegister(p.writeSizes)

	p.writeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "write_errors_total",
		Help:      "Number of errors encountered by writes.",
	})
	registry.MustRegister(p.writeErrors)

	p.readCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "read_counts_total",
		Help:      "Number of records read from segments.",
	})
	registry.MustRegister(p.readCounter)

	p.readSizes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "read_sizes_total",
		Help:      "Number of bytes read from segments.",
	})
	registry.MustRegister(p.readSizes)

	p.readErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "read_errors_total",
		Help:      "Number of errors encountered by reads.",
	})
	registry.MustRegister(p.readErrors)

	p.evictCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evict_counts_total",
		Help:      "Number of records evicted by overwrite-oldest trims.",
	})
	registry.MustRegister(p.evictCounter)

	p.allocSizes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "alloc_sizes_bytes",
		Help:      "Backing memory obtained at segment construction.",
		Buckets:   prometheus.ExponentialBuckets(4*1024, 4, 10),
	})
	registry.MustRegister(p.allocSizes)

	p.releaseCounts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "release_counts_total",
		Help:      "Number of storage engines released.",
	})
	registry.MustRegister(p.releaseCounts)

	return p
}

func (p *Prometheus) CollectSwitcher(enable bool) {
	p.enabled = enable
}

func (p *Prometheus) ObserveWrite(counts, bytes, errors float64) {
	if !p.enabled {
		return
	}
	p.writeCounter.Add(counts)
	p.writeSizes.Add(bytes)
	p.writeErrors.Add(errors)
}

func (p *Prometheus) ObserveRead(counts, bytes, errors float64) {
	if !p.enabled {
		return
	}
	p.readCounter.Add(counts)
	p.readSizes.Add(bytes)
	p.readErrors.Add(errors)
}

func (p *Prometheus) ObserveEvict(counts float64) {
	if !p.enabled {
		return
	}
	p.evictCounter.Add(counts)
}

func (p *Prometheus) ObserveAlloc(bytes float64) {
	if !p.enabled {
		return
	}
	p.allocSizes.Observe(bytes)
}

func (p *Prometheus) ObserveRelease(counts float64) {
	if !p.enabled {
		return
	}
	p.releaseCounts.Add(counts)
}
