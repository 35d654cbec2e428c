// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package telemetry exposes the hub's metrics registry and health reporting.
package telemetry

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Averager tracks a running average, used for per-slot gas usage and
// campaign criteria-vote turnout.
type Averager interface {
	Observe(value float64)
	Read() float64
}

type averager struct {
	mu    sync.RWMutex
	sum   float64
	count float64

	promCount prometheus.Counter
	promSum   prometheus.Gauge
}

// NewAverager registers a count/sum pair of prometheus metrics backing an
// Averager named name.
func NewAverager(name, help string, reg prometheus.Registerer) (Averager, error) {
	count := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name + "_count",
		Help: "Total # of observations of " + help,
	})
	sum := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name + "_sum",
		Help: "Sum of " + help,
	})

	if err := reg.Register(count); err != nil {
		return nil, err
	}
	if err := reg.Register(sum); err != nil {
		return nil, err
	}

	return &averager{promCount: count, promSum: sum}, nil
}

func (a *averager) Observe(value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.sum += value
	a.count++

	if a.promCount != nil {
		a.promCount.Inc()
	}
	if a.promSum != nil {
		a.promSum.Add(value)
	}
}

func (a *averager) Read() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.count == 0 {
		return 0
	}
	return a.sum / a.count
}

// Counter tracks a monotonic or adjustable count.
type Counter interface {
	Inc()
	Add(delta int64)
	Read() int64
}

type counter struct {
	mu    sync.RWMutex
	value int64
}

func newCounter() Counter {
	return &counter{}
}

func (c *counter) Inc() {
	c.Add(1)
}

func (c *counter) Add(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value += delta
}

func (c *counter) Read() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Gauge tracks a value that can move up or down.
type Gauge interface {
	Set(value float64)
	Add(delta float64)
	Read() float64
}

type gauge struct {
	mu    sync.RWMutex
	value float64
}

func newGauge() Gauge {
	return &gauge{}
}

func (g *gauge) Set(value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = value
}

func (g *gauge) Add(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value += delta
}

func (g *gauge) Read() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.value
}

// Registry is a process-wide collection of hub metrics.
type Registry interface {
	NewCounter(name string) Counter
	NewGauge(name string) Gauge
	GetCounter(name string) (Counter, error)
	GetGauge(name string) (Gauge, error)
}

type registry struct {
	mu       sync.RWMutex
	counters map[string]Counter
	gauges   map[string]Gauge
}

// NewRegistry returns an empty Registry.
func NewRegistry() Registry {
	return &registry{
		counters: make(map[string]Counter),
		gauges:   make(map[string]Gauge),
	}
}

func (r *registry) NewCounter(name string) Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := newCounter()
	r.counters[name] = c
	return c
}

func (r *registry) NewGauge(name string) Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := newGauge()
	r.gauges[name] = g
	return g
}

func (r *registry) GetCounter(name string) (Counter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.counters[name]
	if !ok {
		return nil, fmt.Errorf("counter %q not found", name)
	}
	return c, nil
}

func (r *registry) GetGauge(name string) (Gauge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.gauges[name]
	if !ok {
		return nil, fmt.Errorf("gauge %q not found", name)
	}
	return g, nil
}

// Hub is the fixed set of metrics the slot driver and modules update every
// slot. Field names name what they count, not the teacher's consensus
// vocabulary (no "Prisms"/"Successful"/"Failed" sampling rounds here).
type Hub struct {
	SlotsApplied      Counter
	SlotsReverted     Counter
	GasReserved       Gauge
	GasConsumed       Counter
	AuthFailures      Counter
	CampaignsByPhase  map[string]Gauge
	CriteriaVoteTurnout Averager
}

// NewHub registers the hub's metrics against reg and an averager backed by
// its own prometheus registerer.
func NewHub(reg Registry, promReg prometheus.Registerer) (*Hub, error) {
	turnout, err := NewAverager("hub_criteria_vote_turnout", "fraction of delegates voting on a criteria proposal", promReg)
	if err != nil {
		return nil, err
	}

	phases := []string{"draft", "criteria", "publish", "indexing", "distribution", "canceled", "failed", "finished"}
	byPhase := make(map[string]Gauge, len(phases))
	for _, p := range phases {
		byPhase[p] = reg.NewGauge("hub_campaigns_" + p)
	}

	return &Hub{
		SlotsApplied:        reg.NewCounter("hub_slots_applied"),
		SlotsReverted:       reg.NewCounter("hub_slots_reverted"),
		GasReserved:         reg.NewGauge("hub_gas_reserved"),
		GasConsumed:         reg.NewCounter("hub_gas_consumed"),
		AuthFailures:        reg.NewCounter("hub_auth_failures"),
		CampaignsByPhase:    byPhase,
		CriteriaVoteTurnout: turnout,
	}, nil
}
