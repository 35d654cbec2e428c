// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package telemetry

import (
	"context"
	"time"
)

// Checker runs health checks against the service.
type Checker interface {
	HealthCheck(context.Context) (interface{}, error)
}

// Checkable is implemented by components that can report their own health,
// such as the slot driver (last committed height and root).
type Checkable interface {
	Health(context.Context) (interface{}, error)
}

// Report is the aggregate result of running all registered checks.
type Report struct {
	Details  map[string]interface{} `json:"details,omitempty"`
	Healthy  bool                    `json:"healthy"`
	Checks   []Check                 `json:"checks,omitempty"`
	Duration time.Duration           `json:"duration"`
}

// Check is the result of a single named health check.
type Check struct {
	Name     string                 `json:"name"`
	Healthy  bool                   `json:"healthy"`
	Error    string                 `json:"error,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Duration time.Duration          `json:"duration"`
}

// HealthRegistry runs a named set of Checkables and aggregates their reports.
type HealthRegistry struct {
	checks map[string]Checkable
}

// NewHealthRegistry returns an empty health registry.
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{checks: make(map[string]Checkable)}
}

// Register adds a named checkable component.
func (r *HealthRegistry) Register(name string, c Checkable) {
	r.checks[name] = c
}

// RunAll runs every registered check and aggregates the result. A registry
// is unhealthy overall as soon as one check fails.
func (r *HealthRegistry) RunAll(ctx context.Context) Report {
	start := time.Now()
	report := Report{Healthy: true}

	for name, c := range r.checks {
		checkStart := time.Now()
		details, err := c.Health(ctx)
		check := Check{
			Name:     name,
			Healthy:  err == nil,
			Duration: time.Since(checkStart),
		}
		if err != nil {
			check.Error = err.Error()
			report.Healthy = false
		}
		if d, ok := details.(map[string]interface{}); ok {
			check.Details = d
		}
		report.Checks = append(report.Checks, check)
	}

	report.Duration = time.Since(start)
	return report
}
