package ecs

import (
	"reflect"
	"time"
)

// WorldStats provides statistics about system execution.
type WorldStats struct {
	EntityCount      int
	Generation       uint64
	SystemCount      int
	TotalExecutions  int64
	Systems          []SystemStats
	ComponentsByKind map[Kind]int
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name   string
	Update PhaseStats
	Render PhaseStats
}

// PhaseStats covers either the update or the render calls of a system.
type PhaseStats struct {
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type systemStatsInternal struct {
	name   string
	update phaseStatsInternal
	render phaseStatsInternal
}

func newSystemStats(s System) *systemStatsInternal {
	systemType := reflect.TypeOf(s)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return &systemStatsInternal{
		name:   systemType.Name(),
		update: phaseStatsInternal{minDuration: time.Duration(1<<63 - 1)},
		render: phaseStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
}

func (p *phaseStatsInternal) record(d time.Duration) {
	p.executionCount++
	p.lastDuration = d
	p.totalDuration += d

	if d < p.minDuration {
		p.minDuration = d
	}
	if d > p.maxDuration {
		p.maxDuration = d
	}
}

func (p *phaseStatsInternal) snapshot() PhaseStats {
	out := PhaseStats{
		ExecutionCount: p.executionCount,
		MaxDuration:    p.maxDuration,
		LastDuration:   p.lastDuration,
		TotalDuration:  p.totalDuration,
	}
	if p.executionCount > 0 {
		out.MinDuration = p.minDuration
		out.AvgDuration = p.totalDuration / time.Duration(p.executionCount)
	}
	return out
}

// Stats returns a snapshot of entity counts and system execution timings.
func (w *World) Stats() *WorldStats {
	stats := &WorldStats{
		EntityCount:      len(w.entities),
		Generation:       w.generation,
		SystemCount:      len(w.systems),
		Systems:          make([]SystemStats, len(w.systemStats)),
		ComponentsByKind: make(map[Kind]int, kindCount),
	}

	var totalExecs int64
	for i, internal := range w.systemStats {
		stats.Systems[i] = SystemStats{
			Name:   internal.name,
			Update: internal.update.snapshot(),
			Render: internal.render.snapshot(),
		}
		totalExecs += internal.update.executionCount + internal.render.executionCount
	}
	stats.TotalExecutions = totalExecs

	for _, e := range w.entities {
		for k, c := range e.components {
			if c != nil {
				stats.ComponentsByKind[Kind(k)]++
			}
		}
	}

	return stats
}
