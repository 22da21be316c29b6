package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/mirrorworld/ecs"
)

type Report struct {
	// Configuration
	Duration     time.Duration
	Rooms        int
	WallsPerRoom int
	Entities     int

	// Results
	TotalFrames    int64
	TotalSteps     int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Collisions     int
	Completions    int
	World          *ecs.WorldStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarises frame durations. Finalize sorts Samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P50     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}
	slices.Sort(s.Samples)

	var total time.Duration
	for _, sample := range s.Samples {
		total += sample
	}

	n := len(s.Samples)
	s.Min = s.Samples[0]
	s.Max = s.Samples[n-1]
	s.Avg = total / time.Duration(n)
	s.P50 = s.Samples[n/2]
	s.P99 = s.Samples[min(n*99/100, n-1)]
}

const reportTemplate = `
# Mirror World Stress Report

## Setup
- **Run Duration:** {{.Duration}}
- **Rooms:** {{.Rooms}} ({{.WallsPerRoom}} walls each)
- **Entities:** {{.Entities}}

## Frames
- **Frames:** {{.TotalFrames}} ({{.TotalSteps}} fixed steps in {{.TotalTime}})
- **Frame Time:** avg {{.UpdateTime.Avg}}, p50 {{.UpdateTime.P50}}, p99 {{.UpdateTime.P99}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
- **Collisions:** {{.Collisions}}
- **Levels Completed:** {{.Completions}}

## Systems
{{range .World.Systems}}- **{{.Name}}:** update avg {{.Update.AvgDuration}} max {{.Update.MaxDuration}} ({{.Update.ExecutionCount}} calls), render avg {{.Render.AvgDuration}} ({{.Render.ExecutionCount}} calls)
{{end}}
## Components
{{range $kind, $count := .World.ComponentsByKind}}- {{$kind}}: {{$count}}
{{end}}
## Memory (MiB)
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} -> {{mb .MemStatsEnd.HeapAlloc}}
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} -> {{mb .MemStatsEnd.TotalAlloc}} (delta {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}})
- Sys:         {{mb .MemStatsStart.Sys}} -> {{mb .MemStatsEnd.Sys}}
- GC Cycles:   {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pauses
- **Total Pause:** {{ns (usub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"usub64": func(a, b uint64) uint64 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
