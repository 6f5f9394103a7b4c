// Package profiler accumulates frame timings and reports frame rate, renderer statistics and
// memory usage at a fixed interval.
package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
)

// Report is one interval summary.
type Report struct {
	FPS         float64
	FrameTime   time.Duration
	Frames      int
	Info        renderer.Info
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger         log.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Report
	reports        int
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and the logger to the "profiler" module.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	if p.logger == nil {
		p.logger = log.New("profiler")
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame, after the frame was rendered.
// Logs a report when the update interval has elapsed.
//
// Parameters:
//   - info: the renderer statistics of the frame just drawn
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(info renderer.Info) bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	r := Report{
		FPS:       float64(p.frameCount) / elapsed.Seconds(),
		FrameTime: elapsed / time.Duration(p.frameCount),
		Frames:    p.frameCount,
		Info:      info,
		HeapMB:    float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:     float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:   p.memStats.NumGC,
	}
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	r.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 pauses.
	if gcCount := r.GCCount; gcCount > 0 {
		r.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			r.MaxPauseUs = max(r.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Noticef("FPS: %.2f | frame %d | calls: %d | tris: %d | culled: %d | geometries: %d | buffers: %d (%d B) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs)",
		r.FPS, info.Frame, info.Calls, info.Triangles, info.Culled, info.Geometries, info.Buffers, info.ResidentBytes,
		r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseUs, r.MaxPauseUs)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = r
	p.reports++
	return true
}

// Last returns the most recent report, or the zero Report before the first one.
func (p *Profiler) Last() Report {
	return p.last
}

// Reports returns how many reports were logged.
func (p *Profiler) Reports() int {
	return p.reports
}
