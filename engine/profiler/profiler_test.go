package profiler

import (
	"fmt"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	notices []string
}

func (l *recordingLogger) Debug(v ...interface{})                   {}
func (l *recordingLogger) Debugf(format string, v ...interface{})   {}
func (l *recordingLogger) Info(v ...interface{})                    {}
func (l *recordingLogger) Infof(format string, v ...interface{})    {}
func (l *recordingLogger) Warning(v ...interface{})                 {}
func (l *recordingLogger) Warningf(format string, v ...interface{}) {}
func (l *recordingLogger) Error(v ...interface{})                   {}
func (l *recordingLogger) Errorf(format string, v ...interface{})   {}
func (l *recordingLogger) Notice(v ...interface{}) {
	l.notices = append(l.notices, fmt.Sprint(v...))
}
func (l *recordingLogger) Noticef(format string, v ...interface{}) {
	l.notices = append(l.notices, fmt.Sprintf(format, v...))
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickReportsAtInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	logger := &recordingLogger{}
	p := NewProfiler(WithClock(clock.now), WithLogger(logger), WithInterval(time.Second))

	for range 9 {
		clock.advance(100 * time.Millisecond)
		assert.False(t, p.Tick(renderer.Info{}))
	}
	clock.advance(100 * time.Millisecond)
	require.True(t, p.Tick(renderer.Info{Frame: 10, Calls: 4, Triangles: 8}))

	r := p.Last()
	assert.InDelta(t, 10.0, r.FPS, 1e-9)
	assert.Equal(t, 10, r.Frames)
	assert.Equal(t, 100*time.Millisecond, r.FrameTime)
	assert.Equal(t, 4, r.Info.Calls)
	assert.Equal(t, 1, p.Reports())

	require.Len(t, logger.notices, 1)
	assert.Contains(t, logger.notices[0], "FPS: 10.00")
	assert.Contains(t, logger.notices[0], "calls: 4")
	assert.Contains(t, logger.notices[0], "tris: 8")
}

func TestTickResetsAfterReport(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithLogger(&recordingLogger{}), WithInterval(time.Second))

	clock.advance(2 * time.Second)
	require.True(t, p.Tick(renderer.Info{}))
	assert.InDelta(t, 0.5, p.Last().FPS, 1e-9)

	clock.advance(500 * time.Millisecond)
	assert.False(t, p.Tick(renderer.Info{}))
	clock.advance(500 * time.Millisecond)
	require.True(t, p.Tick(renderer.Info{}))
	assert.InDelta(t, 2.0, p.Last().FPS, 1e-9)
}

func TestNonPositiveIntervalKeepsDefault(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithLogger(&recordingLogger{}))
	assert.Equal(t, time.Second, p.updateInterval)
}
