package demo

import (
	"fmt"
	"io"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
	"github.com/olekukonko/tablewriter"
)

// Summary covers a whole run.
type Summary struct {
	Frames  uint64
	Elapsed time.Duration
	Last    renderer.Info
}

// FPS returns the average frame rate, or 0 for an empty run.
func (s Summary) FPS() float64 {
	if s.Frames == 0 || s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// WriteStats renders s as a two column table.
//
// Parameters:
//   - w: the destination
//   - s: the run summary
func WriteStats(w io.Writer, s Summary) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})

	info := s.Last
	table.AppendBulk([][]string{
		{"frames", fmt.Sprintf("%d", s.Frames)},
		{"elapsed", s.Elapsed.Round(time.Microsecond).String()},
		{"draw calls", fmt.Sprintf("%d", info.Calls)},
		{"triangles", fmt.Sprintf("%d", info.Triangles)},
		{"lines", fmt.Sprintf("%d", info.Lines)},
		{"points", fmt.Sprintf("%d", info.Points)},
		{"culled", fmt.Sprintf("%d", info.Culled)},
		{"geometries", fmt.Sprintf("%d", info.Geometries)},
		{"buffers", fmt.Sprintf("%d", info.Buffers)},
		{"layouts", fmt.Sprintf("%d", info.Layouts)},
		{"resident bytes", fmt.Sprintf("%d", info.ResidentBytes)},
	})
	table.SetFooter([]string{"FPS", fmt.Sprintf("%.1f", s.FPS())})
	table.Render()
}
