package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// trendSize is the number of refreshes a card's trend line remembers.
const trendSize = 60

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// trend is a fixed-size circular buffer of card values. It is only touched
// from Update, so it needs no lock.
type trend struct {
	data  []float64
	head  int
	count int
}

func newTrend(size int) *trend {
	if size <= 0 {
		size = trendSize
	}
	return &trend{data: make([]float64, size)}
}

// push adds a value, overwriting the oldest once full.
func (t *trend) push(v float64) {
	t.data[t.head] = v
	t.head = (t.head + 1) % len(t.data)
	if t.count < len(t.data) {
		t.count++
	}
}

// last returns up to n values in chronological order (oldest first).
func (t *trend) last(n int) []float64 {
	if n > t.count {
		n = t.count
	}
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	start := (t.head - n + len(t.data)) % len(t.data)
	for i := 0; i < n; i++ {
		out[i] = t.data[(start+i)%len(t.data)]
	}
	return out
}

func (t *trend) len() int { return t.count }

// renderSparkline draws the last width values as a single row of blocks,
// scaled between the series' own min and max. A flat series sits mid-height.
func renderSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	top := len(sparklineBlocks) - 1
	var b strings.Builder
	for _, v := range data {
		idx := top / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(top))
		}
		b.WriteRune(sparklineBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}
