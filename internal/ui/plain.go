package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/0xpinara/company-tracker/internal/dashboard"
)

// Printer serializes line output from the plain display sinks. Tick
// goroutines write concurrently, so every sink shares one lock.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, s)
}

// LineCard prints "Label: value" each time its text is set.
type LineCard struct {
	p     *Printer
	Label string
}

// Card returns a card sink with the given label.
func (p *Printer) Card(label string) *LineCard {
	return &LineCard{p: p, Label: label}
}

func (c *LineCard) SetText(text string) {
	label := lipgloss.NewStyle().Foreground(ColorSecondary).Render(c.Label + ":")
	value := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(text)
	c.p.println(label + " " + value)
}

// LineChart prints its title and a bar chart on every Redraw.
type LineChart struct {
	p     *Printer
	Title string
	Opts  BarChartOptions

	mu     sync.Mutex
	labels []string
	values []float64
}

// Chart returns a chart sink with the given title.
func (p *Printer) Chart(title string, opts BarChartOptions) *LineChart {
	return &LineChart{p: p, Title: title, Opts: opts}
}

func (c *LineChart) SetData(labels []string, values []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels = labels
	c.values = values
}

func (c *LineChart) Redraw() {
	c.mu.Lock()
	labels, values := c.labels, c.values
	c.mu.Unlock()

	title := lipgloss.NewStyle().Foreground(ColorNeonPink).Bold(true).Render(c.Title)
	c.p.println(title + "\n" + RenderBarChart(labels, values, c.Opts))
}

// LineNotifier prints each notification as "<icon> message" in the kind's
// color. Lines are never removed, so the display duration does not apply.
type LineNotifier struct {
	p *Printer
}

// Notifier returns a notification sink.
func (p *Printer) Notifier() *LineNotifier {
	return &LineNotifier{p: p}
}

func (n *LineNotifier) Notify(kind dashboard.Kind, message string) {
	style := lipgloss.NewStyle().Foreground(KindColor(kind))
	n.p.println(style.Render(kind.Icon()) + " " + message)
}

// LineProgress prints a line when monitoring starts and when it ends. Used
// instead of the spinner when output is not a terminal.
type LineProgress struct {
	p     *Printer
	Label string
}

// Progress returns a progress sink.
func (p *Printer) Progress(label string) *LineProgress {
	return &LineProgress{p: p, Label: label}
}

func (l *LineProgress) Show() {
	l.p.println(MutedStyle().Render(SymbolProgress + " " + l.Label + "..."))
}

func (l *LineProgress) Hide() {}
