// Package ui provides terminal output shared by the tracker CLI and dashboard.
//
// # Components Overview
//
//	Palette       - Neon colors and semantic styles (success, error, warning, info)
//	Symbols       - Status glyphs and bar blocks
//	Tables        - Bubbles tables for mentions and companies
//	Bar charts    - Horizontal bars scaled to the largest value
//	Spinner       - Inline animated progress indicator
//	Printer       - Line-based card, chart and notification sinks
//	Header        - Branded banner printed above plain output
//	Terminal      - TTY detection, width and the output.color profile
//
// # Plain Output
//
// When stdout is not a terminal, or --plain is given, the dashboard runs with
// the Printer sinks instead of the full-screen view:
//
//	p := ui.NewPrinter(os.Stdout)
//	display := &dashboard.Display{
//	    Total:        p.Card("Total Mentions"),
//	    CompanyChart: p.Chart("Mentions by Company", ui.BarChartOptions{}),
//	}
//
// Use DisableColors() to switch to monochrome output (for --no-color).
package ui
