package ui

// Status glyphs.
const (
	SymbolSuccess  = "◉"
	SymbolFail     = "✕"
	SymbolPending  = "◇"
	SymbolProgress = "◆"
	SymbolComplete = "●"
	SymbolSkipped  = "⊖"
	SymbolWarning  = "⚠"
)

// Bar chart glyphs.
const (
	BarFull  = "█"
	BarEmpty = "░"
)
