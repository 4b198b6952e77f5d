// Package tui is the full-screen Bubble Tea dashboard for the tracker.
//
// The view owns no timers of its own besides the header clock. Everything it
// shows arrives as messages from a Bridge, which implements the dashboard
// display capabilities (cards, charts, progress, reload, notifications) by
// calling program.Send. All view state is therefore mutated on the Bubble Tea
// event loop, however many refresh goroutines are in flight.
//
// Wiring order matters because the controller needs the bridge and the
// program needs the model:
//
//	bridge := tui.NewBridge()
//	ctrl := dashboard.New(dashboard.Options{Display: bridge.Display(10, 8), ...})
//	model := tui.NewModel(ctx, ctrl, presenter, tui.Options{...})
//	p := tea.NewProgram(model, tea.WithAltScreen())
//	bridge.Attach(p)
//	bridge.Watch(presenter)
//
// # Keys
//
//	m       run monitoring (rejected with a warning while one is running)
//	r       refresh now (full reset, then one fetch)
//	x       dismiss the newest notification
//	?       toggle help, esc closes it
//	q       quit
package tui
