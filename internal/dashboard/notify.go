package dashboard

import (
	"sync"
	"time"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindDanger  Kind = "danger"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
	KindPrimary Kind = "primary"
)

// Notification glyphs.
const (
	IconCheck    = "✓"
	IconTriangle = "⚠"
	IconCircle   = "!"
	IconInfo     = "ℹ"
)

// DefaultNotifyDuration is how long a notification stays up without a
// manual dismiss.
const DefaultNotifyDuration = 5 * time.Second

// Icon returns the glyph for the kind. Unknown kinds get the info glyph.
func (k Kind) Icon() string {
	switch k {
	case KindSuccess:
		return IconCheck
	case KindDanger:
		return IconTriangle
	case KindWarning:
		return IconCircle
	default:
		return IconInfo
	}
}

// Notification is one overlay entry.
type Notification struct {
	ID       int
	Kind     Kind
	Message  string
	Created  time.Time
	Duration time.Duration
}

// Icon returns the glyph for the notification's kind.
func (n Notification) Icon() string { return n.Kind.Icon() }

// Presenter keeps the list of visible notifications. Each one is removed by
// its own timer after its duration, or earlier by Dismiss. Removal happens at
// most once per notification whichever path gets there first.
type Presenter struct {
	mu       sync.Mutex
	clock    Clock
	duration time.Duration
	nextID   int
	active   []Notification
	timers   map[int]Timer
	onChange func()
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithClock sets the clock used for auto-removal timers.
func WithClock(c Clock) PresenterOption {
	return func(p *Presenter) { p.clock = c }
}

// WithDuration sets the default display duration. Non-positive values keep
// DefaultNotifyDuration.
func WithDuration(d time.Duration) PresenterOption {
	return func(p *Presenter) {
		if d > 0 {
			p.duration = d
		}
	}
}

// NewPresenter creates an empty presenter.
func NewPresenter(opts ...PresenterOption) *Presenter {
	p := &Presenter{
		clock:    RealClock{},
		duration: DefaultNotifyDuration,
		timers:   make(map[int]Timer),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnChange registers a hook called after every add or remove. The hook runs
// without the presenter lock held, so it may call Active.
func (p *Presenter) OnChange(fn func()) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Notify shows a notification for the default duration.
func (p *Presenter) Notify(kind Kind, message string) {
	p.NotifyFor(kind, message, p.duration)
}

// NotifyFor shows a notification for d and returns its ID.
func (p *Presenter) NotifyFor(kind Kind, message string, d time.Duration) int {
	if d <= 0 {
		d = p.duration
	}

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.active = append(p.active, Notification{
		ID:       id,
		Kind:     kind,
		Message:  message,
		Created:  p.clock.Now(),
		Duration: d,
	})
	p.timers[id] = p.clock.AfterFunc(d, func() { p.remove(id) })
	hook := p.onChange
	p.mu.Unlock()

	if hook != nil {
		hook()
	}
	return id
}

// Dismiss removes a notification before its timer fires. Returns false if it
// was already gone.
func (p *Presenter) Dismiss(id int) bool {
	return p.remove(id)
}

// DismissNewest removes the most recent notification, if any.
func (p *Presenter) DismissNewest() bool {
	p.mu.Lock()
	if len(p.active) == 0 {
		p.mu.Unlock()
		return false
	}
	id := p.active[len(p.active)-1].ID
	p.mu.Unlock()
	return p.remove(id)
}

// Clear removes every notification and stops their timers.
func (p *Presenter) Clear() {
	p.mu.Lock()
	if len(p.active) == 0 {
		p.mu.Unlock()
		return
	}
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
	p.active = nil
	hook := p.onChange
	p.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Active returns a copy of the visible notifications, oldest first.
func (p *Presenter) Active() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, len(p.active))
	copy(out, p.active)
	return out
}

func (p *Presenter) remove(id int) bool {
	p.mu.Lock()
	idx := -1
	for i, n := range p.active {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.mu.Unlock()
		return false
	}
	p.active = append(p.active[:idx], p.active[idx+1:]...)
	if t, ok := p.timers[id]; ok {
		t.Stop()
		delete(p.timers, id)
	}
	hook := p.onChange
	p.mu.Unlock()

	if hook != nil {
		hook()
	}
	return true
}
