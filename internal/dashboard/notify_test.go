package dashboard_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xpinara/company-tracker/internal/dashboard"
	dtest "github.com/0xpinara/company-tracker/internal/dashboard/testing"
)

var _ dashboard.Notifier = (*dashboard.Presenter)(nil)

func newPresenter() (*dashboard.Presenter, *dtest.FakeClock) {
	clock := dtest.NewFakeClock()
	return dashboard.NewPresenter(dashboard.WithClock(clock)), clock
}

func TestPresenter_AutoRemovesAfterDefaultDuration(t *testing.T) {
	p, clock := newPresenter()

	p.Notify(dashboard.KindSuccess, "Done")
	require.Len(t, p.Active(), 1)

	clock.Advance(4999 * time.Millisecond)
	assert.Len(t, p.Active(), 1)

	clock.Advance(time.Millisecond)
	assert.Empty(t, p.Active())
}

func TestPresenter_NotifyForCustomDuration(t *testing.T) {
	p, clock := newPresenter()

	id := p.NotifyFor(dashboard.KindInfo, "short", time.Second)
	p.Notify(dashboard.KindInfo, "long")

	clock.Advance(time.Second)
	active := p.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "long", active[0].Message)
	assert.False(t, p.Dismiss(id))
}

func TestPresenter_DismissBeforeTimer(t *testing.T) {
	p, clock := newPresenter()

	var changes atomic.Int32
	p.OnChange(func() { changes.Add(1) })

	id := p.NotifyFor(dashboard.KindDanger, "boom", 5*time.Second)
	assert.True(t, p.Dismiss(id))
	assert.False(t, p.Dismiss(id), "second removal is a no-op")

	assert.NotPanics(t, func() { clock.Advance(10 * time.Second) })
	assert.Empty(t, p.Active())
	assert.Equal(t, int32(2), changes.Load(), "one add and one remove")
}

func TestPresenter_TimerThenDismiss(t *testing.T) {
	p, clock := newPresenter()

	id := p.NotifyFor(dashboard.KindWarning, "careful", time.Second)
	clock.Advance(time.Second)

	assert.False(t, p.Dismiss(id))
	assert.Equal(t, 0, clock.PendingTimers())
}

func TestPresenter_OrderAndIcons(t *testing.T) {
	p, _ := newPresenter()

	p.Notify(dashboard.KindSuccess, "one")
	p.Notify(dashboard.KindDanger, "two")
	p.Notify(dashboard.KindWarning, "three")

	active := p.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "one", active[0].Message)
	assert.Equal(t, "three", active[2].Message)
	assert.Equal(t, dashboard.IconCheck, active[0].Icon())
	assert.Equal(t, dashboard.IconTriangle, active[1].Icon())
	assert.Less(t, active[0].ID, active[1].ID)
}

func TestPresenter_ActiveReturnsCopy(t *testing.T) {
	p, _ := newPresenter()
	p.Notify(dashboard.KindInfo, "original")

	active := p.Active()
	active[0].Message = "mutated"

	assert.Equal(t, "original", p.Active()[0].Message)
}

func TestPresenter_DismissNewestAndClear(t *testing.T) {
	p, clock := newPresenter()

	assert.False(t, p.DismissNewest())

	p.Notify(dashboard.KindInfo, "a")
	p.Notify(dashboard.KindInfo, "b")
	assert.True(t, p.DismissNewest())
	require.Len(t, p.Active(), 1)
	assert.Equal(t, "a", p.Active()[0].Message)

	p.Notify(dashboard.KindInfo, "c")
	p.Clear()
	assert.Empty(t, p.Active())
	assert.Equal(t, 0, clock.PendingTimers())
}

func TestPresenter_OnChangeMayReadActive(t *testing.T) {
	p, _ := newPresenter()

	var seen int
	p.OnChange(func() { seen = len(p.Active()) })

	p.Notify(dashboard.KindPrimary, "hello")
	assert.Equal(t, 1, seen)
}

func TestPresenter_WithDuration(t *testing.T) {
	clock := dtest.NewFakeClock()
	p := dashboard.NewPresenter(dashboard.WithClock(clock), dashboard.WithDuration(time.Second))

	p.Notify(dashboard.KindInfo, "quick")
	clock.Advance(time.Second)
	assert.Empty(t, p.Active())

	ignored := dashboard.NewPresenter(dashboard.WithClock(clock), dashboard.WithDuration(-time.Second))
	ignored.Notify(dashboard.KindInfo, "default")
	clock.Advance(time.Second)
	assert.Len(t, ignored.Active(), 1)
}

func TestKindIcon(t *testing.T) {
	tests := []struct {
		kind dashboard.Kind
		want string
	}{
		{dashboard.KindSuccess, dashboard.IconCheck},
		{dashboard.KindDanger, dashboard.IconTriangle},
		{dashboard.KindWarning, dashboard.IconCircle},
		{dashboard.KindInfo, dashboard.IconInfo},
		{dashboard.KindPrimary, dashboard.IconInfo},
		{dashboard.Kind("bogus"), dashboard.IconInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Icon())
		})
	}
}
