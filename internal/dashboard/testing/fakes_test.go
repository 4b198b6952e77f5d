package testing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/dashboard"
)

var (
	_ dashboard.Clock             = (*FakeClock)(nil)
	_ dashboard.StatsSource       = (*FakeStats)(nil)
	_ dashboard.MonitoringTrigger = (*FakeTrigger)(nil)
	_ dashboard.CardSlot          = (*RecordingCard)(nil)
	_ dashboard.Chart             = (*RecordingChart)(nil)
	_ dashboard.Progress          = (*RecordingProgress)(nil)
	_ dashboard.Reloader          = (*RecordingReloader)(nil)
	_ dashboard.Notifier          = (*RecordingNotifier)(nil)
)

func TestFakeClock_AfterFuncFiresInOrder(t *testing.T) {
	c := NewFakeClock()
	var order []string

	c.AfterFunc(2*time.Second, func() { order = append(order, "late") })
	c.AfterFunc(time.Second, func() { order = append(order, "early") })
	stopped := c.AfterFunc(time.Second, func() { order = append(order, "stopped") })

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())
	assert.Equal(t, 2, c.PendingTimers())

	c.Advance(3 * time.Second)
	assert.Equal(t, []string{"early", "late"}, order)
	assert.Equal(t, 0, c.PendingTimers())
}

func TestFakeClock_Ticker(t *testing.T) {
	c := NewFakeClock()
	tk := c.NewTicker(10 * time.Second)

	c.Advance(25 * time.Second)
	assert.Len(t, tk.C(), 2)

	tk.Stop()
	c.Advance(time.Minute)
	assert.Len(t, tk.C(), 2)
	assert.Equal(t, 0, c.ActiveTickers())
}

func TestFakeStats_Sequence(t *testing.T) {
	f := &FakeStats{Snapshots: []*api.StatsSnapshot{{TotalMentions: 1}, {TotalMentions: 2}}}

	s, err := f.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalMentions)

	for i := 0; i < 2; i++ {
		s, err = f.FetchStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, s.TotalMentions)
	}
	assert.Equal(t, 3, f.Calls())

	f.Err = errors.New("down")
	_, err = f.FetchStats(context.Background())
	assert.Error(t, err)
}

func TestFakeStats_GateHonoursContext(t *testing.T) {
	f := NewFakeStats(&api.StatsSnapshot{})
	f.Gate(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FetchStats(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecordingNotifier_Count(t *testing.T) {
	n := &RecordingNotifier{}
	n.Notify(dashboard.KindDanger, "a")
	n.Notify(dashboard.KindDanger, "b")
	n.Notify(dashboard.KindInfo, "c")

	assert.Equal(t, 2, n.Count(dashboard.KindDanger))
	assert.Len(t, n.Notices(), 3)
}
