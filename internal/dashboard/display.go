package dashboard

import (
	"strconv"

	"github.com/0xpinara/company-tracker/internal/api"
)

// Chart entry limits.
const (
	DefaultCompanyLimit = 10
	DefaultSourceLimit  = 8
)

// Display maps a snapshot onto the dashboard's cards and charts. Any field
// may be nil when the current view doesn't show that element.
type Display struct {
	Total     CardSlot // total_mentions
	Recent    CardSlot // recent_mentions
	Companies CardSlot // number of company_mentions entries

	CompanyChart Chart
	SourceChart  Chart

	Feed MentionFeed

	CompanyLimit int
	SourceLimit  int
}

// Apply updates cards, charts and the mention feed from s. A nil snapshot is
// ignored.
func (d *Display) Apply(s *api.StatsSnapshot) {
	if d == nil || s == nil {
		return
	}
	d.UpdateCards(s)
	d.UpdateCharts(s)
	if d.Feed != nil && s.RecentDetails != nil {
		d.Feed.SetMentions(s.RecentDetails)
	}
}

// UpdateCards sets the three card texts.
func (d *Display) UpdateCards(s *api.StatsSnapshot) {
	if d.Total != nil {
		d.Total.SetText(strconv.Itoa(s.TotalMentions))
	}
	if d.Recent != nil {
		d.Recent.SetText(strconv.Itoa(s.RecentMentions))
	}
	if d.Companies != nil {
		d.Companies.SetText(strconv.Itoa(s.ActiveCompanies()))
	}
}

// UpdateCharts replaces both chart series with the leading entries of the
// snapshot and redraws them.
func (d *Display) UpdateCharts(s *api.StatsSnapshot) {
	if d.CompanyChart != nil {
		labels, values := TopCompanies(s.CompanyMentions, limitOr(d.CompanyLimit, DefaultCompanyLimit))
		d.CompanyChart.SetData(labels, values)
		d.CompanyChart.Redraw()
	}
	if d.SourceChart != nil {
		labels, values := TopSources(s.SourceMentions, limitOr(d.SourceLimit, DefaultSourceLimit))
		d.SourceChart.SetData(labels, values)
		d.SourceChart.Redraw()
	}
}

// TopCompanies returns the first n entries as chart labels and values.
// Order is preserved; the server already sorts by count.
func TopCompanies(rows []api.CompanyCount, n int) ([]string, []float64) {
	if len(rows) > n {
		rows = rows[:n]
	}
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.CompanyName
		values[i] = float64(r.Count)
	}
	return labels, values
}

// TopSources returns the first n entries as chart labels and values.
func TopSources(rows []api.SourceCount, n int) ([]string, []float64) {
	if len(rows) > n {
		rows = rows[:n]
	}
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.Source
		values[i] = float64(r.Count)
	}
	return labels, values
}

func limitOr(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
