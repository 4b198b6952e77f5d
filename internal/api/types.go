package api

// CompanyCount is one row of the per-company mention breakdown.
type CompanyCount struct {
	CompanyName string `json:"company_name"`
	Count       int    `json:"count"`
}

// SourceCount is one row of the per-source mention breakdown.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// StatsSnapshot is a point-in-time aggregate returned by GET /api/stats.
// Company and source rows arrive sorted by count, descending.
type StatsSnapshot struct {
	TotalMentions   int            `json:"total_mentions"`
	RecentMentions  int            `json:"recent_mentions"`
	CompanyMentions []CompanyCount `json:"company_mentions"`
	SourceMentions  []SourceCount  `json:"source_mentions"`

	// RecentDetails holds the newest mentions from the last 24h when the
	// backend includes them. Optional.
	RecentDetails []Mention `json:"recent_details,omitempty"`
}

// ActiveCompanies is the number of distinct companies with at least one mention.
func (s *StatsSnapshot) ActiveCompanies() int {
	return len(s.CompanyMentions)
}

// MonitoringResult is the outcome of a monitoring run (or any trigger-style
// endpoint that answers {success, message}).
type MonitoringResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Mention is a single news or social mention of a portfolio company.
type Mention struct {
	ID             int64    `json:"id"`
	CompanyName    string   `json:"company_name"`
	Title          string   `json:"title"`
	Content        string   `json:"content,omitempty"`
	URL            string   `json:"url"`
	Source         string   `json:"source"`
	PublishedDate  string   `json:"published_date,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// Sentiment buckets the score with a ±0.1 neutral band.
func (m Mention) Sentiment() string {
	if m.SentimentScore == nil {
		return "neutral"
	}
	switch score := *m.SentimentScore; {
	case score > 0.1:
		return "positive"
	case score < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

// Company is a tracked portfolio company.
type Company struct {
	Name        string   `json:"name"`
	Fund        string   `json:"fund"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// CleanResult is returned by the false-positive cleanup endpoint.
type CleanResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}
