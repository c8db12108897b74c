package schema

// AnalyticsPageViewTable represents the 'analytics.pageview' table (append-only)
type AnalyticsPageViewTable struct {
	Table     string
	ID        string
	Path      string
	Referrer  string
	UserAgent string
	IP        string
	CreatedAt string
}

// AnalyticsPageView is the schema definition for analytics.pageview
var AnalyticsPageView = AnalyticsPageViewTable{
	Table:     "analytics.pageview",
	ID:        "id",
	Path:      "path",
	Referrer:  "referrer",
	UserAgent: "useragent",
	IP:        "ip",
	CreatedAt: "createdat",
}
