package schema

// AnalyticsContentViewTable represents the 'analytics.contentview' table (append-only)
type AnalyticsContentViewTable struct {
	Table       string
	ID          string
	ContentType string
	ContentID   string
	Slug        string
	Referrer    string
	CreatedAt   string
}

// AnalyticsContentView is the schema definition for analytics.contentview
var AnalyticsContentView = AnalyticsContentViewTable{
	Table:       "analytics.contentview",
	ID:          "id",
	ContentType: "contenttype",
	ContentID:   "contentid",
	Slug:        "slug",
	Referrer:    "referrer",
	CreatedAt:   "createdat",
}
