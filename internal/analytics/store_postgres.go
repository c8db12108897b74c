package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averyclark/porchlight/internal/platform/database/schema"
	"github.com/averyclark/porchlight/internal/platform/dberr"
)

// topPathsLimit and topContentLimit bound the dashboard aggregates.
const (
	topPathsLimit   = 10
	topContentLimit = 5
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) InsertPageView(ctx context.Context, pv *PageView) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING %s`,
		schema.AnalyticsPageView.Table,
		schema.AnalyticsPageView.ID, schema.AnalyticsPageView.Path,
		schema.AnalyticsPageView.Referrer, schema.AnalyticsPageView.UserAgent,
		schema.AnalyticsPageView.IP,
		schema.AnalyticsPageView.CreatedAt,
		schema.AnalyticsPageView.CreatedAt,
	)
	err := repository.db.QueryRow(ctx, query, pv.ID, pv.Path, pv.Referrer, pv.UserAgent, pv.IP).Scan(&pv.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_pageview")
	}
	return nil
}

func (repository *PostgresRepository) InsertContentView(ctx context.Context, cv *ContentView) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING %s`,
		schema.AnalyticsContentView.Table,
		schema.AnalyticsContentView.ID, schema.AnalyticsContentView.ContentType,
		schema.AnalyticsContentView.ContentID, schema.AnalyticsContentView.Slug,
		schema.AnalyticsContentView.Referrer,
		schema.AnalyticsContentView.CreatedAt,
		schema.AnalyticsContentView.CreatedAt,
	)
	err := repository.db.QueryRow(ctx, query, cv.ID, cv.ContentType, cv.ContentID, cv.Slug, cv.Referrer).Scan(&cv.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_contentview")
	}
	return nil
}

func (repository *PostgresRepository) WindowStats(ctx context.Context, from, to time.Time) (*WindowStats, error) {
	stats := &WindowStats{
		TopPaths:   []PathCount{},
		TopContent: map[string][]SlugCount{},
	}

	totalsQuery := fmt.Sprintf(`
		SELECT count(*), count(DISTINCT %s)
		FROM %s
		WHERE %s >= $1 AND %s < $2`,
		schema.AnalyticsPageView.Path,
		schema.AnalyticsPageView.Table,
		schema.AnalyticsPageView.CreatedAt, schema.AnalyticsPageView.CreatedAt,
	)
	if err := repository.db.QueryRow(ctx, totalsQuery, from, to).Scan(&stats.TotalPageViews, &stats.UniquePaths); err != nil {
		return nil, dberr.Wrap(err, "pageview_totals")
	}

	topPathsQuery := fmt.Sprintf(`
		SELECT %s, count(*) AS views
		FROM %s
		WHERE %s >= $1 AND %s < $2
		GROUP BY %s
		ORDER BY views DESC, %s ASC
		LIMIT %d`,
		schema.AnalyticsPageView.Path,
		schema.AnalyticsPageView.Table,
		schema.AnalyticsPageView.CreatedAt, schema.AnalyticsPageView.CreatedAt,
		schema.AnalyticsPageView.Path,
		schema.AnalyticsPageView.Path,
		topPathsLimit,
	)
	rows, err := repository.db.Query(ctx, topPathsQuery, from, to)
	if err != nil {
		return nil, dberr.Wrap(err, "top_paths")
	}
	defer rows.Close()

	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_top_path")
		}
		stats.TopPaths = append(stats.TopPaths, pc)
	}
	rows.Close()

	// Top slugs per content type, ranked within each type.
	topContentQuery := fmt.Sprintf(`
		SELECT %s, %s, views FROM (
			SELECT %s, %s, count(*) AS views,
				row_number() OVER (PARTITION BY %s ORDER BY count(*) DESC, %s ASC) AS rank
			FROM %s
			WHERE %s >= $1 AND %s < $2
			GROUP BY %s, %s
		) ranked
		WHERE rank <= %d`,
		schema.AnalyticsContentView.ContentType, schema.AnalyticsContentView.Slug,
		schema.AnalyticsContentView.ContentType, schema.AnalyticsContentView.Slug,
		schema.AnalyticsContentView.ContentType, schema.AnalyticsContentView.Slug,
		schema.AnalyticsContentView.Table,
		schema.AnalyticsContentView.CreatedAt, schema.AnalyticsContentView.CreatedAt,
		schema.AnalyticsContentView.ContentType, schema.AnalyticsContentView.Slug,
		topContentLimit,
	)
	rows, err = repository.db.Query(ctx, topContentQuery, from, to)
	if err != nil {
		return nil, dberr.Wrap(err, "top_content")
	}
	defer rows.Close()

	for rows.Next() {
		var contentType string
		var sc SlugCount
		if err := rows.Scan(&contentType, &sc.Slug, &sc.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_top_content")
		}
		stats.TopContent[contentType] = append(stats.TopContent[contentType], sc)
	}

	return stats, nil
}
