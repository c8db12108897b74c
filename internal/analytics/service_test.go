package analytics_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/internal/analytics"
)

type fakeRepository struct {
	pageViews    []analytics.PageView
	contentViews []analytics.ContentView
	windows      [][2]time.Time
	insertErr    error
}

func (f *fakeRepository) InsertPageView(_ context.Context, pv *analytics.PageView) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.pageViews = append(f.pageViews, *pv)
	return nil
}

func (f *fakeRepository) InsertContentView(_ context.Context, cv *analytics.ContentView) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.contentViews = append(f.contentViews, *cv)
	return nil
}

func (f *fakeRepository) WindowStats(_ context.Context, from, to time.Time) (*analytics.WindowStats, error) {
	f.windows = append(f.windows, [2]time.Time{from, to})
	return &analytics.WindowStats{
		TopPaths:   []analytics.PathCount{},
		TopContent: map[string][]analytics.SlugCount{},
	}, nil
}

func newTestService(repo *fakeRepository) *analytics.Service {
	return analytics.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestStatsWindow maps each period name to the right lookback bounds; the
7-day previous window must end exactly where the current one begins.
*/
func TestStatsWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period string
		length time.Duration
	}{
		{"24h", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"30d", 30 * 24 * time.Hour},
		{"90d", 90 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			from, to, err := analytics.StatsWindow(now, tt.period, 0)
			require.NoError(t, err)
			assert.Equal(t, now, to)
			assert.Equal(t, now.Add(-tt.length), from)

			// The previous window is one period earlier and adjacent:
			// nothing in it overlaps the current window.
			prevFrom, prevTo, err := analytics.StatsWindow(now, tt.period, 1)
			require.NoError(t, err)
			assert.Equal(t, from, prevTo)
			assert.Equal(t, from.Add(-tt.length), prevFrom)
		})
	}
}

func TestStatsWindow_UnknownPeriod(t *testing.T) {
	_, _, err := analytics.StatsWindow(time.Now(), "1y", 0)
	require.Error(t, err)
}

/*
TestService_Track_PageView records a page view with request-derived fields.
*/
func TestService_Track_PageView(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	service.Track(context.Background(), &analytics.TrackInput{
		Type: analytics.EventPageView,
		Path: "/recipes/smoked-brisket-chili",
	}, "https://news.ycombinator.com", "Mozilla/5.0", "203.0.113.9")

	require.Len(t, repo.pageViews, 1)
	pv := repo.pageViews[0]
	assert.Equal(t, "/recipes/smoked-brisket-chili", pv.Path)
	assert.Equal(t, "https://news.ycombinator.com", pv.Referrer)
	assert.Equal(t, "Mozilla/5.0", pv.UserAgent)
	assert.Equal(t, "203.0.113.9", pv.IP)
	assert.NotEmpty(t, pv.ID)
}

/*
TestService_Track_ContentView records a content view and drops unknown
content types without error.
*/
func TestService_Track_ContentView(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	service.Track(context.Background(), &analytics.TrackInput{
		Type:        analytics.EventContentView,
		ContentType: analytics.ContentTypeRecipe,
		Slug:        "smoked-brisket-chili",
	}, "", "", "")
	require.Len(t, repo.contentViews, 1)

	service.Track(context.Background(), &analytics.TrackInput{
		Type:        analytics.EventContentView,
		ContentType: "podcast",
		Slug:        "episode-1",
	}, "", "", "")
	assert.Len(t, repo.contentViews, 1)
}

/*
TestService_Track_SwallowsStorageFailure: a failing insert is logged, not
returned; Track has no error path for the caller.
*/
func TestService_Track_SwallowsStorageFailure(t *testing.T) {
	repo := &fakeRepository{insertErr: errors.New("connection refused")}
	service := newTestService(repo)

	// Must not panic and has nothing to return.
	service.Track(context.Background(), &analytics.TrackInput{
		Type: analytics.EventPageView,
		Path: "/",
	}, "", "", "")

	assert.Empty(t, repo.pageViews)
}

/*
TestService_Stats queries one window by default and two when previous is
requested.
*/
func TestService_Stats(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	stats, err := service.Stats(context.Background(), "30d", false)
	require.NoError(t, err)
	assert.Equal(t, "30d", stats.Period)
	assert.Nil(t, stats.Previous)
	assert.Len(t, repo.windows, 1)

	repo.windows = nil
	stats, err = service.Stats(context.Background(), "", true)
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultPeriod, stats.Period)
	require.NotNil(t, stats.Previous)
	require.Len(t, repo.windows, 2)

	// Current window ends at now; previous ends where current begins.
	assert.Equal(t, repo.windows[0][0], repo.windows[1][1])
}

func TestService_Stats_BadPeriod(t *testing.T) {
	service := newTestService(&fakeRepository{})

	_, err := service.Stats(context.Background(), "365d", false)
	require.Error(t, err)
}
