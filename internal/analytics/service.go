package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/averyclark/porchlight/internal/platform/apperr"
	"github.com/averyclark/porchlight/internal/platform/validate"
	"github.com/averyclark/porchlight/pkg/uuidv7"
)

// periodDurations maps the accepted period names to lookback lengths.
var periodDurations = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// DefaultPeriod is used when the stats caller omits the period parameter.
const DefaultPeriod = "7d"

type Service struct {
	repo   Repository
	logger *slog.Logger

	// now is swappable for window tests.
	now func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Track records an event. Storage failures are logged and swallowed; the
// caller always sees success so tracking never degrades the page.
func (service *Service) Track(context context.Context, input *TrackInput, referrer, userAgent, ip string) {
	var err error

	switch input.Type {
	case EventContentView:
		err = service.trackContentView(context, input, referrer)
	case EventPageView:
		err = service.trackPageView(context, input, referrer, userAgent, ip)
	default:
		service.logger.Warn("analytics_unknown_event", slog.String("type", input.Type))
		return
	}

	if err != nil {
		service.logger.Error("analytics_track_failed",
			slog.String("type", input.Type),
			slog.String("error", err.Error()))
	}
}

func (service *Service) trackPageView(context context.Context, input *TrackInput, referrer, userAgent, ip string) error {
	if input.Path == "" {
		return nil
	}
	return service.repo.InsertPageView(context, &PageView{
		ID:        uuidv7.New(),
		Path:      input.Path,
		Referrer:  referrer,
		UserAgent: userAgent,
		IP:        ip,
	})
}

func (service *Service) trackContentView(context context.Context, input *TrackInput, referrer string) error {
	switch input.ContentType {
	case ContentTypeRecipe, ContentTypeProject, ContentTypeVehiclePost:
	default:
		service.logger.Warn("analytics_unknown_content_type", slog.String("content_type", input.ContentType))
		return nil
	}
	if input.Slug == "" {
		return nil
	}
	return service.repo.InsertContentView(context, &ContentView{
		ID:          uuidv7.New(),
		ContentType: input.ContentType,
		ContentID:   input.ContentID,
		Slug:        input.Slug,
		Referrer:    referrer,
	})
}

// StatsWindow resolves the [from, to) bounds for a period ending at now,
// shifted back `shift` whole periods. shift 0 is the current window, shift 1
// the previous one.
func StatsWindow(now time.Time, period string, shift int) (from, to time.Time, err error) {
	duration, ok := periodDurations[period]
	if !ok {
		return time.Time{}, time.Time{}, apperr.ValidationError("Unknown period", apperr.FieldError{
			Field: "period", Message: "must be one of 24h, 7d, 30d, 90d",
		})
	}

	to = now.Add(-time.Duration(shift) * duration)
	from = to.Add(-duration)
	return from, to, nil
}

// Stats returns the dashboard aggregates for the period ending now, plus the
// prior window when previous is set.
func (service *Service) Stats(context context.Context, period string, previous bool) (*Stats, error) {
	if period == "" {
		period = DefaultPeriod
	}

	validator := &validate.Validator{}
	validator.OneOf("period", period, "24h", "7d", "30d", "90d")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now().UTC()

	from, to, err := StatsWindow(now, period, 0)
	if err != nil {
		return nil, err
	}
	current, err := service.repo.WindowStats(context, from, to)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Period: period, Current: *current}

	if previous {
		prevFrom, prevTo, err := StatsWindow(now, period, 1)
		if err != nil {
			return nil, err
		}
		prev, err := service.repo.WindowStats(context, prevFrom, prevTo)
		if err != nil {
			return nil, err
		}
		stats.Previous = prev
	}

	return stats, nil
}
