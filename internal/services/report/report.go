// Package report computes the chart aggregates: income and tickets sold
// per event and per location, optionally restricted to a date interval,
// with a trailing synthetic "average" row.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/NikolaMax/ticketing-backend/internal/models"
)

// MsgInvalidInterval is the literal validation message returned for an
// interval whose start does not precede its end.
const MsgInvalidInterval = "Start date must be after end date"

// ErrInvalidInterval rejects inverted intervals before any query runs.
var ErrInvalidInterval = errors.New(MsgInvalidInterval)

// dateLayout is the wire format of interval bounds.
const dateLayout = "2006-01-02"

// ChartRepository is the storage contract of the report service.
type ChartRepository interface {
	IncomeByEvent(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error)
	TicketsSoldByEvent(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error)
	IncomeByLocation(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error)
	TicketsSoldByLocation(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error)
	SystemInfo(ctx context.Context) (*models.SystemInfo, error)
}

// ChartCache caches the unrestricted aggregates. Interval queries always
// bypass it.
type ChartCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service implements the reporting aggregator.
type Service struct {
	repo     ChartRepository
	cache    ChartCache
	cacheTTL time.Duration
}

// NewService wires the report service. cache may be nil to disable caching.
func NewService(repo ChartRepository, cache ChartCache, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ParseInterval validates and parses an interval request. The start must
// strictly precede the end, otherwise ErrInvalidInterval is returned and
// no aggregation runs.
func ParseInterval(req models.DummyDateInterval) (*models.DateInterval, error) {
	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}
	return &models.DateInterval{Start: start, End: end}, nil
}

// EventIncomes returns income per event, with the average row appended.
func (s *Service) EventIncomes(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	return s.aggregate(ctx, "charts:event_incomes", interval, s.repo.IncomeByEvent)
}

// EventTicketsSold returns sold ticket counts per event.
func (s *Service) EventTicketsSold(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	return s.aggregate(ctx, "charts:event_tickets_sold", interval, s.repo.TicketsSoldByEvent)
}

// LocationIncomes returns income per location.
func (s *Service) LocationIncomes(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	return s.aggregate(ctx, "charts:location_incomes", interval, s.repo.IncomeByLocation)
}

// LocationTicketsSold returns sold ticket counts per location.
func (s *Service) LocationTicketsSold(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	return s.aggregate(ctx, "charts:location_tickets_sold", interval, s.repo.TicketsSoldByLocation)
}

// SystemInfo returns the summary counters of the system.
func (s *Service) SystemInfo(ctx context.Context) (*models.SystemInfo, error) {
	return s.repo.SystemInfo(ctx)
}

// aggregate runs one chart query and appends the average row. Unrestricted
// results are served from and written to the cache.
func (s *Service) aggregate(ctx context.Context, cacheKey string, interval *models.DateInterval,
	query func(context.Context, *models.DateInterval) ([]models.ChartRow, error)) ([]models.ChartRow, error) {

	if interval != nil && !interval.Start.Before(interval.End) {
		return nil, ErrInvalidInterval
	}

	if interval == nil && s.cache != nil {
		var cached []models.ChartRow
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := query(ctx, interval)
	if err != nil {
		return nil, err
	}
	rows = appendAverage(rows)

	if interval == nil && s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, rows, s.cacheTTL)
	}
	return rows, nil
}

// appendAverage adds the trailing "average" row, the arithmetic mean of
// the selected rows. An empty selection stays empty: no average row.
func appendAverage(rows []models.ChartRow) []models.ChartRow {
	if len(rows) == 0 {
		return []models.ChartRow{}
	}
	var total float64
	for _, row := range rows {
		total += row.Value
	}
	return append(rows, models.ChartRow{
		Name:  models.AverageRowName,
		Value: total / float64(len(rows)),
	})
}
