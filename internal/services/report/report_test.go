package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NikolaMax/ticketing-backend/internal/models"
)

type mockChartRepository struct {
	mock.Mock
}

func (m *mockChartRepository) IncomeByEvent(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	args := m.Called(ctx, interval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChartRow), args.Error(1)
}

func (m *mockChartRepository) TicketsSoldByEvent(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	args := m.Called(ctx, interval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChartRow), args.Error(1)
}

func (m *mockChartRepository) IncomeByLocation(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	args := m.Called(ctx, interval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChartRow), args.Error(1)
}

func (m *mockChartRepository) TicketsSoldByLocation(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	args := m.Called(ctx, interval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChartRow), args.Error(1)
}

func (m *mockChartRepository) SystemInfo(ctx context.Context) (*models.SystemInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemInfo), args.Error(1)
}

type mockChartCache struct {
	mock.Mock
}

func (m *mockChartCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *mockChartCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func TestParseInterval(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		interval, err := ParseInterval(models.DummyDateInterval{Start: "2024-01-01", End: "2024-02-01"})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), interval.Start)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), interval.End)
	})

	t.Run("inverted", func(t *testing.T) {
		_, err := ParseInterval(models.DummyDateInterval{Start: "2024-02-01", End: "2024-01-01"})
		require.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("equal bounds", func(t *testing.T) {
		_, err := ParseInterval(models.DummyDateInterval{Start: "2024-01-01", End: "2024-01-01"})
		require.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := ParseInterval(models.DummyDateInterval{Start: "01.01.2024", End: "2024-02-01"})
		require.Error(t, err)
	})
}

func TestService_EventIncomes_AppendsAverage(t *testing.T) {
	repo := new(mockChartRepository)
	svc := NewService(repo, nil, 0)

	repo.On("IncomeByEvent", mock.Anything, (*models.DateInterval)(nil)).
		Return([]models.ChartRow{
			{Name: "Concert", Value: 150},
			{Name: "Play", Value: 30},
		}, nil)

	rows, err := svc.EventIncomes(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.ChartRow{Name: "average", Value: 90}, rows[2])
}

func TestService_EventIncomes_SingleRow(t *testing.T) {
	repo := new(mockChartRepository)
	svc := NewService(repo, nil, 0)

	repo.On("IncomeByEvent", mock.Anything, (*models.DateInterval)(nil)).
		Return([]models.ChartRow{{Name: "Concert", Value: 150}}, nil)

	rows, err := svc.EventIncomes(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// With one row the average equals that row's value.
	assert.Equal(t, models.ChartRow{Name: "average", Value: 150}, rows[1])
}

func TestService_EventIncomes_EmptyStaysEmpty(t *testing.T) {
	repo := new(mockChartRepository)
	svc := NewService(repo, nil, 0)

	repo.On("IncomeByEvent", mock.Anything, (*models.DateInterval)(nil)).
		Return([]models.ChartRow{}, nil)

	rows, err := svc.EventIncomes(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestService_Aggregate_InvalidIntervalBeforeQuery(t *testing.T) {
	repo := new(mockChartRepository)
	svc := NewService(repo, nil, 0)

	inverted := &models.DateInterval{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := svc.EventIncomes(context.Background(), inverted)
	require.ErrorIs(t, err, ErrInvalidInterval)
	repo.AssertNotCalled(t, "IncomeByEvent", mock.Anything, mock.Anything)
}

func TestService_Aggregate_CacheHit(t *testing.T) {
	repo := new(mockChartRepository)
	cache := new(mockChartCache)
	svc := NewService(repo, cache, time.Minute)

	cached := []models.ChartRow{
		{Name: "Concert", Value: 150},
		{Name: "average", Value: 150},
	}
	cache.On("Get", mock.Anything, "charts:event_incomes", mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*[]models.ChartRow) = cached
		}).Return(true, nil)

	rows, err := svc.EventIncomes(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, cached, rows)
	repo.AssertNotCalled(t, "IncomeByEvent", mock.Anything, mock.Anything)
}

func TestService_Aggregate_CacheMissFillsCache(t *testing.T) {
	repo := new(mockChartRepository)
	cache := new(mockChartCache)
	svc := NewService(repo, cache, time.Minute)

	cache.On("Get", mock.Anything, "charts:location_incomes", mock.Anything).Return(false, nil)
	repo.On("IncomeByLocation", mock.Anything, (*models.DateInterval)(nil)).
		Return([]models.ChartRow{{Name: "Arena", Value: 100}}, nil)
	cache.On("Set", mock.Anything, "charts:location_incomes", mock.Anything, time.Minute).Return(nil)

	rows, err := svc.LocationIncomes(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	cache.AssertExpectations(t)
}

func TestService_Aggregate_IntervalBypassesCache(t *testing.T) {
	repo := new(mockChartRepository)
	cache := new(mockChartCache)
	svc := NewService(repo, cache, time.Minute)

	interval := &models.DateInterval{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.On("TicketsSoldByEvent", mock.Anything, interval).
		Return([]models.ChartRow{{Name: "Concert", Value: 2}}, nil)

	rows, err := svc.EventTicketsSold(context.Background(), interval)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Aggregate_QueryError(t *testing.T) {
	repo := new(mockChartRepository)
	svc := NewService(repo, nil, 0)

	repo.On("TicketsSoldByLocation", mock.Anything, (*models.DateInterval)(nil)).
		Return(nil, assert.AnError)

	_, err := svc.LocationTicketsSold(context.Background(), nil)
	require.ErrorIs(t, err, assert.AnError)
}

func TestService_SystemInfo(t *testing.T) {
	repo := new(mockChartRepository)
	svc := NewService(repo, nil, 0)

	info := &models.SystemInfo{NumberOfAdmins: 2, NumberOfUsers: 10, NumberOfEvents: 3, AllTimeIncome: 500, AllTimeTickets: 25}
	repo.On("SystemInfo", mock.Anything).Return(info, nil)

	got, err := svc.SystemInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, info, got)
}
