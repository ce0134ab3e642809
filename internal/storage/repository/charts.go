package repository

import (
	"context"
	"fmt"

	"github.com/NikolaMax/ticketing-backend/internal/models"
)

// Chart aggregates. Every query counts only sold tickets; the optional
// interval restricts by sale date, [start, end). Rows come back ordered
// by the metric descending, name ascending on ties.

// IncomeByEvent sums ticket income per event.
func (s *Storage) IncomeByEvent(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	const op = "storage.IncomeByEvent"
	query := `SELECT e.name, COALESCE(SUM(t.price), 0) AS metric
			  FROM tickets t
			  JOIN events e ON e.id = t.event_id
			  WHERE t.sold = true` + intervalClause(interval) + `
			  GROUP BY e.name
			  ORDER BY metric DESC, e.name ASC`
	return s.chartRows(ctx, op, query, interval)
}

// TicketsSoldByEvent counts sold tickets per event.
func (s *Storage) TicketsSoldByEvent(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	const op = "storage.TicketsSoldByEvent"
	query := `SELECT e.name, COUNT(*)::float8 AS metric
			  FROM tickets t
			  JOIN events e ON e.id = t.event_id
			  WHERE t.sold = true` + intervalClause(interval) + `
			  GROUP BY e.name
			  ORDER BY metric DESC, e.name ASC`
	return s.chartRows(ctx, op, query, interval)
}

// IncomeByLocation sums ticket income per location.
func (s *Storage) IncomeByLocation(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	const op = "storage.IncomeByLocation"
	query := `SELECT l.name, COALESCE(SUM(t.price), 0) AS metric
			  FROM tickets t
			  JOIN events e ON e.id = t.event_id
			  JOIN locations l ON l.id = e.location_id
			  WHERE t.sold = true` + intervalClause(interval) + `
			  GROUP BY l.name
			  ORDER BY metric DESC, l.name ASC`
	return s.chartRows(ctx, op, query, interval)
}

// TicketsSoldByLocation counts sold tickets per location.
func (s *Storage) TicketsSoldByLocation(ctx context.Context, interval *models.DateInterval) ([]models.ChartRow, error) {
	const op = "storage.TicketsSoldByLocation"
	query := `SELECT l.name, COUNT(*)::float8 AS metric
			  FROM tickets t
			  JOIN events e ON e.id = t.event_id
			  JOIN locations l ON l.id = e.location_id
			  WHERE t.sold = true` + intervalClause(interval) + `
			  GROUP BY l.name
			  ORDER BY metric DESC, l.name ASC`
	return s.chartRows(ctx, op, query, interval)
}

func intervalClause(interval *models.DateInterval) string {
	if interval == nil {
		return ""
	}
	return ` AND t.sale_date >= $1 AND t.sale_date < $2`
}

func (s *Storage) chartRows(ctx context.Context, op, query string, interval *models.DateInterval) ([]models.ChartRow, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var args []any
	if interval != nil {
		args = append(args, interval.Start, interval.End)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ChartRow
	for rows.Next() {
		var row models.ChartRow
		if err = rows.Scan(&row.Name, &row.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SystemInfo collects the summary counters of the sysinfo endpoint.
func (s *Storage) SystemInfo(ctx context.Context) (*models.SystemInfo, error) {
	const op = "storage.SystemInfo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM users WHERE role IN ('admin', 'sys_admin')),
			      (SELECT COUNT(*) FROM users WHERE role = 'registered_user'),
			      (SELECT COUNT(*) FROM events),
			      (SELECT COALESCE(SUM(price), 0) FROM tickets WHERE sold = true),
			      (SELECT COUNT(*) FROM tickets WHERE sold = true)`
	info := &models.SystemInfo{}
	if err := s.DB.QueryRowContext(ctx, query).Scan(
		&info.NumberOfAdmins, &info.NumberOfUsers, &info.NumberOfEvents,
		&info.AllTimeIncome, &info.AllTimeTickets); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}
