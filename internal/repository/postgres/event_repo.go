package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventhive/internal/domain"
)

const eventColumns = `id, title, description, category, event_type, organizer_id, date, start_time,
		location, is_virtual, capacity, registered_count, image, tags, status,
		is_private, access_code, allowed_domains, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, category, event_type, organizer_id, date, start_time,
			location, is_virtual, capacity, registered_count, image, tags, status,
			is_private, access_code, allowed_domains, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`
	var imageNull, codeNull sql.NullString
	if e.Image != "" {
		imageNull = sql.NullString{String: e.Image, Valid: true}
	}
	if e.AccessControl.AccessCode != "" {
		codeNull = sql.NullString{String: e.AccessControl.AccessCode, Valid: true}
	}
	return querier(ctx, r.DB).QueryRowContext(ctx, query,
		e.Title, e.Description, e.Category, e.EventType, e.OrganizerID, e.Date, e.StartTime,
		e.Location, e.IsVirtual, e.Capacity, e.RegisteredCount, imageNull, pq.Array(e.Tags), e.Status,
		e.AccessControl.IsPrivate, codeNull, pq.Array(e.AccessControl.AllowedDomains), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var imageNull, codeNull sql.NullString
	var tags, domains pq.StringArray
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.EventType, &e.OrganizerID, &e.Date, &e.StartTime,
		&e.Location, &e.IsVirtual, &e.Capacity, &e.RegisteredCount, &imageNull, &tags, &e.Status,
		&e.AccessControl.IsPrivate, &codeNull, &domains, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if imageNull.Valid {
		e.Image = imageNull.String
	}
	if codeNull.Valid {
		e.AccessControl.AccessCode = codeNull.String
	}
	e.Tags = []string(tags)
	e.AccessControl.AllowedDomains = []string(domains)
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(querier(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// GetByIDForUpdate locks the event row for the duration of the surrounding
// transaction, serializing concurrent registrations per event.
func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	e, err := scanEvent(querier(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	where := []string{}
	args := []any{}
	n := 1
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	if filter.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", n))
		args = append(args, filter.Category)
		n++
	}
	if filter.EventType != "" {
		where = append(where, fmt.Sprintf("event_type = $%d", n))
		args = append(args, filter.EventType)
		n++
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", n))
		args = append(args, filter.Status)
		n++
	}
	if filter.UpcomingOnly {
		where = append(where, "date >= NOW()")
	}
	if !filter.IncludePrivate {
		where = append(where, "is_private = FALSE")
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC"

	rows, err := querier(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`
	rows, err := querier(ctx, r.DB).QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update persists every mutable field. registered_count is deliberately not
// part of the SET list; it moves only through the counter primitives below.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET title = $1, description = $2, category = $3, event_type = $4, date = $5,
			start_time = $6, location = $7, is_virtual = $8, capacity = $9, image = $10, tags = $11,
			status = $12, is_private = $13, access_code = $14, allowed_domains = $15, updated_at = NOW()
		WHERE id = $16
	`
	var imageNull, codeNull sql.NullString
	if e.Image != "" {
		imageNull = sql.NullString{String: e.Image, Valid: true}
	}
	if e.AccessControl.AccessCode != "" {
		codeNull = sql.NullString{String: e.AccessControl.AccessCode, Valid: true}
	}
	result, err := querier(ctx, r.DB).ExecContext(ctx, query,
		e.Title, e.Description, e.Category, e.EventType, e.Date,
		e.StartTime, e.Location, e.IsVirtual, e.Capacity, imageNull, pq.Array(e.Tags),
		e.Status, e.AccessControl.IsPrivate, codeNull, pq.Array(e.AccessControl.AllowedDomains), e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) IncrementRegisteredCount(ctx context.Context, id string) error {
	query := `UPDATE events SET registered_count = registered_count + 1, updated_at = NOW() WHERE id = $1`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) DecrementRegisteredCount(ctx context.Context, id string) error {
	query := `UPDATE events SET registered_count = registered_count - 1, updated_at = NOW() WHERE id = $1 AND registered_count > 0`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
