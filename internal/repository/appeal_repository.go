package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civic-portal/appeal-service/internal/domain"
)

// ErrVersionConflict signals a concurrent-write collision on save. Callers
// reload and retry.
var ErrVersionConflict = errors.New("appeal modified concurrently")

// AppealRepository encapsulates appeal persistence. Writes always carry the
// accompanying history entry in the same transaction, so the stored record
// and its audit trail cannot diverge.
type AppealRepository interface {
	// CreateWithHistory inserts the appeal and its seed history entry
	// atomically.
	CreateWithHistory(ctx context.Context, appeal *domain.Appeal, entry *domain.HistoryEntry) error
	// UpdateWithHistory applies an optimistic version check and appends the
	// history entry in one transaction; ErrVersionConflict when the stored
	// version moved, pgx.ErrNoRows when the appeal is gone.
	UpdateWithHistory(ctx context.Context, appeal *domain.Appeal, entry *domain.HistoryEntry) error
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Appeal, error)
	// List returns a read-committed snapshot ordered by created_at DESC.
	// A non-positive limit returns everything.
	List(ctx context.Context, limit int) ([]domain.Appeal, error)
}

type appealRepository struct {
	pool *pgxpool.Pool
}

// NewAppealRepository instantiates repository.
func NewAppealRepository(pool *pgxpool.Pool) AppealRepository {
	return &appealRepository{pool: pool}
}

func (r *appealRepository) CreateWithHistory(ctx context.Context, appeal *domain.Appeal, entry *domain.HistoryEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO appeals (tracking_number, citizen_name, email, phone, address, category, subject, description, status, priority, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, version, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		appeal.TrackingNumber,
		appeal.CitizenName,
		appeal.Email,
		appeal.Phone,
		appeal.Address,
		appeal.Category,
		appeal.Subject,
		appeal.Description,
		appeal.Status,
		appeal.Priority,
		appeal.AssignedTo,
	).Scan(&appeal.ID, &appeal.Version, &appeal.CreatedAt, &appeal.UpdatedAt); err != nil {
		return err
	}

	entry.AppealID = appeal.ID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = appeal.CreatedAt
	}
	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *appealRepository) UpdateWithHistory(ctx context.Context, appeal *domain.Appeal, entry *domain.HistoryEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE appeals SET status=$1, priority=$2, assigned_to=$3, updated_at=$4, version=version+1
        WHERE id=$5 AND version=$6`
	cmd, err := tx.Exec(ctx, query,
		appeal.Status,
		appeal.Priority,
		appeal.AssignedTo,
		appeal.UpdatedAt,
		appeal.ID,
		appeal.Version,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM appeals WHERE id=$1)`, appeal.ID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrVersionConflict
		}
		return pgx.ErrNoRows
	}

	entry.AppealID = appeal.ID
	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	appeal.Version++
	return nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, entry *domain.HistoryEntry) error {
	const query = `
        INSERT INTO appeal_history (appeal_id, status, comment, actor_id, created_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return tx.QueryRow(ctx, query,
		entry.AppealID,
		entry.Status,
		entry.Comment,
		entry.ActorID,
		entry.CreatedAt,
	).Scan(&entry.ID)
}

func (r *appealRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Appeal, error) {
	const query = `
        SELECT id, tracking_number, citizen_name, email, phone, address, category, subject,
               description, status, priority, assigned_to, version, created_at, updated_at
        FROM appeals WHERE tracking_number=$1`
	var appeal domain.Appeal
	if err := r.pool.QueryRow(ctx, query, trackingNumber).Scan(
		&appeal.ID,
		&appeal.TrackingNumber,
		&appeal.CitizenName,
		&appeal.Email,
		&appeal.Phone,
		&appeal.Address,
		&appeal.Category,
		&appeal.Subject,
		&appeal.Description,
		&appeal.Status,
		&appeal.Priority,
		&appeal.AssignedTo,
		&appeal.Version,
		&appeal.CreatedAt,
		&appeal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appeal, nil
}

func (r *appealRepository) List(ctx context.Context, limit int) ([]domain.Appeal, error) {
	query := `
        SELECT id, tracking_number, citizen_name, email, phone, address, category, subject,
               description, status, priority, assigned_to, version, created_at, updated_at
        FROM appeals ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $1"
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppeals(rows)
}

func scanAppeals(rows pgx.Rows) ([]domain.Appeal, error) {
	var result []domain.Appeal
	for rows.Next() {
		var appeal domain.Appeal
		if err := rows.Scan(
			&appeal.ID,
			&appeal.TrackingNumber,
			&appeal.CitizenName,
			&appeal.Email,
			&appeal.Phone,
			&appeal.Address,
			&appeal.Category,
			&appeal.Subject,
			&appeal.Description,
			&appeal.Status,
			&appeal.Priority,
			&appeal.AssignedTo,
			&appeal.Version,
			&appeal.CreatedAt,
			&appeal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, appeal)
	}
	return result, rows.Err()
}
