package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civic-portal/appeal-service/internal/domain"
)

// AppealHistoryRepository reads audit entries. Writes ride the appeal
// transaction in AppealRepository.
type AppealHistoryRepository interface {
	ListByAppeal(ctx context.Context, appealID string) ([]domain.HistoryEntry, error)
}

type appealHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewAppealHistoryRepository builds repository.
func NewAppealHistoryRepository(pool *pgxpool.Pool) AppealHistoryRepository {
	return &appealHistoryRepository{pool: pool}
}

func (r *appealHistoryRepository) ListByAppeal(ctx context.Context, appealID string) ([]domain.HistoryEntry, error) {
	const query = `
        SELECT id, appeal_id, status, comment, actor_id, created_at
        FROM appeal_history WHERE appeal_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, appealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.AppealID,
			&entry.Status,
			&entry.Comment,
			&entry.ActorID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
