package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimu90/expert-discovery/internal/domain"
)

// ExpertRepository stores the relational registry of experts. The registry
// seeds the graph loader; expertise itself lives in the graph.
type ExpertRepository struct {
	db *pgxpool.Pool
}

func NewExpertRepository(db *pgxpool.Pool) *ExpertRepository {
	return &ExpertRepository{db: db}
}

const expertColumns = `id, orcid, name, active, created_at`

func scanExpert(row pgx.Row) (*domain.ExpertRecord, error) {
	rec := &domain.ExpertRecord{}
	err := row.Scan(
		&rec.ID,
		&rec.ORCID,
		&rec.Name,
		&rec.Active,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ExpertRepository) Upsert(rec *domain.ExpertRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO experts (id, orcid, name, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (orcid) DO UPDATE SET
			name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE experts.name END,
			active = EXCLUDED.active
	`
	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.ORCID, rec.Name, rec.Active, rec.CreatedAt,
	)
	return err
}

func (r *ExpertRepository) GetByORCID(orcid string) (*domain.ExpertRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `SELECT ` + expertColumns + ` FROM experts WHERE orcid = $1`
	return scanExpert(r.db.QueryRow(ctx, query, orcid))
}

func (r *ExpertRepository) ListActive(limit, offset int) ([]*domain.ExpertRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	query := `SELECT ` + expertColumns + ` FROM experts WHERE active ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.ExpertRecord
	for rows.Next() {
		rec := &domain.ExpertRecord{}
		if err := rows.Scan(&rec.ID, &rec.ORCID, &rec.Name, &rec.Active, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
