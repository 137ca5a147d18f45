package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimu90/expert-discovery/internal/domain"
)

// MatchLogRepository records served matches and suggestions for analytics.
// Writers tolerate failure — the delivery layer logs and drops errors so a
// slow analytics store never delays a response.
type MatchLogRepository struct {
	db *pgxpool.Pool
}

func NewMatchLogRepository(db *pgxpool.Pool) *MatchLogRepository {
	return &MatchLogRepository{db: db}
}

func (r *MatchLogRepository) RecordMatch(entry *domain.MatchLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO expert_matching_logs
			(id, expert_id, matched_expert_id, similarity_score, shared_domains, shared_fields, shared_skills, successful, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.ExpertID, entry.MatchedExpertID, entry.SimilarityScore,
		entry.SharedDomains, entry.SharedFields, entry.SharedSkills,
		entry.Successful, entry.CreatedAt,
	)
	return err
}

func (r *MatchLogRepository) RecordSuggestion(entry *domain.SuggestionLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO collaboration_suggestions
			(id, expert_id, suggested_expert_id, score, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.ExpertID, entry.SuggestedExpertID,
		entry.CollaborationScore, entry.Reason, entry.CreatedAt,
	)
	return err
}

func (r *MatchLogRepository) GetExpertMetrics(expertID string) (*domain.ExpertMetrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
		WITH match_stats AS (
			SELECT COUNT(*) AS total_matches,
			       COALESCE(AVG(similarity_score), 0) AS avg_similarity,
			       COALESCE(SUM(shared_domains), 0) AS total_shared_domains,
			       COALESCE(SUM(shared_fields), 0) AS total_shared_fields
			FROM expert_matching_logs
			WHERE expert_id = $1
		), suggestion_stats AS (
			SELECT COUNT(*) AS suggested_collabs,
			       COALESCE(AVG(score), 0) AS avg_collab_score
			FROM collaboration_suggestions
			WHERE expert_id = $1
		)
		SELECT m.total_matches, m.avg_similarity, m.total_shared_domains, m.total_shared_fields,
		       s.suggested_collabs, s.avg_collab_score
		FROM match_stats m, suggestion_stats s
	`

	metrics := &domain.ExpertMetrics{ExpertID: expertID}
	err := r.db.QueryRow(ctx, query, expertID).Scan(
		&metrics.TotalMatches,
		&metrics.AvgSimilarity,
		&metrics.TotalSharedDomains,
		&metrics.TotalSharedFields,
		&metrics.SuggestedCollabs,
		&metrics.AvgCollabScore,
	)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
