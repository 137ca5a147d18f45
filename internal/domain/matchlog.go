package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchLog records one similarity match served to a caller. Written by the
// delivery layer after a response is produced; never blocks the response.
type MatchLog struct {
	ID              uuid.UUID `json:"id"`
	ExpertID        string    `json:"expert_id"`
	MatchedExpertID string    `json:"matched_expert_id"`
	SimilarityScore float64   `json:"similarity_score"`
	SharedDomains   int       `json:"shared_domains"`
	SharedFields    int       `json:"shared_fields"`
	SharedSkills    int       `json:"shared_skills"`
	Successful      bool      `json:"successful"`
	CreatedAt       time.Time `json:"created_at"`
}

// SuggestionLog records one collaboration suggestion served to a caller.
type SuggestionLog struct {
	ID                 uuid.UUID `json:"id"`
	ExpertID           string    `json:"expert_id"`
	SuggestedExpertID  string    `json:"suggested_expert_id"`
	CollaborationScore float64   `json:"score"`
	Reason             string    `json:"reason"`
	CreatedAt          time.Time `json:"created_at"`
}

// ExpertMetrics aggregates the logged activity for one expert.
type ExpertMetrics struct {
	ExpertID           string  `json:"expert_id"`
	TotalMatches       int64   `json:"total_matches"`
	AvgSimilarity      float64 `json:"avg_similarity"`
	TotalSharedDomains int64   `json:"total_shared_domains"`
	TotalSharedFields  int64   `json:"total_shared_fields"`
	SuggestedCollabs   int64   `json:"suggested_collaborations"`
	AvgCollabScore     float64 `json:"avg_collaboration_score"`
}

type MatchLogRepository interface {
	RecordMatch(log *MatchLog) error
	RecordSuggestion(log *SuggestionLog) error
	GetExpertMetrics(expertID string) (*ExpertMetrics, error)
}
