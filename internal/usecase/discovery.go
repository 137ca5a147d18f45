package usecase

import (
	"context"

	"github.com/kimu90/expert-discovery/internal/domain"
)

// ExpertOverview bundles an expert's profile with its ranked similarity and
// collaboration lists. Sections that could not be computed come back empty,
// never nil.
type ExpertOverview struct {
	Expert         *domain.Expert                   `json:"expert"`
	Profile        *domain.ExpertiseProfile         `json:"profile"`
	Similar        []domain.SimilarExpert           `json:"similar_experts"`
	Collaborations []domain.CollaborationSuggestion `json:"collaboration_suggestions"`
}

// DiscoveryService composes the profile, similarity, and collaboration
// services into one overview lookup.
type DiscoveryService struct {
	expertise     *ExpertiseService
	similarity    *SimilarityService
	collaboration *CollaborationService
}

func NewDiscoveryService(expertise *ExpertiseService, similarity *SimilarityService, collaboration *CollaborationService) *DiscoveryService {
	return &DiscoveryService{
		expertise:     expertise,
		similarity:    similarity,
		collaboration: collaboration,
	}
}

// GetExpertOverview assembles the full discovery view for one expert. A
// missing expert reports ProfileNotFound with a nil overview; degraded
// similarity or collaboration sections arrive empty rather than failing the
// overview.
func (s *DiscoveryService) GetExpertOverview(ctx context.Context, expertID string) (*ExpertOverview, domain.ProfileStatus, error) {
	expert, profile, status, err := s.expertise.GetExpertProfile(ctx, expertID)
	if err != nil {
		return nil, domain.ProfileNotFound, err
	}
	if status == domain.ProfileNotFound {
		return nil, status, nil
	}

	similar, err := s.similarity.FindSimilarExperts(ctx, expertID, DefaultSimilarLimit)
	if err != nil {
		return nil, status, err
	}

	collaborations, err := s.collaboration.RecommendCollaborators(ctx, expertID, DefaultCollaborationLimit)
	if err != nil {
		return nil, status, err
	}

	return &ExpertOverview{
		Expert:         expert,
		Profile:        profile,
		Similar:        similar,
		Collaborations: collaborations,
	}, status, nil
}
