package usecase

import (
	"context"
	"sort"

	"github.com/kimu90/expert-discovery/internal/domain"
)

// Collaboration weights: shared domains provide working context, domains the
// candidate has and the target lacks provide the complementary value.
const (
	overlapWeight       = 0.6
	complementaryWeight = 0.4
)

const (
	DefaultCollaborationLimit = 5
	// DefaultMinScore is applied by callers as a post-filter; the
	// recommender itself returns every positive-score candidate.
	DefaultMinScore = 0.5
)

// CollaborationService suggests collaborators whose domain expertise
// complements the target's.
type CollaborationService struct {
	graph domain.ExpertGraphReader
}

func NewCollaborationService(g domain.ExpertGraphReader) *CollaborationService {
	return &CollaborationService{graph: g}
}

// RecommendCollaborators returns the top-limit candidates ranked by
// collaboration score, descending, ties broken by ascending expert id.
// An expert with no recorded domains still receives suggestions — every
// candidate domain counts as complementary. Failure policy matches
// FindSimilarExperts: connectivity errors yield an empty list and a log
// entry, query defects propagate.
func (s *CollaborationService) RecommendCollaborators(ctx context.Context, expertID string, limit int) ([]domain.CollaborationSuggestion, error) {
	if limit <= 0 {
		limit = DefaultCollaborationLimit
	}

	_, profile, status, err := s.graph.GetProfile(ctx, expertID)
	if err != nil {
		return failOpen[domain.CollaborationSuggestion]("collaboration recommendations", expertID, err)
	}
	if status == domain.ProfileNotFound {
		return []domain.CollaborationSuggestion{}, nil
	}

	candidates, err := s.graph.ListCandidates(ctx, expertID)
	if err != nil {
		return failOpen[domain.CollaborationSuggestion]("collaboration recommendations", expertID, err)
	}

	targetDomains := toSet(profile.Domains)

	results := make([]domain.CollaborationSuggestion, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == expertID {
			continue
		}

		shared := intersect(targetDomains, c.Domains)
		complementary := difference(c.Domains, targetDomains)

		overlap := len(shared)
		score := float64(overlap)*overlapWeight + float64(len(complementary))*complementaryWeight
		if score <= 0 {
			continue
		}

		results = append(results, domain.CollaborationSuggestion{
			ID:                   c.ID,
			Name:                 c.Name,
			CollaborationScore:   score,
			DomainOverlap:        overlap,
			SharedDomains:        shared,
			ComplementaryDomains: complementary,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].CollaborationScore != results[j].CollaborationScore {
			return results[i].CollaborationScore > results[j].CollaborationScore
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FilterByMinScore drops suggestions scoring below minScore, preserving
// order. Thresholding belongs to the caller, not the recommender.
func FilterByMinScore(suggestions []domain.CollaborationSuggestion, minScore float64) []domain.CollaborationSuggestion {
	filtered := make([]domain.CollaborationSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if s.CollaborationScore >= minScore {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
