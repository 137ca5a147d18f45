package usecase

import (
	"context"
	"log"
	"sort"

	"github.com/kimu90/expert-discovery/internal/domain"
	"github.com/kimu90/expert-discovery/internal/graph"
)

// Channel weights for the similarity score. Shared domains are the strongest
// signal, shared skills the weakest. The score is the weighted average of
// the channel weights over all shared categories, so it lands in [1, 3]
// whenever any overlap exists and is exactly 0 otherwise.
const (
	domainWeight = 3.0
	fieldWeight  = 2.0
	skillWeight  = 1.0
)

const DefaultSimilarLimit = 10

// SimilarityService ranks other experts by weighted expertise overlap with a
// target expert.
type SimilarityService struct {
	graph domain.ExpertGraphReader
}

func NewSimilarityService(g domain.ExpertGraphReader) *SimilarityService {
	return &SimilarityService{graph: g}
}

// FindSimilarExperts returns the top-limit experts most similar to expertID,
// ranked by descending score with ties broken by ascending expert id.
// Candidates with no overlap on any channel are excluded. Graph connectivity
// failures degrade to an empty list with one error log entry, so a graph
// outage blanks the "similar experts" section instead of failing the whole
// profile request; query defects propagate.
func (s *SimilarityService) FindSimilarExperts(ctx context.Context, expertID string, limit int) ([]domain.SimilarExpert, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	_, profile, status, err := s.graph.GetProfile(ctx, expertID)
	if err != nil {
		return failOpen[domain.SimilarExpert]("similar experts", expertID, err)
	}
	if status == domain.ProfileNotFound || profile.IsEmpty() {
		// Every pairing would score 0.
		return []domain.SimilarExpert{}, nil
	}

	candidates, err := s.graph.ListCandidates(ctx, expertID)
	if err != nil {
		return failOpen[domain.SimilarExpert]("similar experts", expertID, err)
	}

	targetDomains := toSet(profile.Domains)
	targetFields := toSet(profile.Fields)
	targetSkills := toSet(profile.Skills)

	results := make([]domain.SimilarExpert, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == expertID {
			continue
		}

		sharedDomains := intersect(targetDomains, c.Domains)
		sharedFields := intersect(targetFields, c.Fields)
		sharedSkills := intersect(targetSkills, c.Skills)

		domainCount := len(sharedDomains)
		fieldCount := len(sharedFields)
		skillCount := len(sharedSkills)

		denominator := domainCount + fieldCount + skillCount
		if denominator == 0 {
			continue
		}
		score := (domainWeight*float64(domainCount) + fieldWeight*float64(fieldCount) + skillWeight*float64(skillCount)) / float64(denominator)
		if score <= 0 {
			continue
		}

		results = append(results, domain.SimilarExpert{
			ID:              c.ID,
			Name:            c.Name,
			SimilarityScore: score,
			SharedDomains:   sharedDomains,
			SharedFields:    sharedFields,
			SharedSkills:    sharedSkills,
			DomainCount:     domainCount,
			FieldCount:      fieldCount,
			SkillCount:      skillCount,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// failOpen implements the boundary policy for the ranking services:
// ConnectionError becomes an empty result plus one error log entry;
// anything else (notably QueryError) propagates so defects get fixed.
func failOpen[T any](op, expertID string, err error) ([]T, error) {
	if graph.IsConnectionError(err) {
		log.Printf("ERROR: %s for %s degraded to empty result: %v", op, expertID, err)
		return []T{}, nil
	}
	return nil, err
}
