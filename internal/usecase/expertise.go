package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kimu90/expert-discovery/internal/domain"
)

var ErrInvalidExpertID = errors.New("expert id must not be empty")

// ExpertiseService aggregates the expertise profile connected to an expert
// node. It performs no scoring.
type ExpertiseService struct {
	graph domain.ExpertGraphReader
}

func NewExpertiseService(graph domain.ExpertGraphReader) *ExpertiseService {
	return &ExpertiseService{graph: graph}
}

// GetExpertProfile returns the expert, its profile, and a tri-state status.
// A missing Expert node reports ProfileNotFound; an existing node with no
// recorded expertise reports ProfileEmpty with an empty (non-nil) profile.
// Transport failures still surface as errors — "not found" never does.
func (s *ExpertiseService) GetExpertProfile(ctx context.Context, expertID string) (*domain.Expert, *domain.ExpertiseProfile, domain.ProfileStatus, error) {
	if strings.TrimSpace(expertID) == "" {
		return nil, nil, domain.ProfileNotFound, ErrInvalidExpertID
	}

	expert, profile, status, err := s.graph.GetProfile(ctx, expertID)
	if err != nil {
		return nil, nil, domain.ProfileNotFound, err
	}
	if status == domain.ProfileNotFound {
		return nil, nil, status, nil
	}
	normalizeProfile(profile)
	return expert, profile, status, nil
}

// FindConnections returns the shortest expertise paths between two experts.
// maxDepth is clamped by the graph layer; 0 means the default of 3.
func (s *ExpertiseService) FindConnections(ctx context.Context, expertID1, expertID2 string, maxDepth int) ([]domain.ConnectionPath, error) {
	if strings.TrimSpace(expertID1) == "" || strings.TrimSpace(expertID2) == "" {
		return nil, ErrInvalidExpertID
	}
	if maxDepth <= 0 {
		maxDepth = 3
	}
	return s.graph.FindConnectionPaths(ctx, expertID1, expertID2, maxDepth)
}

// normalizeProfile replaces nil channel slices with empty ones so responses
// always serialize as arrays.
func normalizeProfile(p *domain.ExpertiseProfile) {
	if p.Domains == nil {
		p.Domains = []string{}
	}
	if p.Fields == nil {
		p.Fields = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
}
