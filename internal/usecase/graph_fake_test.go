package usecase

import (
	"context"

	"github.com/kimu90/expert-discovery/internal/domain"
)

// fakeGraph is an in-memory ExpertGraphReader for service tests.
type fakeGraph struct {
	experts    map[string]*domain.Expert
	profiles   map[string]*domain.ExpertiseProfile
	candidates []domain.CandidateProfile
	paths      []domain.ConnectionPath

	profileErr    error
	candidatesErr error
	pathsErr      error
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		experts:  make(map[string]*domain.Expert),
		profiles: make(map[string]*domain.ExpertiseProfile),
	}
}

func (f *fakeGraph) addExpert(id, name string, profile domain.ExpertiseProfile) {
	f.experts[id] = &domain.Expert{ID: id, Name: name}
	f.profiles[id] = &profile
}

func (f *fakeGraph) addCandidate(id, name string, profile domain.ExpertiseProfile) {
	f.addExpert(id, name, profile)
	f.candidates = append(f.candidates, domain.CandidateProfile{
		Expert:           domain.Expert{ID: id, Name: name},
		ExpertiseProfile: profile,
	})
}

func (f *fakeGraph) GetProfile(ctx context.Context, expertID string) (*domain.Expert, *domain.ExpertiseProfile, domain.ProfileStatus, error) {
	if f.profileErr != nil {
		return nil, nil, domain.ProfileNotFound, f.profileErr
	}
	expert, ok := f.experts[expertID]
	if !ok {
		return nil, nil, domain.ProfileNotFound, nil
	}
	profile := f.profiles[expertID]
	copied := domain.ExpertiseProfile{
		Domains: append([]string(nil), profile.Domains...),
		Fields:  append([]string(nil), profile.Fields...),
		Skills:  append([]string(nil), profile.Skills...),
	}
	status := domain.ProfileFound
	if copied.IsEmpty() {
		status = domain.ProfileEmpty
	}
	return &domain.Expert{ID: expert.ID, Name: expert.Name}, &copied, status, nil
}

func (f *fakeGraph) ListCandidates(ctx context.Context, excludeID string) ([]domain.CandidateProfile, error) {
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}
	var out []domain.CandidateProfile
	for _, c := range f.candidates {
		if c.ID == excludeID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeGraph) FindConnectionPaths(ctx context.Context, expertID1, expertID2 string, maxDepth int) ([]domain.ConnectionPath, error) {
	if f.pathsErr != nil {
		return nil, f.pathsErr
	}
	return f.paths, nil
}
