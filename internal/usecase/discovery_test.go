package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimu90/expert-discovery/internal/domain"
)

func newDiscoveryService(g *fakeGraph) *DiscoveryService {
	return NewDiscoveryService(
		NewExpertiseService(g),
		NewSimilarityService(g),
		NewCollaborationService(g),
	)
}

func TestGetExpertOverview(t *testing.T) {
	g := newFakeGraph()
	g.addExpert(alice, "Alice", domain.ExpertiseProfile{
		Domains: []string{"Health Sciences"},
		Fields:  []string{"Medicine"},
	})
	g.addCandidate(bob, "Bob", domain.ExpertiseProfile{
		Domains: []string{"Health Sciences", "Life Sciences"},
	})

	svc := newDiscoveryService(g)
	overview, status, err := svc.GetExpertOverview(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileFound, status)
	require.NotNil(t, overview)
	assert.Equal(t, "Alice", overview.Expert.Name)
	require.Len(t, overview.Similar, 1)
	assert.Equal(t, bob, overview.Similar[0].ID)
	require.Len(t, overview.Collaborations, 1)
	assert.Equal(t, bob, overview.Collaborations[0].ID)
}

func TestGetExpertOverviewNotFound(t *testing.T) {
	svc := newDiscoveryService(newFakeGraph())
	overview, status, err := svc.GetExpertOverview(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileNotFound, status)
	assert.Nil(t, overview)
}

func TestGetExpertOverviewToleratesEmptySections(t *testing.T) {
	g := newFakeGraph()
	g.addExpert(alice, "Alice", domain.ExpertiseProfile{})

	svc := newDiscoveryService(g)
	overview, status, err := svc.GetExpertOverview(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileEmpty, status)
	require.NotNil(t, overview)
	assert.NotNil(t, overview.Similar)
	assert.Empty(t, overview.Similar)
	assert.NotNil(t, overview.Collaborations)
	assert.Empty(t, overview.Collaborations)
}
