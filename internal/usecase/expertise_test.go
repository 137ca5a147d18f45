package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimu90/expert-discovery/internal/domain"
	"github.com/kimu90/expert-discovery/internal/graph"
)

func TestGetExpertProfileFound(t *testing.T) {
	g := newFakeGraph()
	g.addExpert(alice, "Alice", domain.ExpertiseProfile{
		Domains: []string{"Health Sciences"},
		Fields:  []string{"Medicine"},
	})

	svc := NewExpertiseService(g)
	expert, profile, status, err := svc.GetExpertProfile(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileFound, status)
	assert.Equal(t, "Alice", expert.Name)
	assert.Equal(t, []string{"Health Sciences"}, profile.Domains)
	assert.NotNil(t, profile.Skills)
	assert.Empty(t, profile.Skills)
}

func TestGetExpertProfileNotFound(t *testing.T) {
	g := newFakeGraph()

	svc := NewExpertiseService(g)
	expert, profile, status, err := svc.GetExpertProfile(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileNotFound, status)
	assert.Nil(t, expert)
	assert.Nil(t, profile)
}

func TestGetExpertProfileEmpty(t *testing.T) {
	g := newFakeGraph()
	g.addExpert(alice, "Alice", domain.ExpertiseProfile{})

	svc := NewExpertiseService(g)
	expert, profile, status, err := svc.GetExpertProfile(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileEmpty, status)
	assert.Equal(t, alice, expert.ID)
	require.NotNil(t, profile)
	assert.NotNil(t, profile.Domains)
	assert.Empty(t, profile.Domains)
}

func TestGetExpertProfileRejectsBlankID(t *testing.T) {
	svc := NewExpertiseService(newFakeGraph())
	_, _, _, err := svc.GetExpertProfile(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidExpertID)
}

func TestGetExpertProfileIdempotent(t *testing.T) {
	g := newFakeGraph()
	g.addExpert(alice, "Alice", domain.ExpertiseProfile{Domains: []string{"Health Sciences"}})

	svc := NewExpertiseService(g)
	_, first, _, err := svc.GetExpertProfile(context.Background(), alice)
	require.NoError(t, err)
	_, second, _, err := svc.GetExpertProfile(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetExpertProfilePropagatesErrors(t *testing.T) {
	g := newFakeGraph()
	g.profileErr = &graph.ConnectionError{Err: errors.New("unreachable")}

	svc := NewExpertiseService(g)
	_, _, _, err := svc.GetExpertProfile(context.Background(), alice)
	require.Error(t, err)
	assert.True(t, graph.IsConnectionError(err))
}

func TestFindConnectionsValidatesIDs(t *testing.T) {
	svc := NewExpertiseService(newFakeGraph())
	_, err := svc.FindConnections(context.Background(), alice, "", 3)
	assert.ErrorIs(t, err, ErrInvalidExpertID)
}

func TestFindConnectionsReturnsPaths(t *testing.T) {
	g := newFakeGraph()
	g.paths = []domain.ConnectionPath{
		{Length: 2, Nodes: []string{"Alice", "Health Sciences", "Bob"}, Relationships: []string{"HAS_DOMAIN", "HAS_DOMAIN"}},
	}

	svc := NewExpertiseService(g)
	paths, err := svc.FindConnections(context.Background(), alice, bob, 0)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, 2, paths[0].Length)
}
