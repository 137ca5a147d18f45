package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimu90/expert-discovery/internal/config"
	"github.com/kimu90/expert-discovery/internal/domain"
	"github.com/kimu90/expert-discovery/internal/middleware"
	"github.com/kimu90/expert-discovery/internal/usecase"
)

const (
	aliceORCID = "0000-0002-1825-0097"
	aliceID    = "https://orcid.org/" + aliceORCID
	bobORCID   = "0000-0002-1694-233X"
	bobID      = "https://orcid.org/" + bobORCID
	carolID    = "https://orcid.org/0000-0002-1825-0098"
)

type stubGraph struct {
	experts    map[string]domain.CandidateProfile
	candidates []domain.CandidateProfile
	paths      []domain.ConnectionPath
}

func (s *stubGraph) GetProfile(ctx context.Context, expertID string) (*domain.Expert, *domain.ExpertiseProfile, domain.ProfileStatus, error) {
	c, ok := s.experts[expertID]
	if !ok {
		return nil, nil, domain.ProfileNotFound, nil
	}
	profile := c.ExpertiseProfile
	status := domain.ProfileFound
	if profile.IsEmpty() {
		status = domain.ProfileEmpty
	}
	return &domain.Expert{ID: c.ID, Name: c.Name}, &profile, status, nil
}

func (s *stubGraph) ListCandidates(ctx context.Context, excludeID string) ([]domain.CandidateProfile, error) {
	var out []domain.CandidateProfile
	for _, c := range s.candidates {
		if c.ID != excludeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubGraph) FindConnectionPaths(ctx context.Context, expertID1, expertID2 string, maxDepth int) ([]domain.ConnectionPath, error) {
	return s.paths, nil
}

type noopMatchLogs struct {
	matches     int
	suggestions int
}

func (m *noopMatchLogs) RecordMatch(*domain.MatchLog) error           { m.matches++; return nil }
func (m *noopMatchLogs) RecordSuggestion(*domain.SuggestionLog) error { m.suggestions++; return nil }
func (m *noopMatchLogs) GetExpertMetrics(expertID string) (*domain.ExpertMetrics, error) {
	return &domain.ExpertMetrics{ExpertID: expertID, TotalMatches: int64(m.matches)}, nil
}

func candidate(id, name string, profile domain.ExpertiseProfile) domain.CandidateProfile {
	return domain.CandidateProfile{
		Expert:           domain.Expert{ID: id, Name: name},
		ExpertiseProfile: profile,
	}
}

func newTestServer(t *testing.T, g *stubGraph, logs domain.MatchLogRepository) *httptest.Server {
	t.Helper()

	expertise := usecase.NewExpertiseService(g)
	similarity := usecase.NewSimilarityService(g)
	collaboration := usecase.NewCollaborationService(g)
	discovery := usecase.NewDiscoveryService(expertise, similarity, collaboration)

	auth := usecase.NewAuthUsecase(nil, &config.JWTConfig{Secret: "test", AccessExpiry: time.Hour})
	handler := NewHandler(auth, expertise, similarity, collaboration, discovery, logs)
	router := NewRouter(handler, middleware.NewAuthMiddleware(auth), []string{"*"})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func defaultStubGraph() *stubGraph {
	alice := candidate(aliceID, "Alice", domain.ExpertiseProfile{
		Domains: []string{"Health Sciences"},
		Fields:  []string{"Medicine"},
		Skills:  []string{"Epidemiology"},
	})
	bob := candidate(bobID, "Bob", domain.ExpertiseProfile{
		Domains: []string{"Health Sciences", "Life Sciences"},
	})
	carol := candidate(carolID, "Carol", domain.ExpertiseProfile{
		Domains: []string{"Social Sciences"},
	})
	return &stubGraph{
		experts: map[string]domain.CandidateProfile{
			aliceID: alice,
			bobID:   bob,
			carolID: carol,
		},
		candidates: []domain.CandidateProfile{alice, bob, carol},
	}
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGetExpertProfileEndpoint(t *testing.T) {
	server := newTestServer(t, defaultStubGraph(), nil)

	var body profileResponse
	status := getJSON(t, server.URL+"/api/v1/experts/"+aliceORCID, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, aliceID, body.Expert.ID)
	assert.Equal(t, []string{"Health Sciences"}, body.Profile.Domains)
}

func TestGetExpertProfileEndpointNotFound(t *testing.T) {
	server := newTestServer(t, defaultStubGraph(), nil)

	status := getJSON(t, server.URL+"/api/v1/experts/0000-0000-0000-0000", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetSimilarExpertsEndpoint(t *testing.T) {
	logs := &noopMatchLogs{}
	server := newTestServer(t, defaultStubGraph(), logs)

	var body similarResponse
	status := getJSON(t, server.URL+"/api/v1/experts/"+aliceORCID+"/similar?limit=1", &body)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Similar, 1)
	assert.Equal(t, bobID, body.Similar[0].ID)
	assert.Equal(t, 1, logs.matches)
}

func TestGetCollaborationsEndpointAppliesMinScore(t *testing.T) {
	server := newTestServer(t, defaultStubGraph(), nil)

	// Carol scores 0.4 (one complementary domain) and drops below 0.5.
	var body collaborationResponse
	status := getJSON(t, server.URL+"/api/v1/experts/"+aliceORCID+"/collaborations", &body)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Suggestions, 1)
	assert.Equal(t, bobID, body.Suggestions[0].ID)

	// Lowering the threshold lets her back in.
	status = getJSON(t, server.URL+"/api/v1/experts/"+aliceORCID+"/collaborations?min_score=0.1", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body.Suggestions, 2)
}

func TestGetExpertConnectionsEndpoint(t *testing.T) {
	g := defaultStubGraph()
	g.paths = []domain.ConnectionPath{
		{Length: 2, Nodes: []string{"Alice", "Health Sciences", "Bob"}, Relationships: []string{"HAS_DOMAIN", "HAS_DOMAIN"}},
	}
	server := newTestServer(t, g, nil)

	var body connectionsResponse
	status := getJSON(t, server.URL+"/api/v1/experts/"+aliceORCID+"/connections/"+bobORCID+"?max_depth=2", &body)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Paths, 1)
	assert.Equal(t, 2, body.Paths[0].Length)
}

func TestGetExpertOverviewEndpoint(t *testing.T) {
	server := newTestServer(t, defaultStubGraph(), nil)

	var body usecase.ExpertOverview
	status := getJSON(t, server.URL+"/api/v1/experts/"+aliceORCID+"/overview", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alice", body.Expert.Name)
	assert.NotEmpty(t, body.Similar)
}

func TestAnalyticsEndpointRequiresAuth(t *testing.T) {
	server := newTestServer(t, defaultStubGraph(), &noopMatchLogs{})

	status := getJSON(t, server.URL+"/api/v1/analytics/experts/"+aliceORCID+"/metrics", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, defaultStubGraph(), nil)
	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
