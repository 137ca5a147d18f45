package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kimu90/expert-discovery/internal/domain"
	"github.com/kimu90/expert-discovery/internal/middleware"
	"github.com/kimu90/expert-discovery/internal/usecase"
)

type Handler struct {
	authUsecase   *usecase.AuthUsecase
	expertise     *usecase.ExpertiseService
	similarity    *usecase.SimilarityService
	collaboration *usecase.CollaborationService
	discovery     *usecase.DiscoveryService
	matchLogs     domain.MatchLogRepository // optional; nil disables analytics logging
}

func NewHandler(
	auth *usecase.AuthUsecase,
	expertise *usecase.ExpertiseService,
	similarity *usecase.SimilarityService,
	collaboration *usecase.CollaborationService,
	discovery *usecase.DiscoveryService,
	matchLogs domain.MatchLogRepository,
) *Handler {
	return &Handler{
		authUsecase:   auth,
		expertise:     expertise,
		similarity:    similarity,
		collaboration: collaboration,
		discovery:     discovery,
		matchLogs:     matchLogs,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// expertGraphID canonicalizes a path segment to the graph node id. Expert
// nodes use full ORCID URLs as ids, but callers pass the bare ORCID
// (0000-0002-1825-0097) since slashes do not survive a path segment.
func expertGraphID(orcid string) string {
	if strings.HasPrefix(orcid, "http://") || strings.HasPrefix(orcid, "https://") {
		return orcid
	}
	return "https://orcid.org/" + orcid
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return fallback
}

func floatQuery(r *http.Request, key string, fallback float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return fallback
}

// Expert handlers

type profileResponse struct {
	Expert  *domain.Expert           `json:"expert"`
	Profile *domain.ExpertiseProfile `json:"profile"`
}

func (h *Handler) GetExpertProfile(w http.ResponseWriter, r *http.Request) {
	expertID := expertGraphID(chi.URLParam(r, "orcid"))

	expert, profile, status, err := h.expertise.GetExpertProfile(r.Context(), expertID)
	if err == usecase.ErrInvalidExpertID {
		writeError(w, http.StatusBadRequest, "Expert id is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load expert profile")
		return
	}
	if status == domain.ProfileNotFound {
		writeError(w, http.StatusNotFound, "Expert not found")
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{Expert: expert, Profile: profile})
}

type similarResponse struct {
	ExpertID string                 `json:"expert_id"`
	Similar  []domain.SimilarExpert `json:"similar_experts"`
}

func (h *Handler) GetSimilarExperts(w http.ResponseWriter, r *http.Request) {
	expertID := expertGraphID(chi.URLParam(r, "orcid"))
	limit := intQuery(r, "limit", usecase.DefaultSimilarLimit)

	similar, err := h.similarity.FindSimilarExperts(r.Context(), expertID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to find similar experts")
		return
	}

	h.logMatches(expertID, similar)
	writeJSON(w, http.StatusOK, similarResponse{ExpertID: expertID, Similar: similar})
}

type collaborationResponse struct {
	ExpertID    string                           `json:"expert_id"`
	Suggestions []domain.CollaborationSuggestion `json:"collaboration_suggestions"`
}

func (h *Handler) GetCollaborationRecommendations(w http.ResponseWriter, r *http.Request) {
	expertID := expertGraphID(chi.URLParam(r, "orcid"))
	limit := intQuery(r, "limit", usecase.DefaultCollaborationLimit)
	minScore := floatQuery(r, "min_score", usecase.DefaultMinScore)

	suggestions, err := h.collaboration.RecommendCollaborators(r.Context(), expertID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to recommend collaborators")
		return
	}

	suggestions = usecase.FilterByMinScore(suggestions, minScore)
	h.logSuggestions(expertID, suggestions)
	writeJSON(w, http.StatusOK, collaborationResponse{ExpertID: expertID, Suggestions: suggestions})
}

func (h *Handler) GetExpertOverview(w http.ResponseWriter, r *http.Request) {
	expertID := expertGraphID(chi.URLParam(r, "orcid"))

	overview, status, err := h.discovery.GetExpertOverview(r.Context(), expertID)
	if err == usecase.ErrInvalidExpertID {
		writeError(w, http.StatusBadRequest, "Expert id is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build expert overview")
		return
	}
	if status == domain.ProfileNotFound {
		writeError(w, http.StatusNotFound, "Expert not found")
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

type connectionsResponse struct {
	ExpertID1 string                  `json:"expert_id_1"`
	ExpertID2 string                  `json:"expert_id_2"`
	Paths     []domain.ConnectionPath `json:"paths"`
}

func (h *Handler) GetExpertConnections(w http.ResponseWriter, r *http.Request) {
	expertID1 := expertGraphID(chi.URLParam(r, "orcid"))
	expertID2 := expertGraphID(chi.URLParam(r, "orcid2"))
	maxDepth := intQuery(r, "max_depth", 3)

	paths, err := h.expertise.FindConnections(r.Context(), expertID1, expertID2, maxDepth)
	if err == usecase.ErrInvalidExpertID {
		writeError(w, http.StatusBadRequest, "Both expert ids are required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to find connection paths")
		return
	}
	if paths == nil {
		paths = []domain.ConnectionPath{}
	}

	writeJSON(w, http.StatusOK, connectionsResponse{
		ExpertID1: expertID1,
		ExpertID2: expertID2,
		Paths:     paths,
	})
}

// Analytics handlers

func (h *Handler) GetExpertMetrics(w http.ResponseWriter, r *http.Request) {
	if h.matchLogs == nil {
		writeError(w, http.StatusServiceUnavailable, "Analytics store not configured")
		return
	}

	expertID := expertGraphID(chi.URLParam(r, "orcid"))
	metrics, err := h.matchLogs.GetExpertMetrics(expertID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load expert metrics")
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// logMatches records served matches. Failures are logged, never surfaced —
// analytics must not affect the response path.
func (h *Handler) logMatches(expertID string, matches []domain.SimilarExpert) {
	if h.matchLogs == nil {
		return
	}
	for _, m := range matches {
		entry := &domain.MatchLog{
			ExpertID:        expertID,
			MatchedExpertID: m.ID,
			SimilarityScore: m.SimilarityScore,
			SharedDomains:   m.DomainCount,
			SharedFields:    m.FieldCount,
			SharedSkills:    m.SkillCount,
			Successful:      true,
		}
		if err := h.matchLogs.RecordMatch(entry); err != nil {
			log.Printf("WARN: failed to record match log for %s: %v", expertID, err)
			return
		}
	}
}

func (h *Handler) logSuggestions(expertID string, suggestions []domain.CollaborationSuggestion) {
	if h.matchLogs == nil {
		return
	}
	for _, s := range suggestions {
		entry := &domain.SuggestionLog{
			ExpertID:           expertID,
			SuggestedExpertID:  s.ID,
			CollaborationScore: s.CollaborationScore,
			Reason:             suggestionReason(s),
		}
		if err := h.matchLogs.RecordSuggestion(entry); err != nil {
			log.Printf("WARN: failed to record suggestion log for %s: %v", expertID, err)
			return
		}
	}
}

func suggestionReason(s domain.CollaborationSuggestion) string {
	switch {
	case s.DomainOverlap > 0 && len(s.ComplementaryDomains) > 0:
		return "shared and complementary domains"
	case s.DomainOverlap > 0:
		return "shared domains"
	default:
		return "complementary domains"
	}
}

// Auth handlers

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	User  interface{} `json:"user"`
	Token interface{} `json:"token"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.authUsecase.Register(req.Email, req.Password, req.Name)
	if err == usecase.ErrEmailExists {
		writeError(w, http.StatusConflict, "Email already exists")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authUsecase.Login(req.Email, req.Password)
	if err == usecase.ErrInvalidCredentials {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authUsecase.GetUserByID(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
