package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Expert is a researcher node in the knowledge graph. Expert nodes are
// created by the graph loader; the discovery services only read them.
type Expert struct {
	ID   string `json:"id"` // ORCID URL, e.g. https://orcid.org/0000-0002-1825-0097
	Name string `json:"name"`
}

// ExpertiseProfile is the derived (domains, fields, skills) triple for one
// expert. The three channels are independent flat vocabularies; members are
// distinct and carry no ordering guarantee.
type ExpertiseProfile struct {
	Domains []string `json:"domains"`
	Fields  []string `json:"fields"`
	Skills  []string `json:"skills"`
}

// IsEmpty reports whether no expertise is recorded on any channel.
func (p *ExpertiseProfile) IsEmpty() bool {
	return len(p.Domains) == 0 && len(p.Fields) == 0 && len(p.Skills) == 0
}

// ProfileStatus distinguishes a missing Expert node from one that exists but
// has no recorded expertise. Ranking operations treat both the same (every
// pairing scores zero either way); the HTTP layer maps them differently.
type ProfileStatus int

const (
	ProfileFound ProfileStatus = iota
	ProfileNotFound
	ProfileEmpty
)

// CandidateProfile is a candidate expert together with its full expertise
// profile, as listed by the graph store for scoring.
type CandidateProfile struct {
	Expert
	ExpertiseProfile
}

// SimilarExpert is one ranked entry from the similarity scorer.
type SimilarExpert struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	SimilarityScore float64  `json:"similarity_score"`
	SharedDomains   []string `json:"shared_domains"`
	SharedFields    []string `json:"shared_fields"`
	SharedSkills    []string `json:"shared_skills"`
	DomainCount     int      `json:"domain_count"`
	FieldCount      int      `json:"field_count"`
	SkillCount      int      `json:"skill_count"`
}

// CollaborationSuggestion is one ranked entry from the collaboration
// recommender.
type CollaborationSuggestion struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	CollaborationScore   float64  `json:"collaboration_score"`
	DomainOverlap        int      `json:"domain_overlap"`
	SharedDomains        []string `json:"shared_domains"`
	ComplementaryDomains []string `json:"complementary_domains"`
}

// ConnectionPath describes one expertise path between two experts.
type ConnectionPath struct {
	Length        int      `json:"path_length"`
	Nodes         []string `json:"nodes"`
	Relationships []string `json:"relationships"`
}

// ExpertGraphReader is the read-only view of the knowledge graph consumed by
// the discovery services. Implementations must acquire a session per call
// and release it on every exit path.
type ExpertGraphReader interface {
	GetProfile(ctx context.Context, expertID string) (*Expert, *ExpertiseProfile, ProfileStatus, error)
	ListCandidates(ctx context.Context, excludeID string) ([]CandidateProfile, error)
	FindConnectionPaths(ctx context.Context, expertID1, expertID2 string, maxDepth int) ([]ConnectionPath, error)
}

// ExpertRecord is a row in the relational experts table. It seeds the graph
// loader; the graph itself remains the source of truth for expertise.
type ExpertRecord struct {
	ID        uuid.UUID `json:"id"`
	ORCID     string    `json:"orcid"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type ExpertRepository interface {
	Upsert(record *ExpertRecord) error
	GetByORCID(orcid string) (*ExpertRecord, error)
	ListActive(limit, offset int) ([]*ExpertRecord, error)
}
