package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kimu90/expert-discovery/internal/domain"
)

// ExpertStore executes the traversals over Expert, Domain, Field, and Skill
// nodes. Reads serve the discovery services; writes serve the graph loader
// only — request-path code never mutates the graph.
type ExpertStore struct {
	client *Client
}

func NewExpertStore(client *Client) *ExpertStore {
	return &ExpertStore{client: client}
}

const profileQuery = `
MATCH (e:Expert {id: $expert_id})
OPTIONAL MATCH (e)-[:HAS_DOMAIN]->(d:Domain)
OPTIONAL MATCH (e)-[:HAS_FIELD]->(f:Field)
OPTIONAL MATCH (e)-[:HAS_SKILL]->(s:Skill)
RETURN e.id AS id, e.name AS name,
       collect(DISTINCT d.name) AS domains,
       collect(DISTINCT f.name) AS fields,
       collect(DISTINCT s.name) AS skills
`

// GetProfile fetches one expert and its expertise profile. A missing Expert
// node yields ProfileNotFound with no error; an existing node with no edges
// yields ProfileEmpty.
func (s *ExpertStore) GetProfile(ctx context.Context, expertID string) (*domain.Expert, *domain.ExpertiseProfile, domain.ProfileStatus, error) {
	ctx, cancel := s.client.opContext(ctx)
	defer cancel()

	session := s.client.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, profileQuery, map[string]any{"expert_id": expertID})
	if err != nil {
		return nil, nil, domain.ProfileNotFound, classify(err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, nil, domain.ProfileNotFound, classify(err)
		}
		return nil, nil, domain.ProfileNotFound, nil
	}

	record := result.Record()
	expert := &domain.Expert{
		ID:   stringValue(record, "id"),
		Name: stringValue(record, "name"),
	}
	profile := &domain.ExpertiseProfile{
		Domains: stringSliceValue(record, "domains"),
		Fields:  stringSliceValue(record, "fields"),
		Skills:  stringSliceValue(record, "skills"),
	}

	status := domain.ProfileFound
	if profile.IsEmpty() {
		status = domain.ProfileEmpty
	}
	return expert, profile, status, nil
}

const candidatesQuery = `
MATCH (c:Expert)
WHERE c.id <> $expert_id
OPTIONAL MATCH (c)-[:HAS_DOMAIN]->(d:Domain)
OPTIONAL MATCH (c)-[:HAS_FIELD]->(f:Field)
OPTIONAL MATCH (c)-[:HAS_SKILL]->(s:Skill)
RETURN c.id AS id, c.name AS name,
       collect(DISTINCT d.name) AS domains,
       collect(DISTINCT f.name) AS fields,
       collect(DISTINCT s.name) AS skills
ORDER BY c.id
`

// ListCandidates returns every expert other than excludeID with its full
// expertise profile. Scoring happens above this layer so the channel weights
// stay out of the query text.
func (s *ExpertStore) ListCandidates(ctx context.Context, excludeID string) ([]domain.CandidateProfile, error) {
	ctx, cancel := s.client.opContext(ctx)
	defer cancel()

	session := s.client.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, candidatesQuery, map[string]any{"expert_id": excludeID})
	if err != nil {
		return nil, classify(err)
	}

	var candidates []domain.CandidateProfile
	for result.Next(ctx) {
		record := result.Record()
		candidates = append(candidates, domain.CandidateProfile{
			Expert: domain.Expert{
				ID:   stringValue(record, "id"),
				Name: stringValue(record, "name"),
			},
			ExpertiseProfile: domain.ExpertiseProfile{
				Domains: stringSliceValue(record, "domains"),
				Fields:  stringSliceValue(record, "fields"),
				Skills:  stringSliceValue(record, "skills"),
			},
		})
	}
	if err := result.Err(); err != nil {
		return nil, classify(err)
	}
	return candidates, nil
}

// FindConnectionPaths returns up to five shortest expertise paths between two
// experts, walking HAS_DOMAIN/HAS_FIELD/HAS_SKILL edges in either direction.
// Variable-length bounds cannot be parameterized in Cypher, so the clamped
// depth is formatted into the pattern; all identifiers stay parameterized.
func (s *ExpertStore) FindConnectionPaths(ctx context.Context, expertID1, expertID2 string, maxDepth int) ([]domain.ConnectionPath, error) {
	if maxDepth < 1 {
		maxDepth = 1
	}
	if maxDepth > 5 {
		maxDepth = 5
	}

	ctx, cancel := s.client.opContext(ctx)
	defer cancel()

	session := s.client.readSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
MATCH p = shortestPath((e1:Expert {id: $expert_id1})-[*1..%d]-(e2:Expert {id: $expert_id2}))
WHERE ALL(r IN relationships(p) WHERE type(r) IN ['HAS_DOMAIN', 'HAS_FIELD', 'HAS_SKILL'])
RETURN length(p) AS path_length,
       [n IN nodes(p) | n.name] AS nodes,
       [r IN relationships(p) | type(r)] AS relationships
ORDER BY path_length
LIMIT 5
`, maxDepth)

	result, err := session.Run(ctx, query, map[string]any{
		"expert_id1": expertID1,
		"expert_id2": expertID2,
	})
	if err != nil {
		return nil, classify(err)
	}

	var paths []domain.ConnectionPath
	for result.Next(ctx) {
		record := result.Record()
		paths = append(paths, domain.ConnectionPath{
			Length:        intValue(record, "path_length"),
			Nodes:         stringSliceValue(record, "nodes"),
			Relationships: stringSliceValue(record, "relationships"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, classify(err)
	}
	return paths, nil
}

// --- Loader writes ---

// EnsureIndexes creates the lookup indexes the traversals depend on.
func (s *ExpertStore) EnsureIndexes(ctx context.Context) error {
	statements := []string{
		"CREATE INDEX expert_id IF NOT EXISTS FOR (e:Expert) ON (e.id)",
		"CREATE INDEX domain_name IF NOT EXISTS FOR (d:Domain) ON (d.name)",
		"CREATE INDEX field_name IF NOT EXISTS FOR (f:Field) ON (f.name)",
		"CREATE INDEX skill_name IF NOT EXISTS FOR (s:Skill) ON (s.name)",
	}

	ctx, cancel := s.client.opContext(ctx)
	defer cancel()

	session := s.client.writeSession(ctx)
	defer session.Close(ctx)

	for _, stmt := range statements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return classify(err)
		}
	}
	return nil
}

// UpsertExpert creates or updates an Expert node.
func (s *ExpertStore) UpsertExpert(ctx context.Context, expertID, name string) error {
	ctx, cancel := s.client.opContext(ctx)
	defer cancel()

	session := s.client.writeSession(ctx)
	defer session.Close(ctx)

	query := `
MERGE (e:Expert {id: $expert_id})
ON CREATE SET e.name = $name
ON MATCH SET e.name = CASE WHEN $name <> '' THEN $name ELSE e.name END
`
	_, err := session.Run(ctx, query, map[string]any{
		"expert_id": expertID,
		"name":      name,
	})
	return classify(err)
}

// AddExpertise merges category nodes and HAS_* edges for one expert. MERGE
// keeps reloads idempotent.
func (s *ExpertStore) AddExpertise(ctx context.Context, expertID string, profile *domain.ExpertiseProfile) error {
	channels := []struct {
		names    []string
		nodeKind string
		relation string
	}{
		{profile.Domains, "Domain", "HAS_DOMAIN"},
		{profile.Fields, "Field", "HAS_FIELD"},
		{profile.Skills, "Skill", "HAS_SKILL"},
	}

	ctx, cancel := s.client.opContext(ctx)
	defer cancel()

	session := s.client.writeSession(ctx)
	defer session.Close(ctx)

	for _, ch := range channels {
		if len(ch.names) == 0 {
			continue
		}
		// Node labels and relationship types cannot be parameterized;
		// both come from the fixed table above, never from input.
		query := fmt.Sprintf(`
MATCH (e:Expert {id: $expert_id})
UNWIND $names AS category_name
MERGE (n:%s {name: category_name})
MERGE (e)-[:%s]->(n)
`, ch.nodeKind, ch.relation)

		_, err := session.Run(ctx, query, map[string]any{
			"expert_id": expertID,
			"names":     ch.names,
		})
		if err != nil {
			return classify(err)
		}
	}
	return nil
}

// Stats reports node and relationship counts, used by the loader to verify a
// load.
func (s *ExpertStore) Stats(ctx context.Context) (experts, categories, relationships int64, err error) {
	ctx, cancel := s.client.opContext(ctx)
	defer cancel()

	session := s.client.readSession(ctx)
	defer session.Close(ctx)

	query := `
MATCH (e:Expert)
WITH count(e) AS experts
OPTIONAL MATCH (n) WHERE n:Domain OR n:Field OR n:Skill
WITH experts, count(n) AS categories
OPTIONAL MATCH ()-[r:HAS_DOMAIN|HAS_FIELD|HAS_SKILL]->()
RETURN experts, categories, count(r) AS relationships
`
	result, runErr := session.Run(ctx, query, nil)
	if runErr != nil {
		return 0, 0, 0, classify(runErr)
	}
	if result.Next(ctx) {
		record := result.Record()
		return int64Value(record, "experts"), int64Value(record, "categories"), int64Value(record, "relationships"), nil
	}
	if err := result.Err(); err != nil {
		return 0, 0, 0, classify(err)
	}
	return 0, 0, 0, nil
}

// --- Record mapping helpers ---

func stringValue(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func stringSliceValue(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	slice, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(slice))
	for _, v := range slice {
		if str, ok := v.(string); ok && str != "" {
			out = append(out, str)
		}
	}
	return out
}

func intValue(record *neo4j.Record, key string) int {
	return int(int64Value(record, key))
}

func int64Value(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch n := val.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
