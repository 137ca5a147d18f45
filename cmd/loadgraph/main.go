// Graph loader: resolves expertise profiles for registered experts through
// OpenAlex work topics and writes Expert/Domain/Field/Skill nodes to Neo4j.
//
// Usage:
//   go run ./cmd/loadgraph --csv=experts.csv                 # Load from a CSV of orcid,name rows
//   go run ./cmd/loadgraph --db=$DATABASE_URL                # Load active experts from the registry
//   go run ./cmd/loadgraph --csv=experts.csv --check-orcid   # Cross-check works against the ORCID registry
//   go run ./cmd/loadgraph --dspace=https://dash.harvard.edu # Also report institutional repository items
//
// The loader respects OpenAlex's terms of use:
// - Provides a mailto User-Agent when OPENALEX_EMAIL is set
// - Sleeps between experts to stay under rate limits
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimu90/expert-discovery/internal/config"
	"github.com/kimu90/expert-discovery/internal/domain"
	"github.com/kimu90/expert-discovery/internal/graph"
	"github.com/kimu90/expert-discovery/internal/repository/postgres"
	"github.com/kimu90/expert-discovery/pkg/dspace"
	"github.com/kimu90/expert-discovery/pkg/openalex"
	"github.com/kimu90/expert-discovery/pkg/orcid"
)

type expertInput struct {
	ORCID string
	Name  string
}

func main() {
	csvPath := flag.String("csv", "", "CSV file of orcid,name rows to load")
	dbURL := flag.String("db", "", "PostgreSQL URL; loads active experts from the registry and records loads")
	dspaceURL := flag.String("dspace", "", "DSpace base URL to report institutional items from")
	checkORCID := flag.Bool("check-orcid", false, "Cross-check each expert's works against the public ORCID registry")
	maxWorks := flag.Int("max-works", 100, "Max works to scan per expert for topics")
	delay := flag.Duration("delay", 200*time.Millisecond, "Pause between experts")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("=== Expert Graph Loader ===")

	if *csvPath == "" && *dbURL == "" {
		log.Fatal("Either --csv or --db is required")
	}

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("\nReceived shutdown signal, stopping after current expert...")
		cancel()
	}()

	// Connect to Neo4j
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	graphClient, err := graph.NewClient(connectCtx, &cfg.Neo4j)
	connectCancel()
	if err != nil {
		log.Fatalf("Failed to connect to Neo4j: %v", err)
	}
	defer graphClient.Close(context.Background())
	log.Println("Connected to Neo4j")

	store := graph.NewExpertStore(graphClient)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Optional registry connection
	var expertRepo *postgres.ExpertRepository
	if *dbURL != "" {
		pool, err := pgxpool.New(ctx, *dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		log.Println("Connected to PostgreSQL")
		expertRepo = postgres.NewExpertRepository(pool)
	}

	// Collect experts to load
	var experts []expertInput
	if *csvPath != "" {
		experts, err = readExpertCSV(*csvPath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *csvPath, err)
		}
	} else {
		records, err := expertRepo.ListActive(500, 0)
		if err != nil {
			log.Fatalf("Failed to list registered experts: %v", err)
		}
		for _, rec := range records {
			experts = append(experts, expertInput{ORCID: rec.ORCID, Name: rec.Name})
		}
	}
	log.Printf("Loading %d experts", len(experts))

	// Optional institutional repository report
	if *dspaceURL != "" {
		dspaceClient := dspace.NewClient(*dspaceURL)
		items, err := dspaceClient.ListItems(100)
		if err != nil {
			log.Printf("WARN: DSpace listing failed: %v", err)
		} else {
			log.Printf("DSpace repository %s holds %d items", *dspaceURL, len(items))
		}
	}

	oaClient := openalex.NewClient(cfg.OpenAlex.BaseURL, cfg.OpenAlex.Email)
	orcidClient := orcid.NewClient()

	var loaded, skipped int
	for _, in := range experts {
		select {
		case <-ctx.Done():
			log.Println("Load interrupted")
			goto done
		default:
		}

		if err := loadExpert(ctx, store, expertRepo, oaClient, orcidClient, in, *maxWorks, *checkORCID); err != nil {
			log.Printf("WARN: skipping %s: %v", in.ORCID, err)
			skipped++
		} else {
			loaded++
		}
		time.Sleep(*delay)
	}

done:
	expertCount, categoryCount, relCount, err := store.Stats(context.Background())
	if err != nil {
		log.Printf("WARN: failed to read graph stats: %v", err)
	} else {
		log.Printf("Graph now holds %d experts, %d categories, %d relationships", expertCount, categoryCount, relCount)
	}
	log.Printf("Done: %d loaded, %d skipped", loaded, skipped)
}

func loadExpert(
	ctx context.Context,
	store *graph.ExpertStore,
	expertRepo *postgres.ExpertRepository,
	oaClient *openalex.Client,
	orcidClient *orcid.Client,
	in expertInput,
	maxWorks int,
	checkORCID bool,
) error {
	author, err := oaClient.GetAuthorByORCID(in.ORCID)
	if err != nil {
		return err
	}
	if author == nil {
		log.Printf("No OpenAlex author for ORCID %s", in.ORCID)
		return nil
	}

	name := in.Name
	if name == "" {
		name = author.DisplayName
	}

	if checkORCID {
		works, err := orcidClient.GetWorks(in.ORCID)
		if err != nil {
			log.Printf("WARN: ORCID registry check failed for %s: %v", in.ORCID, err)
		} else {
			log.Printf("%s: %d works in ORCID registry, %d in OpenAlex", in.ORCID, len(works), author.WorksCount)
		}
	}

	triples, err := oaClient.GetAuthorTopics(author.ID, maxWorks)
	if err != nil {
		return err
	}

	profile := profileFromTopics(triples)
	expertID := "https://orcid.org/" + in.ORCID

	if err := store.UpsertExpert(ctx, expertID, name); err != nil {
		return err
	}
	if err := store.AddExpertise(ctx, expertID, profile); err != nil {
		return err
	}

	if expertRepo != nil {
		rec := &domain.ExpertRecord{ORCID: in.ORCID, Name: name, Active: true}
		if err := expertRepo.Upsert(rec); err != nil {
			log.Printf("WARN: failed to record %s in registry: %v", in.ORCID, err)
		}
	}

	log.Printf("Loaded %s (%s): %d domains, %d fields, %d skills",
		name, in.ORCID, len(profile.Domains), len(profile.Fields), len(profile.Skills))
	return nil
}

// profileFromTopics flattens topic triples into the three expertise channels.
// Subfields are the finest classification OpenAlex offers, so they populate
// the skill channel.
func profileFromTopics(triples []openalex.TopicTriple) *domain.ExpertiseProfile {
	seen := map[string]map[string]struct{}{
		"domain": {},
		"field":  {},
		"skill":  {},
	}
	profile := &domain.ExpertiseProfile{}

	add := func(channel, name string, dst *[]string) {
		if name == "" {
			return
		}
		if _, dup := seen[channel][name]; dup {
			return
		}
		seen[channel][name] = struct{}{}
		*dst = append(*dst, name)
	}

	for _, t := range triples {
		add("domain", t.Domain, &profile.Domains)
		add("field", t.Field, &profile.Fields)
		add("skill", t.Subfield, &profile.Skills)
	}
	return profile
}

func readExpertCSV(path string) ([]expertInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var experts []expertInput
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		orcidID := strings.TrimSpace(row[0])
		if orcidID == "" || strings.EqualFold(orcidID, "orcid") {
			continue
		}
		in := expertInput{ORCID: orcidID}
		if len(row) > 1 {
			in.Name = strings.TrimSpace(row[1])
		}
		experts = append(experts, in)
	}
	return experts, nil
}
