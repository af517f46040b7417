package neo4j

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/job"

	pkgneo4j "github.com/honeycarbs/jobflow/pkg/neo4j"
)

// Ensure JobRepository implements job.Repository
var _ job.Repository = (*JobRepository)(nil)

// JobRepository archives merged job pools in Neo4j
type JobRepository struct {
	client *pkgneo4j.Client
	clock  func() time.Time
}

// NewJobRepository creates a JobRepository with a Neo4j client
func NewJobRepository(client *pkgneo4j.Client) *JobRepository {
	return &JobRepository{
		client: client,
		clock:  time.Now,
	}
}

// EnsureSchema creates the uniqueness constraint on job ids
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `CREATE CONSTRAINT job_id IF NOT EXISTS FOR (j:Job) REQUIRE j.id IS UNIQUE`, nil)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	return errors.Wrap(err, "neo4j: ensure schema")
}

// UpsertJobs merges jobs by id and links each to its company
func (r *JobRepository) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		UNWIND $jobs AS job
		MERGE (j:Job {id: job.id})
		SET j.title = job.title,
		    j.location = job.location,
		    j.source = job.source,
		    j.applyUrl = job.applyUrl,
		    j.postedAt = job.postedAt,
		    j.archivedAt = $archivedAt
		WITH j, job
		WHERE job.company <> ''
		MERGE (c:Company {name: job.company})
		MERGE (j)-[:POSTED_BY]->(c)
	`

	params := map[string]any{
		"jobs":       toParams(jobs),
		"archivedAt": r.clock().UTC(),
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})

	return errors.Wrap(err, "neo4j: upsert jobs")
}

// FindByIDs loads archived jobs by id
func (r *JobRepository) FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	query := `
		MATCH (j:Job)
		WHERE j.id IN $ids
		OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
		RETURN j, c.name AS company
	`

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, map[string]any{"ids": idStrings})
		if err != nil {
			return nil, err
		}

		jobs := make([]domain.Job, 0, len(ids))
		for records.Next(ctx) {
			record := records.Record()

			nodeVal, ok := record.Get("j")
			if !ok {
				continue
			}
			node, ok := nodeVal.(neo4j.Node)
			if !ok {
				continue
			}

			company, _ := record.Get("company")
			name, _ := company.(string)

			if j, ok := fromProps(node.Props, name); ok {
				jobs = append(jobs, j)
			}
		}
		return jobs, records.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "neo4j: find jobs")
	}

	return result.([]domain.Job), nil
}

func toParams(jobs []domain.Job) []map[string]any {
	out := make([]map[string]any, 0, len(jobs))
	for _, j := range jobs {
		var posted any
		if j.PostedAt != nil {
			posted = j.PostedAt.UTC()
		}
		out = append(out, map[string]any{
			"id":       j.ID.String(),
			"title":    j.Title,
			"company":  j.Company,
			"location": j.Location,
			"source":   j.Source,
			"applyUrl": j.ApplyURL,
			"postedAt": posted,
		})
	}
	return out
}

func fromProps(props map[string]any, company string) (domain.Job, bool) {
	rawID, _ := props["id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.Job{}, false
	}

	j := domain.Job{
		ID:      id,
		Company: company,
	}
	j.Title, _ = props["title"].(string)
	j.Location, _ = props["location"].(string)
	j.Source, _ = props["source"].(string)
	j.ApplyURL, _ = props["applyUrl"].(string)

	switch v := props["postedAt"].(type) {
	case time.Time:
		j.PostedAt = &v
	case neo4j.LocalDateTime:
		t := v.Time()
		j.PostedAt = &t
	}
	return j, true
}
