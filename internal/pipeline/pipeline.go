// Package pipeline wires the record store, the profile transforms, the
// scoring engine and the review stage into the four operator-invoked runs.
// Applicants are processed sequentially in source collection order;
// per-applicant failures are logged skips, per-batch upsert failures are
// surfaced without aborting the remaining batches.
package pipeline

import (
	"fmt"

	"github.com/talentops/shortlister/internal/airtable"
	"github.com/talentops/shortlister/internal/review"
	"github.com/talentops/shortlister/internal/scoring"
	"go.uber.org/zap"
)

// Store is the record store gateway: the two primitive operations every
// stage is built on.
type Store interface {
	FetchAll(table string) ([]airtable.Record, error)
	Upsert(table string, records []airtable.Record, mode airtable.UpsertMode) error
}

// Tables maps the logical table roles onto store table identifiers.
type Tables struct {
	Applicants  string `mapstructure:"applicants"`
	Personal    string `mapstructure:"personal"`
	Experience  string `mapstructure:"experience"`
	Salary      string `mapstructure:"salary"`
	Shortlisted string `mapstructure:"shortlisted"`
}

// Validate reports the first missing table identifier.
func (t Tables) Validate() error {
	named := []struct {
		role string
		id   string
	}{
		{"applicants", t.Applicants},
		{"personal", t.Personal},
		{"experience", t.Experience},
		{"salary", t.Salary},
		{"shortlisted", t.Shortlisted},
	}

	for _, table := range named {
		if table.id == "" {
			return fmt.Errorf("table id for %q is not configured", table.role)
		}
	}

	return nil
}

type Pipeline struct {
	store     Store
	tables    Tables
	engine    *scoring.Engine
	reviewer  review.Reviewer
	logger    *zap.Logger
	batchSize int
}

func New(store Store, tables Tables, engine *scoring.Engine, reviewer review.Reviewer, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:     store,
		tables:    tables,
		engine:    engine,
		reviewer:  reviewer,
		logger:    logger,
		batchSize: airtable.MaxBatchSize,
	}
}

// upsertBatches writes records in fixed-size chunks. A failed batch is logged
// and counted; processing continues with the next batch and the failure
// count is surfaced at the end. Batches are not transactional.
func (p *Pipeline) upsertBatches(table string, records []airtable.Record, mode airtable.UpsertMode) error {
	if len(records) == 0 {
		return nil
	}

	batches := airtable.Chunk(records, p.batchSize)
	failed := 0
	for i, batch := range batches {
		if err := p.store.Upsert(table, batch, mode); err != nil {
			failed++
			p.logger.Error("batch upsert failed",
				zap.String("table", table),
				zap.Int("batch", i+1),
				zap.Int("batches", len(batches)),
				zap.Error(err),
			)
			continue
		}

		p.logger.Debug("batch upserted",
			zap.String("table", table),
			zap.Int("batch", i+1),
			zap.Int("batches", len(batches)),
			zap.Int("records", len(batch)),
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d batches failed for table %s", failed, len(batches), table)
	}

	return nil
}
