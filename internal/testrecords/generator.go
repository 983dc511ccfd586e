// Package testrecords generates deterministic participant records for tests.
package testrecords

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/okian/arcadeboard/internal/domain/model"
)

// Counter ranges mirror the shape of a real cohort export.
const (
	maxSkillBadges = 49
	maxArcadeGames = 11
	maxTriviaGames = 9
)

// Redeem statuses seen in cohort exports.
var statuses = []string{"Yes", "Yes", "Yes", "No"}

// Generator produces reproducible records from a seed.
type Generator struct {
	faker *gofakeit.Faker
	seed  uint64
}

// New creates a generator. The same seed always yields the same records.
func New(seed uint64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		seed:  seed,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Counts returns one random set of non-negative counters.
func (g *Generator) Counts() model.ActivityCounts {
	return model.ActivityCounts{
		SkillBadges: g.faker.Number(0, maxSkillBadges),
		ArcadeGames: g.faker.Number(0, maxArcadeGames),
		TriviaGames: g.faker.Number(0, maxTriviaGames),
	}
}

// Records returns n records with IDs p-0001, p-0002, ...
func (g *Generator) Records(n int) []model.Record {
	records := make([]model.Record, n)
	for i := range records {
		records[i] = model.Record{
			ID:     fmt.Sprintf("p-%04d", i+1),
			Name:   g.faker.Name(),
			Status: statuses[g.faker.Number(0, len(statuses)-1)],
			Counts: g.Counts(),
		}
	}
	return records
}
