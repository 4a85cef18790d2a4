package testutil

// DefaultGenomeID is used when no genome id is given.
const DefaultGenomeID = "test-genome-default"

// FixedIDGenerator returns the same genome id every time.
//
// Journals recorded with it are byte-identical across runs, which golden
// trace comparison relies on. It satisfies engine.IDGenerator.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator for id. An empty id becomes
// DefaultGenomeID.
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = DefaultGenomeID
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
