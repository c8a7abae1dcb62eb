package testutil

// FixedRequestIDs generates the same request id every time.
//
// The same test with the same FixedRequestIDs produces byte-identical
// request logs.
//
// Thread-safety: FixedRequestIDs is stateless and safe for concurrent use.
type FixedRequestIDs struct {
	id string
}

// NewFixedRequestIDs creates a generator. If id is empty, Generate()
// returns "test-request-default".
func NewFixedRequestIDs(id string) *FixedRequestIDs {
	if id == "" {
		id = "test-request-default"
	}
	return &FixedRequestIDs{id: id}
}

// Generate returns the fixed id.
//
// Implements api.RequestIDGenerator.
func (g *FixedRequestIDs) Generate() string {
	return g.id
}
