package tournament

import "context"

// BatchResult carries the per-row outcome of a transactional upsert.
type BatchResult struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// Repository owns the persisted tournament table. UpsertBatch applies the
// whole batch in one transaction with asymmetric merge semantics: incoming
// empty fields never overwrite stored values.
type Repository interface {
	UpsertBatch(ctx context.Context, candidates []Tournament) (BatchResult, error)
	List(ctx context.Context, limit int) ([]Tournament, error)
	Count(ctx context.Context) (int, error)
}
