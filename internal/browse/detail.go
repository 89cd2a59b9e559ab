package browse

import (
	"context"

	"github.com/mmcdole/barcart/internal/domain"
)

// DetailLoader fetches and exposes one cocktail for a detail view.
// It is discarded with its view; Close makes late completions no-ops.
type DetailLoader struct {
	repo   domain.CatalogRepository
	id     domain.CocktailID
	state  FetchState[domain.CocktailDetail]
	closed bool
}

// DetailRequest is an in-flight lookup
type DetailRequest struct {
	repo domain.CatalogRepository
	id   domain.CocktailID
}

// DetailResult is the outcome of DetailRequest.Run
type DetailResult struct {
	ID     domain.CocktailID
	Detail domain.CocktailDetail
	Err    error
}

// NewDetailLoader creates a loader for id
func NewDetailLoader(repo domain.CatalogRepository, id domain.CocktailID) *DetailLoader {
	return &DetailLoader{repo: repo, id: id}
}

// ID returns the cocktail this loader is for
func (l *DetailLoader) ID() domain.CocktailID { return l.id }

// State returns Loading, Ready(detail) or Failed(err)
func (l *DetailLoader) State() FetchState[domain.CocktailDetail] { return l.state }

// Kind classifies the failure; KindUnknown unless the state is Failed
func (l *DetailLoader) Kind() domain.ErrorKind {
	if !l.state.Failed() {
		return domain.KindUnknown
	}
	return domain.KindOf(l.state.Err)
}

// Begin moves to Loading and returns the lookup to run.
// It returns nil when closed or already loading.
func (l *DetailLoader) Begin() *DetailRequest {
	if l.closed || l.state.Loading() {
		return nil
	}
	l.state = l.state.Reduce(FetchStarted[domain.CocktailDetail]{})
	return &DetailRequest{repo: l.repo, id: l.id}
}

// Run performs the lookup without touching loader state
func (r *DetailRequest) Run(ctx context.Context) DetailResult {
	detail, err := r.repo.LookupByID(ctx, r.id)
	return DetailResult{ID: r.id, Detail: detail, Err: err}
}

// Apply folds a lookup result into the loader
func (l *DetailLoader) Apply(res DetailResult) {
	if l.closed || res.ID != l.id || !l.state.Loading() {
		return
	}
	l.state = l.state.Reduce(resultEvent(res.Detail, res.Err))
}

// Close discards the loader
func (l *DetailLoader) Close() { l.closed = true }

// Closed reports whether the loader was discarded
func (l *DetailLoader) Closed() bool { return l.closed }

// Load begins, runs and applies a lookup on the calling goroutine
func (l *DetailLoader) Load(ctx context.Context) error {
	req := l.Begin()
	if req == nil {
		return nil
	}
	l.Apply(req.Run(ctx))
	return l.state.Err
}
