package browse

import (
	"context"
	"log/slog"

	"github.com/mmcdole/barcart/internal/domain"
)

// DefaultLetter is the first letter the home feed searches by
const DefaultLetter = "a"

// Pager holds the running home feed: cocktails whose name starts with one
// letter, fetched page by page and appended in fetch order.
type Pager struct {
	repo   domain.CatalogRepository
	letter string
	logger *slog.Logger

	items     []domain.CocktailSummary
	seen      map[domain.CocktailID]struct{}
	nextPage  int
	loading   bool
	exhausted bool
	err       error

	// token invalidates in-flight requests across Reset
	token uint64
}

// PageRequest is an in-flight page fetch
type PageRequest struct {
	repo   domain.CatalogRepository
	letter string
	page   int
	token  uint64
}

// PageResult is the outcome of PageRequest.Run
type PageResult struct {
	Page  int
	Items []domain.CocktailSummary
	Err   error
	token uint64
}

// NewPager creates a home feed pager for letter
func NewPager(repo domain.CatalogRepository, letter string, logger *slog.Logger) *Pager {
	if logger == nil {
		logger = slog.Default()
	}
	if letter == "" {
		letter = DefaultLetter
	}
	return &Pager{
		repo:     repo,
		letter:   letter,
		logger:   logger,
		seen:     make(map[domain.CocktailID]struct{}),
		nextPage: 1,
	}
}

// Items returns the list in fetch order. Callers must not modify it.
func (p *Pager) Items() []domain.CocktailSummary { return p.items[:len(p.items):len(p.items)] }

// Len returns the number of loaded items
func (p *Pager) Len() int { return len(p.items) }

// NextPage returns the page the next LoadMore will fetch
func (p *Pager) NextPage() int { return p.nextPage }

// Loading reports whether a page fetch is in flight
func (p *Pager) Loading() bool { return p.loading }

// Exhausted reports whether the feed has no further pages
func (p *Pager) Exhausted() bool { return p.exhausted }

// Err returns the error of the last failed fetch, cleared on success
func (p *Pager) Err() error { return p.err }

// Letter returns the search letter of the feed
func (p *Pager) Letter() string { return p.letter }

// LoadInitial begins fetching page 1 when the list is empty and idle.
// A feed whose first page came back empty stays exhausted until Reset.
func (p *Pager) LoadInitial() (*PageRequest, bool) {
	if len(p.items) > 0 || p.loading || p.exhausted {
		return nil, false
	}
	p.nextPage = 1
	return p.begin(), true
}

// LoadMore begins fetching the next page. Calls while a fetch is in flight,
// or after the feed is exhausted, are no-ops.
func (p *Pager) LoadMore() (*PageRequest, bool) {
	if p.loading || p.exhausted {
		return nil, false
	}
	if len(p.items) == 0 {
		return p.LoadInitial()
	}
	return p.begin(), true
}

func (p *Pager) begin() *PageRequest {
	p.loading = true
	p.logger.Debug("page fetch started", "letter", p.letter, "page", p.nextPage)
	return &PageRequest{
		repo:   p.repo,
		letter: p.letter,
		page:   p.nextPage,
		token:  p.token,
	}
}

// Page returns the page number being fetched
func (r *PageRequest) Page() int { return r.page }

// Run performs the fetch. It does not touch pager state and may run on any goroutine.
func (r *PageRequest) Run(ctx context.Context) PageResult {
	details, err := r.repo.SearchByFirstLetter(ctx, r.letter, r.page)
	res := PageResult{Page: r.page, Err: err, token: r.token}
	if err == nil {
		res.Items = domain.Summaries(details)
	}
	return res
}

// Apply folds a fetch result into the list. On failure the list is left
// unchanged and the error is returned. Results from before a Reset are dropped.
func (p *Pager) Apply(res PageResult) error {
	if res.token != p.token || !p.loading {
		p.logger.Debug("dropping stale page", "page", res.Page)
		return nil
	}
	p.loading = false

	if res.Err != nil {
		p.err = res.Err
		p.logger.Warn("page fetch failed", "letter", p.letter, "page", res.Page, "error", res.Err)
		return res.Err
	}
	p.err = nil

	added := 0
	for _, item := range res.Items {
		if _, dup := p.seen[item.ID]; dup {
			continue
		}
		p.seen[item.ID] = struct{}{}
		p.items = append(p.items, item)
		added++
	}

	p.nextPage = res.Page + 1

	// A page with nothing new means the catalog ignored the page parameter
	// or ran out of results; either way there is nothing more to fetch.
	if added == 0 {
		p.exhausted = true
	}

	p.logger.Debug("page applied", "page", res.Page, "received", len(res.Items), "added", added, "total", len(p.items))
	return nil
}

// Load runs req and applies its result on the calling goroutine
func (p *Pager) Load(ctx context.Context, req *PageRequest) error {
	if req == nil {
		return nil
	}
	return p.Apply(req.Run(ctx))
}

// Reset clears the feed back to an empty list at page 1
func (p *Pager) Reset() {
	p.token++
	p.items = nil
	p.seen = make(map[domain.CocktailID]struct{})
	p.nextPage = 1
	p.loading = false
	p.exhausted = false
	p.err = nil
}
