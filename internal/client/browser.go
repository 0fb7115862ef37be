package client

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/studyspots-backend-go/internal/logger"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/ranking"
	"github.com/jengzang/studyspots-backend-go/internal/spatial"
)

// SearchDebounce is how long typing must pause before a search is sent
const SearchDebounce = 500 * time.Millisecond

// SpotLister is the part of Client the Browser needs
type SpotLister interface {
	ListSpots(ctx context.Context, q SpotQuery) (*models.SpotsResponse, error)
}

// View is what the Browser currently shows
type View struct {
	Spots      []models.StudySpot
	Total      int
	Page       int
	TotalPages int
	Intent     *models.SearchIntent
	Err        error
}

// HasMore reports whether another page exists
func (v View) HasMore() bool {
	return v.Page < v.TotalPages
}

// BrowserOptions configures a Browser
type BrowserOptions struct {
	PageSize int
	Debounce time.Duration
	// OnChange is called with a copy of the view after every applied update
	OnChange func(View)
	Logger   *zap.Logger
}

// Browser keeps the browsing state of one session: the search text, the
// selected category and sort, the origin, and the pages loaded so far.
// Responses for a state that has since changed are discarded.
type Browser struct {
	ctx      context.Context
	lister   SpotLister
	pageSize int
	debounce time.Duration
	onChange func(View)
	log      *zap.Logger

	mu       sync.Mutex
	search   string
	category string
	picked   bool // category chosen explicitly, so it overrides the derived one
	sort     ranking.SortMode
	origin   *spatial.Coordinates
	gen      uint64
	timer    *time.Timer
	loading  bool
	view     View
}

// NewBrowser creates a Browser. ctx bounds every request it makes.
func NewBrowser(ctx context.Context, lister SpotLister, opts BrowserOptions) *Browser {
	if opts.PageSize <= 0 {
		opts.PageSize = ranking.DefaultPageSize
	}
	if opts.Debounce <= 0 {
		opts.Debounce = SearchDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logger.L()
	}
	return &Browser{
		ctx:      ctx,
		lister:   lister,
		pageSize: opts.PageSize,
		debounce: opts.Debounce,
		onChange: opts.OnChange,
		log:      opts.Logger,
		category: ranking.All,
		sort:     ranking.SortNone,
	}
}

// SetSearch records new search text and schedules a refresh once typing
// pauses. Each call restarts the wait.
func (b *Browser) SetSearch(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.search = text
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, func() {
		if err := b.Refresh(); err != nil {
			b.log.Warn("search refresh failed", zap.Error(err))
		}
	})
}

// SetCategory selects a category label and refreshes immediately
func (b *Browser) SetCategory(label string) error {
	b.mu.Lock()
	b.category = ranking.Label(label)
	b.picked = true
	b.gen++
	b.mu.Unlock()
	return b.Refresh()
}

// SetSort selects a sort mode and refreshes immediately
func (b *Browser) SetSort(mode ranking.SortMode) error {
	b.mu.Lock()
	b.sort = mode
	b.gen++
	b.mu.Unlock()
	return b.Refresh()
}

// SetOrigin sets or clears the position used for distance sorting. A
// changed origin invalidates the loaded pages and refreshes the list.
func (b *Browser) SetOrigin(origin *spatial.Coordinates) error {
	b.mu.Lock()
	if origin != nil && !origin.Valid() {
		origin = nil
	}
	if sameOrigin(b.origin, origin) {
		b.mu.Unlock()
		return nil
	}
	if origin != nil {
		c := *origin
		origin = &c
	}
	b.origin = origin
	b.gen++
	b.mu.Unlock()
	return b.Refresh()
}

// RestoreLocation loads a remembered origin from cache. It reports whether
// one was found.
func (b *Browser) RestoreLocation(ctx context.Context, cache *LocationCache) (bool, error) {
	c, err := cache.Load(ctx)
	if err != nil || c == nil {
		return false, err
	}
	return true, b.SetOrigin(c)
}

func sameOrigin(a, b *spatial.Coordinates) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Refresh reloads the first page for the current state
func (b *Browser) Refresh() error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.loading = false
	q := b.query(1)
	b.mu.Unlock()

	resp, err := b.lister.ListSpots(b.ctx, q)

	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return nil
	}
	if err != nil {
		b.view.Err = err
		view := b.snapshot()
		b.mu.Unlock()
		b.notify(view)
		return err
	}
	b.view = View{
		Spots:      resp.Spots,
		Total:      resp.Total,
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
		Intent:     resp.Intent,
	}
	view := b.snapshot()
	b.mu.Unlock()

	b.notify(view)
	return nil
}

// LoadMore fetches the next page and merges it into the view. It returns
// false without a request when a load is already running or no page is
// left.
func (b *Browser) LoadMore() (bool, error) {
	b.mu.Lock()
	if b.loading || !b.view.HasMore() {
		b.mu.Unlock()
		return false, nil
	}
	b.loading = true
	gen := b.gen
	q := b.query(b.view.Page + 1)
	b.mu.Unlock()

	resp, err := b.lister.ListSpots(b.ctx, q)

	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return false, nil
	}
	b.loading = false
	if err != nil {
		b.view.Err = err
		view := b.snapshot()
		b.mu.Unlock()
		b.notify(view)
		return false, err
	}
	b.view.Spots = ranking.MergePage(b.view.Spots, resp.Spots, b.sort, b.origin)
	b.view.Page = resp.Page
	b.view.Total = resp.Total
	b.view.TotalPages = resp.TotalPages
	b.view.Err = nil
	view := b.snapshot()
	b.mu.Unlock()

	b.notify(view)
	return true, nil
}

// View returns a copy of the current view
func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

// Stop cancels a pending debounced search
func (b *Browser) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// query must be called with mu held
func (b *Browser) query(page int) SpotQuery {
	q := SpotQuery{
		Page:   page,
		Limit:  b.pageSize,
		Query:  b.search,
		SortBy: string(b.sort),
		Origin: b.origin,
	}
	if b.picked {
		q.Category = b.category
	}
	return q
}

func (b *Browser) snapshot() View {
	v := b.view
	v.Spots = append([]models.StudySpot(nil), b.view.Spots...)
	return v
}

func (b *Browser) notify(v View) {
	if b.onChange != nil {
		b.onChange(v)
	}
}
