package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/sabastianrafa/powergym-ag-system/internal/logging"
)

var (
	ErrPageSize       = errors.New("unsupported page size")
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrStale is returned by a fetch that was overtaken by a newer one.
	// Its result was discarded.
	ErrStale = errors.New("listing superseded by a newer fetch")
)

// Source is the customers collaborator of the view-model.
type Source interface {
	List(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error)
	Delete(ctx context.Context, id string) error
}

// CustomerList is the view-model of the customers screen. Every change of
// search, filters, page or page size refetches; Sort only reorders the
// loaded rows. Safe for concurrent use: each fetch cancels its predecessor
// and only the latest fetch may update the state.
type CustomerList struct {
	src Source
	log logging.Logger

	mu      sync.Mutex
	query   Query
	loaded  []models.Customer
	rows    []models.Customer
	total   int
	fetched bool
	loading bool
	err     error

	seq    uint64
	cancel context.CancelFunc
}

// Snapshot is a consistent read of the view-model.
type Snapshot struct {
	Query     Query
	Rows      []models.Customer
	Total     int
	PageCount int
	Loading   bool
	Err       error
}

// Open creates a view-model with an unsupported pageSize replaced by
// DefaultPageSize, and performs the first fetch. The list is returned even
// when that fetch fails.
func Open(ctx context.Context, src Source, pageSize int, log logging.Logger) (*CustomerList, error) {
	if log == nil {
		log = logging.Nop()
	}
	l := &CustomerList{
		src:   src,
		log:   log.With("component", "customer-list"),
		query: newQuery(pageSize),
	}
	return l, l.Reload(ctx)
}

// Reload refetches the current page.
func (l *CustomerList) Reload(ctx context.Context) error {
	return l.fetch(ctx)
}

func (l *CustomerList) update(ctx context.Context, mutate func(q *Query)) error {
	l.mu.Lock()
	mutate(&l.query)
	l.mu.Unlock()
	return l.fetch(ctx)
}

func (l *CustomerList) SetSearch(ctx context.Context, text string) error {
	return l.update(ctx, func(q *Query) { q.Search = text; q.Page = 1 })
}

// SetDocumentType filters by document type; "" clears the filter.
func (l *CustomerList) SetDocumentType(ctx context.Context, dt models.DocumentType) error {
	if dt != "" && !dt.Valid() {
		return fmt.Errorf("unknown document type %q", dt)
	}
	return l.update(ctx, func(q *Query) { q.DocumentType = dt; q.Page = 1 })
}

func (l *CustomerList) SetGender(ctx context.Context, g models.Gender) error {
	if g != "" && !g.Valid() {
		return fmt.Errorf("unknown gender %q", g)
	}
	return l.update(ctx, func(q *Query) { q.Gender = g; q.Page = 1 })
}

func (l *CustomerList) SetStatus(ctx context.Context, s models.RecordStatus) error {
	if s != "" && !s.Valid() {
		return fmt.Errorf("unknown status %q", s)
	}
	return l.update(ctx, func(q *Query) { q.Status = s; q.Page = 1 })
}

func (l *CustomerList) SetPageSize(ctx context.Context, n int) error {
	if !ValidPageSize(n) {
		return fmt.Errorf("%w: %d", ErrPageSize, n)
	}
	return l.update(ctx, func(q *Query) { q.PageSize = n; q.Page = 1 })
}

// SetPage moves to page p. Pages start at 1 and, once a total is known,
// end at PageCount. When the fetch fails the list stays on the page whose
// rows it still shows.
func (l *CustomerList) SetPage(ctx context.Context, p int) error {
	l.mu.Lock()
	last := l.pageCountLocked()
	if p < 1 || (l.fetched && last > 0 && p > last) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrPageOutOfRange, p)
	}
	prev := l.query.Page
	l.query.Page = p
	l.mu.Unlock()

	err := l.fetch(ctx)
	if err != nil && !errors.Is(err, ErrStale) {
		l.mu.Lock()
		if l.query.Page == p {
			l.query.Page = prev
		}
		l.mu.Unlock()
	}
	return err
}

func (l *CustomerList) NextPage(ctx context.Context) error {
	return l.SetPage(ctx, l.Query().Page+1)
}

func (l *CustomerList) PrevPage(ctx context.Context) error {
	return l.SetPage(ctx, l.Query().Page-1)
}

// Sort orders the loaded rows by column. Sorting the active column again
// flips the direction; a new column starts ascending. No fetch is issued.
func (l *CustomerList) Sort(column Column) error {
	if _, ok := columns[column]; !ok {
		return ErrUnknownColumn
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.query.SortColumn == column {
		if l.query.SortDirection == Asc {
			l.query.SortDirection = Desc
		} else {
			l.query.SortDirection = Asc
		}
	} else {
		l.query.SortColumn = column
		l.query.SortDirection = Asc
	}
	l.applySortLocked()
	return nil
}

// Delete removes a customer and reloads the current page.
func (l *CustomerList) Delete(ctx context.Context, id string) error {
	if err := l.src.Delete(ctx, id); err != nil {
		return err
	}
	l.log.Info(ctx, "customer deleted", "id", id)
	return l.fetch(ctx)
}

func (l *CustomerList) fetch(ctx context.Context) error {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	fctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	filter := l.query.Filter()
	l.loading = true
	l.mu.Unlock()

	defer cancel()

	page, err := l.src.List(fctx, filter)

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		l.log.Debug(ctx, "discarding stale listing", "seq", seq, "latest", l.seq)
		return ErrStale
	}
	l.loading = false
	l.cancel = nil

	if err != nil {
		l.err = err
		l.log.Warn(ctx, "customer listing failed", "skip", filter.Skip, "limit", filter.Limit, "error", err)
		return err
	}

	l.err = nil
	l.fetched = true
	l.loaded = page.Items
	l.total = page.Total
	l.applySortLocked()

	l.log.Debug(ctx, "customers fetched",
		"count", len(page.Items), "total", page.Total, "skip", filter.Skip, "limit", filter.Limit)
	return nil
}

func (l *CustomerList) applySortLocked() {
	rows := make([]models.Customer, len(l.loaded))
	copy(rows, l.loaded)
	if l.query.SortColumn != "" {
		sortRows(rows, l.query.SortColumn, l.query.SortDirection)
	}
	l.rows = rows
}

func (l *CustomerList) pageCountLocked() int {
	if l.query.PageSize <= 0 || l.total <= 0 {
		return 0
	}
	return (l.total + l.query.PageSize - 1) / l.query.PageSize
}

func (l *CustomerList) Query() Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Rows returns the loaded page in display order.
func (l *CustomerList) Rows() []models.Customer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Customer(nil), l.rows...)
}

func (l *CustomerList) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// PageCount is ceil(Total / PageSize), 0 for an empty listing.
func (l *CustomerList) PageCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageCountLocked()
}

func (l *CustomerList) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Query:     l.query,
		Rows:      append([]models.Customer(nil), l.rows...),
		Total:     l.total,
		PageCount: l.pageCountLocked(),
		Loading:   l.loading,
		Err:       l.err,
	}
}

// Close cancels an in-flight fetch.
func (l *CustomerList) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
