package listing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/sabastianrafa/powergym-ag-system/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	filters []models.CustomerFilter
	deleted []string

	page      models.CustomerPage
	err       error
	deleteErr error
}

func (f *fakeSource) List(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	return f.page, f.err
}

func (f *fakeSource) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeSource) fetches() []models.CustomerFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CustomerFilter(nil), f.filters...)
}

func (f *fakeSource) last() models.CustomerFilter {
	all := f.fetches()
	return all[len(all)-1]
}

func customers(ids ...string) []models.Customer {
	out := make([]models.Customer, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Customer{ID: id, FirstName: id})
	}
	return out
}

func openList(t *testing.T, src *fakeSource, pageSize int) *CustomerList {
	t.Helper()
	l, err := Open(context.Background(), src, pageSize, nil)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l
}

func TestOpen_FetchesFirstPage(t *testing.T) {
	src := &fakeSource{page: models.CustomerPage{Items: customers("a", "b"), Total: 2}}
	l := openList(t, src, 10)

	want := []models.CustomerFilter{{Skip: 0, Limit: 10}}
	if diff := cmp.Diff(want, src.fetches()); diff != "" {
		t.Errorf("fetches mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, l.Rows(), 2)
	assert.Equal(t, 2, l.Total())
	assert.Equal(t, 1, l.PageCount())
}

func TestOpen_UnsupportedPageSizeFallsBack(t *testing.T) {
	src := &fakeSource{page: models.CustomerPage{Total: 0}}
	l := openList(t, src, 7)
	assert.Equal(t, DefaultPageSize, l.Query().PageSize)
	assert.Equal(t, 0, l.PageCount())
}

func TestOpen_ReturnsListOnError(t *testing.T) {
	boom := errors.New("boom")
	l, err := Open(context.Background(), &fakeSource{err: boom}, 10, nil)
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, l)
	assert.ErrorIs(t, l.Snapshot().Err, boom)
	assert.False(t, l.Snapshot().Loading)
}

func TestPageSizeChangeResetsToFirstPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{page: models.CustomerPage{Items: customers("a"), Total: 95}}
	l := openList(t, src, 10)

	require.NoError(t, l.SetPage(ctx, 3))
	assert.Equal(t, models.CustomerFilter{Skip: 20, Limit: 10}, src.last())

	require.NoError(t, l.SetPageSize(ctx, 25))
	assert.Equal(t, 1, l.Query().Page)
	assert.Equal(t, models.CustomerFilter{Skip: 0, Limit: 25}, src.last())
	assert.Equal(t, 4, l.PageCount())
}

func TestFilterChangesResetPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{page: models.CustomerPage{Total: 500}}
	l := openList(t, src, 10)

	steps := []struct {
		name   string
		change func() error
	}{
		{"search", func() error { return l.SetSearch(ctx, "  gomez ") }},
		{"document type", func() error { return l.SetDocumentType(ctx, models.DocumentTI) }},
		{"gender", func() error { return l.SetGender(ctx, models.GenderOther) }},
		{"status", func() error { return l.SetStatus(ctx, models.StatusInactive) }},
		{"same search again", func() error { return l.SetSearch(ctx, "  gomez ") }},
	}

	for _, st := range steps {
		require.NoError(t, l.SetPage(ctx, 4), st.name)
		n := len(src.fetches())

		require.NoError(t, st.change(), st.name)
		assert.Equal(t, 1, l.Query().Page, st.name)
		assert.Len(t, src.fetches(), n+1, st.name)
		assert.Equal(t, 0, src.last().Skip, st.name)
	}

	assert.Equal(t, models.CustomerFilter{
		Skip:         0,
		Limit:        10,
		DocumentType: models.DocumentTI,
		Gender:       models.GenderOther,
		Status:       models.StatusInactive,
		Search:       "gomez",
	}, src.last())

	require.NoError(t, l.SetDocumentType(ctx, ""))
	assert.Empty(t, src.last().DocumentType)
}

func TestInvalidChangesDoNotFetch(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{page: models.CustomerPage{Total: 30}}
	l := openList(t, src, 10)
	n := len(src.fetches())

	assert.ErrorIs(t, l.SetPageSize(ctx, 20), ErrPageSize)
	assert.Error(t, l.SetDocumentType(ctx, "XX"))
	assert.Error(t, l.SetGender(ctx, "Z"))
	assert.Error(t, l.SetStatus(ctx, "gone"))
	assert.ErrorIs(t, l.SetPage(ctx, 0), ErrPageOutOfRange)
	assert.ErrorIs(t, l.SetPage(ctx, 4), ErrPageOutOfRange)
	assert.ErrorIs(t, l.PrevPage(ctx), ErrPageOutOfRange)

	assert.Len(t, src.fetches(), n)
	assert.Equal(t, 1, l.Query().Page)
}

func TestNextPrevPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{page: models.CustomerPage{Total: 25}}
	l := openList(t, src, 10)

	require.NoError(t, l.NextPage(ctx))
	require.NoError(t, l.NextPage(ctx))
	assert.Equal(t, 3, l.Query().Page)
	assert.ErrorIs(t, l.NextPage(ctx), ErrPageOutOfRange)

	require.NoError(t, l.PrevPage(ctx))
	assert.Equal(t, models.CustomerFilter{Skip: 10, Limit: 10}, src.last())
}

func TestFailedPageChangeKeepsShownPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{page: models.CustomerPage{Items: customers("a", "b"), Total: 25}}
	l := openList(t, src, 10)

	src.mu.Lock()
	src.err = errors.New("boom")
	src.mu.Unlock()

	require.Error(t, l.NextPage(ctx))
	assert.Equal(t, models.CustomerFilter{Skip: 10, Limit: 10}, src.last())
	assert.Equal(t, 1, l.Query().Page)
	assert.Equal(t, []string{"a", "b"}, ids(l.Rows()))
	assert.Error(t, l.Snapshot().Err)

	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()

	require.NoError(t, l.NextPage(ctx))
	assert.Equal(t, 2, l.Query().Page)
	assert.Equal(t, models.CustomerFilter{Skip: 10, Limit: 10}, src.last())
	assert.NoError(t, l.Snapshot().Err)
}

func TestSortNeverFetchesNorMovesPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{page: models.CustomerPage{Items: customers("b", "c", "a"), Total: 40}}
	l := openList(t, src, 10)
	require.NoError(t, l.SetPage(ctx, 2))
	n := len(src.fetches())

	require.NoError(t, l.Sort(ColFirstName))
	assert.Equal(t, []string{"a", "b", "c"}, ids(l.Rows()))

	require.NoError(t, l.Sort(ColFirstName))
	assert.Equal(t, []string{"c", "b", "a"}, ids(l.Rows()))

	assert.Len(t, src.fetches(), n)
	assert.Equal(t, 2, l.Query().Page)
}

func TestSortToggling(t *testing.T) {
	l := openList(t, &fakeSource{}, 10)

	require.NoError(t, l.Sort(ColPhone))
	assert.Equal(t, Asc, l.Query().SortDirection)
	require.NoError(t, l.Sort(ColPhone))
	assert.Equal(t, Desc, l.Query().SortDirection)

	require.NoError(t, l.Sort(ColGender))
	assert.Equal(t, ColGender, l.Query().SortColumn)
	assert.Equal(t, Asc, l.Query().SortDirection)

	assert.ErrorIs(t, l.Sort("shoe_size"), ErrUnknownColumn)
	assert.Equal(t, ColGender, l.Query().SortColumn)
}

func TestSortNullsLast(t *testing.T) {
	rows := []models.Customer{
		{ID: "1", Phone: nil},
		{ID: "2", Phone: models.Ptr("3005550002")},
		{ID: "3", Phone: nil},
		{ID: "4", Phone: models.Ptr("3005550001")},
	}
	l := openList(t, &fakeSource{page: models.CustomerPage{Items: rows, Total: 4}}, 10)

	require.NoError(t, l.Sort(ColPhone))
	assert.Equal(t, []string{"4", "2", "1", "3"}, ids(l.Rows()))

	require.NoError(t, l.Sort(ColPhone))
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(l.Rows()))
}

func TestSortByBirthDate(t *testing.T) {
	d := func(s string) *models.Date {
		v, err := models.ParseDate(s)
		require.NoError(t, err)
		return &v
	}
	rows := []models.Customer{
		{ID: "young", BirthDate: d("2004-02-01")},
		{ID: "none"},
		{ID: "old", BirthDate: d("1961-11-30")},
	}
	l := openList(t, &fakeSource{page: models.CustomerPage{Items: rows, Total: 3}}, 10)

	require.NoError(t, l.Sort(ColBirthDate))
	assert.Equal(t, []string{"old", "young", "none"}, ids(l.Rows()))
}

func TestSortIsStableAndSurvivesRefetch(t *testing.T) {
	ctx := context.Background()
	rows := []models.Customer{
		{ID: "1", Gender: models.GenderMale},
		{ID: "2", Gender: models.GenderFemale},
		{ID: "3", Gender: models.GenderMale},
		{ID: "4", Gender: models.GenderFemale},
	}
	src := &fakeSource{page: models.CustomerPage{Items: rows, Total: 4}}
	l := openList(t, src, 10)

	require.NoError(t, l.Sort(ColGender))
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(l.Rows()))

	require.NoError(t, l.Reload(ctx))
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(l.Rows()))
}

func TestDeleteRefetches(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{page: models.CustomerPage{Items: customers("a", "b"), Total: 2}}
	l := openList(t, src, 10)
	n := len(src.fetches())

	require.NoError(t, l.Delete(ctx, "a"))
	assert.Equal(t, []string{"a"}, src.deleted)
	assert.Len(t, src.fetches(), n+1)
	assert.Len(t, l.Rows(), 2, "rows come from the server, not from local removal")

	src.deleteErr = errors.New("nope")
	assert.Error(t, l.Delete(ctx, "b"))
	assert.Len(t, src.fetches(), n+1)
}

// gatedSource blocks the first List call until released.
type gatedSource struct {
	fakeSource
	started  chan struct{}
	release  chan struct{}
	firstCtx context.Context
	once     sync.Once
}

func (g *gatedSource) List(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		g.firstCtx = ctx
		close(g.started)
		<-g.release
		return models.CustomerPage{Items: customers("stale"), Total: 1}, nil
	}
	return models.CustomerPage{Items: customers("fresh"), Total: 1}, nil
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	l := &CustomerList{src: src, log: logging.Nop(), query: newQuery(10)}

	done := make(chan error, 1)
	go func() { done <- l.SetSearch(ctx, "slow") }()
	<-src.started

	require.NoError(t, l.SetSearch(ctx, "fast"))
	assert.ErrorIs(t, src.firstCtx.Err(), context.Canceled, "superseded fetch is cancelled")

	close(src.release)
	assert.ErrorIs(t, <-done, ErrStale)

	assert.Equal(t, []string{"fresh"}, ids(l.Rows()))
	assert.Equal(t, "fast", l.Query().Search)
	assert.False(t, l.Snapshot().Loading)
}

func TestParseColumn(t *testing.T) {
	c, err := ParseColumn(" Phone ")
	require.NoError(t, err)
	assert.Equal(t, ColPhone, c)

	_, err = ParseColumn("nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func ids(rows []models.Customer) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
