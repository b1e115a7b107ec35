package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/book/model"
	reviewmodel "bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/infrastructure/storage"
)

// ========================================
// FAKES
// ========================================

type fakeBookRepo struct {
	books      map[uuid.UUID]*model.Book
	listResult []model.Book
	listTotal  int
	genres     []string

	listCalled bool
	lastParams model.ListBooksParams
	deleted    []uuid.UUID
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uuid.UUID]*model.Book{}}
}

func (f *fakeBookRepo) Create(_ context.Context, b *model.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookRepo) List(_ context.Context, params model.ListBooksParams) ([]model.Book, int, error) {
	f.listCalled = true
	f.lastParams = params
	return f.listResult, f.listTotal, nil
}

func (f *fakeBookRepo) DistinctGenres(_ context.Context) ([]string, error) {
	return f.genres, nil
}

func (f *fakeBookRepo) Update(_ context.Context, b *model.Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return model.ErrBookNotFound
	}
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(f.books, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBookRepo) UpdateRating(_ context.Context, id uuid.UUID, rating float64) error {
	b, ok := f.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	b.Rating = rating
	return nil
}

type fakeReviewRepo struct {
	byBook map[uuid.UUID][]reviewmodel.ReviewWithUser
}

func (f *fakeReviewRepo) Create(context.Context, *reviewmodel.Review) error { return nil }

func (f *fakeReviewRepo) GetByUserAndBook(context.Context, uuid.UUID, uuid.UUID) (*reviewmodel.Review, error) {
	return nil, reviewmodel.ErrReviewNotFound
}

func (f *fakeReviewRepo) ListByBook(_ context.Context, bookID uuid.UUID) ([]reviewmodel.ReviewWithUser, error) {
	return f.byBook[bookID], nil
}

func (f *fakeReviewRepo) AverageRating(context.Context, uuid.UUID) (float64, int, error) {
	return 0, 0, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (noopCache) Delete(context.Context, ...string) error     { return nil }
func (noopCache) DeletePattern(context.Context, string) error { return nil }
func (noopCache) Ping(context.Context) error                  { return nil }

type fakeStorage struct {
	deletedPrefixes []string
}

func (f *fakeStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "http://minio:9000/covers/" + key, nil
}

func (f *fakeStorage) Download(context.Context, string) ([]byte, error) { return nil, nil }

func (f *fakeStorage) DeleteByPrefix(_ context.Context, prefix string) error {
	f.deletedPrefixes = append(f.deletedPrefixes, prefix)
	return nil
}

type fakeQueue struct {
	enqueued []string
}

func (f *fakeQueue) EnqueueProcessCover(bookID string) error {
	f.enqueued = append(f.enqueued, bookID)
	return nil
}

type fixture struct {
	repo       *fakeBookRepo
	reviewRepo *fakeReviewRepo
	storage    *fakeStorage
	queue      *fakeQueue
	svc        ServiceInterface
}

func newFixture() *fixture {
	f := &fixture{
		repo:       newFakeBookRepo(),
		reviewRepo: &fakeReviewRepo{byBook: map[uuid.UUID][]reviewmodel.ReviewWithUser{}},
		storage:    &fakeStorage{},
		queue:      &fakeQueue{},
	}
	f.svc = NewBookService(f.repo, f.reviewRepo, noopCache{}, f.storage, storage.NewImageProcessor(), f.queue)
	return f
}

// ========================================
// LIST
// ========================================

func TestListPaginationMath(t *testing.T) {
	cases := []struct {
		total     int
		wantPages int
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 2},
		{16, 2},
		{17, 3},
	}
	for _, tc := range cases {
		f := newFixture()
		f.repo.listTotal = tc.total

		resp, err := f.svc.List(context.Background(), model.ListBooksRequest{})
		require.NoError(t, err)
		assert.Equal(t, tc.wantPages, resp.TotalPages, "total=%d", tc.total)
		assert.Equal(t, tc.total, resp.TotalBooks)
	}
}

func TestListInvalidSortFailsBeforeQuery(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), model.ListBooksRequest{SortBy: "price"})
	assert.ErrorIs(t, err, model.ErrInvalidSortField)
	assert.False(t, f.repo.listCalled, "repository must not be touched for an invalid sort field")
}

func TestListFacetIgnoresActiveFilters(t *testing.T) {
	f := newFixture()
	f.repo.genres = []string{"Fantasy", "Horror", "Sci-Fi"}

	resp, err := f.svc.List(context.Background(), model.ListBooksRequest{Genre: "Fantasy"})
	require.NoError(t, err)

	// The facet is unfiltered even though the query filters by genre.
	assert.Equal(t, []string{"Fantasy", "Horror", "Sci-Fi"}, resp.AvailableGenres)
	assert.Equal(t, []string{"Fantasy"}, f.repo.lastParams.Genres)
}

func TestListPassesNormalizedParams(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), model.ListBooksRequest{
		Page:      "3",
		Search:    "dune",
		MinRating: "2",
		SortBy:    "-rating",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, f.repo.lastParams.Page)
	assert.Equal(t, "dune", f.repo.lastParams.Search)
	assert.Equal(t, 2.0, f.repo.lastParams.MinRating)
	assert.Equal(t, 5.0, f.repo.lastParams.MaxRating)
	assert.Equal(t, "rating", f.repo.lastParams.SortColumn)
	assert.True(t, f.repo.lastParams.SortDesc)
}

// ========================================
// DETAIL
// ========================================

func TestGetDetailRecomputesRating(t *testing.T) {
	f := newFixture()
	bookID := uuid.New()
	f.repo.books[bookID] = &model.Book{ID: bookID, Title: "Dune", Rating: 1.0}

	for _, rating := range []float64{3, 4, 5} {
		f.reviewRepo.byBook[bookID] = append(f.reviewRepo.byBook[bookID], reviewmodel.ReviewWithUser{
			Review:   reviewmodel.Review{ID: uuid.New(), BookID: bookID, Rating: rating},
			UserName: "reader",
		})
	}

	resp, err := f.svc.GetDetail(context.Background(), bookID)
	require.NoError(t, err)

	// Stale cached column (1.0) is overridden by the live mean.
	assert.Equal(t, 4.0, resp.Rating)
	assert.Len(t, resp.Reviews, 3)
}

func TestGetDetailExactMean(t *testing.T) {
	f := newFixture()
	bookID := uuid.New()
	f.repo.books[bookID] = &model.Book{ID: bookID, Title: "Dune"}

	// 3 + 3 + 4 = 10/3, a non-terminating decimal: served unrounded.
	for _, rating := range []float64{3, 3, 4} {
		f.reviewRepo.byBook[bookID] = append(f.reviewRepo.byBook[bookID], reviewmodel.ReviewWithUser{
			Review:   reviewmodel.Review{ID: uuid.New(), BookID: bookID, Rating: rating},
			UserName: "reader",
		})
	}

	resp, err := f.svc.GetDetail(context.Background(), bookID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0/3.0, resp.Rating, 1e-9)
}

func TestGetDetailNoReviews(t *testing.T) {
	f := newFixture()
	bookID := uuid.New()
	f.repo.books[bookID] = &model.Book{ID: bookID, Title: "Dune", Rating: 3.5}

	resp, err := f.svc.GetDetail(context.Background(), bookID)
	require.NoError(t, err)

	// No reviews: the stored value is served as-is, not zeroed.
	assert.Equal(t, 3.5, resp.Rating)
	assert.Empty(t, resp.Reviews)
}

func TestGetDetailUnknownBook(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetDetail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

// ========================================
// CREATE / DELETE
// ========================================

func TestCreateWithoutCover(t *testing.T) {
	f := newFixture()

	b, err := f.svc.Create(context.Background(), model.CreateBookRequest{
		Title:  "Dune",
		Author: "Frank Herbert",
		Genre:  "Sci-Fi, Classic",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultCoverPath, b.CoverURL)
	assert.Equal(t, 0.0, b.Rating)
	assert.Equal(t, []string{"Sci-Fi", "Classic"}, b.Genres)
	assert.Empty(t, f.queue.enqueued, "no cover, nothing to process")
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), model.CreateBookRequest{Title: "x"}, nil)
	assert.Error(t, err)
	assert.Empty(t, f.repo.books)
}

func TestDeleteRemovesCoverObjects(t *testing.T) {
	f := newFixture()
	bookID := uuid.New()
	f.repo.books[bookID] = &model.Book{ID: bookID}

	require.NoError(t, f.svc.Delete(context.Background(), bookID))

	assert.Equal(t, []uuid.UUID{bookID}, f.repo.deleted)
	require.Len(t, f.storage.deletedPrefixes, 1)
	assert.Equal(t, "books/"+bookID.String()+"/", f.storage.deletedPrefixes[0])
}

func TestDeleteUnknownBook(t *testing.T) {
	f := newFixture()

	err := f.svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.Empty(t, f.storage.deletedPrefixes)
}
