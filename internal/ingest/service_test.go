package ingest

import (
	"context"
	"errors"
	"testing"

	"libraryapi/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOLClient struct {
	mock.Mock
}

func (m *mockOLClient) SearchBooks(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error) {
	args := m.Called(ctx, subject, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.SearchResponse), args.Error(1)
}

func TestImporter_FetchSubject(t *testing.T) {
	mockOL := new(mockOLClient)
	importer := NewImporter(mockOL)
	ctx := context.Background()

	mockOL.On("SearchBooks", ctx, "science_fiction", 10).Return(&openlibrary.SearchResponse{
		NumFound: 5,
		Docs: []openlibrary.SearchDoc{
			{Key: "/works/OL1W", Title: "Dune", AuthorNames: []string{"Frank Herbert", "Someone"}, FirstPublishYear: 1965},
			{Key: "/works/OL2W", Title: "Untitled", FirstPublishYear: 2001},
			{Key: "/works/OL3W", Title: "  Hyperion ", AuthorNames: []string{"Dan Simmons"}, FirstPublishYear: 1989},
			{Key: "/works/OL4W", Title: "DUNE", AuthorNames: []string{"Frank Herbert"}, FirstPublishYear: 1966},
			{Key: "/works/OL5W", Title: "", AuthorNames: []string{"Anon"}},
		},
	}, nil)

	records, err := importer.FetchSubject(ctx, "science_fiction", 10)

	require.NoError(t, err)
	assert.Equal(t, []BookRecord{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965},
		{ID: 2, Title: "Hyperion", Author: "Dan Simmons", Year: 1989},
	}, records)
	mockOL.AssertExpectations(t)
}

func TestImporter_FetchSubject_StopsAtLimit(t *testing.T) {
	mockOL := new(mockOLClient)
	ctx := context.Background()
	mockOL.On("SearchBooks", ctx, "fantasy", 1).Return(&openlibrary.SearchResponse{
		Docs: []openlibrary.SearchDoc{
			{Title: "Emma", AuthorNames: []string{"Jane Austen"}, FirstPublishYear: 1815},
			{Title: "Persuasion", AuthorNames: []string{"Jane Austen"}, FirstPublishYear: 1817},
		},
	}, nil)

	records, err := NewImporter(mockOL).FetchSubject(ctx, "fantasy", 1)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Emma", records[0].Title)
}

func TestImporter_FetchSubject_SearchError(t *testing.T) {
	mockOL := new(mockOLClient)
	ctx := context.Background()
	mockOL.On("SearchBooks", ctx, "fantasy", 5).Return(nil, errors.New("api down"))

	_, err := NewImporter(mockOL).FetchSubject(ctx, "fantasy", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api down")
}

func TestImporter_FetchSubject_InvalidLimit(t *testing.T) {
	mockOL := new(mockOLClient)

	for _, limit := range []int{0, -1, 1001} {
		_, err := NewImporter(mockOL).FetchSubject(context.Background(), "fantasy", limit)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	}
	mockOL.AssertNotCalled(t, "SearchBooks", mock.Anything, mock.Anything, mock.Anything)
}
