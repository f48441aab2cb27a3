package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"libraryapi/internal/ingest"
	"libraryapi/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomBooks(t *testing.T) {
	books := randomBooks(25)

	require.Len(t, books, 25)
	titles := make(map[string]bool)
	for i, b := range books {
		assert.Equal(t, i+1, b.ID)
		assert.NotEmpty(t, b.Author)
		assert.GreaterOrEqual(t, b.Year, 1950)
		assert.Less(t, b.Year, 2025)
		titles[strings.ToLower(b.Title)] = true
	}
	assert.Len(t, titles, 25)
}

func TestRandomUsers(t *testing.T) {
	users := randomUsers(3)

	require.Len(t, users, 3)
	assert.Equal(t, "DOC-00001", users[0].Document)
	assert.Equal(t, "DOC-00003", users[2].Document)
}

func TestFetchSubjects_DropsTitlesSeenInEarlierSubjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "subject:fantasy":
			_, _ = w.Write([]byte(`{"docs":[{"title":"Dune","author_name":["Frank Herbert"],"first_publish_year":1965},{"title":"Earthsea","author_name":["Ursula K. Le Guin"],"first_publish_year":1968}]}`))
		default:
			_, _ = w.Write([]byte(`{"docs":[{"title":"DUNE","author_name":["Frank Herbert"],"first_publish_year":1965},{"title":"Foundation","author_name":["Isaac Asimov"],"first_publish_year":1951}]}`))
		}
	}))
	defer srv.Close()

	importer := ingest.NewImporter(openlibrary.NewClient("seed-test", 100, 0).WithBaseURL(srv.URL))

	books, err := fetchSubjects(context.Background(), importer, []string{"fantasy", " ", "science_fiction"}, 10)

	require.NoError(t, err)
	var titles []string
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, []string{"Dune", "Earthsea", "Foundation"}, titles)
	assert.Equal(t, 3, books[2].ID)
}
