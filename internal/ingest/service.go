package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"libraryapi/internal/platform/openlibrary"
)

const maxFetchLimit = 1000

var ErrInvalidLimit = errors.New("limit must be between 1 and 1000")

type OpenLibraryClient interface {
	SearchBooks(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error)
}

// Importer turns Open Library search results into book records.
type Importer struct {
	olClient OpenLibraryClient
}

func NewImporter(olClient OpenLibraryClient) *Importer {
	return &Importer{olClient: olClient}
}

// FetchSubject returns up to limit valid book records for subject. Hits without
// a title or an author, with a year outside 0..9999, or whose title repeats an
// earlier hit (ignoring case) are dropped.
func (s *Importer) FetchSubject(ctx context.Context, subject string, limit int) ([]BookRecord, error) {
	if limit < 1 || limit > maxFetchLimit {
		return nil, ErrInvalidLimit
	}

	res, err := s.olClient.SearchBooks(ctx, subject, limit)
	if err != nil {
		return nil, fmt.Errorf("search subject %q: %w", subject, err)
	}

	seen := make(map[string]bool)
	var out []BookRecord
	for _, doc := range res.Docs {
		if len(out) >= limit {
			break
		}
		rec := BookRecord{Title: doc.Title, Year: doc.FirstPublishYear}
		if len(doc.AuthorNames) > 0 {
			rec.Author = doc.AuthorNames[0]
		}
		rec.normalize()
		if err := validate.Struct(&rec); err != nil {
			log.Printf("ingest: dropping open library doc key=%s err=%v", doc.Key, err)
			continue
		}
		key := strings.ToLower(rec.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		rec.ID = len(out) + 1
		out = append(out, rec)
	}
	return out, nil
}
