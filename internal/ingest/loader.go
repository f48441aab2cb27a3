package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"libraryapi/internal/entity"
)

// Catalog is the part of the catalog service the loader writes to.
type Catalog interface {
	CreateUser(name, document string) entity.User
	AddBook(title, author string, year int) (entity.Book, error)
}

type Summary struct {
	UsersLoaded  int `json:"users_loaded"`
	UsersSkipped int `json:"users_skipped"`
	BooksLoaded  int `json:"books_loaded"`
	BooksSkipped int `json:"books_skipped"`
}

// LoadFiles fills svc from the users and books files. Each file is read on its
// own: a missing or unconfigured file is treated as empty, and a file that is
// not a JSON array fails without any of its records applied while the other
// file still loads. Records that do not decode or fail validation are skipped
// and counted. The returned error joins the per-file failures.
func LoadFiles(svc Catalog, usersPath, booksPath string) (Summary, error) {
	var sum Summary

	users, usersErr := readRecords("users", usersPath)
	for i, raw := range users {
		var u UserRecord
		if err := json.Unmarshal(raw, &u); err != nil {
			log.Printf("ingest: skipping user index=%d err=%v", i, err)
			sum.UsersSkipped++
			continue
		}
		u.normalize()
		if err := validate.Struct(&u); err != nil {
			log.Printf("ingest: skipping user index=%d document=%q err=%v", i, u.Document, err)
			sum.UsersSkipped++
			continue
		}
		svc.CreateUser(u.Name, u.Document)
		sum.UsersLoaded++
	}

	books, booksErr := readRecords("books", booksPath)
	for i, raw := range books {
		var b BookRecord
		if err := json.Unmarshal(raw, &b); err != nil {
			log.Printf("ingest: skipping book index=%d err=%v", i, err)
			sum.BooksSkipped++
			continue
		}
		b.normalize()
		if err := validate.Struct(&b); err != nil {
			log.Printf("ingest: skipping book index=%d title=%q err=%v", i, b.Title, err)
			sum.BooksSkipped++
			continue
		}
		if _, err := svc.AddBook(b.Title, b.Author, b.Year); err != nil {
			log.Printf("ingest: skipping book index=%d title=%q err=%v", i, b.Title, err)
			sum.BooksSkipped++
			continue
		}
		sum.BooksLoaded++
	}

	log.Printf("ingest: loaded users=%d users_skipped=%d books=%d books_skipped=%d",
		sum.UsersLoaded, sum.UsersSkipped, sum.BooksLoaded, sum.BooksSkipped)
	return sum, errors.Join(usersErr, booksErr)
}

// readRecords splits the JSON array at path into raw records so that one bad
// record cannot spoil the rest.
func readRecords(kind, path string) ([]json.RawMessage, error) {
	if path == "" {
		log.Printf("ingest: no %s file configured, starting with no %s", kind, kind)
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("ingest: %s file not found path=%s, starting with no %s", kind, path, kind)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
