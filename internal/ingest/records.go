// Package ingest moves catalog data in and out of the JSON bulk files: it loads
// users.json and books.json into a catalog at startup and builds books.json
// from Open Library subject searches.
package ingest

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// UserRecord is one entry of users.json. ID is informational; the catalog
// assigns its own ids.
type UserRecord struct {
	ID       int    `json:"id"`
	Name     string `json:"name" validate:"required,max=200"`
	Document string `json:"document" validate:"required,max=64"`
}

// BookRecord is one entry of books.json. Files written by older tools spell
// the title key "tittle"; both spellings are read and "title" wins.
type BookRecord struct {
	ID          int    `json:"id"`
	Title       string `json:"title,omitempty" validate:"required,max=300"`
	LegacyTitle string `json:"tittle,omitempty" validate:"-"`
	Author      string `json:"author" validate:"required,max=200"`
	Year        int    `json:"year" validate:"gte=0,lte=9999"`
}

func (r *UserRecord) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Document = strings.TrimSpace(r.Document)
}

func (r *BookRecord) normalize() {
	if strings.TrimSpace(r.Title) == "" {
		r.Title = r.LegacyTitle
	}
	r.LegacyTitle = ""
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}
