package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/lending"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrBookNotFound = fmt.Errorf("book %w", ErrNotFound)
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyAvailable is informational: the book was not lent.
	ErrAlreadyAvailable = lending.ErrAlreadyAvailable
)

const (
	MinYear = 0
	MaxYear = 9999
)

// LoanResult reports a lend or return. Book reflects the state after the
// transition; User is the requester for lends and the new holder for handovers.
type LoanResult struct {
	Outcome  lending.Outcome `json:"outcome"`
	Position int             `json:"position,omitempty"`
	User     *entity.User    `json:"user,omitempty"`
	Book     entity.Book     `json:"book"`
}

type Stats struct {
	Users        int `json:"users"`
	Books        int `json:"books"`
	IndexedUsers int `json:"indexed_users"`
	IndexedBooks int `json:"indexed_books"`
	Lent         int `json:"lent"`
	Waiting      int `json:"waiting"`
}

// TitleKey is the book index key for title: lookups ignore case.
func TitleKey(title string) string {
	return strings.ToLower(title)
}

// AuthorKey is the author index key.
func AuthorKey(author string) string {
	return strings.ToLower(strings.TrimSpace(author))
}

// ParseYear converts user-supplied text to a publication year.
func ParseYear(text string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: year %q is not a number", ErrInvalidInput, text)
	}
	if err := validateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}

func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d out of range %d-%d", ErrInvalidInput, year, MinYear, MaxYear)
	}
	return nil
}

type bookRecord struct {
	id     int
	title  string
	author string
	year   int
	state  lending.State[entity.User]
}

func (b *bookRecord) snapshot() entity.Book {
	book := entity.Book{
		ID:           b.id,
		Title:        b.title,
		Author:       b.author,
		Year:         b.year,
		Available:    b.state.Available(),
		WaitingQueue: b.state.Queue(),
	}
	if holder, ok := b.state.Holder(); ok {
		book.Holder = &holder
	}
	return book
}
