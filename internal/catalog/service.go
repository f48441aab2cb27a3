package catalog

import (
	"fmt"
	"sync"

	"libraryapi/internal/entity"
	"libraryapi/internal/index"
	"libraryapi/internal/lending"
)

// Service is the in-memory library catalog. Users are indexed by document and
// books by case-insensitive title; both indexes keep the last entity registered
// under a key while the backing lists keep every entity ever created.
//
// Service is safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	users []entity.User
	books []*bookRecord

	usersByDocument index.Index[string, entity.User]
	booksByTitle    index.Index[string, *bookRecord]
	booksByAuthor   *index.MultiTree[string, *bookRecord]
	booksByYear     *index.MultiTree[int, *bookRecord]
}

// NewService creates an empty catalog whose primary indexes are of the given kind.
func NewService(kind index.Kind) *Service {
	return &Service{
		usersByDocument: index.New[string, entity.User](kind),
		booksByTitle:    index.New[string, *bookRecord](kind),
		booksByAuthor:   index.NewMultiTree[string, *bookRecord](),
		booksByYear:     index.NewMultiTree[int, *bookRecord](),
	}
}

// CreateUser registers a user. Registering an existing document replaces the
// indexed user but keeps the earlier one in the user list.
func (s *Service) CreateUser(name, document string) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := entity.User{
		ID:       len(s.users) + 1,
		Name:     name,
		Document: document,
	}
	s.users = append(s.users, u)
	s.usersByDocument.Insert(document, u)
	return u
}

// AddBook adds an available book with an empty waiting queue. An out-of-range
// year is rejected before anything is stored.
func (s *Service) AddBook(title, author string, year int) (entity.Book, error) {
	if err := validateYear(year); err != nil {
		return entity.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := &bookRecord{
		id:     len(s.books) + 1,
		title:  title,
		author: author,
		year:   year,
	}
	s.books = append(s.books, b)
	s.booksByTitle.Insert(TitleKey(title), b)
	s.booksByAuthor.Insert(AuthorKey(author), b)
	s.booksByYear.Insert(year, b)
	return b.snapshot(), nil
}

func (s *Service) FindUserByDocument(document string) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByDocument.Search(document)
}

func (s *Service) FindBookByTitle(title string) (entity.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.booksByTitle.Search(TitleKey(title))
	if !ok {
		return entity.Book{}, false
	}
	return b.snapshot(), true
}

// LendBook lends the titled book to the user with document, or queues the
// user when the book is already lent.
func (s *Service) LendBook(document, title string) (LoanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usersByDocument.Search(document)
	if !ok {
		return LoanResult{}, fmt.Errorf("%w: document %q", ErrUserNotFound, document)
	}
	b, ok := s.booksByTitle.Search(TitleKey(title))
	if !ok {
		return LoanResult{}, fmt.Errorf("%w: title %q", ErrBookNotFound, title)
	}

	res := b.state.Lend(u)
	return LoanResult{
		Outcome:  res.Outcome,
		Position: res.Position,
		User:     &u,
		Book:     b.snapshot(),
	}, nil
}

// ReturnBook ends the current loan of the titled book. Returning an available
// book yields ErrAlreadyAvailable together with the unchanged book.
func (s *Service) ReturnBook(title string) (LoanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.booksByTitle.Search(TitleKey(title))
	if !ok {
		return LoanResult{}, fmt.Errorf("%w: title %q", ErrBookNotFound, title)
	}

	res, err := b.state.Return()
	if err != nil {
		return LoanResult{Book: b.snapshot()}, err
	}
	out := LoanResult{Outcome: res.Outcome, Book: b.snapshot()}
	if res.Outcome == lending.OutcomeHandedOver {
		out.User = res.Holder
	}
	return out, nil
}

// ListUsersByDocument returns the indexed users in ascending document order.
func (s *Service) ListUsersByDocument() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByDocument.InOrder()
}

// ListBooksByTitle returns the indexed books in ascending title-key order.
func (s *Service) ListBooksByTitle() []entity.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshots(s.booksByTitle.InOrder())
}

// ListBooksByYear returns every book grouped by ascending year, in insertion
// order within a year.
func (s *Service) ListBooksByYear() []entity.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshots(s.booksByYear.InOrder())
}

func (s *Service) BooksByAuthor(author string) []entity.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshots(s.booksByAuthor.Search(AuthorKey(author)))
}

func (s *Service) BooksByYear(year int) []entity.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshots(s.booksByYear.Search(year))
}

// Users returns every registered user in creation order.
func (s *Service) Users() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.User, len(s.users))
	copy(out, s.users)
	return out
}

// Books returns every added book in creation order.
func (s *Service) Books() []entity.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshots(s.books)
}

func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Users:        len(s.users),
		Books:        len(s.books),
		IndexedUsers: s.usersByDocument.Len(),
		IndexedBooks: s.booksByTitle.Len(),
	}
	for _, b := range s.books {
		if !b.state.Available() {
			st.Lent++
		}
		st.Waiting += len(b.state.Queue())
	}
	return st
}

func snapshots(records []*bookRecord) []entity.Book {
	out := make([]entity.Book, 0, len(records))
	for _, b := range records {
		out = append(out, b.snapshot())
	}
	return out
}
