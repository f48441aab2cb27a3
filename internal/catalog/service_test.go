package catalog

import (
	"sync"
	"testing"

	"libraryapi/internal/entity"
	"libraryapi/internal/index"
	"libraryapi/internal/lending"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(index.KindBST)
}

func TestService_CreateUser(t *testing.T) {
	s := newTestService(t)

	u1 := s.CreateUser("Ana", "D1")
	u2 := s.CreateUser("Leo", "D2")

	assert.Equal(t, entity.User{ID: 1, Name: "Ana", Document: "D1"}, u1)
	assert.Equal(t, 2, u2.ID)

	got, ok := s.FindUserByDocument("D2")
	require.True(t, ok)
	assert.Equal(t, u2, got)

	_, ok = s.FindUserByDocument("D3")
	assert.False(t, ok)
}

func TestService_CreateUser_DuplicateDocument(t *testing.T) {
	s := newTestService(t)
	s.CreateUser("Ana", "D1")
	s.CreateUser("Ana Maria", "D1")

	got, ok := s.FindUserByDocument("D1")
	require.True(t, ok)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, 2, got.ID)

	assert.Len(t, s.Users(), 2)
	assert.Len(t, s.ListUsersByDocument(), 1)
}

func TestService_ListUsersByDocument(t *testing.T) {
	s := newTestService(t)
	for _, doc := range []string{"300", "100", "200", "050"} {
		s.CreateUser("user "+doc, doc)
	}

	var docs []string
	for _, u := range s.ListUsersByDocument() {
		docs = append(docs, u.Document)
	}
	assert.Equal(t, []string{"050", "100", "200", "300"}, docs)
}

func TestService_AddBook(t *testing.T) {
	t.Run("new book is available with empty queue", func(t *testing.T) {
		s := newTestService(t)

		b, err := s.AddBook("Dune", "F.Herbert", 1965)

		require.NoError(t, err)
		assert.Equal(t, 1, b.ID)
		assert.True(t, b.Available)
		assert.Empty(t, b.WaitingQueue)
		assert.Nil(t, b.Holder)
	})

	t.Run("title lookup ignores case", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.AddBook("Dune", "F.Herbert", 1965)
		require.NoError(t, err)

		for _, title := range []string{"dune", "DUNE", "Dune"} {
			b, ok := s.FindBookByTitle(title)
			assert.True(t, ok, title)
			assert.Equal(t, "Dune", b.Title)
		}
		_, ok := s.FindBookByTitle("Emma")
		assert.False(t, ok)
	})

	t.Run("year out of range is rejected without mutation", func(t *testing.T) {
		s := newTestService(t)

		for _, year := range []int{-1, 10000} {
			_, err := s.AddBook("Bad", "X", year)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}

		assert.Empty(t, s.Books())
		_, ok := s.FindBookByTitle("Bad")
		assert.False(t, ok)
	})

	t.Run("boundary years are accepted", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.AddBook("D", "W", 0)
		require.NoError(t, err)
		_, err = s.AddBook("E", "V", 9999)
		require.NoError(t, err)

		assert.Len(t, s.BooksByYear(0), 1)
		assert.Len(t, s.BooksByYear(9999), 1)
	})
}

func TestService_SecondaryIndexes(t *testing.T) {
	s := newTestService(t)
	mustAdd := func(title, author string, year int) {
		_, err := s.AddBook(title, author, year)
		require.NoError(t, err)
	}
	mustAdd("Dune", "F.Herbert", 1965)
	mustAdd("Children of Dune", "F.Herbert", 1976)
	mustAdd("Stand on Zanzibar", "J.Brunner", 1968)
	mustAdd("The Moon Is a Harsh Mistress", "R.Heinlein", 1966)
	mustAdd("Dune Messiah", "F.Herbert", 1969)
	mustAdd("Flowers for Algernon", "D.Keyes", 1966)

	byAuthor := s.BooksByAuthor("f.herbert")
	require.Len(t, byAuthor, 3)
	assert.Equal(t, "Dune", byAuthor[0].Title)
	assert.Equal(t, "Children of Dune", byAuthor[1].Title)
	assert.Equal(t, "Dune Messiah", byAuthor[2].Title)

	by1966 := s.BooksByYear(1966)
	require.Len(t, by1966, 2)
	assert.Equal(t, "The Moon Is a Harsh Mistress", by1966[0].Title)
	assert.Equal(t, "Flowers for Algernon", by1966[1].Title)

	assert.Empty(t, s.BooksByAuthor("nobody"))
	assert.Empty(t, s.BooksByYear(2024))

	var years []int
	for _, b := range s.ListBooksByYear() {
		years = append(years, b.Year)
	}
	assert.Equal(t, []int{1965, 1966, 1966, 1968, 1969, 1976}, years)

	var titles []string
	for _, b := range s.ListBooksByTitle() {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, []string{
		"Children of Dune", "Dune", "Dune Messiah", "Flowers for Algernon",
		"Stand on Zanzibar", "The Moon Is a Harsh Mistress",
	}, titles)
}

func TestService_LendBook_NotFound(t *testing.T) {
	s := newTestService(t)
	s.CreateUser("Ana", "D1")
	_, err := s.AddBook("Dune", "F.Herbert", 1965)
	require.NoError(t, err)

	_, err = s.LendBook("D9", "Dune")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.LendBook("D1", "Emma")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrBookNotFound)

	b, _ := s.FindBookByTitle("Dune")
	assert.True(t, b.Available)
}

func TestService_ReturnBook_NotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.ReturnBook("Dune")

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestService_LendingEndToEnd(t *testing.T) {
	for _, kind := range []index.Kind{index.KindBST, index.KindBTree} {
		t.Run(string(kind), func(t *testing.T) {
			s := NewService(kind)
			ana := s.CreateUser("Ana", "D1")
			leo := s.CreateUser("Leo", "D2")
			_, err := s.AddBook("Dune", "F.Herbert", 1965)
			require.NoError(t, err)

			res, err := s.LendBook("D1", "Dune")
			require.NoError(t, err)
			assert.Equal(t, lending.OutcomeLent, res.Outcome)
			assert.False(t, res.Book.Available)
			assert.Empty(t, res.Book.WaitingQueue)
			assert.Equal(t, &ana, res.Book.Holder)

			res, err = s.LendBook("D2", "dune")
			require.NoError(t, err)
			assert.Equal(t, lending.OutcomeQueued, res.Outcome)
			assert.Equal(t, 1, res.Position)
			assert.False(t, res.Book.Available)
			assert.Equal(t, []entity.User{leo}, res.Book.WaitingQueue)

			res, err = s.ReturnBook("Dune")
			require.NoError(t, err)
			assert.Equal(t, lending.OutcomeHandedOver, res.Outcome)
			assert.Equal(t, &leo, res.User)
			assert.False(t, res.Book.Available)
			assert.Empty(t, res.Book.WaitingQueue)

			res, err = s.ReturnBook("Dune")
			require.NoError(t, err)
			assert.Equal(t, lending.OutcomeReturned, res.Outcome)
			assert.True(t, res.Book.Available)
			assert.Nil(t, res.Book.Holder)

			res, err = s.ReturnBook("Dune")
			assert.ErrorIs(t, err, ErrAlreadyAvailable)
			assert.True(t, res.Book.Available)

			b, ok := s.FindBookByTitle("Dune")
			require.True(t, ok)
			assert.True(t, b.Available)
		})
	}
}

func TestService_DuplicateTitleShadowsEarlierBook(t *testing.T) {
	s := newTestService(t)
	s.CreateUser("Ana", "D1")
	_, err := s.AddBook("Dune", "F.Herbert", 1965)
	require.NoError(t, err)
	_, err = s.AddBook("DUNE", "Someone Else", 2021)
	require.NoError(t, err)

	res, err := s.LendBook("D1", "dune")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Book.ID)

	books := s.Books()
	require.Len(t, books, 2)
	assert.True(t, books[0].Available)
	assert.False(t, books[1].Available)
	assert.Len(t, s.ListBooksByTitle(), 1)
}

func TestService_Stats(t *testing.T) {
	s := newTestService(t)
	s.CreateUser("Ana", "D1")
	s.CreateUser("Leo", "D2")
	s.CreateUser("Leo again", "D2")
	_, _ = s.AddBook("Dune", "F.Herbert", 1965)
	_, _ = s.AddBook("Emma", "J.Austen", 1815)
	_, _ = s.LendBook("D1", "Dune")
	_, _ = s.LendBook("D2", "Dune")

	assert.Equal(t, Stats{
		Users:        3,
		Books:        2,
		IndexedUsers: 2,
		IndexedBooks: 2,
		Lent:         1,
		Waiting:      1,
	}, s.Stats())
}

func TestService_ConcurrentLending(t *testing.T) {
	s := newTestService(t)
	_, err := s.AddBook("Dune", "F.Herbert", 1965)
	require.NoError(t, err)
	docs := []string{"D1", "D2", "D3", "D4", "D5", "D6", "D7", "D8"}
	for _, d := range docs {
		s.CreateUser("user "+d, d)
	}

	var wg sync.WaitGroup
	for _, d := range docs {
		wg.Add(1)
		go func(doc string) {
			defer wg.Done()
			_, err := s.LendBook(doc, "Dune")
			assert.NoError(t, err)
		}(d)
	}
	wg.Wait()

	b, _ := s.FindBookByTitle("Dune")
	assert.False(t, b.Available)
	assert.Len(t, b.WaitingQueue, len(docs)-1)

	for range docs {
		_, err := s.ReturnBook("Dune")
		require.NoError(t, err)
	}
	b, _ = s.FindBookByTitle("Dune")
	assert.True(t, b.Available)
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1965", 1965, false},
		{" 2021 ", 2021, false},
		{"0", 0, false},
		{"9999", 9999, false},
		{"abc", 0, true},
		{"", 0, true},
		{"19.5", 0, true},
		{"10000", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseYear(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
