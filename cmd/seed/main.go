package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"libraryapi/internal/ingest"
	"libraryapi/internal/platform/openlibrary"

	"github.com/joho/godotenv"
)

func main() {
	var (
		source   = flag.String("source", "openlibrary", "Book source: openlibrary or random")
		subjects = flag.String("subjects", "science_fiction,fantasy,history", "Comma separated Open Library subjects")
		limit    = flag.Int("limit", 50, "Books per subject (openlibrary) or in total (random)")
		users    = flag.Int("users", 20, "Number of synthetic users to generate, 0 to skip")
		booksOut = flag.String("books", "books.json", "Output path for books")
		usersOut = flag.String("users-out", "users.json", "Output path for users")
	)
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var books []ingest.BookRecord
	switch *source {
	case "openlibrary":
		userAgent := os.Getenv("OPENLIBRARY_USER_AGENT")
		if userAgent == "" {
			userAgent = "libraryapi-seed/1.0"
		}
		importer := ingest.NewImporter(openlibrary.NewClient(userAgent, 2, 3))
		var err error
		books, err = fetchSubjects(ctx, importer, strings.Split(*subjects, ","), *limit)
		if err != nil {
			log.Fatalf("Failed to fetch books: %v", err)
		}
	case "random":
		books = randomBooks(*limit)
	default:
		log.Fatalf("Unknown source: %s. Use: openlibrary, random", *source)
	}

	if err := ingest.WriteBooks(*booksOut, books); err != nil {
		log.Fatalf("Failed to write books: %v", err)
	}
	log.Printf("Wrote %d books to %s", len(books), *booksOut)

	if *users > 0 {
		if err := ingest.WriteUsers(*usersOut, randomUsers(*users)); err != nil {
			log.Fatalf("Failed to write users: %v", err)
		}
		log.Printf("Wrote %d users to %s", *users, *usersOut)
	}
}

// fetchSubjects imports each subject in turn and drops titles already taken by
// an earlier subject.
func fetchSubjects(ctx context.Context, importer *ingest.Importer, subjects []string, limit int) ([]ingest.BookRecord, error) {
	seen := make(map[string]bool)
	var out []ingest.BookRecord
	for _, subject := range subjects {
		subject = strings.TrimSpace(subject)
		if subject == "" {
			continue
		}
		records, err := importer.FetchSubject(ctx, subject, limit)
		if err != nil {
			return nil, err
		}
		added := 0
		for _, rec := range records {
			key := strings.ToLower(rec.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			rec.ID = len(out) + 1
			out = append(out, rec)
			added++
		}
		log.Printf("subject=%s fetched=%d added=%d", subject, len(records), added)
	}
	return out, nil
}

func randomBooks(count int) []ingest.BookRecord {
	authors := []string{"A.Lovelace", "J.Austen", "F.Herbert", "U.K.Le Guin", "G.Orwell", "T.Morrison", "I.Asimov", "M.Shelley"}

	books := make([]ingest.BookRecord, 0, count)
	for i := 0; i < count; i++ {
		books = append(books, ingest.BookRecord{
			ID:     i + 1,
			Title:  fmt.Sprintf("Book Title %d - %s", i+1, getRandomWord()),
			Author: authors[rand.Intn(len(authors))],
			Year:   1950 + rand.Intn(75),
		})
	}
	return books
}

func randomUsers(count int) []ingest.UserRecord {
	users := make([]ingest.UserRecord, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, ingest.UserRecord{
			ID:       i + 1,
			Name:     fmt.Sprintf("%s Reader %d", getRandomWord(), i+1),
			Document: fmt.Sprintf("DOC-%05d", i+1),
		})
	}
	return users
}

func getRandomWord() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Peace", "Science", "Nature", "History", "Future", "Wisdom", "Light",
		"Darkness", "World", "Universe", "Time", "Space", "Mind",
	}
	return words[rand.Intn(len(words))]
}
