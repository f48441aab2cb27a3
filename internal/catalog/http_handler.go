package catalog

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
	"libraryapi/internal/journal"
	"libraryapi/internal/lending"
)

type HTTPHandler struct {
	svc     *Service
	journal *journal.Service
}

// NewHTTPHandler serves the catalog. events may be nil.
func NewHTTPHandler(svc *Service, events *journal.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc, journal: events}
}

type CreateUserReq struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	Document string `json:"document" validate:"required,document,max=64"`
}

type AddBookReq struct {
	Title  string `json:"title" validate:"required,notblank,max=300"`
	Author string `json:"author" validate:"required,notblank,max=200"`
	Year   *int   `json:"year" validate:"required,gte=0,lte=9999"`
}

type LendReq struct {
	Document string `json:"document" validate:"required,max=64"`
	Title    string `json:"title" validate:"required,notblank,max=300"`
}

type ReturnReq struct {
	Title string `json:"title" validate:"required,notblank,max=300"`
}

// LoanResponse is the body of lend and return responses.
type LoanResponse struct {
	LoanResult
	AlreadyAvailable bool `json:"already_available,omitempty"`
}

// CreateUser handles POST /v1/users
func (h *HTTPHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	u := h.svc.CreateUser(strings.TrimSpace(req.Name), req.Document)
	httpx.JSONSuccessCreated(w, r, u)
}

// ListUsers handles GET /v1/users
func (h *HTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.svc.ListUsersByDocument()
	httpx.JSONSuccess(w, r, users, map[string]any{"total": len(users)})
}

// GetUser handles GET /v1/users/{document}
func (h *HTTPHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.svc.FindUserByDocument(r.PathValue("document"))
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}
	httpx.JSONSuccess(w, r, u, nil)
}

// AddBook handles POST /v1/books
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req AddBookReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	b, err := h.svc.AddBook(strings.TrimSpace(req.Title), strings.TrimSpace(req.Author), *req.Year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, b)
}

// ListBooks handles GET /v1/books. author and year filter through the
// secondary indexes; otherwise order selects title (default), year or created.
func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	author := query.Get("author")
	yearText := query.Get("year")

	var books []entity.Book
	switch {
	case author != "" || yearText != "":
		var year int
		if yearText != "" {
			y, err := ParseYear(yearText)
			if err != nil {
				httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid year", []httpx.ErrorDetail{
					{Field: "year", Message: "year must be a number between 0 and 9999"},
				})
				return
			}
			year = y
		}
		switch {
		case author == "":
			books = h.svc.BooksByYear(year)
		case yearText == "":
			books = h.svc.BooksByAuthor(author)
		default:
			for _, b := range h.svc.BooksByAuthor(author) {
				if b.Year == year {
					books = append(books, b)
				}
			}
		}
	default:
		switch query.Get("order") {
		case "", "title":
			books = h.svc.ListBooksByTitle()
		case "year":
			books = h.svc.ListBooksByYear()
		case "created":
			books = h.svc.Books()
		default:
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order", []httpx.ErrorDetail{
				{Field: "order", Message: "order must be one of title, year, created"},
			})
			return
		}
	}
	if books == nil {
		books = []entity.Book{}
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"total": len(books)})
}

// GetBook handles GET /v1/books/{title}
func (h *HTTPHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	b, ok := h.svc.FindBookByTitle(r.PathValue("title"))
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Lend handles POST /v1/loans
func (h *HTTPHandler) Lend(w http.ResponseWriter, r *http.Request) {
	var req LendReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	res, err := h.svc.LendBook(req.Document, req.Title)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.record(r.Context(), res)
	httpx.JSONSuccess(w, r, LoanResponse{LoanResult: res}, nil)
}

// Return handles POST /v1/returns
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req ReturnReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	res, err := h.svc.ReturnBook(req.Title)
	if errors.Is(err, ErrAlreadyAvailable) {
		httpx.JSONSuccess(w, r, LoanResponse{LoanResult: res, AlreadyAvailable: true}, nil)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.record(r.Context(), res)
	httpx.JSONSuccess(w, r, LoanResponse{LoanResult: res}, nil)
}

// Stats handles GET /v1/stats
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, h.svc.Stats(), nil)
}

// record journals a completed transition. The loan already happened, so a
// journal failure is logged and not reported to the client.
func (h *HTTPHandler) record(ctx context.Context, res LoanResult) {
	var document string
	if res.User != nil && res.Outcome != lending.OutcomeReturned {
		document = res.User.Document
	}
	if err := h.journal.Record(ctx, res.Outcome, res.Book.ID, res.Book.Title, document); err != nil {
		log.Printf("journal: record failed outcome=%s book_id=%d err=%v", res.Outcome, res.Book.ID, err)
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	case errors.Is(err, ErrBookNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrInvalidInput):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
