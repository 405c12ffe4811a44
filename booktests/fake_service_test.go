package booktests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/restqa/books-contract-tests/client"
)

// fakeBooksService is an in-memory implementation of the Books API with the same
// surface the suite exercises remotely, except that it actually persists writes.
// Running the suite against it covers the code paths that can only be checked
// best-effort against an external service.
type fakeBooksService struct {
	books map[int]client.Book
	lock  sync.Mutex
}

const fakeOpenAPIDoc = `{
	"openapi": "3.0.1",
	"info": {"title": "Fake Books API", "version": "v1"},
	"components": {
		"schemas": {
			"Book": {
				"type": "object",
				"properties": {
					"id": {"type": "integer", "format": "int32"},
					"title": {"type": "string", "nullable": true},
					"description": {"type": "string", "nullable": true},
					"pageCount": {"type": "integer", "format": "int32"},
					"excerpt": {"type": "string", "nullable": true},
					"publishDate": {"type": "string", "format": "date-time"}
				}
			}
		}
	}
}`

func newFakeBooksService(seedCount int) *fakeBooksService {
	s := &fakeBooksService{books: make(map[int]client.Book)}
	for i := 1; i <= seedCount; i++ {
		s.books[i] = client.Book{
			ID:          i,
			Title:       fmt.Sprintf("Book %d", i),
			Description: fmt.Sprintf("Description of book %d", i),
			PageCount:   i * 100,
			Excerpt:     fmt.Sprintf("Excerpt of book %d", i),
			PublishDate: "2020-01-01T00:00:00Z",
		}
	}
	return s
}

func (s *fakeBooksService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/swagger/v1/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fakeOpenAPIDoc))
	})
	mux.HandleFunc("/api/v1/Books", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			s.serveList(w)
		case "POST":
			s.serveCreate(w, r)
		default:
			w.WriteHeader(405)
		}
	})
	mux.HandleFunc("/api/v1/Books/", func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimPrefix(r.URL.Path, "/api/v1/Books/")
		id, err := strconv.Atoi(rawID)
		if err != nil {
			writeProblem(w, 400, fmt.Sprintf("The value '%s' is not valid.", rawID))
			return
		}
		switch r.Method {
		case "GET":
			s.serveGet(w, id)
		case "PUT":
			s.serveUpdate(w, r, id)
		case "DELETE":
			s.serveDelete(w, id)
		default:
			w.WriteHeader(405)
		}
	})
	return mux
}

func (s *fakeBooksService) serveList(w http.ResponseWriter) {
	s.lock.Lock()
	books := make([]client.Book, 0, len(s.books))
	for _, b := range s.books {
		books = append(books, b)
	}
	s.lock.Unlock()
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	writeJSON(w, 200, books)
}

func (s *fakeBooksService) serveGet(w http.ResponseWriter, id int) {
	s.lock.Lock()
	book, found := s.books[id]
	s.lock.Unlock()
	if !found {
		writeProblem(w, 404, "Not Found")
		return
	}
	writeJSON(w, 200, book)
}

func (s *fakeBooksService) serveCreate(w http.ResponseWriter, r *http.Request) {
	book, ok := decodeBookStrict(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	s.books[book.ID] = book
	s.lock.Unlock()
	writeJSON(w, 200, book)
}

func (s *fakeBooksService) serveUpdate(w http.ResponseWriter, r *http.Request, id int) {
	s.lock.Lock()
	book, found := s.books[id]
	s.lock.Unlock()
	if !found {
		writeProblem(w, 404, "Not Found")
		return
	}
	// decoding over the existing record gives merge semantics for partial bodies
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeProblem(w, 400, "One or more validation errors occurred.")
		return
	}
	book.ID = id
	s.lock.Lock()
	s.books[id] = book
	s.lock.Unlock()
	writeJSON(w, 200, book)
}

func (s *fakeBooksService) serveDelete(w http.ResponseWriter, id int) {
	s.lock.Lock()
	_, found := s.books[id]
	delete(s.books, id)
	s.lock.Unlock()
	if !found {
		writeProblem(w, 404, "Not Found")
		return
	}
	w.WriteHeader(200)
}

// decodeBookStrict enforces the remote API's validation behavior: the body must be
// syntactically valid JSON, field types must match, and the id is required.
func decodeBookStrict(w http.ResponseWriter, r *http.Request) (client.Book, bool) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeProblem(w, 400, "One or more validation errors occurred.")
		return client.Book{}, false
	}
	idField, hasID := raw["id"]
	if !hasID || string(idField) == "null" {
		writeProblem(w, 400, "The id field is required.")
		return client.Book{}, false
	}
	data, _ := json.Marshal(raw)
	var book client.Book
	if err := json.Unmarshal(data, &book); err != nil {
		writeProblem(w, 400, "One or more validation errors occurred.")
		return client.Book{}, false
	}
	return book, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeProblem(w http.ResponseWriter, status int, title string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"title":  title,
		"status": status,
	})
}
