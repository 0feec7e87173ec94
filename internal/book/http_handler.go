package book

import (
	"log"
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the catalog routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /book/{author}", h.GetByAuthor)
	mux.HandleFunc("GET /book/title/{title}", h.GetByExactTitle)
	mux.HandleFunc("GET /books/{title}", h.SearchByTitle)
}

// GetByAuthor handles GET /book/{author}
// @Summary Books by author
// @Description Books written by the author keyed by title, most popular first. Each returned book's rating is incremented.
// @Tags books
// @Produce json
// @Param author path string true "Author name"
// @Success 200 {object} map[string]Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /book/{author} [get]
func (h *HTTPHandler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetBookByAuthor(r.Context(), r.PathValue("author"))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, IndexByTitle(books))
}

// GetByExactTitle handles GET /book/title/{title}
// @Summary Books by exact title
// @Tags books
// @Produce json
// @Param title path string true "Exact title"
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /book/title/{title} [get]
func (h *HTTPHandler) GetByExactTitle(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetBookByExactTitle(r.Context(), r.PathValue("title"))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// SearchByTitle handles GET /books/{title}
// @Summary Exact and keyword title matches
// @Description Exact title matches followed by keyword matches. A book matching both appears twice.
// @Tags books
// @Produce json
// @Param title path string true "Title or keywords"
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{title} [get]
func (h *HTTPHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")

	exact, err := h.service.GetBookByExactTitle(r.Context(), title)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	keyword, err := h.service.GetBookByKeyword(r.Context(), title)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	books := make([]Book, 0, len(exact)+len(keyword))
	books = append(books, exact...)
	books = append(books, keyword...)
	httpx.JSON(w, http.StatusOK, books)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("catalog lookup failed: path=%s request_id=%s error=%v", r.URL.Path, httpx.RequestIDFrom(r), err)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
