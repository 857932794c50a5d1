package handlers

import (
	"net/http"
	"strconv"

	"filmorate/internal/domain/film"

	"github.com/gin-gonic/gin"
)

// FilmHandler handles film-related HTTP requests
type FilmHandler struct {
	filmService         film.Service
	popularDefaultCount int
}

// NewFilmHandler creates a new film handler. A non-positive popularDefaultCount
// falls back to film.DefaultPopularCount.
func NewFilmHandler(filmService film.Service, popularDefaultCount int) *FilmHandler {
	if popularDefaultCount <= 0 {
		popularDefaultCount = film.DefaultPopularCount
	}
	return &FilmHandler{
		filmService:         filmService,
		popularDefaultCount: popularDefaultCount,
	}
}

// CreateFilm handles POST /films
func (h *FilmHandler) CreateFilm(c *gin.Context) {
	var req film.Film
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	created, err := h.filmService.CreateFilm(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateFilm handles PUT /films
func (h *FilmHandler) UpdateFilm(c *gin.Context) {
	var req film.Film
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	updated, err := h.filmService.UpdateFilm(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetFilm handles GET /films/:id
func (h *FilmHandler) GetFilm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	f, err := h.filmService.GetFilm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, f)
}

// ListFilms handles GET /films
func (h *FilmHandler) ListFilms(c *gin.Context) {
	films, err := h.filmService.ListFilms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, films)
}

// DeleteFilm handles DELETE /films/:id
func (h *FilmHandler) DeleteFilm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.filmService.DeleteFilm(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddLike handles PUT /films/:id/like/:userId
func (h *FilmHandler) AddLike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.filmService.AddLike(c.Request.Context(), filmID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// RemoveLike handles DELETE /films/:id/like/:userId
func (h *FilmHandler) RemoveLike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.filmService.RemoveLike(c.Request.Context(), filmID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// GetPopular handles GET /films/popular?count=N
func (h *FilmHandler) GetPopular(c *gin.Context) {
	count := h.popularDefaultCount
	if raw, ok := c.GetQuery("count"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid count format: " + raw})
			return
		}
		count = parsed
	}

	films, err := h.filmService.GetPopular(c.Request.Context(), count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, films)
}
