package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"product-gallery/pkg/carousel"
	"product-gallery/pkg/gallery"
)

// ProductsHandler returns the grid tiles
func (s *Server) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gridFrom(r).Tiles())
}

// OpenHandler opens a product's carousel
func (s *Server) OpenHandler(w http.ResponseWriter, r *http.Request) {
	grid := gridFrom(r)
	if _, err := grid.Open(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSnapshot(w, r, grid)
}

// CloseHandler closes the open carousel, if any
func (s *Server) CloseHandler(w http.ResponseWriter, r *http.Request) {
	gridFrom(r).Close()
	w.WriteHeader(http.StatusNoContent)
}

// CarouselHandler returns the open carousel's view
func (s *Server) CarouselHandler(w http.ResponseWriter, r *http.Request) {
	s.writeSnapshot(w, r, gridFrom(r))
}

// CarouselActionHandler applies next, prev, hover, leave or close
func (s *Server) CarouselActionHandler(w http.ResponseWriter, r *http.Request) {
	grid := gridFrom(r)
	_, c, err := grid.Current()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch chi.URLParam(r, "action") {
	case "next":
		c.Next()
	case "prev":
		c.Previous()
	case "hover":
		c.Hover()
	case "leave":
		c.Leave()
	case "close":
		c.Close()
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		http.NotFound(w, r)
		return
	}

	s.writeSnapshot(w, r, grid)
}

// ThumbnailHandler jumps to a slide
func (s *Server) ThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	grid := gridFrom(r)
	_, c, err := grid.Current()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || !c.Jump(index) {
		http.Error(w, "invalid slide index", http.StatusBadRequest)
		return
	}
	s.writeSnapshot(w, r, grid)
}

// CategoryHandler switches category
func (s *Server) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	grid := gridFrom(r)
	_, c, err := grid.Current()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := c.SelectCategory(chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSnapshot(w, r, grid)
}

type clickRequest struct {
	Target        string `json:"target"`
	CurrentTarget string `json:"currentTarget"`
}

// ClickHandler applies a click on the modal backdrop
func (s *Server) ClickHandler(w http.ResponseWriter, r *http.Request) {
	grid := gridFrom(r)
	_, c, err := grid.Current()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if c.BackdropClick(req.Target, req.CurrentTarget) {
		writeJSON(w, http.StatusOK, map[string]bool{"closed": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"closed": false})
}

func (s *Server) writeSnapshot(w http.ResponseWriter, r *http.Request, grid *gallery.Grid) {
	snap, err := grid.Snapshot()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// writeError maps domain errors to status codes
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gallery.ErrProductNotFound),
		errors.Is(err, gallery.ErrNothingOpen),
		errors.Is(err, carousel.ErrCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, gallery.ErrNoImages):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
