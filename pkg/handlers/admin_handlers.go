package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"product-gallery/pkg/services"
)

// Catalog is the maintenance surface of the product catalog
type Catalog interface {
	GenerateThumbnails(ctx context.Context, force bool, workers int, progressCb services.ProgressCallback) (services.ThumbnailResult, error)
	ClearThumbnails(ctx context.Context) (int, error)
	FlushCache()
}

const defaultThumbnailWorkers = 4

// BulkGenerateThumbnailsHandler handles API requests to generate all thumbnails
func (s *Server) BulkGenerateThumbnailsHandler(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Force   bool `json:"force"`
		Workers int  `json:"workers"`
	}{Workers: defaultThumbnailWorkers}

	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	s.logger.Info("Bulk generating thumbnails", zap.Bool("force", req.Force), zap.Int("workers", req.Workers))

	result, err := s.catalog.GenerateThumbnails(r.Context(), req.Force, req.Workers, func(object string, done, total int) {
		s.logger.Debug("Thumbnail done", zap.String("object", object), zap.Int("done", done), zap.Int("total", total))
	})
	if err != nil {
		s.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Bulk thumbnail generation completed",
		"result":  result,
	})
}

// BulkClearThumbnailsHandler handles API requests to clear all thumbnails
func (s *Server) BulkClearThumbnailsHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Bulk clearing thumbnails")

	deleted, err := s.catalog.ClearThumbnails(r.Context())
	if err != nil {
		s.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All thumbnails cleared successfully",
		"deleted": deleted,
	})
}

// FlushCacheHandler drops the cached catalog
func (s *Server) FlushCacheHandler(w http.ResponseWriter, _ *http.Request) {
	s.catalog.FlushCache()
	s.logger.Info("Catalog cache flushed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeAdminError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNoBucket) {
		http.Error(w, err.Error(), http.StatusPreconditionFailed)
		return
	}
	s.logger.Error("Admin request failed", zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
