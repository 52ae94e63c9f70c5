package handlers

import (
	"context"
	"net/http"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"product-gallery/pkg/gallery"
)

const sessionCookieName = "gallery_session"

type gridKey struct{}

// RequestLogger emits one structured log line per request
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMid.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chiMid.GetReqID(r.Context())),
			)
		})
	}
}

// withGrid resolves the visitor's grid from the session cookie, creating a
// session when the cookie is missing or stale
func (s *Server) withGrid(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookieName); err == nil {
			id = c.Value
		}

		grid, newID, err := s.sessions.Grid(id)
		if err != nil {
			s.logger.Error("Failed to create session", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if newID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    newID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), gridKey{}, grid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func gridFrom(r *http.Request) *gallery.Grid {
	return r.Context().Value(gridKey{}).(*gallery.Grid)
}
