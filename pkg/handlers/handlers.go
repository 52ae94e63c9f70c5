package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/eknkc/pug"
	"github.com/eknkc/pug/compiler"
	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"product-gallery/pkg/carousel"
	"product-gallery/pkg/config"
	"product-gallery/pkg/gallery"
	"product-gallery/pkg/models"
	"product-gallery/pkg/services"
)

const pageTitle = "RAM Trucks Gallery"

// Server serves the gallery pages and the carousel API
type Server struct {
	config   *config.Config
	sessions *services.SessionStore
	catalog  Catalog
	logger   *zap.Logger
}

// NewServer creates a server over a session store. The admin routes are
// mounted under /{SECRET_KEY}/admin, and only when catalog is non-nil and a
// secret key is configured.
func NewServer(cfg *config.Config, sessions *services.SessionStore, catalog Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		config:   cfg,
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(chiMid.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if s.config.PublicDir != "" {
		r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(s.config.PublicDir))))
	}

	if prefix := s.config.AdminPrefix(); s.catalog != nil && prefix != "" {
		r.Route(prefix, func(r chi.Router) {
			r.Post("/thumbnails/generate", s.BulkGenerateThumbnailsHandler)
			r.Post("/thumbnails/clear", s.BulkClearThumbnailsHandler)
			r.Post("/cache/flush", s.FlushCacheHandler)
		})
	}

	r.Group(func(r chi.Router) {
		r.Use(s.withGrid)

		r.Get("/", s.GalleryHandler)
		r.Get("/products/{id}", s.ProductPageHandler)
		r.Post("/products/{id}/{action}", s.ProductActionHandler)

		r.Route("/api", func(r chi.Router) {
			r.Get("/products", s.ProductsHandler)
			r.Post("/grid/open/{id}", s.OpenHandler)
			r.Post("/grid/close", s.CloseHandler)

			r.Get("/carousel", s.CarouselHandler)
			r.Post("/carousel/click", s.ClickHandler)
			r.Post("/carousel/thumb/{index}", s.ThumbnailHandler)
			r.Post("/carousel/category/{name}", s.CategoryHandler)
			r.Post("/carousel/{action}", s.CarouselActionHandler)
		})
	})

	return r
}

// Page is the data for the gallery page, with the carousel overlay when a
// product is open
type Page struct {
	models.Index
	NoImageText string
	Open        bool
	ProductID   string
	ProductName string
	View        carousel.View
	Backdrop    string
	Panel       string
	Refresh     int64
}

// GalleryHandler renders the product grid
func (s *Server) GalleryHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Generating index")
	s.renderPage(w, gridFrom(r), false)
}

// ProductPageHandler opens a product and renders the carousel over the grid
func (s *Server) ProductPageHandler(w http.ResponseWriter, r *http.Request) {
	grid := gridFrom(r)
	id := chi.URLParam(r, "id")

	if _, err := grid.Open(id); err != nil {
		if errors.Is(err, gallery.ErrNoImages) {
			// tiles without images are inert
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.writeError(w, r, err)
		return
	}

	s.logger.Debug("Generating product page", zap.String("product", id))
	s.renderPage(w, grid, true)
}

// ProductActionHandler applies a form action and redirects back to the page
func (s *Server) ProductActionHandler(w http.ResponseWriter, r *http.Request) {
	grid := gridFrom(r)
	id := chi.URLParam(r, "id")
	action := chi.URLParam(r, "action")

	product, c, err := grid.Current()
	if err != nil || product.ID != id {
		http.Redirect(w, r, "/products/"+id, http.StatusSeeOther)
		return
	}

	switch action {
	case "next":
		c.Next()
	case "prev":
		c.Previous()
	case "thumb":
		index, err := strconv.Atoi(r.FormValue("index"))
		if err != nil || !c.Jump(index) {
			http.Error(w, "invalid slide index", http.StatusBadRequest)
			return
		}
	case "category":
		if err := c.SelectCategory(r.FormValue("name")); err != nil {
			s.writeError(w, r, err)
			return
		}
	case "close":
		c.Close()
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case "backdrop":
		if c.BackdropClick(r.FormValue("target"), carousel.BackdropElement) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	default:
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/products/"+id, http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, grid *gallery.Grid, withCarousel bool) {
	page := Page{
		Index:       models.Index{Title: pageTitle, Tiles: grid.Tiles()},
		NoImageText: gallery.NoImageText,
		Backdrop:    carousel.BackdropElement,
		Panel:       carousel.PanelElement,
	}

	if withCarousel {
		if snap, err := grid.Snapshot(); err == nil {
			page.Open = true
			page.ProductID = snap.ID
			page.ProductName = snap.Name
			page.View = snap.View
			if snap.View.Autoplay && snap.View.HasImage {
				page.Refresh = max(1, snap.View.IntervalMs/1000)
			}
		}
	}

	// pug refuses paths that climb out of its root, so anchor it at the views dir
	dir, err := filepath.Abs(s.config.ViewsDir)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		s.logger.Error("Invalid views directory", zap.String("dir", s.config.ViewsDir), zap.Error(err))
		return
	}

	template, err := pug.CompileFile("index.pug", pug.Options{Dir: compiler.FsDir(dir)})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		s.logger.Error("Template error", zap.Error(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := template.Execute(w, page); err != nil {
		s.logger.Error("Template execution error", zap.Error(err))
	}
}
