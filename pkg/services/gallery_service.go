package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"cloud.google.com/go/storage"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"product-gallery/pkg/config"
	"product-gallery/pkg/gallery"
	"product-gallery/pkg/media"
	"product-gallery/pkg/models"
)

const (
	productsCacheKey = "products"

	// thumbnailPrefix is the bucket folder holding generated thumbnails
	thumbnailPrefix = "thumbnails/"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Service loads the product catalog and caches it
type Service struct {
	config       *config.Config
	productCache *cache.Cache
	logger       *zap.Logger
	mu           sync.RWMutex

	// load is replaced in tests
	load func(ctx context.Context) ([]models.Product, error)
}

// naturalLess compares strings in a way that treats numbers as numbers rather than characters
// For example: "RAM 2500" < "RAM 10000" when using naturalLess
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}
		if i >= len(s1) || j >= len(s2) {
			break
		}

		if unicode.IsDigit(rune(s1[i])) && unicode.IsDigit(rune(s2[j])) {
			si, sj := i, j
			for i < len(s1) && unicode.IsDigit(rune(s1[i])) {
				i++
			}
			for j < len(s2) && unicode.IsDigit(rune(s2[j])) {
				j++
			}
			n1, _ := strconv.Atoi(s1[si:i])
			n2, _ := strconv.Atoi(s2[sj:j])
			if n1 != n2 {
				return n1 < n2
			}
			continue
		}

		if s1[i] != s2[j] {
			return s1[i] < s2[j]
		}
		i++
		j++
	}

	return len(s1)-i < len(s2)-j
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// InitService initializes the service with the given configuration
func InitService(cfg *config.Config, logger *zap.Logger) {
	once.Do(func() {
		defaultService = NewService(cfg, logger)
	})
}

// NewService creates a catalog service. Products come from the bucket when
// one is configured, else from the catalog file, else from the built-in catalog.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		config:       cfg,
		productCache: cache.New(5*time.Minute, 10*time.Minute),
		logger:       logger,
	}
	switch {
	case cfg.UsesBucket():
		s.load = s.loadFromBucket
	case cfg.CatalogFile != "":
		s.load = s.loadFromFile
	default:
		s.load = func(context.Context) ([]models.Product, error) {
			return DefaultProducts()
		}
	}
	return s
}

// Default returns the singleton service
func Default() *Service {
	return defaultService
}

// GetProducts returns all products
func GetProducts(ctx context.Context) ([]models.Product, error) {
	return defaultService.GetProducts(ctx)
}

// GetProduct returns a product by its ID
func GetProduct(ctx context.Context, id string) (models.Product, error) {
	return defaultService.GetProduct(ctx, id)
}

// GetProducts returns all products, from cache when possible
func (s *Service) GetProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	if cached, found := s.productCache.Get(productsCacheKey); found {
		s.mu.RUnlock()
		s.logger.Debug("Using cached products")
		return cached.([]models.Product), nil
	}
	s.mu.RUnlock()

	s.logger.Info("Loading products")
	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.productCache.Set(productsCacheKey, products, cache.DefaultExpiration)
	s.mu.Unlock()

	s.logger.Info("Loaded products", zap.Int("count", len(products)))
	return products, nil
}

// GetProduct returns a product by its ID
func (s *Service) GetProduct(ctx context.Context, id string) (models.Product, error) {
	products, err := s.GetProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: %s", gallery.ErrProductNotFound, id)
}

// FlushCache forces the next read to reload the catalog
func (s *Service) FlushCache() {
	s.productCache.Flush()
}

func (s *Service) loadFromFile(context.Context) ([]models.Product, error) {
	data, err := os.ReadFile(s.config.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", s.config.CatalogFile, err)
	}
	return ParseCatalog(data)
}

// bucketObject is the part of an object listing the catalog needs
type bucketObject struct {
	Name string
	URL  string
}

func (s *Service) loadFromBucket(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer storageClient.Close()

	bucket := storageClient.Bucket(s.config.BucketName)
	it := bucket.Objects(ctx, nil)

	var objects []bucketObject
	for {
		file, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			s.logger.Warn("Error iterating objects", zap.Error(err))
			continue
		}
		if !isImage(file.Name) {
			continue
		}

		// Create a Signed 24-Hour URL
		signedURL, err := bucket.SignedURL(file.Name, &storage.SignedURLOptions{
			Expires: time.Now().Add(24 * time.Hour),
			Method:  "GET",
		})
		if err != nil {
			s.logger.Warn("Error creating signed URL", zap.String("object", file.Name), zap.Error(err))
			continue
		}
		objects = append(objects, bucketObject{Name: file.Name, URL: signedURL})
	}

	return productsFromObjects(objects, s.config.BucketName), nil
}

// productsFromObjects builds products from a bucket laid out as
// Product/Category/file. Objects under thumbnails/ attach to the image with
// the same path.
func productsFromObjects(objects []bucketObject, salt string) []models.Product {
	thumbs := make(map[string]string)
	for _, obj := range objects {
		if strings.HasPrefix(obj.Name, thumbnailPrefix) {
			thumbs[trimExt(strings.TrimPrefix(obj.Name, thumbnailPrefix))] = obj.URL
		}
	}

	type group struct {
		names []string
		items map[string][]bucketObject
	}
	byProduct := make(map[string]*group)

	for _, obj := range objects {
		parts := strings.Split(obj.Name, "/")
		if len(parts) != 3 || parts[2] == "" || parts[0]+"/" == thumbnailPrefix {
			continue
		}
		product, category := parts[0], parts[1]
		g, ok := byProduct[product]
		if !ok {
			g = &group{items: make(map[string][]bucketObject)}
			byProduct[product] = g
		}
		if _, ok := g.items[category]; !ok {
			g.names = append(g.names, category)
		}
		g.items[category] = append(g.items[category], obj)
	}

	products := make([]models.Product, 0, len(byProduct))
	for name, g := range byProduct {
		sort.Slice(g.names, func(i, j int) bool {
			return naturalLess(g.names[i], g.names[j])
		})

		categories := make([]models.Category, 0, len(g.names))
		for _, category := range g.names {
			objs := g.items[category]
			sort.Slice(objs, func(i, j int) bool {
				return naturalLess(objs[i].Name, objs[j].Name)
			})

			items := make([]models.MediaItem, 0, len(objs))
			for _, obj := range objs {
				item := models.MediaItem{Label: category, URL: obj.URL}
				if thumb, ok := thumbs[trimExt(obj.Name)]; ok {
					item.Thumbnail = &thumb
				}
				items = append(items, item)
			}
			categories = append(categories, models.Category{
				Name:  category,
				Label: category,
				Items: items,
			})
		}

		products = append(products, models.Product{
			ID:         productStub(name, salt),
			Name:       name,
			Categories: media.Normalize(categories),
		})
	}

	// Sort products alphabetically by name with natural sorting for numbers
	sort.Slice(products, func(i, j int) bool {
		return naturalLess(products[i].Name, products[j].Name)
	})

	return products
}

// productStub derives a short URL-safe identifier from a product name.
// This is not a security measure.
func productStub(name, salt string) string {
	hash := sha256.Sum256([]byte(name + salt))
	return base64.RawURLEncoding.EncodeToString(hash[:])[0:6]
}

func isImage(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
