package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"sync/atomic"

	"cloud.google.com/go/storage"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
)

const (
	// ThumbnailSize is the longest edge of a generated thumbnail in pixels
	ThumbnailSize = 300

	thumbnailQuality = 70
)

// ErrNoBucket is returned by bucket operations when no bucket is configured
var ErrNoBucket = errors.New("BUCKET_NAME not set")

// ProgressCallback is a function that receives progress updates
type ProgressCallback func(object string, done, total int)

// ThumbnailPath returns where the thumbnail for an image object is stored
func ThumbnailPath(objectName string) string {
	return thumbnailPrefix + trimExt(objectName) + ".jpg"
}

// MakeThumbnail decodes an image and returns a JPEG that fits within size
// pixels on both edges. Smaller images are not enlarged.
func MakeThumbnail(r io.Reader, size int) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > size || bounds.Dy() > size {
		img = imaging.Fit(img, size, size, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// ThumbnailResult summarizes a bulk thumbnail run
type ThumbnailResult struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// GenerateThumbnails creates thumbnails for bucket images that lack one, or
// for every image when force is set. Up to workers images are processed at once.
func (s *Service) GenerateThumbnails(ctx context.Context, force bool, workers int, progressCb ProgressCallback) (ThumbnailResult, error) {
	var result ThumbnailResult
	if !s.config.UsesBucket() {
		return result, ErrNoBucket
	}
	if workers < 1 {
		workers = 1
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	bucket := client.Bucket(s.config.BucketName)

	images, existing, err := s.scanImages(ctx, bucket)
	if err != nil {
		return result, err
	}

	var pending []string
	for _, name := range images {
		if !force && existing[ThumbnailPath(name)] {
			result.Skipped++
			continue
		}
		pending = append(pending, name)
	}
	result.Total = len(images)

	var processed, failed, done atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, name := range pending {
		name := name
		g.Go(func() error {
			if err := s.generateOne(gctx, bucket, name); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("Thumbnail failed", zap.String("object", name), zap.Error(err))
				failed.Add(1)
			} else {
				processed.Add(1)
			}
			if progressCb != nil {
				progressCb(name, int(done.Add(1)), len(pending))
			}
			return nil
		})
	}

	err = g.Wait()
	result.Processed = int(processed.Load())
	result.Errors = int(failed.Load())

	s.FlushCache()
	return result, err
}

func (s *Service) scanImages(ctx context.Context, bucket *storage.BucketHandle) ([]string, map[string]bool, error) {
	var images []string
	existing := make(map[string]bool)

	it := bucket.Objects(ctx, nil)
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error iterating objects: %w", err)
		}
		if !isImage(obj.Name) {
			continue
		}
		if strings.HasPrefix(obj.Name, thumbnailPrefix) {
			existing[obj.Name] = true
			continue
		}
		if len(strings.Split(obj.Name, "/")) == 3 {
			images = append(images, obj.Name)
		}
	}
	return images, existing, nil
}

func (s *Service) generateOne(ctx context.Context, bucket *storage.BucketHandle, name string) error {
	reader, err := bucket.Object(name).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("Object(%q).NewReader: %w", name, err)
	}
	defer reader.Close()

	data, err := MakeThumbnail(reader, ThumbnailSize)
	if err != nil {
		return err
	}

	writer := bucket.Object(ThumbnailPath(name)).NewWriter(ctx)
	writer.ContentType = "image/jpeg"
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("Writer.Write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}
	return nil
}

// ClearThumbnails removes every generated thumbnail from the bucket
func (s *Service) ClearThumbnails(ctx context.Context) (int, error) {
	if !s.config.UsesBucket() {
		return 0, ErrNoBucket
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	bucket := client.Bucket(s.config.BucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: thumbnailPrefix})

	deleted := 0
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return deleted, fmt.Errorf("error iterating objects: %w", err)
		}
		if err := bucket.Object(obj.Name).Delete(ctx); err != nil {
			s.logger.Warn("Error deleting thumbnail", zap.String("object", obj.Name), zap.Error(err))
			continue
		}
		deleted++
	}

	s.FlushCache()
	return deleted, nil
}
