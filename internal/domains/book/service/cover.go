package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/pkg/logger"
)

func coverPrefix(bookID uuid.UUID) string {
	return fmt.Sprintf("books/%s/", bookID)
}

func originalCoverKey(bookID uuid.UUID, contentType string) string {
	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	return coverPrefix(bookID) + "cover_original" + ext
}

// uploadOriginalCover validates and stores the uploaded file as-is.
// Variants come later from the worker.
func (s *bookService) uploadOriginalCover(ctx context.Context, bookID uuid.UUID, cover *CoverUpload) (string, error) {
	if err := s.processor.ValidateImage(cover.Data); err != nil {
		return "", err
	}

	key := originalCoverKey(bookID, cover.ContentType)
	coverURL, err := s.storage.Upload(ctx, key, cover.Data, cover.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}

	return coverURL, nil
}

// ProcessCover downloads the original cover and uploads the resized
// variants. Idempotent: re-running overwrites the same variant keys.
func (s *bookService) ProcessCover(ctx context.Context, bookID uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}

	if b.CoverURL == "" || b.CoverURL == model.DefaultCoverPath {
		logger.Debug("no cover to process for book " + bookID.String())
		return nil
	}

	key, err := objectKeyFromURL(b.CoverURL)
	if err != nil {
		return err
	}

	original, err := s.storage.Download(ctx, key)
	if err != nil {
		return fmt.Errorf("download original cover: %w", err)
	}

	variants, err := s.processor.ProcessImage(original)
	if err != nil {
		return fmt.Errorf("process cover: %w", err)
	}

	for name, data := range variants {
		variantKey := fmt.Sprintf("%scover_%s.jpg", coverPrefix(bookID), name)
		if _, err := s.storage.Upload(ctx, variantKey, data, "image/jpeg"); err != nil {
			return fmt.Errorf("upload %s variant: %w", name, err)
		}
	}

	logger.Info("cover variants generated", map[string]interface{}{
		"book_id":  bookID.String(),
		"variants": len(variants),
	})
	return nil
}

// objectKeyFromURL strips scheme, host and bucket from a stored cover
// URL, leaving the object key.
func objectKeyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse cover url: %w", err)
	}

	// path is /<bucket>/<key>
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("cover url %q has no object key", rawURL)
	}

	return parts[1], nil
}
