// Package media stores admin uploads in the blob store and serves them.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/blob"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Folders are the upload destinations, one per media field.
var Folders = []string{"photos", "cv", "projects", "awards", "gallery", "blog", "testimonials"}

// MaxUploadSize bounds a single upload.
const MaxUploadSize = 20 << 20

// URLPrefix is where media is served from.
const URLPrefix = "/media/"

// Upload is the response of a successful upload.
type Upload struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

type Service struct {
	db    *gorm.DB
	store blob.Store
}

func NewService(db *gorm.DB, store blob.Store) *Service {
	return &Service{db: db, store: store}
}

// Store exposes the underlying blob store.
func (s *Service) Store() blob.Store { return s.store }

// URL returns the public URL of key.
func URL(key string) string { return URLPrefix + key }

// Key builds {folder}/{uuid}{ext} for an uploaded filename.
func Key(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if ext == "" || len(ext) > 10 {
		ext = ".bin"
	}
	return folder + "/" + uuid.NewString() + ext
}

func detectContentType(filename string, head []byte, declared string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if guessed := mime.TypeByExtension(ext); guessed != "" {
			return guessed
		}
	}
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if len(head) > 0 {
		return http.DetectContentType(head)
	}
	return "application/octet-stream"
}

// Save writes r to the blob store under folder and records a media row.
func (s *Service) Save(ctx context.Context, folder, filename, declaredType string, r io.Reader) (*Upload, error) {
	if !models.ValidChoice(folder, Folders) {
		return nil, apperr.Choice("folder", folder, Folders)
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	if n == 0 {
		return nil, apperr.Invalid("file", "the submitted file is empty")
	}
	contentType := detectContentType(filename, head, declaredType)
	key := Key(folder, filename)

	body := io.MultiReader(bytes.NewReader(head), io.LimitReader(r, MaxUploadSize-int64(n)+1))
	info, err := s.store.Put(ctx, key, body, blob.PutOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}
	if info.Size > MaxUploadSize {
		_ = s.store.Delete(ctx, key)
		return nil, apperr.Invalid("file", fmt.Sprintf("larger than %d MB", MaxUploadSize>>20))
	}

	row := models.MediaModel{
		Key:         key,
		Folder:      folder,
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Size:        info.Size,
		Driver:      string(s.store.Driver()),
	}
	if err := s.db.Create(&row).Error; err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, err
	}
	return &Upload{ID: row.ID, Key: key, URL: URL(key), Size: row.Size, ContentType: contentType}, nil
}

// List returns uploads newest first, optionally within folder.
func (s *Service) List(folder string, q pagination.Query) ([]models.MediaModel, response.Pagination, error) {
	db := s.db.Model(&models.MediaModel{}).Order("created_at DESC").Order("id DESC")
	if folder != "" {
		db = db.Where("folder = ?", folder)
	}
	var items []models.MediaModel
	pag, err := pagination.Paginate(db, q, &items)
	return items, pag, err
}

// Delete removes the blob and its row. A blob already gone is not an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	var row models.MediaModel
	if err := s.db.Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return false, err
	}
	if row.ID == "" {
		return false, nil
	}
	if err := s.store.Delete(ctx, row.Key); err != nil && !errors.Is(err, blob.ErrNotFound) {
		return false, err
	}
	res := s.db.Delete(&row)
	return res.RowsAffected > 0, res.Error
}
