package repository

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SachinLearns/File-Converter/internal/config"
	"github.com/SachinLearns/File-Converter/internal/domain"
)

// ScratchRepository persists uploads under per-request directories and
// guarantees they can be removed in one call once the request is done.
type ScratchRepository interface {
	SaveUpload(r io.Reader, originalName, contentType string) (*domain.UploadedFile, error)
	Remove(file *domain.UploadedFile)
}

type scratchRepository struct {
	uploadDir string
	log       *zap.Logger
}

func NewScratchRepository(cfg *config.AppConfig, log *zap.Logger) ScratchRepository {
	return &scratchRepository{
		uploadDir: cfg.UploadDir,
		log:       log,
	}
}

// SaveUpload writes the upload to <uploadDir>/<uuid>/<sanitized-name>. The
// uuid segment makes concurrent uploads with identical filenames land on
// distinct paths.
func (r *scratchRepository) SaveUpload(src io.Reader, originalName, contentType string) (*domain.UploadedFile, error) {
	id := uuid.New().String()
	dir := filepath.Join(r.uploadDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}

	name := SanitizeFilename(originalName)
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}

	file := &domain.UploadedFile{
		ID:           id,
		OriginalName: originalName,
		StoredPath:   path,
		Size:         size,
		ContentType:  contentType,
		UploadedAt:   time.Now(),
	}

	r.log.Info("Upload saved to scratch storage",
		zap.String("id", id),
		zap.String("filename", name),
		zap.Int64("size", size))

	return file, nil
}

// Remove deletes the upload's per-request directory. Safe to call on every
// exit path; a missing directory is not an error.
func (r *scratchRepository) Remove(file *domain.UploadedFile) {
	if file == nil {
		return
	}

	dir := filepath.Join(r.uploadDir, file.ID)
	if err := os.RemoveAll(dir); err != nil {
		r.log.Error("Failed to remove scratch dir",
			zap.String("id", file.ID),
			zap.Error(err))
		return
	}

	r.log.Info("Scratch dir removed", zap.String("id", file.ID))
}

// SanitizeFilename strips path separators and characters unsafe for disk
// paths, keeping letters, digits, dots, dashes and underscores. An empty
// or fully-stripped name becomes "upload".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "/" || name == "." || name == ".." {
		name = ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), ".")
	if sanitized == "" {
		return "upload"
	}
	return sanitized
}
