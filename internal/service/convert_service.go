package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SachinLearns/File-Converter/internal/converter"
	"github.com/SachinLearns/File-Converter/internal/domain"
	"github.com/SachinLearns/File-Converter/internal/worker"
)

// ConversionService runs blocking conversions on the worker pool and
// classifies failures so the transport layer can map them to status codes.
type ConversionService interface {
	HEICToPNG(ctx context.Context, file *domain.UploadedFile) ([]byte, error)
	PDFToImages(ctx context.Context, file *domain.UploadedFile, format domain.ImageFormat) ([]byte, error)
	ImagesToPDF(ctx context.Context, files []*domain.UploadedFile) ([]byte, error)
	PDFToDocx(ctx context.Context, file *domain.UploadedFile) ([]byte, error)
}

type conversionService struct {
	pool *worker.Pool
	log  *zap.Logger

	heicToPNG   func(path string) ([]byte, error)
	pdfToImages func(ctx context.Context, path string, format domain.ImageFormat) ([]byte, error)
	imagesToPDF func(ctx context.Context, paths []string) ([]byte, error)
	pdfToDocx   func(ctx context.Context, path string) ([]byte, error)
}

func NewConversionService(pool *worker.Pool, log *zap.Logger) ConversionService {
	return &conversionService{
		pool:        pool,
		log:         log,
		heicToPNG:   converter.HEICToPNG,
		pdfToImages: converter.PDFToImages,
		imagesToPDF: converter.ImagesToPDF,
		pdfToDocx:   converter.PDFToDocx,
	}
}

func (s *conversionService) HEICToPNG(ctx context.Context, file *domain.UploadedFile) ([]byte, error) {
	return s.submit(ctx, "heic_to_png", file.ID, func(ctx context.Context) ([]byte, error) {
		return s.heicToPNG(file.StoredPath)
	})
}

func (s *conversionService) PDFToImages(ctx context.Context, file *domain.UploadedFile, format domain.ImageFormat) ([]byte, error) {
	return s.submit(ctx, "pdf_to_images", file.ID, func(ctx context.Context) ([]byte, error) {
		return s.pdfToImages(ctx, file.StoredPath, format)
	})
}

func (s *conversionService) ImagesToPDF(ctx context.Context, files []*domain.UploadedFile) ([]byte, error) {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.StoredPath
	}

	id := ""
	if len(files) > 0 {
		id = files[0].ID
	}

	return s.submit(ctx, "images_to_pdf", id, func(ctx context.Context) ([]byte, error) {
		return s.imagesToPDF(ctx, paths)
	})
}

func (s *conversionService) PDFToDocx(ctx context.Context, file *domain.UploadedFile) ([]byte, error) {
	return s.submit(ctx, "pdf_to_docx", file.ID, func(ctx context.Context) ([]byte, error) {
		return s.pdfToDocx(ctx, file.StoredPath)
	})
}

func (s *conversionService) submit(ctx context.Context, kind, id string, task worker.Task) ([]byte, error) {
	start := time.Now()

	data, err := s.pool.Submit(ctx, task)
	if err != nil {
		s.log.Error("Conversion failed",
			zap.String("kind", kind),
			zap.String("id", id),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, domain.Classify(err)
	}

	s.log.Info("Conversion completed",
		zap.String("kind", kind),
		zap.String("id", id),
		zap.Duration("duration", time.Since(start)),
		zap.Int("output_size", len(data)))

	return data, nil
}
