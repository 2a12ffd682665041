package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SachinLearns/File-Converter/internal/domain"
	"github.com/SachinLearns/File-Converter/internal/repository"
	"github.com/SachinLearns/File-Converter/internal/service"
)

const (
	msgNoFilePart     = "No file part"
	msgNoSelectedFile = "No selected file"
	msgFileTooLarge   = "File too large"

	contentTypePNG  = "image/png"
	contentTypeZIP  = "application/zip"
	contentTypePDF  = "application/pdf"
	contentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type Handler struct {
	service service.ConversionService
	scratch repository.ScratchRepository
	log     *zap.Logger
}

func NewHandler(svc service.ConversionService, scratch repository.ScratchRepository, log *zap.Logger) *Handler {
	return &Handler{
		service: svc,
		scratch: scratch,
		log:     log,
	}
}

// ConvertHEIC handles POST /upload_heic: one HEIC image in, one PNG out.
func (h *Handler) ConvertHEIC(c *gin.Context) {
	file, ok := h.saveFormFile(c, "heic")
	if !ok {
		return
	}
	defer h.scratch.Remove(file)

	data, err := h.service.HEICToPNG(c.Request.Context(), file)
	if err != nil {
		h.writeConversionError(c, err)
		return
	}

	name := filepath.Base(file.StoredPath)
	outputName := strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
	attach(c, data, outputName, contentTypePNG)
}

// ConvertPDFToImages handles POST /upload_pdf: rasterizes every page in the
// requested format and returns them as a single ZIP archive.
func (h *Handler) ConvertPDFToImages(c *gin.Context) {
	file, ok := h.saveFormFile(c, "pdf")
	if !ok {
		return
	}
	defer h.scratch.Remove(file)

	format := domain.ParseImageFormat(c.PostForm("format"))

	data, err := h.service.PDFToImages(c.Request.Context(), file, format)
	if err != nil {
		h.writeConversionError(c, err)
		return
	}

	attach(c, data, "converted_images.zip", contentTypeZIP)
}

// ConvertImagesToPDF handles POST /upload_images: one or more raster images
// in, one multi-page PDF out, pages in submission order.
func (h *Handler) ConvertImagesToPDF(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.writeFormError(c, err)
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		h.writeConversionError(c, domain.BadInput(msgNoFilePart))
		return
	}

	files := make([]*domain.UploadedFile, 0, len(headers))
	defer func() {
		for _, f := range files {
			h.scratch.Remove(f)
		}
	}()

	for _, fh := range headers {
		file, saveErr := h.saveUpload(c, fh)
		if saveErr != nil {
			return
		}
		files = append(files, file)
	}

	data, err := h.service.ImagesToPDF(c.Request.Context(), files)
	if err != nil {
		h.writeConversionError(c, err)
		return
	}

	attach(c, data, "converted_images.pdf", contentTypePDF)
}

// ConvertPDFToDocx handles POST /upload_pdf_to_docx: extracts the PDF's
// text layer into a DOCX with one paragraph per line.
func (h *Handler) ConvertPDFToDocx(c *gin.Context) {
	file, ok := h.saveFormFile(c, "pdf_to_docx")
	if !ok {
		return
	}
	defer h.scratch.Remove(file)

	data, err := h.service.PDFToDocx(c.Request.Context(), file)
	if err != nil {
		h.writeConversionError(c, err)
		return
	}

	attach(c, data, "converted_document.docx", contentTypeDocx)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *Handler) GetUI(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// saveFormFile validates the single-file field and persists it to scratch
// storage. On failure it writes the response itself and returns ok=false.
func (h *Handler) saveFormFile(c *gin.Context, field string) (*domain.UploadedFile, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		h.writeFormError(c, err)
		return nil, false
	}

	if fh.Filename == "" {
		h.writeConversionError(c, domain.BadInput(msgNoSelectedFile))
		return nil, false
	}

	file, err := h.saveUpload(c, fh)
	if err != nil {
		return nil, false
	}

	return file, true
}

func (h *Handler) saveUpload(c *gin.Context, fh *multipart.FileHeader) (*domain.UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded file", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to read upload")
		return nil, err
	}
	defer src.Close()

	file, err := h.scratch.SaveUpload(src, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.log.Error("Failed to save upload", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to save upload")
		return nil, err
	}

	return file, nil
}

// writeFormError distinguishes an oversized body, rejected by the
// transport layer, from an absent file field.
func (h *Handler) writeFormError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		c.String(http.StatusRequestEntityTooLarge, msgFileTooLarge)
		return
	}

	h.writeConversionError(c, domain.BadInput(msgNoFilePart))
}

// writeConversionError maps the error's kind to a status code. Client
// mistakes echo just the message; conversion failures carry the
// underlying error text.
func (h *Handler) writeConversionError(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindBadInput:
		c.String(http.StatusBadRequest, err.Error())
	case domain.KindTimeout:
		c.String(http.StatusServiceUnavailable, fmt.Sprintf("Error processing file: %v", err))
	default:
		c.String(http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
	}
}

func attach(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
