package domain

import (
	"strings"
	"time"
)

// UploadedFile describes a user upload persisted to scratch storage for the
// duration of a single request.
type UploadedFile struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	StoredPath   string    `json:"stored_path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// ImageFormat is the page-image encoding requested for PDF rasterization.
type ImageFormat string

const (
	FormatJPG ImageFormat = "JPG"
	FormatPNG ImageFormat = "PNG"
)

// ParseImageFormat maps the form value to a known format. Anything other
// than PNG falls back to JPG, matching the form's default selection.
func ParseImageFormat(s string) ImageFormat {
	if strings.EqualFold(s, string(FormatPNG)) {
		return FormatPNG
	}
	return FormatJPG
}

// Ext returns the file extension used for archive entries.
func (f ImageFormat) Ext() string {
	return strings.ToLower(string(f))
}
