// Package upload buffers multipart media files to local disk and
// classifies them for hazard report attachments.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"coastwatch/models"
)

// MaxFileSize caps a single uploaded file at 150 MB.
const MaxFileSize = 150 << 20

// MaxFiles caps how many media files one hazard report may carry.
const MaxFiles = 5

// allowedExts is the upload extension allow-list: images, videos,
// audio and common docs.
var allowedExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true,
	".mp4": true, ".mov": true, ".mkv": true, ".webm": true,
	".mp3": true, ".wav": true,
	".pdf": true, ".doc": true, ".docx": true,
}

// Allowed reports whether the file's extension passes the allow-list.
func Allowed(filename string) bool {
	return allowedExts[strings.ToLower(filepath.Ext(filename))]
}

// Kind derives the stored media kind from the upload's MIME type:
// image/video/audio by prefix, everything else is a doc.
func Kind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	case strings.HasPrefix(contentType, "audio/"):
		return "audio"
	default:
		return "doc"
	}
}

// SaveFile writes one multipart file under dir with a unique name and
// returns the media descriptor for it. The caller checks Allowed and
// the size cap first for per-file error reporting; SaveFile re-checks
// both.
func SaveFile(dir string, fh *multipart.FileHeader) (*models.Media, error) {
	if !Allowed(fh.Filename) {
		return nil, fmt.Errorf("file type not allowed: %s", fh.Filename)
	}
	if fh.Size > MaxFileSize {
		return nil, fmt.Errorf("file too large: %s", fh.Filename)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	stored := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dstPath := filepath.Join(dir, stored)
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	return &models.Media{
		FileType:     Kind(fh.Header.Get("Content-Type")),
		FileURL:      "/uploads/" + stored,
		OriginalName: fh.Filename,
	}, nil
}
