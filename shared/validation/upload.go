package validation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aribt/hackathon-cms/shared/domain"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Image types accepted for sponsor, partner and team member pictures.
var AllowedImageMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp"}

// Payment proofs may also be PDFs.
var AllowedPaymentMimeTypes = append([]string{"application/pdf"}, AllowedImageMimeTypes...)

// ReadFormFile loads the named file field of a parsed multipart request.
// A missing field yields (nil, nil): every upload in the console is optional.
func ReadFormFile(r *http.Request, field string, allowed []string) (*domain.Upload, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	fh := r.MultipartForm.File[field][0]
	if fh.Size == 0 {
		return nil, nil
	}
	return ReadUpload(fh, allowed)
}

// ReadUpload reads a file header into memory, checks its MIME type against
// allowed and, for images, that it decodes and what its dimensions are.
func ReadUpload(fh *multipart.FileHeader, allowed []string) (*domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	mimeType := DetectMimeType(fh.Filename, fh.Header.Get("Content-Type"), content)
	if !contains(allowed, mimeType) {
		return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fh.Filename)
	}

	upload := &domain.Upload{Filename: fh.Filename, MimeType: mimeType, Content: content}
	if strings.HasPrefix(mimeType, "image/") {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotAnImage, fh.Filename)
		}
		upload.Width, upload.Height = cfg.Width, cfg.Height
	}
	return upload, nil
}

// DetectMimeType prefers the declared type, then the extension, then sniffing.
func DetectMimeType(filename, declared string, content []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return stripParams(declared)
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return stripParams(byExt)
	}
	return stripParams(http.DetectContentType(content))
}

func stripParams(mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	return mimeType
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
