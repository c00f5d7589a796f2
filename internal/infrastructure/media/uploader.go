// Package media forwards validated image files to the configured third-party
// media host. It is an isolated utility with no interaction with the session
// layer.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/syncspace/edge-gateway/internal/core/domain"
)

// MaxUploadBytes is the hard ceiling on accepted image size.
const MaxUploadBytes = 5 << 20 // 5 MB

// Uploader posts image files to the media host via multipart form upload.
type Uploader struct {
	uploadURL string
	preset    string
	http      *http.Client
	log       zerolog.Logger
}

func NewUploader(uploadURL, preset string, log zerolog.Logger) *Uploader {
	return &Uploader{
		uploadURL: uploadURL,
		preset:    preset,
		http:      &http.Client{},
		log:       log,
	}
}

// Upload validates type and size, forwards the file, and returns the secure
// URL the media host assigned.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.ErrNotAnImage
	}
	if size > MaxUploadBytes {
		return "", domain.ErrImageTooLarge
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	// LimitReader guards against a lying Content-Length.
	n, err := io.Copy(part, io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if n > MaxUploadBytes {
		return "", domain.ErrImageTooLarge
	}
	if u.preset != "" {
		if err := form.WriteField("upload_preset", u.preset); err != nil {
			return "", fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		u.log.Warn().Int("status", resp.StatusCode).Msg("media host rejected upload")
		return "", fmt.Errorf("media host rejected upload (status %d)", resp.StatusCode)
	}

	var payload struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.SecureURL == "" {
		return "", fmt.Errorf("media host returned no secure url")
	}
	return payload.SecureURL, nil
}
