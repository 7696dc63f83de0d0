// Package images provides cover image upload and placeholder generation.
// Uploads are proxied through the server to Cloudinary so API credentials
// never reach the browser.
package images

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CloudinaryConfig holds the credentials for the upload API.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Uploader pushes images to Cloudinary using signed uploads.
type Uploader struct {
	httpClient *http.Client
	logger     *slog.Logger
	cfg        CloudinaryConfig
	baseURL    string // overridable for tests
}

// UploadResult describes a stored image.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Format   string `json:"format,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
	Blurhash string `json:"blurhash,omitempty"`
}

// NewUploader creates a Cloudinary uploader.
func NewUploader(cfg CloudinaryConfig, logger *slog.Logger) *Uploader {
	return &Uploader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		cfg:        cfg,
		baseURL:    "https://api.cloudinary.com/v1_1/" + cfg.CloudName,
	}
}

// Enabled reports whether upload credentials are configured.
func (u *Uploader) Enabled() bool {
	return u.cfg.CloudName != "" && u.cfg.APIKey != "" && u.cfg.APISecret != ""
}

// UploadImage uploads raw image bytes and computes a BlurHash placeholder
// for the stored image. The placeholder comes from the original bytes, so
// a Cloudinary transform failure can never strand a cover without one.
func (u *Uploader) UploadImage(ctx context.Context, data []byte, filename string) (*UploadResult, error) {
	if !u.Enabled() {
		return nil, fmt.Errorf("image uploads not configured")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	result, err := u.upload(ctx, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = part.Write(data)
		return err
	})
	if err != nil {
		return nil, err
	}

	hash, err := ComputeBlurHash(bytes.NewReader(data))
	if err != nil {
		u.logger.Warn("failed to compute blurhash", "publicId", result.PublicID, "error", err)
	} else {
		result.Blurhash = hash
	}

	return result, nil
}

// UploadRemote asks Cloudinary to fetch an image by URL (used for ISBNdb
// cover URLs). No BlurHash is computed since the bytes never pass through.
func (u *Uploader) UploadRemote(ctx context.Context, imageURL string) (*UploadResult, error) {
	if !u.Enabled() {
		return nil, fmt.Errorf("image uploads not configured")
	}
	if imageURL == "" {
		return nil, fmt.Errorf("image url cannot be empty")
	}

	return u.upload(ctx, func(w *multipart.Writer) error {
		return w.WriteField("file", imageURL)
	})
}

// upload performs the signed multipart POST; addFile contributes the
// "file" field (bytes or remote URL).
func (u *Uploader) upload(ctx context.Context, addFile func(*multipart.Writer) error) (*UploadResult, error) {
	publicID := uuid.NewString()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	signedParams := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}
	if u.cfg.Folder != "" {
		signedParams["folder"] = u.cfg.Folder
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for key, value := range signedParams {
		if err := w.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}
	if err := w.WriteField("api_key", u.cfg.APIKey); err != nil {
		return nil, fmt.Errorf("write api key: %w", err)
	}
	if err := w.WriteField("signature", signParams(signedParams, u.cfg.APISecret)); err != nil {
		return nil, fmt.Errorf("write signature: %w", err)
	}
	if err := addFile(w); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	uploadURL := u.baseURL + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upload failed: status %d: %s", resp.StatusCode, string(msg))
	}

	var uploadResp struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Format    string `json:"format"`
		Bytes     int64  `json:"bytes"`
	}
	if err := json.UnmarshalRead(resp.Body, &uploadResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &UploadResult{
		URL:      uploadResp.SecureURL,
		PublicID: uploadResp.PublicID,
		Width:    uploadResp.Width,
		Height:   uploadResp.Height,
		Format:   uploadResp.Format,
		Bytes:    uploadResp.Bytes,
	}, nil
}

// signParams implements Cloudinary's request signing: parameters sorted by
// key, joined as key=value with &, then SHA-1 over params + secret.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
