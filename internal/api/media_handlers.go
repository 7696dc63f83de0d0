package api

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/media/images"
	"github.com/staffpicks/staffpicks-server/internal/metadata/isbndb"
)

// maxUploadBytes caps cover and logo uploads at 10 MiB.
const maxUploadBytes = 10 << 20

func (s *Server) registerMediaRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "uploadImage",
		Method:      http.MethodPost,
		Path:        "/api/upload/image",
		Summary:     "Upload an image",
		Description: "Accepts a multipart file upload or a JSON body with a remote URL to pull. Returns the hosted URL and a blurhash placeholder.",
		Tags:        []string{"Media"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUploadImage)

	// No session requirement: the route is open and the metadata
	// client's own rate limiter bounds upstream traffic.
	huma.Register(s.api, huma.Operation{
		OperationID: "lookupISBN",
		Method:      http.MethodGet,
		Path:        "/api/isbn/{isbn}",
		Summary:     "Look up book metadata by ISBN",
		Tags:        []string{"Media"},
	}, s.handleLookupISBN)
}

// === DTOs ===

// UploadImageInput carries either a multipart form or a JSON url body.
// The raw body is parsed by content type, so one endpoint serves both
// the file picker and paste-a-link flows.
type UploadImageInput struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte
}

// UploadImageOutput wraps the hosted image result.
type UploadImageOutput struct {
	Body *images.UploadResult
}

// ISBNLookupInput selects the ISBN to resolve.
type ISBNLookupInput struct {
	ISBN string `path:"isbn" doc:"ISBN-10 or ISBN-13, hyphens allowed"`
}

// ISBNLookupOutput wraps the metadata result.
type ISBNLookupOutput struct {
	Body *isbndb.BookResult
}

// === Handlers ===

func (s *Server) handleUploadImage(ctx context.Context, input *UploadImageInput) (*UploadImageOutput, error) {
	if _, err := requireAccess(ctx); err != nil {
		return nil, err
	}
	if !s.uploader.Enabled() {
		return nil, huma.Error503ServiceUnavailable("image hosting is not configured")
	}
	if len(input.RawBody) > maxUploadBytes {
		return nil, huma.NewError(http.StatusRequestEntityTooLarge, "image exceeds the 10MB limit")
	}

	mediaType, params, err := mime.ParseMediaType(input.ContentType)
	if err != nil {
		return nil, huma.Error400BadRequest("unreadable content type")
	}

	var result *images.UploadResult
	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		result, err = s.uploadMultipart(ctx, input.RawBody, params["boundary"])
	case mediaType == "application/json":
		var body struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(input.RawBody, &body); err != nil || body.URL == "" {
			return nil, huma.Error400BadRequest("expected a JSON body with a url field")
		}
		result, err = s.uploader.UploadRemote(ctx, body.URL)
	default:
		return nil, huma.Error415UnsupportedMediaType("send multipart form data or a JSON url")
	}
	if err != nil {
		s.logger.Error("image upload failed", "error", err)
		return nil, huma.Error502BadGateway("image upload failed")
	}

	return &UploadImageOutput{Body: result}, nil
}

// uploadMultipart pulls the first file part out of the form and hands it
// to the uploader.
func (s *Server) uploadMultipart(ctx context.Context, body []byte, boundary string) (*images.UploadResult, error) {
	if boundary == "" {
		return nil, errors.New("multipart body without boundary")
	}

	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return nil, errors.New("no file part in form")
		}
		if err != nil {
			return nil, err
		}
		if part.FileName() == "" {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(part, maxUploadBytes))
		if err != nil {
			return nil, err
		}
		return s.uploader.UploadImage(ctx, data, part.FileName())
	}
}

func (s *Server) handleLookupISBN(ctx context.Context, input *ISBNLookupInput) (*ISBNLookupOutput, error) {
	result, err := s.isbn.LookupISBN(ctx, input.ISBN)
	if err != nil {
		switch {
		case errors.Is(err, isbndb.ErrBookNotFound):
			return nil, huma.Error404NotFound("no metadata found for this isbn")
		case errors.Is(err, isbndb.ErrNotConfigured):
			return nil, huma.Error503ServiceUnavailable("isbn lookup is not configured")
		}
		s.logger.Error("isbn lookup failed", "isbn", input.ISBN, "error", err)
		return nil, huma.Error502BadGateway("isbn lookup failed")
	}

	return &ISBNLookupOutput{Body: result}, nil
}
