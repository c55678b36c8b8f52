// Package clients holds HTTP clients for the services the authoring service depends on.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mentorat/authoring/internal/models"
)

// MediaClient uploads block media to the media service
type MediaClient struct {
	baseURL    string
	apiKey     string
	maxSize    int64
	httpClient *http.Client
}

// NewMediaClient creates a new media client
//
// Files larger than maxSize bytes are rejected before anything is sent.
func NewMediaClient(baseURL, apiKey string, maxSize int64, httpClient *http.Client) *MediaClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &MediaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		maxSize:    maxSize,
		httpClient: httpClient,
	}
}

// UploadFile sends the file as multipart form data to POST {baseURL}/media/{kind}
//
// The media service answers either with a JSON description of the stored file or with the
// download URL as plain text.
func (c *MediaClient) UploadFile(ctx context.Context, file io.Reader, filename string, kind models.UploadKind) (*models.UploadResult, error) {
	content, err := io.ReadAll(io.LimitReader(file, c.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(content)) > c.maxSize {
		return nil, fmt.Errorf("file exceeds %d bytes", c.maxSize)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	mimeType := mimetype.Detect(content).String()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/media/%s", c.baseURL, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("media service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	result := &models.UploadResult{
		Filename: filename,
		Size:     int64(len(content)),
		MimeType: mimeType,
	}

	contentType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if contentType == "application/json" {
		var stored models.UploadResult
		if err := json.Unmarshal(respBody, &stored); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		result.URL = stored.URL
		if stored.Filename != "" {
			result.Filename = stored.Filename
		}
		if stored.Size > 0 {
			result.Size = stored.Size
		}
		if stored.MimeType != "" {
			result.MimeType = stored.MimeType
		}
	} else {
		result.URL = strings.TrimSpace(string(respBody))
	}

	if result.URL == "" {
		return nil, fmt.Errorf("media service returned no url")
	}
	if result.Filename == "" {
		result.Filename = path.Base(result.URL)
	}
	return result, nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
