// Package answer provides the client for the upstream answering service.
//
// The upstream owns all answer generation and file inspection; this package
// only re-packages the submitted form and decodes the {answer, error} reply.
package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Upload is an optional file attachment forwarded alongside the question.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Answerer answers a question, optionally using an attached file.
type Answerer interface {
	Ask(ctx context.Context, question string, upload *Upload) (string, error)
}

// BackendError is a failure the upstream reported in its response body.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// Client forwards questions to the upstream service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the upstream answering endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type upstreamResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error"`
}

// Ask sends the question (and upload, if any) as multipart/form-data and
// returns the upstream's answer. A non-empty error field or an error status
// surfaces as *BackendError; transport failures are returned wrapped.
func (c *Client) Ask(ctx context.Context, question string, upload *Upload) (string, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	if err := writer.WriteField("question", question); err != nil {
		return "", fmt.Errorf("write question field: %w", err)
	}

	if upload != nil {
		part, err := writer.CreateFormFile("file", upload.Filename)
		if err != nil {
			return "", fmt.Errorf("create file field: %w", err)
		}
		if _, err := io.Copy(part, upload.Content); err != nil {
			return "", fmt.Errorf("copy file content: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &buffer)
	if err != nil {
		return "", fmt.Errorf("create upstream request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	var parsed upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if resp.StatusCode >= 400 {
			return "", &BackendError{Message: fmt.Sprintf("upstream returned %s", resp.Status)}
		}
		return "", fmt.Errorf("decode upstream response: %w", err)
	}

	if parsed.Error != "" {
		return "", &BackendError{Message: parsed.Error}
	}
	if resp.StatusCode >= 400 {
		return "", &BackendError{Message: fmt.Sprintf("upstream returned %s", resp.Status)}
	}
	if parsed.Answer == "" {
		return "", &BackendError{Message: "no answer from upstream"}
	}

	return parsed.Answer, nil
}
