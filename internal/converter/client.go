// Package converter invokes the external document conversion service and
// drives conversion jobs through their lifecycle. The four conversion
// templates (passage, mcq1, mcq2, mcq3) are implemented by the sidecar, not
// by this repository.
package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 0, // Use context timeout instead
		},
	}
}

// Convert posts the document to the sidecar's template endpoint and returns
// the generated PPTX stream. The caller must close the returned reader.
func (c *Client) Convert(ctx context.Context, templateType, filename string, document io.Reader) (io.ReadCloser, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := io.Copy(part, document); err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("%s/convert/%s", c.baseURL, templateType)
	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("converter request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("converter returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp.Body, nil
}

// permanentError marks a failure that retrying cannot fix, such as a
// missing input file.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error { return &permanentError{err: err} }

// retryWithBackoff executes a function with exponential backoff retry logic.
// Permanent failures are returned immediately, and no further attempts are
// made once ctx is done.
func retryWithBackoff(ctx context.Context, fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return err
		}

		if i == maxRetries-1 {
			break
		}

		backoff := backoffs[len(backoffs)-1]
		if i < len(backoffs) {
			backoff = backoffs[i]
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("giving up after %d attempt(s): %w", i+1, lastErr)
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
