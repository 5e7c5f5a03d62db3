// Package classify talks to the external image classification service.
// The annotation engine never calls it; the UI sends the composited
// image off on its own goroutine and shows whatever comes back. Failures
// surface as a generic error state and are only retried when the user
// asks for another analysis.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Client is the adapter for a remote inference service. It accepts an
// encoded image payload and returns the service's ranked predictions.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service at baseURL (scheme + host,
// no trailing slash needed).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Predict uploads the image as a multipart form to POST /predict and
// decodes the ranked prediction list. sessionID tags the request so the
// service can correlate repeated analyses of the same surface.
func (c *Client) Predict(ctx context.Context, imageData []byte, sessionID string) ([]Prediction, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "annotated.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(imageData)); err != nil {
		return nil, fmt.Errorf("copy image data: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Predictions []Prediction `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.Predictions, nil
}

// PredictStream sends the image over the service's websocket endpoint
// and reads back one prediction frame. Services that keep the model warm
// prefer this path; Predict remains the fallback for plain HTTP servers.
func (c *Client) PredictStream(ctx context.Context, imageData []byte, sessionID string) ([]Prediction, error) {
	wsURL := httpToWS(c.baseURL) + "/predict/ws"

	header := http.Header{}
	header.Set("X-Session-ID", sessionID)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
		conn.SetReadDeadline(deadline)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, imageData); err != nil {
		return nil, fmt.Errorf("send image: %w", err)
	}

	var frame struct {
		Predictions []Prediction `json:"predictions"`
		Error       string       `json:"error,omitempty"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		return nil, fmt.Errorf("read predictions: %w", err)
	}
	if frame.Error != "" {
		return nil, fmt.Errorf("inference service: %s", frame.Error)
	}
	return frame.Predictions, nil
}

// CheckHealth probes GET /health. Used once at startup so a missing
// service shows up in the log instead of on the first analysis.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service unhealthy: %d", resp.StatusCode)
	}
	return nil
}

func httpToWS(url string) string {
	switch {
	case strings.HasPrefix(url, "https://"):
		return "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		return "ws://" + strings.TrimPrefix(url, "http://")
	default:
		return "ws://" + url
	}
}
