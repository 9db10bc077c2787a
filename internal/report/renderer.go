package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vulntrack/internal/models"
)

// Data is the full snapshot handed to the document renderer: the
// assessment plus its ancestry and findings.
type Data struct {
	Organization models.Organization    `json:"organization"`
	Asset        models.Asset           `json:"asset"`
	Assessment   models.Assessment      `json:"assessment"`
	Findings     []models.Vulnerability `json:"findings"`
	GeneratedAt  time.Time              `json:"generatedAt"`
}

// Renderer is the document-generation contract: data in, binary out.
type Renderer interface {
	Render(ctx context.Context, data Data) ([]byte, error)
}

// HTTPRenderer posts report data to an external rendering service and
// returns the produced PDF bytes.
type HTTPRenderer struct {
	url  string
	http *http.Client
}

func NewHTTPRenderer(url string) *HTTPRenderer {
	return &HTTPRenderer{url: url, http: &http.Client{Timeout: 60 * time.Second}}
}

func (r *HTTPRenderer) Render(ctx context.Context, data Data) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("renderer: returned %d: %s", resp.StatusCode, msg)
	}
	return io.ReadAll(resp.Body)
}
