package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RenderedDocument is the output of a render call. Data holds the document
// bytes; Locator is the service-side handle for later retrieval, when the
// service exposes one.
type RenderedDocument struct {
	Data        []byte
	ContentType string
	Locator     string
}

// Renderer turns a sanitized pdfmake document definition into a PDF. The
// pipeline never inspects how rendering happens.
type Renderer interface {
	Render(ctx context.Context, docDefinition json.RawMessage) (*RenderedDocument, error)
}

// HTTPRenderer posts the document definition to an external pdfmake render
// service and reads the PDF bytes back.
type HTTPRenderer struct {
	BaseURL string
	Client  *http.Client
}

var _ Renderer = &HTTPRenderer{}

func NewHTTPRenderer(baseURL string) *HTTPRenderer {
	return &HTTPRenderer{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, docDefinition json.RawMessage) (*RenderedDocument, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"doc_definition": docDefinition,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	url := r.BaseURL + "/v1/render/pdf"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read render response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render error: status %d, body: %s", res.StatusCode, string(body))
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	return &RenderedDocument{
		Data:        body,
		ContentType: contentType,
		Locator:     res.Header.Get("X-Document-Locator"),
	}, nil
}

// Size reports the rendered byte count, for artifact metadata.
func (d *RenderedDocument) Size() int64 {
	return int64(len(d.Data))
}
