// Package mermaid renders mermaid diagram sources into raster images
// through an external rendering service.
//
// Results are cached per renderer by the exact original source text, so
// duplicate diagrams anywhere in one document cost a single request. Any
// rendering failure (non-success status, connection error, timeout) is
// cached as a failure marker; conversion proceeds and the assembler
// substitutes a visible warning block.
package mermaid

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultEndpoint is the rendering service URL used when none is
// configured. The service accepts mermaid source as a plain-text POST body
// and responds with PNG bytes.
const DefaultEndpoint = "https://kroki.io/mermaid/png"

// DefaultTimeout bounds each individual rendering request.
const DefaultTimeout = 30 * time.Second

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 16 << 20

// Result is one cache entry: rendered raster bytes on success, or the
// failure that was recorded for this source.
type Result struct {
	PNG []byte
	Err error
}

// Failed reports whether this entry is a failure marker.
func (r *Result) Failed() bool { return r.Err != nil }

// Renderer issues rendering requests and owns the per-conversion cache.
// It is single-use state confined to one conversion; create a new Renderer
// per document and never share one across conversions.
type Renderer struct {
	endpoint string
	timeout  time.Duration
	theme    string
	client   *http.Client
	cache    map[string]*Result
}

// NewRenderer creates a renderer for one conversion run. An empty endpoint
// selects DefaultEndpoint; a non-positive timeout selects DefaultTimeout.
// theme is the mermaid theme name injected into sources that carry no init
// directive of their own.
func NewRenderer(endpoint string, timeout time.Duration, theme string) *Renderer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Renderer{
		endpoint: endpoint,
		timeout:  timeout,
		theme:    theme,
		client:   &http.Client{},
		cache:    make(map[string]*Result),
	}
}

// Render returns the cached result for source, issuing the rendering
// request on first sight. The cache key is the original source text; theme
// injection never affects the key. Errors are recorded in the result, not
// returned: rendering failure must never abort a conversion.
func (r *Renderer) Render(ctx context.Context, source string) *Result {
	if res, ok := r.cache[source]; ok {
		return res
	}
	res := &Result{}
	res.PNG, res.Err = r.request(ctx, InjectTheme(source, r.theme))
	r.cache[source] = res
	return res
}

// RenderAll renders each distinct source serially in the given order,
// awaiting each request before issuing the next. Population order of the
// cache is therefore deterministic and each failure attributable.
func (r *Renderer) RenderAll(ctx context.Context, sources []string) {
	for _, src := range sources {
		r.Render(ctx, src)
	}
}

// Lookup returns the cached result for source without issuing a request.
func (r *Renderer) Lookup(source string) (*Result, bool) {
	res, ok := r.cache[source]
	return res, ok
}

func (r *Renderer) request(parent context.Context, body string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building render request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rendering diagram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rendering diagram: service returned %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading render response: %w", err)
	}
	return data, nil
}

// InjectTheme prefixes source with a mermaid init directive for the given
// theme, unless the source already carries one.
func InjectTheme(source, theme string) string {
	if theme == "" || strings.Contains(source, "%%{init") {
		return source
	}
	return fmt.Sprintf("%%%%{init: {\"theme\": %q}}%%%%\n%s", theme, source)
}

// Dimensions reads the intrinsic pixel dimensions from a raster image
// header without decoding the full image.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("reading image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// FitSize scales pixel dimensions down to fit within maxW and maxH while
// preserving aspect ratio. Images already within bounds are returned
// unchanged; FitSize never upscales.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return w, h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	return int(float64(w) * scale), int(float64(h) * scale)
}
