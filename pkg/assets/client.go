// Package assets uploads user media (profile photos) to an HTTP asset host
// that accepts multipart form uploads.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDisabled    = errors.New("asset uploads are disabled")
	ErrTooLarge    = errors.New("asset exceeds the maximum size")
	ErrCircuitOpen = errors.New("asset host circuit open")
)

const (
	circuitFailureThreshold = 3
	circuitReset            = 30 * time.Second
)

// File is a single upload.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
	Close() error
}

// Client posts files to the configured upload URL.
type Client struct {
	cfg    Config
	client *http.Client

	failures  int32
	openUntil int64 // unix nano
	closed    int32
}

// NewClient creates an asset client. A nil httpClient gets one with the
// configured timeout.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.UploadURL); err != nil {
		return nil, fmt.Errorf("invalid upload url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultConfig().MaxBytes
	}

	logger.Info("assets: NewClient created", slog.String("upload_url", cfg.UploadURL), slog.Duration("timeout", cfg.Timeout))
	return &Client{cfg: cfg, client: httpClient}, nil
}

func NewDefaultClient(cfg Config) (*Client, error) {
	defaultClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          20,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// Close releases idle connections. It is idempotent.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.failures) < circuitFailureThreshold {
		return false
	}
	if time.Now().UnixNano() < atomic.LoadInt64(&c.openUntil) {
		return true
	}
	// half-open: let one request through
	atomic.StoreInt32(&c.failures, 0)
	return false
}

func (c *Client) recordFailure() {
	if atomic.AddInt32(&c.failures, 1) >= circuitFailureThreshold {
		atomic.StoreInt64(&c.openUntil, time.Now().Add(circuitReset).UnixNano())
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload sends f as the "file" part of a multipart form together with a
// generated public_id and returns the URL reported by the host.
func (c *Client) Upload(ctx context.Context, f File) (string, error) {
	if c.isCircuitOpen() {
		return "", ErrCircuitOpen
	}

	body, contentType, err := c.encode(f)
	if err != nil {
		return "", err
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.recordFailure()
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordFailure()
		return "", fmt.Errorf("upload returned status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.recordFailure()
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	u := out.SecureURL
	if u == "" {
		u = out.URL
	}
	if u == "" {
		c.recordFailure()
		return "", errors.New("upload response carried no url")
	}

	atomic.StoreInt32(&c.failures, 0)
	logger.Debug("assets: uploaded", slog.String("name", f.Name), slog.Duration("latency", time.Since(start)))
	return u, nil
}

func (c *Client) encode(f File) (*bytes.Buffer, string, error) {
	if f.Body == nil {
		return nil, "", errors.New("upload has no body")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := filepath.Base(f.Name)
	if name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	n, err := io.Copy(part, io.LimitReader(f.Body, c.cfg.MaxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if n > c.cfg.MaxBytes {
		return nil, "", ErrTooLarge
	}

	fields := map[string]string{"public_id": uuid.NewString()}
	if c.cfg.UploadPreset != "" {
		fields["upload_preset"] = c.cfg.UploadPreset
	}
	if c.cfg.APIKey != "" {
		fields["api_key"] = c.cfg.APIKey
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// Noop is used when no upload URL is configured.
type Noop struct{}

func (Noop) Upload(context.Context, File) (string, error) { return "", ErrDisabled }
func (Noop) Close() error                                 { return nil }

// New returns a Client for a configured upload URL and Noop otherwise.
func New(cfg Config) (Uploader, error) {
	if cfg.UploadURL == "" {
		return Noop{}, nil
	}
	return NewDefaultClient(cfg)
}

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/assets. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
