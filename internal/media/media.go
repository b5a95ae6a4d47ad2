// Package media talks to the remote image host. The host itself is an
// external collaborator: we only keep the contract that a newly supplied
// image replaces the stored URL and the previous remote asset gets purged.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/d60-Lab/social-feed/config"
)

type Storage interface {
	// Upload pushes image payload (base64 data URI) and returns the public URL.
	Upload(ctx context.Context, data string) (string, error)
	// Destroy removes the remote asset behind a previously returned URL.
	Destroy(ctx context.Context, assetURL string) error
}

// New returns the HTTP-backed storage, or a no-op one when no host is configured.
func New(cfg *config.Config) Storage {
	if cfg.Media.BaseURL == "" {
		return Noop{}
	}
	return &httpStorage{
		baseURL: strings.TrimRight(cfg.Media.BaseURL, "/"),
		apiKey:  cfg.Media.APIKey,
		folder:  cfg.Media.Folder,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(cfg.Media.RPS), 1),
	}
}

type httpStorage struct {
	baseURL string
	apiKey  string
	folder  string
	client  *http.Client
	limiter *rate.Limiter
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

func (s *httpStorage) Upload(ctx context.Context, data string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	body, err := json.Marshal(map[string]string{"file": data, "folder": s.folder})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/upload", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media upload: unexpected status %d", resp.StatusCode)
	}
	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.SecureURL, nil
}

func (s *httpStorage) Destroy(ctx context.Context, assetURL string) error {
	id := PublicID(assetURL)
	if id == "" {
		return nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/assets/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("media destroy: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// PublicID extracts the asset id from a stored URL:
// ".../v1712997552/zmxorcxexpdbh8r0bkjb.png" -> "zmxorcxexpdbh8r0bkjb".
func PublicID(assetURL string) string {
	if assetURL == "" {
		return ""
	}
	last := assetURL[strings.LastIndex(assetURL, "/")+1:]
	if i := strings.IndexByte(last, '.'); i > 0 {
		return last[:i]
	}
	return last
}

// Noop keeps the pipeline working without a configured host (dev / tests).
type Noop struct{}

func (Noop) Upload(_ context.Context, data string) (string, error) { return data, nil }
func (Noop) Destroy(context.Context, string) error                 { return nil }
