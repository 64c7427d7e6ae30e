package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Lexipic/models"
	"Lexipic/pkg/config"
)

const imageSize = 500

// ArasaacService queries the ARASAAC pictogram search API.
type ArasaacService struct {
	baseURL   string
	imageBase string
	client    *http.Client
}

func NewArasaacService() *ArasaacService {
	return &ArasaacService{
		baseURL:   config.ArasaacBaseURL,
		imageBase: config.ArasaacImageURL,
		client: &http.Client{
			Timeout: time.Duration(config.SearchTimeout) * time.Second,
		},
	}
}

// NewArasaacServiceWith builds a client against a specific endpoint. Used by
// tests to point at a local server.
func NewArasaacServiceWith(baseURL, imageBase string, client *http.Client) *ArasaacService {
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}
	return &ArasaacService{baseURL: baseURL, imageBase: imageBase, client: client}
}

// rawPictogram tolerates both id field names the upstream schema has used.
// Keywords stay raw so a missing or oddly shaped field never fails the whole
// response.
type rawPictogram struct {
	MongoID  *int            `json:"_id"`
	PlainID  *int            `json:"id"`
	Keywords json.RawMessage `json:"keywords"`
}

func (r *rawPictogram) id() (int, bool) {
	if r.MongoID != nil {
		return *r.MongoID, true
	}
	if r.PlainID != nil {
		return *r.PlainID, true
	}
	return 0, false
}

func (r *rawPictogram) keywords() []string {
	var kws []struct {
		Keyword string `json:"keyword"`
	}
	if len(r.Keywords) == 0 || json.Unmarshal(r.Keywords, &kws) != nil {
		return []string{}
	}
	out := make([]string, 0, len(kws))
	for _, k := range kws {
		out = append(out, k.Keyword)
	}
	return out
}

// Search returns the pictograms ARASAAC knows for one query. Empty or
// whitespace queries return an empty result without a network call. A non-2xx
// upstream status is a recoverable per-query failure: it is logged and yields
// an empty result with a nil error. Transport and decode failures are
// returned to the caller.
func (s *ArasaacService) Search(ctx context.Context, language, query string) ([]models.Pictogram, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []models.Pictogram{}, nil
	}

	apiURL := fmt.Sprintf("%s/pictograms/%s/search/%s",
		s.baseURL, url.PathEscape(language), url.PathEscape(trimmed))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return []models.Pictogram{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return []models.Pictogram{}, fmt.Errorf("arasaac request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[arasaac] status %d for query %q", resp.StatusCode, trimmed)
		return []models.Pictogram{}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return []models.Pictogram{}, fmt.Errorf("arasaac read body: %w", err)
	}

	var raw []rawPictogram
	if err := json.Unmarshal(body, &raw); err != nil {
		return []models.Pictogram{}, fmt.Errorf("arasaac unmarshal: %w", err)
	}

	result := make([]models.Pictogram, 0, len(raw))
	for _, r := range raw {
		id, ok := r.id()
		if !ok {
			// malformed upstream record, skip and keep going
			log.Printf("[arasaac] record without id for query %q", trimmed)
			continue
		}
		result = append(result, models.Pictogram{
			ID:         id,
			SearchText: trimmed,
			Language:   language,
			Keywords:   r.keywords(),
			ImageURL:   fmt.Sprintf("%s/%d/%d_%d.png", s.imageBase, id, id, imageSize),
		})
	}
	return result, nil
}
