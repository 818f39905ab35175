// Package essentials is the typed HTTP client for the remote civic-data
// backend. The backend computes ZIP results asynchronously: a 202 with
// Retry-After means the cache is still warming and the caller should
// poll again.
package essentials

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"civic/config"
	"civic/internal/logger"
	. "civic/internal/models"
)

type Client struct {
	http    *http.Client
	baseURL string
	log     logger.Logger
}

func New(config config.Config) (*Client, error) {
	// Cookie jar carries the backend's session cookie across polls.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		http: &http.Client{
			Timeout: config.BackendTimeout,
			Jar:     jar,
		},
		baseURL: config.BackendBaseURL,
		log:     logger.New("essentials"),
	}, nil
}

// ZipResult is the outcome of one ZIP poll attempt.
type ZipResult struct {
	Data       []Politician
	Status     DataStatus
	Warming    bool
	RetryAfter time.Duration
}

const defaultRetryAfter = 3 * time.Second

// FetchByZip performs a single poll against the per-ZIP resource. The
// attempt counter and timestamp query params bust intermediary caches
// so the freshness signal is re-evaluated on every attempt.
func (c *Client) FetchByZip(ctx context.Context, zip string, attempt int) (ZipResult, error) {
	url := fmt.Sprintf("%s/essentials/politicians/%s?a=%d&t=%d",
		c.baseURL, zip, attempt, time.Now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ZipResult{}, err
	}
	req.Header.Set("Cache-Control", "no-store")

	res, err := c.http.Do(req)
	if err != nil {
		return ZipResult{}, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusAccepted {
		retryAfter := defaultRetryAfter
		if ra, err := strconv.Atoi(res.Header.Get("Retry-After")); err == nil && ra > 0 {
			retryAfter = time.Duration(ra) * time.Second
		}
		return ZipResult{Warming: true, RetryAfter: retryAfter}, nil
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return ZipResult{}, httpStatusError(res)
	}

	var data []Politician
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return ZipResult{}, fmt.Errorf("decode politicians: %w", err)
	}

	// net/http canonicalizes header names, so the backend's mixed-case
	// X-Data-Status variants all resolve here.
	status := DataStatus(res.Header.Get("X-Data-Status"))

	return ZipResult{Data: data, Status: status}, nil
}

// Search resolves a free-form address or place query in one request.
// The backend geocodes and disambiguates; no polling.
func (c *Client) Search(ctx context.Context, query string) (SearchResult, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return SearchResult{}, err
	}

	url := c.baseURL + "/essentials/politicians/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return SearchResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return SearchResult{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return SearchResult{}, httpStatusError(res)
	}

	var result SearchResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return SearchResult{}, fmt.Errorf("decode search result: %w", err)
	}

	if result.Status == "" {
		result.Status = StatusFresh
	}

	return result, nil
}

// GetPolitician fetches one official by backend id.
func (c *Client) GetPolitician(ctx context.Context, id string) (Politician, error) {
	var pol Politician
	err := c.getJSON(ctx, "/essentials/politician/"+id, &pol)
	return pol, err
}

// FetchCandidates returns candidate-shaped records for a query.
func (c *Client) FetchCandidates(ctx context.Context, query string) ([]Politician, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/essentials/candidates/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, httpStatusError(res)
	}

	var data []Politician
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return data, nil
}

// Topics returns the full compass topic list.
func (c *Client) Topics(ctx context.Context) ([]CompassTopic, error) {
	var topics []CompassTopic
	err := c.getJSON(ctx, "/compass/topics", &topics)
	return topics, err
}

// PoliticianAnswers returns one politician's compass answers.
func (c *Client) PoliticianAnswers(ctx context.Context, id string) ([]CompassAnswer, error) {
	var answers []CompassAnswer
	err := c.getJSON(ctx, "/compass/politicians/"+id+"/answers", &answers)
	return answers, err
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return httpStatusError(res)
	}

	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func httpStatusError(res *http.Response) error {
	text := http.StatusText(res.StatusCode)
	return fmt.Errorf("%d %s", res.StatusCode, text)
}
