// Package client is a Go consumer of the StudySpots HTTP API. It maps
// response codes back onto apperror kinds and never retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/spatial"
)

// envelope mirrors the server's {code, message, data} response body
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to one API base URL, e.g. http://localhost:8080/api/v1
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a bearer credential on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SpotQuery holds the GET /spots parameters. Zero values are omitted.
type SpotQuery struct {
	Page     int
	Limit    int
	Search   string
	Query    string // free text for the intent classifier
	Category string
	SortBy   string
	Origin   *spatial.Coordinates
}

func (q SpotQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Query != "" {
		v.Set("q", q.Query)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Origin != nil {
		v.Set("userLat", strconv.FormatFloat(q.Origin.Latitude, 'f', -1, 64))
		v.Set("userLon", strconv.FormatFloat(q.Origin.Longitude, 'f', -1, 64))
	}
	return v
}

// ListSpots fetches one page of ranked spots
func (c *Client) ListSpots(ctx context.Context, q SpotQuery) (*models.SpotsResponse, error) {
	var out models.SpotsResponse
	if err := c.do(ctx, http.MethodGet, "/spots?"+q.values().Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSpot fetches a single spot
func (c *Client) GetSpot(ctx context.Context, key string) (*models.StudySpot, error) {
	var out models.StudySpot
	if err := c.do(ctx, http.MethodGet, "/spots/"+url.PathEscape(key), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReviews fetches a spot's reviews, newest first
func (c *Client) GetReviews(ctx context.Context, key string) ([]models.Review, error) {
	var out models.ReviewsResponse
	if err := c.do(ctx, http.MethodGet, "/spots/"+url.PathEscape(key)+"/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

// CreateReview submits a review
func (c *Client) CreateReview(ctx context.Context, key string, input models.ReviewInput) (*models.Review, error) {
	var out models.Review
	if err := c.do(ctx, http.MethodPost, "/spots/"+url.PathEscape(key)+"/reviews", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHistory fetches the caller's visit history
func (c *Client) GetHistory(ctx context.Context) (*models.HistoryResponse, error) {
	var out models.HistoryResponse
	if err := c.do(ctx, http.MethodGet, "/user/history", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddHistory records a visit to key
func (c *Client) AddHistory(ctx context.Context, key string) ([]string, error) {
	var out models.HistoryResponse
	if err := c.do(ctx, http.MethodPost, "/user/history", models.HistoryInput{SpotID: key}, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

// GetUserReviews fetches the caller's own reviews
func (c *Client) GetUserReviews(ctx context.Context) ([]models.Review, error) {
	var out models.ReviewsResponse
	if err := c.do(ctx, http.MethodGet, "/user/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

// DeleteReview deletes one of the caller's reviews on the server
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/reviews/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, apperror.ErrTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %v: %w", method, path, err, apperror.ErrTransient)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if kind := apperror.FromStatus(resp.StatusCode); kind != nil {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		return fmt.Errorf("%s %s: %s: %w", method, path, msg, kind)
	}
	if decodeErr != nil {
		return fmt.Errorf("%s %s: decode response: %v: %w", method, path, decodeErr, apperror.ErrTransient)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %v: %w", method, path, err, apperror.ErrTransient)
	}
	return nil
}
