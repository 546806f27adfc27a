package apify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"scrapedash/internal/config"
	"scrapedash/internal/entity"
)

const DefaultItemsLimit = 10

// Client talks to the actor platform's REST API. It holds no per-call state
// and never caches responses.
type Client struct {
	rc      *resty.Client
	token   string
	actorID string
	baseURL string
	log     *slog.Logger
}

func NewClient(cfg config.ApifyConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	actorID := cfg.ActorID
	if actorID == "" {
		actorID = config.DefaultActorID
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}

	return &Client{
		rc:      rc,
		token:   cfg.Token,
		actorID: actorID,
		baseURL: baseURL,
		log:     log,
	}
}

// HasCredential reports whether a token is configured.
func (c *Client) HasCredential() bool { return c.token != "" }

// ActorID is the actor every run operation targets.
func (c *Client) ActorID() string { return c.actorID }

type envelope[T any] struct {
	Data T `json:"data"`
}

type runList struct {
	Total int          `json:"total"`
	Items []entity.Job `json:"items"`
}

// LastJob fetches the most recently started run. ErrNotFound means the actor has no runs.
func (c *Client) LastJob(ctx context.Context) (*entity.Job, error) {
	const op = "get last run"
	if !c.HasCredential() {
		return nil, ErrMissingCredential
	}

	var out envelope[*entity.Job]
	req := c.rc.R().SetPathParam("actorId", c.actorID)
	if err := c.send(ctx, op, req, http.MethodGet, "/acts/{actorId}/runs/last", &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, ErrNotFound
	}
	return out.Data, nil
}

// RunJob starts a new actor run.
func (c *Client) RunJob(ctx context.Context, in entity.ScrapeRequest) (*entity.Job, error) {
	const op = "start run"
	if !c.HasCredential() {
		return nil, ErrMissingCredential
	}

	var out envelope[*entity.Job]
	req := c.rc.R().
		SetPathParam("actorId", c.actorID).
		SetHeader("Content-Type", "application/json").
		SetBody(in)
	if err := c.send(ctx, op, req, http.MethodPost, "/acts/{actorId}/runs", &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, fmt.Errorf("%s: empty response", op)
	}
	return out.Data, nil
}

// ListJobs returns the actor's runs, newest first.
func (c *Client) ListJobs(ctx context.Context) ([]entity.Job, error) {
	const op = "list runs"
	if !c.HasCredential() {
		return nil, ErrMissingCredential
	}

	var out envelope[runList]
	req := c.rc.R().
		SetPathParam("actorId", c.actorID).
		SetQueryParam("desc", "1")
	if err := c.send(ctx, op, req, http.MethodGet, "/acts/{actorId}/runs", &out); err != nil {
		return nil, err
	}
	return out.Data.Items, nil
}

// DatasetMetadata fetches a dataset's description, including its display schema if any.
func (c *Client) DatasetMetadata(ctx context.Context, datasetID string) (*entity.DatasetMetadata, error) {
	const op = "get dataset"
	if !c.HasCredential() {
		return nil, ErrMissingCredential
	}

	var out envelope[*entity.DatasetMetadata]
	req := c.rc.R().SetPathParam("datasetId", datasetID)
	if err := c.send(ctx, op, req, http.MethodGet, "/datasets/{datasetId}", &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, ErrNotFound
	}
	return out.Data, nil
}

// DatasetItems fetches up to limit records. The endpoint returns a bare JSON array.
func (c *Client) DatasetItems(ctx context.Context, datasetID string, limit int) ([]entity.Record, error) {
	const op = "get dataset items"
	if !c.HasCredential() {
		return nil, ErrMissingCredential
	}
	if limit <= 0 {
		limit = DefaultItemsLimit
	}

	var items []entity.Record
	req := c.rc.R().
		SetPathParam("datasetId", datasetID).
		SetQueryParams(map[string]string{
			"limit":  strconv.Itoa(limit),
			"format": "json",
		})
	if err := c.send(ctx, op, req, http.MethodGet, "/datasets/{datasetId}/items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ExportURL builds a download link for the whole dataset. No request is made.
func (c *Client) ExportURL(datasetID string, format entity.ExportFormat) string {
	q := url.Values{}
	if c.token != "" {
		q.Set("token", c.token)
	}
	q.Set("format", string(format))
	q.Set("attachment", "true")
	return c.baseURL + "/datasets/" + url.PathEscape(datasetID) + "/items?" + q.Encode()
}

func (c *Client) send(ctx context.Context, op string, r *resty.Request, method, path string, out any) error {
	reqID := requestID(ctx)
	start := time.Now()
	resp, err := r.SetContext(ctx).SetHeader("X-Request-Id", reqID).Execute(method, path)
	if err != nil {
		c.log.DebugContext(ctx, "apify request failed",
			"op", op,
			"method", method,
			"path", path,
			"req_id", reqID,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.log.DebugContext(ctx, "apify request",
		"op", op,
		"method", method,
		"path", path,
		"req_id", reqID,
		"status", resp.StatusCode(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if !resp.IsSuccess() {
		return newRequestError(op, resp.StatusCode(), resp.Status(), resp.Body())
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// errorBody covers both {"message": "..."} and the platform's {"error": {"type", "message"}}.
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func newRequestError(op string, code int, status string, body []byte) *RequestError {
	if status == "" {
		status = strconv.Itoa(code) + " " + http.StatusText(code)
	}
	e := &RequestError{Op: op, StatusCode: code, Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return e
	}
	e.Message = eb.Message
	if e.Message == "" && len(eb.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(eb.Error, &nested) == nil {
			e.Message = nested.Message
		} else {
			var s string
			if json.Unmarshal(eb.Error, &s) == nil {
				e.Message = s
			}
		}
	}
	return e
}

// requestID reuses the inbound request id when the call originates from the HTTP API.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
