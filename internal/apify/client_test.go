package apify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapedash/internal/apify"
	"scrapedash/internal/config"
	"scrapedash/internal/entity"
)

const testActor = "someone~maps-scraper"

type upstream struct {
	srv   *httptest.Server
	calls atomic.Int32
}

func newUpstream(t *testing.T, h http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) client(token string) *apify.Client {
	return apify.NewClient(config.ApifyConfig{
		Token:   token,
		ActorID: testActor,
		BaseURL: u.srv.URL,
	}, nil)
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func TestClient_MissingCredentialMakesNoRequest(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{}}`)
	})
	c := u.client("")
	ctx := context.Background()

	_, err := c.LastJob(ctx)
	assert.ErrorIs(t, err, apify.ErrMissingCredential)
	_, err = c.RunJob(ctx, entity.ScrapeRequest{SearchQuery: "coffee shops", MaxResults: 20})
	assert.ErrorIs(t, err, apify.ErrMissingCredential)
	_, err = c.ListJobs(ctx)
	assert.ErrorIs(t, err, apify.ErrMissingCredential)
	_, err = c.DatasetMetadata(ctx, "ds1")
	assert.ErrorIs(t, err, apify.ErrMissingCredential)
	_, err = c.DatasetItems(ctx, "ds1", 10)
	assert.ErrorIs(t, err, apify.ErrMissingCredential)

	assert.Equal(t, int32(0), u.calls.Load())
}

func TestClient_LastJob(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acts/"+testActor+"/runs/last", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		writeJSON(w, http.StatusOK, `{"data":{"id":"run1","actId":"a1","status":"RUNNING",
			"startedAt":"2024-03-04T09:30:00Z","defaultDatasetId":"ds1"}}`)
	})

	job, err := u.client("tok").LastJob(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run1", job.ID)
	assert.Equal(t, entity.StatusRunning, job.Status)
	assert.Equal(t, "ds1", job.DefaultDatasetID)
	assert.Nil(t, job.FinishedAt)
}

func TestClient_LastJob_NotFound(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":{"type":"record-not-found","message":"Actor run was not found"}}`)
	})

	_, err := u.client("tok").LastJob(context.Background())
	assert.ErrorIs(t, err, apify.ErrNotFound)
}

func TestClient_LastJob_OtherFailure(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := u.client("tok").LastJob(context.Background())
	var reqErr *apify.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Contains(t, reqErr.Error(), "Unauthorized")
	assert.NotErrorIs(t, err, apify.ErrNotFound)
}

func TestClient_RunJob(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/acts/"+testActor+"/runs", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "coffee shops\nhotels", body["searchQuery"])
		assert.Equal(t, float64(20), body["maxResults"])

		writeJSON(w, http.StatusCreated, `{"data":{"id":"run2","status":"READY","startedAt":"2024-03-04T09:30:00Z"}}`)
	})

	job, err := u.client("tok").RunJob(context.Background(), entity.ScrapeRequest{
		SearchQuery: "coffee shops\nhotels",
		MaxResults:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, "run2", job.ID)
	assert.Equal(t, entity.StatusReady, job.Status)
}

func TestClient_RunJob_PrefersBodyMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"top-level message", `{"message":"Monthly usage hard limit exceeded"}`, "Monthly usage hard limit exceeded"},
		{"nested error", `{"error":{"type":"invalid-input","message":"Input is not valid"}}`, "Input is not valid"},
		{"no json", `<html>bad gateway</html>`, "400 Bad Request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusBadRequest, tc.body)
			})

			_, err := u.client("tok").RunJob(context.Background(), entity.ScrapeRequest{SearchQuery: "x", MaxResults: 1})
			var reqErr *apify.RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Contains(t, reqErr.Error(), tc.want)
		})
	}
}

func TestClient_ListJobs(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("desc"))
		writeJSON(w, http.StatusOK, `{"data":{"total":2,"items":[
			{"id":"b","status":"SUCCEEDED","startedAt":"2024-03-05T09:30:00Z"},
			{"id":"a","status":"TIMED-OUT","startedAt":"2024-03-04T09:30:00Z"}]}}`)
	})

	jobs, err := u.client("tok").ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "b", jobs[0].ID)
	assert.Equal(t, entity.StatusTimedOut, jobs[1].Status)
}

func TestClient_DatasetItems(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/datasets/ds1/items", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		writeJSON(w, http.StatusOK, `[{"title":"Blue Bottle","rating":4.6,"url":null},{"title":"Ritual"}]`)
	})

	items, err := u.client("tok").DatasetItems(context.Background(), "ds1", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Blue Bottle", items[0]["title"])
	assert.Equal(t, 4.6, items[0]["rating"])
	_, hasURL := items[0]["url"]
	assert.True(t, hasURL)
}

func TestClient_DatasetMetadata(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			writeJSON(w, http.StatusNotFound, `{}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"data":{"id":"ds1","itemCount":7,"schema":{"views":{"overview":{
			"transformation":{"fields":["title","rating"]},
			"display":{"properties":{"rating":{"label":"Rating"}}}}}}}}`)
	})
	c := u.client("tok")

	meta, err := c.DatasetMetadata(context.Background(), "ds1")
	require.NoError(t, err)
	assert.Equal(t, 7, meta.ItemCount)
	require.NotNil(t, meta.DisplaySchema())
	assert.Equal(t, []string{"title", "rating"}, meta.DisplaySchema().Fields)

	_, err = c.DatasetMetadata(context.Background(), "missing")
	assert.True(t, errors.Is(err, apify.ErrNotFound))
}

func TestClient_ExportURL(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {})

	got := u.client("tok").ExportURL("ds1", entity.ExportCSV)
	assert.True(t, strings.HasPrefix(got, u.srv.URL+"/datasets/ds1/items?"))
	assert.Contains(t, got, "format=csv")
	assert.Contains(t, got, "attachment=true")
	assert.Contains(t, got, "token=tok")

	noToken := u.client("").ExportURL("ds1", entity.ExportXLSX)
	assert.NotContains(t, noToken, "token=")
	assert.Contains(t, noToken, "format=xlsx")

	assert.Equal(t, int32(0), u.calls.Load())
}

func debugClient(baseURL string, buf *bytes.Buffer) *apify.Client {
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return apify.NewClient(config.ApifyConfig{
		Token:   "secret-token",
		ActorID: testActor,
		BaseURL: baseURL,
	}, log)
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		out = append(out, e)
	}
	return out
}

func TestClient_LogsRequestID(t *testing.T) {
	var seen atomic.Value
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("X-Request-Id"))
		writeJSON(w, http.StatusOK, `{"data":{"total":0,"items":[]}}`)
	})

	var buf bytes.Buffer
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "inbound-42")
	_, err := debugClient(u.srv.URL, &buf).ListJobs(ctx)
	require.NoError(t, err)

	assert.Equal(t, "inbound-42", seen.Load())
	entries := logEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "apify request", entries[0]["msg"])
	assert.Equal(t, "inbound-42", entries[0]["req_id"])
	assert.NotContains(t, buf.String(), "secret-token")
}

func TestClient_LogsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	var buf bytes.Buffer
	_, err := debugClient(baseURL, &buf).LastJob(context.Background())
	require.Error(t, err)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "apify request failed", entries[0]["msg"])
	assert.NotEmpty(t, entries[0]["req_id"])
	assert.Equal(t, "get last run", entries[0]["op"])
}
