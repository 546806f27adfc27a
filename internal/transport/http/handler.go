package httptransport

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"scrapedash/internal/entity"
	"scrapedash/internal/service"
)

const maxPreviewLimit = 1000

// dashboardExports are the formats offered as download buttons next to a run.
var dashboardExports = []entity.ExportFormat{entity.ExportCSV, entity.ExportJSON}

type Handler struct {
	jobSvc *service.JobService
}

func NewHandler(jobSvc *service.JobService) *Handler {
	return &Handler{jobSvc: jobSvc}
}

type runJobDTO struct {
	SearchQuery string `json:"searchQuery"`
	MaxResults  int    `json:"maxResults,omitempty"` // 1..500, 0 => 20
}

type exportLink struct {
	Format   entity.ExportFormat `json:"format"`
	URL      string              `json:"url"`
	Filename string              `json:"filename"`
}

type runResp struct {
	ID            string               `json:"id"`
	ActorID       string               `json:"actId"`
	Name          string               `json:"name"`
	Status        entity.JobStatus     `json:"status"`
	DisplayStatus entity.DisplayStatus `json:"displayStatus"`
	StartedAt     string               `json:"startedAt"`
	FinishedAt    *string              `json:"finishedAt,omitempty"`
	DatasetID     string               `json:"datasetId"`
	Exports       []exportLink         `json:"exports,omitempty"`
}

type runsResp struct {
	Count int       `json:"count"`
	Items []runResp `json:"items"`
}

type activeResp struct {
	Active *runResp `json:"active"`
}

func (h *Handler) toRunResp(j entity.Job) runResp {
	resp := runResp{
		ID:            j.ID,
		ActorID:       j.ActorID,
		Name:          j.DisplayName(),
		Status:        j.Status,
		DisplayStatus: j.Status.Display(),
		StartedAt:     j.StartedAt.Format(time.RFC3339),
		DatasetID:     j.DefaultDatasetID,
	}
	if j.FinishedAt != nil {
		f := j.FinishedAt.Format(time.RFC3339)
		resp.FinishedAt = &f
	}
	if j.DefaultDatasetID != "" {
		for _, f := range dashboardExports {
			resp.Exports = append(resp.Exports, exportLink{
				Format:   f,
				URL:      exportPath(j.DefaultDatasetID, f),
				Filename: j.DownloadFilename(f),
			})
		}
	}
	return resp
}

// exportPath points at this API's export route so the platform token only
// ever appears in the redirect issued by ExportDataset.
func exportPath(datasetID string, format entity.ExportFormat) string {
	return "/datasets/" + url.PathEscape(datasetID) + "/export?format=" + url.QueryEscape(string(format))
}

// ListRuns godoc
// @Summary List actor runs
// @Description Newest first. Empty when no platform token is configured.
// @Tags runs
// @Produce json
// @Success 200 {object} runsResp
// @Failure 502 {object} apiError
// @Router /runs [get]
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	res := h.jobSvc.ListJobs(r.Context())
	if res.Kind == service.KindFailure {
		writeFailure(w, res.Err)
		return
	}

	resp := runsResp{Count: len(res.Value), Items: make([]runResp, 0, len(res.Value))}
	for _, j := range res.Value {
		resp.Items = append(resp.Items, h.toRunResp(j))
	}
	writeJSON(w, http.StatusOK, resp)
}

// LastRun godoc
// @Summary Get the most recent run
// @Tags runs
// @Produce json
// @Success 200 {object} runResp
// @Failure 404 {object} apiError
// @Failure 502 {object} apiError
// @Router /runs/last [get]
func (h *Handler) LastRun(w http.ResponseWriter, r *http.Request) {
	res := h.jobSvc.LastJob(r.Context())
	switch res.Kind {
	case service.KindFailure:
		writeFailure(w, res.Err)
	case service.KindAbsent:
		writeErr(w, http.StatusNotFound, "no runs yet")
	default:
		writeJSON(w, http.StatusOK, h.toRunResp(res.Value))
	}
}

// ActiveRun godoc
// @Summary Get the last run if it is still running
// @Tags runs
// @Produce json
// @Success 200 {object} activeResp
// @Router /runs/active [get]
func (h *Handler) ActiveRun(w http.ResponseWriter, r *http.Request) {
	res := h.jobSvc.ActiveRun(r.Context())
	var resp activeResp
	if res.Kind == service.KindValue {
		run := h.toRunResp(res.Value)
		resp.Active = &run
	}
	writeJSON(w, http.StatusOK, resp)
}

// StartRun godoc
// @Summary Start a scrape
// @Description searchQuery holds one query per line.
// @Tags runs
// @Accept json
// @Produce json
// @Param request body runJobDTO true "queries and result cap (1..500, default 20)"
// @Success 201 {object} runResp
// @Failure 400 {object} apiError
// @Failure 502 {object} apiError
// @Failure 503 {object} apiError
// @Router /runs [post]
func (h *Handler) StartRun(w http.ResponseWriter, r *http.Request) {
	var dto runJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	res := h.jobSvc.RunJob(r.Context(), entity.ScrapeRequest{
		SearchQuery: dto.SearchQuery,
		MaxResults:  dto.MaxResults,
	})
	if res.Kind == service.KindFailure {
		writeFailure(w, res.Err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toRunResp(res.Value))
}

// GetDataset godoc
// @Summary Get dataset metadata
// @Tags datasets
// @Produce json
// @Param id path string true "dataset id"
// @Success 200 {object} entity.DatasetMetadata
// @Failure 404 {object} apiError
// @Router /datasets/{id} [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	res := h.jobSvc.DatasetMetadata(r.Context(), chi.URLParam(r, "id"))
	if res.Kind != service.KindValue {
		writeErr(w, http.StatusNotFound, "dataset metadata unavailable")
		return
	}
	writeJSON(w, http.StatusOK, res.Value)
}

// PreviewDataset godoc
// @Summary Preview the first records of a dataset as a table
// @Tags datasets
// @Produce json
// @Param id path string true "dataset id"
// @Param limit query int false "number of records (default 10)"
// @Success 200 {object} service.Preview
// @Failure 400 {object} apiError
// @Failure 502 {object} apiError
// @Router /datasets/{id}/preview [get]
func (h *Handler) PreviewDataset(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxPreviewLimit {
			writeErr(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	res := h.jobSvc.Preview(r.Context(), chi.URLParam(r, "id"), limit)
	if res.Kind == service.KindFailure {
		writeFailure(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, res.Value)
}

// ExportDataset godoc
// @Summary Redirect to a dataset download
// @Tags datasets
// @Param id path string true "dataset id"
// @Param format query string false "json, csv, xlsx or xml (default json)"
// @Success 302
// @Failure 400 {object} apiError
// @Router /datasets/{id}/export [get]
func (h *Handler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	format := entity.ExportJSON
	if s := r.URL.Query().Get("format"); s != "" {
		f, err := entity.ParseExportFormat(s)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	http.Redirect(w, r, h.jobSvc.ExportURL(chi.URLParam(r, "id"), format), http.StatusFound)
}
