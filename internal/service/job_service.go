package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"scrapedash/internal/apify"
	"scrapedash/internal/entity"
	"scrapedash/internal/render"
)

// JobClient is the platform port (implementation: apify.Client).
type JobClient interface {
	LastJob(ctx context.Context) (*entity.Job, error)
	RunJob(ctx context.Context, in entity.ScrapeRequest) (*entity.Job, error)
	ListJobs(ctx context.Context) ([]entity.Job, error)
	DatasetMetadata(ctx context.Context, datasetID string) (*entity.DatasetMetadata, error)
	DatasetItems(ctx context.Context, datasetID string, limit int) ([]entity.Record, error)
	ExportURL(datasetID string, format entity.ExportFormat) string
}

var ErrInvalidRequest = errors.New("invalid request")

const DefaultPreviewLimit = 10

// JobService applies the dashboard's failure policy on top of the client:
// starting a run fails loudly, while lookups that only feed listings and
// previews degrade to empty or absent results.
type JobService struct {
	client       JobClient
	log          *slog.Logger
	previewLimit int
}

func NewJobService(client JobClient, log *slog.Logger, previewLimit int) *JobService {
	if log == nil {
		log = slog.Default()
	}
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewLimit
	}
	return &JobService{client: client, log: log, previewLimit: previewLimit}
}

// LastJob is absent when no token is configured or the actor has never run.
// Any other failure, including other 4xx responses, is reported.
func (s *JobService) LastJob(ctx context.Context) Result[entity.Job] {
	job, err := s.client.LastJob(ctx)
	switch {
	case errors.Is(err, apify.ErrMissingCredential):
		s.log.WarnContext(ctx, "apify token not configured, skipping last run lookup")
		return Absent[entity.Job]()
	case errors.Is(err, apify.ErrNotFound):
		return Absent[entity.Job]()
	case err != nil:
		return Failure[entity.Job](err)
	}
	return Value(*job)
}

// RunJob validates the request and starts a run.
func (s *JobService) RunJob(ctx context.Context, req entity.ScrapeRequest) Result[entity.Job] {
	if err := req.Validate(); err != nil {
		return Failure[entity.Job](fmt.Errorf("%w: %w", ErrInvalidRequest, err))
	}

	job, err := s.client.RunJob(ctx, req)
	if err != nil {
		return Failure[entity.Job](err)
	}

	s.log.InfoContext(ctx, "run started",
		"run_id", job.ID,
		"queries", len(req.Queries()),
		"max_results", req.MaxResults,
	)
	return Value(*job)
}

// ListJobs returns runs newest first. Without a token the list is empty.
func (s *JobService) ListJobs(ctx context.Context) Result[[]entity.Job] {
	jobs, err := s.client.ListJobs(ctx)
	switch {
	case errors.Is(err, apify.ErrMissingCredential):
		s.log.WarnContext(ctx, "apify token not configured, returning no runs")
		return Value([]entity.Job{})
	case err != nil:
		return Failure[[]entity.Job](err)
	}
	if jobs == nil {
		jobs = []entity.Job{}
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].StartedAt.After(jobs[j].StartedAt)
	})
	return Value(jobs)
}

// ActiveRun reports the last run only while it is running. Lookup failures
// are logged and treated as "nothing running".
func (s *JobService) ActiveRun(ctx context.Context) Result[entity.Job] {
	res := s.LastJob(ctx)
	if res.Kind == KindFailure {
		s.log.WarnContext(ctx, "check last run status", "error", res.Err)
		return Absent[entity.Job]()
	}
	if res.Kind == KindValue && res.Value.Status == entity.StatusRunning {
		return res
	}
	return Absent[entity.Job]()
}

// DatasetMetadata is best effort: every failure becomes absent.
func (s *JobService) DatasetMetadata(ctx context.Context, datasetID string) Result[entity.DatasetMetadata] {
	meta, err := s.client.DatasetMetadata(ctx, datasetID)
	if err != nil {
		if !errors.Is(err, apify.ErrMissingCredential) && !errors.Is(err, apify.ErrNotFound) {
			s.log.WarnContext(ctx, "fetch dataset metadata", "dataset_id", datasetID, "error", err)
		}
		return Absent[entity.DatasetMetadata]()
	}
	return Value(*meta)
}

// DatasetItems returns up to limit records; without a token the list is empty.
func (s *JobService) DatasetItems(ctx context.Context, datasetID string, limit int) Result[[]entity.Record] {
	if limit <= 0 {
		limit = s.previewLimit
	}
	items, err := s.client.DatasetItems(ctx, datasetID, limit)
	switch {
	case errors.Is(err, apify.ErrMissingCredential):
		return Value([]entity.Record{})
	case err != nil:
		return Failure[[]entity.Record](err)
	}
	if items == nil {
		items = []entity.Record{}
	}
	return Value(items)
}

// ExportURL never fails and makes no request.
func (s *JobService) ExportURL(datasetID string, format entity.ExportFormat) string {
	return s.client.ExportURL(datasetID, format)
}

// Preview is a rendered sample of a dataset.
type Preview struct {
	DatasetID string                  `json:"datasetId"`
	Metadata  *entity.DatasetMetadata `json:"metadata"`
	Table     render.Table            `json:"table"`
	Shown     int                     `json:"shown"`
}

// Preview fetches items and metadata concurrently and renders once both are in.
// A failed item fetch fails the whole preview; metadata is optional.
func (s *JobService) Preview(ctx context.Context, datasetID string, limit int) Result[Preview] {
	var (
		items Result[[]entity.Record]
		meta  Result[entity.DatasetMetadata]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items = s.DatasetItems(gctx, datasetID, limit)
		return items.Err
	})
	g.Go(func() error {
		meta = s.DatasetMetadata(gctx, datasetID)
		return meta.Err
	})
	if err := g.Wait(); err != nil {
		return Failure[Preview](err)
	}

	p := Preview{DatasetID: datasetID, Shown: len(items.Value)}
	if meta.Kind == KindValue {
		p.Metadata = &meta.Value
	}
	p.Table = render.Project(items.Value, p.Metadata.DisplaySchema())
	return Value(p)
}
