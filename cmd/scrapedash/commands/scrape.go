package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"scrapedash/internal/entity"
	"scrapedash/internal/service"
)

// ScrapeAction starts a run for the given queries and optionally waits for it.
func ScrapeAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := newCLIContext(cmd.String("env"))
	if err != nil {
		return err
	}

	req := scrapeRequest(cmd)

	if active := appCtx.Jobs.ActiveRun(ctx); active.Kind == service.KindValue {
		fmt.Fprintf(os.Stderr, "note: %s is still running\n", active.Value.DisplayName())
	}

	res := appCtx.Jobs.RunJob(ctx, req)
	if res.Kind == service.KindFailure {
		return fmt.Errorf("start run: %w", res.Err)
	}
	job := res.Value
	fmt.Printf("Started %s (%s) for %d queries\n", job.DisplayName(), job.ID, len(req.Queries()))

	if !cmd.Bool("wait") {
		return nil
	}
	return watchRun(ctx, appCtx, job.ID)
}

func scrapeRequest(cmd *cli.Command) entity.ScrapeRequest {
	return entity.ScrapeRequest{
		SearchQuery: joinQueries(cmd.StringSlice("query")),
		MaxResults:  cmd.Int("max-results"),
	}
}

// joinQueries accepts both repeated flags and flags holding several lines.
func joinQueries(values []string) string {
	return strings.Join(values, "\n")
}
