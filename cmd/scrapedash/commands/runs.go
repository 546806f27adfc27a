package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"scrapedash/internal/entity"
	"scrapedash/internal/service"
	"scrapedash/internal/watch"
)

var (
	badgeCompleted = color.New(color.FgGreen).SprintFunc()
	badgeRunning   = color.New(color.FgCyan).SprintFunc()
	badgePending   = color.New(color.FgYellow).SprintFunc()
	badgeFailed    = color.New(color.FgRed).SprintFunc()
)

func statusBadge(s entity.JobStatus) string {
	label := string(s.Display())
	switch s.Display() {
	case entity.DisplayCompleted:
		return badgeCompleted(label)
	case entity.DisplayRunning:
		return badgeRunning(label)
	case entity.DisplayFailed:
		return badgeFailed(label)
	default:
		return badgePending(label)
	}
}

// RunsListAction prints every run of the actor, newest first.
func RunsListAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := newCLIContext(cmd.String("env"))
	if err != nil {
		return err
	}

	res := appCtx.Jobs.ListJobs(ctx)
	if res.Kind == service.KindFailure {
		return fmt.Errorf("list runs: %w", res.Err)
	}
	if len(res.Value) == 0 {
		fmt.Println("No runs yet.")
		return nil
	}
	return writeRunsTable(os.Stdout, res.Value, time.Now())
}

func writeRunsTable(w io.Writer, jobs []entity.Job, now time.Time) error {
	table := tablewriter.NewWriter(w)
	table.Header("Run", "Status", "Started", "Finished", "Dataset")

	for _, j := range jobs {
		finished := "-"
		if j.FinishedAt != nil {
			finished = humanize.RelTime(*j.FinishedAt, now, "ago", "from now")
		}
		dataset := j.DefaultDatasetID
		if dataset == "" {
			dataset = "-"
		}
		if err := table.Append([]string{
			j.DisplayName(),
			statusBadge(j.Status),
			humanize.RelTime(j.StartedAt, now, "ago", "from now"),
			finished,
			dataset,
		}); err != nil {
			return fmt.Errorf("append run %s: %w", j.ID, err)
		}
	}
	return table.Render()
}

// RunsLastAction prints the most recent run and its export links.
func RunsLastAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := newCLIContext(cmd.String("env"))
	if err != nil {
		return err
	}

	res := appCtx.Jobs.LastJob(ctx)
	switch res.Kind {
	case service.KindFailure:
		return fmt.Errorf("last run: %w", res.Err)
	case service.KindAbsent:
		fmt.Println("No runs yet.")
		return nil
	}

	printRun(os.Stdout, appCtx.Jobs, res.Value)
	return nil
}

func printRun(w io.Writer, jobs *service.JobService, j entity.Job) {
	fmt.Fprintf(w, "%s  %s\n", j.DisplayName(), statusBadge(j.Status))
	fmt.Fprintf(w, "  id:      %s\n", j.ID)
	fmt.Fprintf(w, "  started: %s (%s)\n", j.StartedAt.Format(time.RFC3339), humanize.Time(j.StartedAt))
	if j.FinishedAt != nil {
		fmt.Fprintf(w, "  took:    %s\n", j.FinishedAt.Sub(j.StartedAt).Round(time.Second))
	}
	if j.DefaultDatasetID == "" {
		return
	}
	fmt.Fprintf(w, "  dataset: %s\n", j.DefaultDatasetID)
	for _, f := range []entity.ExportFormat{entity.ExportCSV, entity.ExportJSON} {
		fmt.Fprintf(w, "  %-4s     %s\n", f, jobs.ExportURL(j.DefaultDatasetID, f))
	}
}

// RunsWatchAction follows the last run until it finishes.
func RunsWatchAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := newCLIContext(cmd.String("env"))
	if err != nil {
		return err
	}
	return watchRun(ctx, appCtx, cmd.String("run"))
}

func watchRun(ctx context.Context, appCtx *AppContext, runID string) error {
	job, err := appCtx.Watcher().Run(ctx, runID, func(j entity.Job) {
		fmt.Printf("%s  %s  %s\n", time.Now().Format("15:04:05"), j.DisplayName(), statusBadge(j.Status))
	})
	switch {
	case errors.Is(err, watch.ErrNoRun):
		fmt.Println("No runs yet.")
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	case err != nil:
		return err
	}

	fmt.Println()
	printRun(os.Stdout, appCtx.Jobs, job)
	if job.Status != entity.StatusSucceeded {
		return cli.Exit(fmt.Sprintf("run %s ended with status %s", job.ID, job.Status), 1)
	}
	return nil
}
