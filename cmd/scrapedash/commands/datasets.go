package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"scrapedash/internal/entity"
	"scrapedash/internal/render"
	"scrapedash/internal/service"
)

const msgNoDataset = "no --dataset given and no last run to take it from"

// DatasetsPreviewAction renders the first records of a dataset as a table.
func DatasetsPreviewAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := newCLIContext(cmd.String("env"))
	if err != nil {
		return err
	}

	datasetID, err := resolveDatasetID(ctx, appCtx.Jobs, cmd.String("dataset"))
	if err != nil {
		return err
	}

	res := appCtx.Jobs.Preview(ctx, datasetID, cmd.Int("limit"))
	if res.Kind == service.KindFailure {
		return fmt.Errorf("preview dataset %s: %w", datasetID, res.Err)
	}
	return writePreview(os.Stdout, res.Value)
}

// resolveDatasetID falls back to the last run's dataset when none is given.
func resolveDatasetID(ctx context.Context, jobs *service.JobService, datasetID string) (string, error) {
	if datasetID != "" {
		return datasetID, nil
	}
	last := jobs.LastJob(ctx)
	if last.Kind != service.KindValue || last.Value.DefaultDatasetID == "" {
		return "", cli.Exit(msgNoDataset, 1)
	}
	return last.Value.DefaultDatasetID, nil
}

func writePreview(w io.Writer, p service.Preview) error {
	title := p.Table.Title
	if title == "" {
		title = "Dataset " + p.DatasetID
	}
	fmt.Fprintln(w, title)

	if p.Metadata != nil && p.Metadata.ItemCount > 0 {
		fmt.Fprintf(w, "Showing %d of %s records\n", p.Shown, humanize.Comma(int64(p.Metadata.ItemCount)))
	} else {
		fmt.Fprintf(w, "Showing %d records\n", p.Shown)
	}
	if p.Shown == 0 {
		fmt.Fprintln(w, "No data yet.")
		return nil
	}
	return render.WriteText(w, p.Table)
}

// DatasetsExportURLAction prints a download link for a dataset.
func DatasetsExportURLAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := newCLIContext(cmd.String("env"))
	if err != nil {
		return err
	}

	format, err := entity.ParseExportFormat(cmd.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	fmt.Println(appCtx.Jobs.ExportURL(cmd.String("dataset"), format))
	return nil
}
