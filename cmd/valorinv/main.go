package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/config"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/pipeline"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/storage"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/store"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "valorinv",
		Usage: "Daily inventory value pipeline: workbook history, trend chart and web portal",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the full daily update against the workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "source-dir",
						Usage:   "Directory containing the daily extract files",
						EnvVars: []string{"SOURCE_DIR"},
					},
					&cli.StringFlag{
						Name:    "dest-dir",
						Usage:   "Destination root for the workbook, chart and portal",
						EnvVars: []string{"DEST_DIR"},
					},
					&cli.BoolFlag{
						Name:    "demo",
						Usage:   "Freeze the clock on the demo date and read the sample extracts",
						EnvVars: []string{"DEMO_MODE"},
					},
					&cli.BoolFlag{
						Name:  "init-store",
						Usage: "Create the workbook with empty standard sheets if it does not exist",
					},
				},
				Action: runPipeline,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("run aborted")
	}
}

func runPipeline(c *cli.Context) error {
	// Flags override the environment before the config singleton loads.
	if c.IsSet("source-dir") {
		os.Setenv("SOURCE_DIR", c.String("source-dir"))
	}
	if c.IsSet("dest-dir") {
		os.Setenv("DEST_DIR", c.String("dest-dir"))
	}
	if c.Bool("demo") {
		os.Setenv("DEMO_MODE", "true")
	}

	cfg := config.Load()
	logger.SetLevel(cfg.Run.LogLevel)

	workbookPath := filepath.Join(cfg.Dest.Dir, cfg.Dest.WorkbookName)
	if c.Bool("init-store") {
		if err := store.Bootstrap(workbookPath); err != nil {
			return fmt.Errorf("failed to bootstrap workbook: %w", err)
		}
	}

	var publisher storage.ObjectStorage
	if cfg.Publish.Enabled() {
		client, err := storage.NewMinioClient(storage.Config{
			Endpoint:  cfg.Publish.Endpoint,
			AccessKey: cfg.Publish.AccessKey,
			SecretKey: cfg.Publish.SecretKey,
			Bucket:    cfg.Publish.Bucket,
			Prefix:    cfg.Publish.Prefix,
			UseSSL:    cfg.Publish.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to configure publication: %w", err)
		}
		publisher = client
	}

	runner := pipeline.NewRunner(cfg, store.NewWorkbook(workbookPath), publisher)
	report, err := runner.Run(c.Context)
	if err != nil {
		return err
	}
	if report.AllFailed() {
		return fmt.Errorf("every step failed (%d steps)", len(report))
	}
	return nil
}
