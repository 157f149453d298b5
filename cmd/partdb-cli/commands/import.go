package commands

import (
	"errors"
	"log/slog"
	"os"

	"partdb-tools/lib/configutil"
	"partdb-tools/lib/restyutil"
	"partdb-tools/lib/scrapers/partdb"
	"partdb-tools/lib/serviceutil"
	"partdb-tools/services/importer"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl           string  `json:"base_url"`
	Username          string  `json:"username"`
	Password          string  `json:"password"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

var baseUrl *string
var historyPath *string
var cachePath *string

func init() {
	baseUrl = importCmd.Flags().String("base-url", "", "Part-DB base URL, overrides the config file.")
	historyPath = importCmd.Flags().String("history", "", "Record per-part outcomes to this sqlite database.")
	cachePath = importCmd.Flags().String("cache", "", "Cache part info pages in this badger directory.")
	rootCmd.AddCommand(importCmd)
}

func createClient(cmd *cobra.Command, cfg Config) *partdb.Client {
	ctx := cmd.Context()

	var debugOutput restyutil.InstrumentOutput
	if *debug {
		debugOutput = restyutil.NewFilesystemOutput("logs/http")
	}

	var cache *badger.DB
	if *cachePath != "" {
		var err error
		cache, err = badger.Open(badger.DefaultOptions(*cachePath).WithLogger(nil))
		if err != nil {
			serviceutil.Fatal("failed to open page cache", err)
		}
	}

	client, err := partdb.NewClient(ctx, partdb.ClientOptions{
		BaseUrl:           cfg.BaseUrl,
		RequestsPerSecond: cfg.RequestsPerSecond,
		DebugOutput:       debugOutput,
		Cache:             cache,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize catalog client", err)
	}

	err = client.LoginUsernamePassword(ctx, cfg.Username, cfg.Password)
	if err != nil {
		serviceutil.Fatal("failed to login to catalog", err)
	}

	return client
}

var importCmd = &cobra.Command{
	Use:   "import [--base-url <url>] [--history <runs.db>] <parts.csv>",
	Short: "Imports identifier,quantity part rows into Part-DB, skipping parts that already exist.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("partdb.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}
		if *baseUrl != "" {
			cfg.BaseUrl = *baseUrl
		}
		if cfg.BaseUrl == "" {
			serviceutil.Fatal("no base url", errors.New("set base_url in partdb.json5 or pass --base-url"))
		}

		input, err := os.Open(args[0])
		if err != nil {
			serviceutil.Fatal("failed to open parts csv", err)
		}
		requests, err := importer.ParseRequests(input)
		input.Close()
		if err != nil {
			serviceutil.Fatal("failed to load part requests", err)
		}
		slog.Info("loaded part requests", "count", len(requests))

		runner := importer.Runner{
			Catalog: importer.PartdbCatalog{Client: createClient(cmd, cfg)},
		}

		if *historyPath != "" {
			history, err := importer.OpenHistory(*historyPath)
			if err != nil {
				serviceutil.Fatal("failed to open run history", err)
			}
			defer history.Close()
			slog.Info("recording run history", "db", *historyPath, "run_id", history.RunId)
			runner.Recorder = history
		}

		summary := runner.Run(cmd.Context(), requests)
		summary.RenderReport(os.Stdout)

		if summary.Failed > 0 {
			slog.Warn("import finished with errors", "failed", summary.Failed)
		} else {
			slog.Info("import completed successfully")
		}
	},
}
