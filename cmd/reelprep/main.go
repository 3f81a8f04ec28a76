package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/reeldata/reelprep/internal/cliconfig"
	"github.com/reeldata/reelprep/internal/dedup"
	"github.com/reeldata/reelprep/internal/objstore"
	"github.com/reeldata/reelprep/internal/onehot"
	"github.com/reeldata/reelprep/internal/progress"
	"github.com/reeldata/reelprep/internal/userfilter"
	"github.com/reeldata/reelprep/internal/watch"
)

const helpDescription = `
Prepare MovieLens-style ratings CSVs for model training.

Highlights:
  - Deduplicates (userId,movieId) pairs keeping the newest rating per pair.
  - Filters out low-activity users with a two-pass streaming scan.
  - One-hot encodes the genres column into fixed flag columns.
  - Uploads processed files to S3 and verifies they arrived.

Column names, paths, and thresholds are configurable via flags,
REELPREP_* environment variables, or ~/.reelprep/config.toml.
`

var exampleUsage = strings.TrimSpace(`
  reelprep dedup --input raw/ratings.csv --output processed/ratings_dedup.csv
  reelprep filter-users --input processed/ratings_dedup.csv --output processed/ratings_active.csv --threshold 30
  reelprep onehot --input raw/movies.csv --output processed/movies_onehot.csv
  reelprep upload --bucket my-bucket --key processed/ratings.csv --file processed/ratings_dedup.csv
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	// loadConfig resolves the final configuration for a subcommand:
	// config file first, then environment, then flag overrides.
	loadConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}

		return cliconfig.ApplyEnvConfig(&cfg, changed)
	}

	reporter := func(prefix string) progress.Reporter {
		if cfg.Quiet {
			return progress.Noop{}
		}
		return progress.NewBar(os.Stderr, prefix, 0)
	}

	root := &cobra.Command{
		Use:     "reelprep",
		Short:   "Prepare MovieLens-style ratings CSVs for model training",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.reelprep/config.toml)")
	root.PersistentFlags().StringVar(&cfg.Input, "input", "", "path to input CSV")
	root.PersistentFlags().StringVar(&cfg.Output, "output", "", "path to output CSV")
	root.PersistentFlags().BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress the progress bar")

	dedupCmd := &cobra.Command{
		Use:   "dedup",
		Short: "Remove duplicate (user,item) pairs keeping the newest rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			run := func() error {
				res, err := dedup.Run(dedup.Config{
					Input:         cfg.Input,
					Output:        cfg.Output,
					UserCol:       cfg.UserCol,
					ItemCol:       cfg.ItemCol,
					TimestampCol:  cfg.TimestampCol,
					RatingCol:     cfg.RatingCol,
					SortByRecency: cfg.SortByRecency,
				}, log, reporter("Deduplicating"))
				if err != nil {
					return err
				}
				fmt.Printf("Processed %d rows; kept %d unique (%s,%s) pairs\n",
					res.Total, res.Kept, cfg.UserCol, cfg.ItemCol)
				return nil
			}

			if err := run(); err != nil {
				return err
			}
			if !cfg.Watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := watch.Run(ctx, cfg.Input, cfg.Debounce, run, log); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	dedupCmd.Flags().StringVar(&cfg.UserCol, "user-col", cfg.UserCol, "column name for user id")
	dedupCmd.Flags().StringVar(&cfg.ItemCol, "item-col", cfg.ItemCol, "column name for movie/item id")
	dedupCmd.Flags().StringVar(&cfg.TimestampCol, "timestamp-col", cfg.TimestampCol, "column name for timestamp")
	dedupCmd.Flags().StringVar(&cfg.RatingCol, "rating-col", cfg.RatingCol, "column name for rating value")
	dedupCmd.Flags().BoolVar(&cfg.SortByRecency, "sort-by-timestamp", cfg.SortByRecency, "write rows sorted by timestamp ascending for reproducible output")
	dedupCmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and re-deduplicate when the input changes")
	dedupCmd.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "settle delay before re-running in watch mode")

	filterCmd := &cobra.Command{
		Use:   "filter-users",
		Short: "Drop rows from users with fewer ratings than the threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			res, err := userfilter.Run(userfilter.Config{
				Input:     cfg.Input,
				Output:    cfg.Output,
				UserCol:   cfg.UserCol,
				Threshold: cfg.Threshold,
			}, log, reporter("Filtering"))
			if err != nil {
				return err
			}
			fmt.Printf("Total rows: %d; rows kept: %d; users kept: %d\n",
				res.Total, res.Kept, res.UsersKept)
			return nil
		},
	}
	filterCmd.Flags().StringVar(&cfg.UserCol, "user-col", cfg.UserCol, "column name for user id")
	filterCmd.Flags().IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "minimum number of ratings required to keep a user's rows")

	onehotCmd := &cobra.Command{
		Use:   "onehot",
		Short: "One-hot encode the genres column into flag columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			rows, err := onehot.Run(onehot.Config{
				Input:      cfg.Input,
				Output:     cfg.Output,
				GenreCol:   cfg.GenreCol,
				SortGenres: cfg.SortGenres,
			}, log, reporter("Encoding"))
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %d rows to %s\n", rows, cfg.Output)
			return nil
		},
	}
	onehotCmd.Flags().StringVar(&cfg.GenreCol, "genre-col", cfg.GenreCol, "column name for the pipe-delimited genre list")
	onehotCmd.Flags().BoolVar(&cfg.SortGenres, "sort-genres", cfg.SortGenres, "sort genre columns alphabetically")

	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a file to S3 and verify it exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if cfg.Bucket == "" || cfg.Key == "" || cfg.File == "" {
				return fmt.Errorf("bucket, key and file are required")
			}

			client, err := objstore.New(cfg.Region, cfg.Profile, log)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.UploadTimeout)
			defer cancel()

			if err := client.Upload(ctx, cfg.Bucket, cfg.Key, cfg.File); err != nil {
				return err
			}
			exists, err := client.Exists(ctx, cfg.Bucket, cfg.Key)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("verification failed: s3://%s/%s not found after upload", cfg.Bucket, cfg.Key)
			}
			log.Info().Str("bucket", cfg.Bucket).Str("key", cfg.Key).Msg("verified: object exists")
			return nil
		},
	}
	uploadCmd.Flags().StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "S3 bucket name")
	uploadCmd.Flags().StringVar(&cfg.Key, "key", cfg.Key, "S3 object key")
	uploadCmd.Flags().StringVar(&cfg.File, "file", cfg.File, "local file path to upload")
	uploadCmd.Flags().StringVar(&cfg.Region, "region", cfg.Region, "AWS region (optional)")
	uploadCmd.Flags().StringVar(&cfg.Profile, "profile", cfg.Profile, "AWS named profile to use (optional)")
	uploadCmd.Flags().DurationVar(&cfg.UploadTimeout, "timeout", cfg.UploadTimeout, "upload and verification timeout")

	root.AddCommand(dedupCmd, filterCmd, onehotCmd, uploadCmd)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("reelprep")
		os.Exit(1)
	}
}
