package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/sdindex/internal/config"
	"github.com/llehouerou/sdindex/internal/errmsg"
	"github.com/llehouerou/sdindex/internal/indexer"
	"github.com/llehouerou/sdindex/internal/library"
	"github.com/llehouerou/sdindex/internal/logger"
	"github.com/llehouerou/sdindex/internal/musicdb"
)

const rule = "=================================================="

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sdindex",
		Short: "Index an MP3 collection into a SQLite database for a portable player",
		Long: `sdindex walks a music folder, reads the tags of every MP3 file and writes
artists, albums and songs into a SQLite database the player browses.

Examples:
  sdindex index /Volumes/SD_CARD/Music /Volumes/SD_CARD/music.db
  sdindex index /media/user/SD_CARD/Music -v --verify
  sdindex browse /media/user/SD_CARD/music.db "Cafe Mobius"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", "Config file (loaded after the default locations)")
	cmd.AddCommand(cmdIndex(), cmdVerify(), cmdBrowse(), cmdInspect())
	return cmd
}

// loadConfig loads the configuration files and applies the command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("verify") {
		cfg.Verify, _ = flags.GetBool("verify")
	}
	if flags.Changed("root-label") {
		label, _ := flags.GetString("root-label")
		cfg.RootLabel = strings.Trim(label, "/")
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		cfg.Log.Level = strings.ToLower(level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, log, nil
}

func cmdIndex() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <music_folder> [output_db]",
		Short: "Rebuild the database from a music folder",
		Long: `Rebuild the database from a music folder. Any existing database at the
output location is replaced. Without output_db the database is written next
to the music folder.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			musicFolder := args[0]
			var output string
			if len(args) == 2 {
				output = args[1]
			}
			dbPath := cfg.OutputPath(musicFolder, output)

			fmt.Printf("Scanning: %s\n", musicFolder)
			fmt.Printf("Database: %s\n\n", dbPath)

			progress := make(chan indexer.Progress, 16)
			printed := make(chan struct{})
			go func() {
				defer close(printed)
				printProgress(progress, cfg.Verbose)
			}()

			summary, err := indexer.Run(cmd.Context(), musicFolder, dbPath, indexer.Options{
				RootLabel: cfg.RootLabel,
				BatchSize: cfg.BatchSize,
				Verbose:   cfg.Verbose,
				Logger:    log,
				Progress:  progress,
			})
			<-printed

			switch {
			case errors.Is(err, context.Canceled):
				fmt.Println()
				if summary != nil {
					fmt.Printf("Interrupted by user, %d songs saved\n", summary.SongsIndexed)
				}
				return errors.New("interrupted")
			case errors.Is(err, library.ErrInvalidInput):
				return errors.New(errmsg.Format(errmsg.OpScan, err))
			case errors.Is(err, indexer.ErrCreateDatabase):
				return errors.New(errmsg.Format(errmsg.OpDatabaseOpen, err))
			case errors.Is(err, musicdb.ErrCommit):
				return errors.New(errmsg.Format(errmsg.OpInsert, err))
			case err != nil:
				return errors.New(errmsg.Format(errmsg.OpIndex, err))
			}

			printSummary(summary, dbPath)

			if cfg.Verify {
				if err := runVerify(cmd.Context(), dbPath); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show detailed progress")
	cmd.Flags().Bool("verify", false, "Verify database after creation")
	cmd.Flags().String("root-label", musicdb.DefaultRootLabel, "First segment of every stored song path")
	cmd.Flags().Int("batch-size", musicdb.DefaultBatchSize, "Songs per committed transaction")
	cmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func printProgress(progress <-chan indexer.Progress, verbose bool) {
	for p := range progress {
		switch p.Phase {
		case indexer.PhaseProcessing:
			if verbose {
				fmt.Printf("[%d/%d] Processing: %s\n", p.Current+1, p.Total, p.CurrentFile)
			}
		case indexer.PhaseSaved:
			fmt.Printf("  Saved %s songs...\n", humanize.Comma(int64(p.Saved)))
		case indexer.PhaseScanning, indexer.PhaseDone:
		}
	}
}

func printSummary(s *indexer.Summary, dbPath string) {
	fmt.Println()
	fmt.Println(rule)
	fmt.Println("Indexing complete!")
	fmt.Println(rule)
	fmt.Printf("   Files:    %d\n", s.FilesFound)
	fmt.Printf("   Artists:  %d\n", s.Artists)
	fmt.Printf("   Albums:   %d\n", s.Albums)
	fmt.Printf("   Songs:    %d\n", s.SongsIndexed)
	if s.Errors > 0 {
		fmt.Printf("   Errors:   %d\n", s.Errors)
	}
	if s.Duplicates > 0 {
		fmt.Printf("   Skipped:  %d (duplicates)\n", s.Duplicates)
	}
	if s.SystemSkipped > 0 {
		fmt.Printf("   System files skipped: %d\n", s.SystemSkipped)
	}
	if s.WrongTypeSkipped > 0 {
		fmt.Printf("   Non-MP3 files skipped: %d\n", s.WrongTypeSkipped)
	}
	fmt.Println(rule)
	fmt.Println()
	fmt.Printf("Database saved to: %s\n", dbPath)
	fmt.Printf("Database size: %s\n", humanize.Bytes(uint64(max(s.DatabaseSize, 0))))
}

func cmdVerify() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <db>",
		Short: "Check the database tables and show sample rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), args[0])
		},
	}
}

func runVerify(ctx context.Context, dbPath string) error {
	fmt.Println()
	fmt.Println("Verifying database...")

	report, err := musicdb.Verify(ctx, dbPath)
	var missing *musicdb.SchemaMissingError
	if errors.As(err, &missing) {
		fmt.Printf("   Table '%s' missing!\n", missing.Table)
	}
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpVerify, err))
	}

	for _, table := range report.Tables {
		fmt.Printf("   Table '%s' exists\n", table)
	}
	fmt.Println()
	fmt.Println("Sample data:")
	fmt.Println("   Artists:")
	for _, name := range report.Artists {
		fmt.Printf("      * %s\n", name)
	}
	fmt.Println("   Albums:")
	for _, p := range report.Albums {
		fmt.Printf("      * %s - %s\n", p.Name, p.Artist)
	}
	fmt.Println("   Songs:")
	for _, p := range report.Songs {
		fmt.Printf("      * %s - %s\n", p.Name, p.Artist)
	}
	fmt.Println()
	fmt.Println("Database verification complete!")
	return nil
}
