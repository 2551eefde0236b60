// Package indexer runs the whole indexing pipeline: scan the music folder,
// read each file's tags, and write artists, albums and songs into a fresh
// database, one file at a time.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/llehouerou/sdindex/internal/library"
	"github.com/llehouerou/sdindex/internal/logger"
	"github.com/llehouerou/sdindex/internal/musicdb"
	"github.com/llehouerou/sdindex/internal/tags"
)

// ErrCreateDatabase is returned when the output database cannot be created.
var ErrCreateDatabase = errors.New("cannot create database")

// Phase names a stage of a run.
type Phase string

const (
	PhaseScanning   Phase = "scanning"
	PhaseProcessing Phase = "processing"
	PhaseSaved      Phase = "saved"
	PhaseDone       Phase = "done"
)

// Progress reports the progress of a run.
type Progress struct {
	Phase       Phase
	Current     int // files processed so far
	Total       int // files found
	CurrentFile string
	Saved       int      // songs committed so far
	Summary     *Summary // Only populated when Phase == PhaseDone
}

// Summary holds the counters of a run.
type Summary struct {
	FilesFound       int
	SongsIndexed     int
	Errors           int
	Duplicates       int
	SystemSkipped    int
	WrongTypeSkipped int
	Artists          int
	Albums           int
	DatabaseSize     int64 // bytes
	Interrupted      bool
}

// Options configures a run.
type Options struct {
	RootLabel string // defaults to musicdb.DefaultRootLabel
	BatchSize int    // defaults to musicdb.DefaultBatchSize
	Verbose   bool   // log every skipped file and duplicate at info level
	Logger    *logger.Logger
	// Progress, if set, receives updates and is closed when Run returns.
	Progress chan<- Progress
}

type run struct {
	ctx      context.Context
	opts     Options
	log      *logger.Logger
	summary  *Summary
	progress chan<- Progress
}

// Run indexes musicFolder into a new database at dbPath, replacing any
// existing file.
//
// Only an invalid music folder or a database that cannot be created or
// committed stops a run; per-file problems are counted in the Summary.
// When ctx is canceled the open batch is discarded, the summary so far is
// returned with Interrupted set, and the error is ctx.Err().
func Run(ctx context.Context, musicFolder, dbPath string, opts Options) (*Summary, error) {
	if opts.Progress != nil {
		defer close(opts.Progress)
	}
	if opts.RootLabel == "" {
		opts.RootLabel = musicdb.DefaultRootLabel
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := &run{
		ctx:      ctx,
		opts:     opts,
		log:      log.WithComponent("indexer"),
		summary:  &Summary{},
		progress: opts.Progress,
	}
	return r.execute(musicFolder, dbPath)
}

func (r *run) execute(musicFolder, dbPath string) (*Summary, error) {
	r.report(Progress{Phase: PhaseScanning})
	found, err := library.Discover(r.ctx, musicFolder, library.DiscoverOptions{
		OnSkip: func(name string, reason library.SkipReason) {
			r.verbose("skipping file", "file", name, "reason", reason.String())
		},
	})
	if err != nil {
		if ctxErr := r.ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			r.summary.Interrupted = true
			r.log.Warn("interrupted during scan")
			return r.summary, r.ctx.Err()
		}
		return nil, err
	}
	r.summary.FilesFound = len(found.Files)
	r.summary.SystemSkipped = found.SystemSkipped
	r.summary.WrongTypeSkipped = found.WrongTypeSkipped
	r.log.Info("scan complete",
		"root", found.Root,
		"files", len(found.Files),
		"system_skipped", found.SystemSkipped,
		"wrong_type_skipped", found.WrongTypeSkipped,
	)

	database, err := musicdb.Create(r.ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCreateDatabase, dbPath, err)
	}
	defer database.Close()

	total := len(found.Files)
	w := musicdb.NewWriter(database, musicdb.WriterOptions{
		BatchSize: r.opts.BatchSize,
		OnCommit: func(saved int) {
			r.log.Debug("batch committed", "saved", saved)
			r.report(Progress{Phase: PhaseSaved, Total: total, Saved: saved})
		},
	})

	for i, f := range found.Files {
		if r.ctx.Err() != nil {
			return r.interrupt(w)
		}
		r.report(Progress{Phase: PhaseProcessing, Current: i, Total: total, CurrentFile: f.RelPath})

		err := r.process(w, f)
		switch {
		case err == nil:
		case errors.Is(err, musicdb.ErrCommit):
			return nil, err
		case r.ctx.Err() != nil:
			return r.interrupt(w)
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	r.summary.SongsIndexed = w.Saved()

	lib := library.New(database)
	if r.summary.Artists, err = lib.ArtistCount(r.ctx); err != nil {
		return nil, fmt.Errorf("count artists: %w", err)
	}
	if r.summary.Albums, err = lib.AlbumCount(r.ctx); err != nil {
		return nil, fmt.Errorf("count albums: %w", err)
	}

	if err := database.Close(); err != nil {
		return nil, fmt.Errorf("close database: %w", err)
	}
	if info, err := os.Stat(dbPath); err == nil {
		r.summary.DatabaseSize = info.Size()
	}

	r.log.Info("indexing complete",
		"songs", r.summary.SongsIndexed,
		"artists", r.summary.Artists,
		"albums", r.summary.Albums,
		"errors", r.summary.Errors,
		"duplicates", r.summary.Duplicates,
	)
	r.report(Progress{Phase: PhaseDone, Current: total, Total: total, Saved: w.Saved(), Summary: r.summary})
	return r.summary, nil
}

// process extracts and stores one file. Recoverable failures are counted
// and logged here; the returned error lets the caller stop on fatal ones.
func (r *run) process(w *musicdb.Writer, f library.File) error {
	log := r.log.WithFile(f.RelPath)

	m, err := tags.Extract(f.Path)
	if err != nil {
		r.summary.Errors++
		log.Warn("cannot read file", "error", err)
		return err
	}

	err = w.Add(r.ctx, musicdb.DevicePath(r.opts.RootLabel, f.RelPath), m)
	switch {
	case err == nil:
		r.verbose("indexed", "path", f.RelPath, "artist", m.Artist, "album", m.Album, "title", m.Title)
	case errors.Is(err, musicdb.ErrDuplicatePath):
		r.summary.Duplicates++
		r.verbose("duplicate", "path", f.RelPath)
	case errors.Is(err, musicdb.ErrCommit), r.ctx.Err() != nil:
	default:
		r.summary.Errors++
		log.Warn("cannot save song", "error", err)
	}
	return err
}

// interrupt discards the open batch and returns what was committed.
func (r *run) interrupt(w *musicdb.Writer) (*Summary, error) {
	discarded, err := w.Rollback()
	if err != nil {
		r.log.Error("rollback failed", "error", err)
	}
	r.summary.SongsIndexed = w.Saved()
	r.summary.Interrupted = true
	r.log.Warn("interrupted", "saved", w.Saved(), "discarded", discarded)
	return r.summary, r.ctx.Err()
}

// verbose logs at info level in verbose mode and at debug level otherwise.
func (r *run) verbose(msg string, args ...any) {
	if r.opts.Verbose {
		r.log.Info(msg, args...)
		return
	}
	r.log.Debug(msg, args...)
}

func (r *run) report(p Progress) {
	if r.progress == nil {
		return
	}
	select {
	case r.progress <- p:
	case <-r.ctx.Done():
	}
}
