package musicdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbutil "github.com/llehouerou/sdindex/internal/db"
	"github.com/llehouerou/sdindex/internal/tags"
)

// DefaultBatchSize is the number of inserted songs per committed transaction.
const DefaultBatchSize = 100

// ErrCommit wraps a failed transaction commit. Songs of that batch are lost.
var ErrCommit = errors.New("commit failed")

// WriterOptions configures a Writer.
type WriterOptions struct {
	BatchSize int // songs per transaction; DefaultBatchSize if <= 0
	// OnCommit, if set, is called after each commit with the total number
	// of songs saved so far.
	OnCommit func(saved int)
}

// Writer appends songs to an index, committing every BatchSize inserted songs.
// It is not safe for concurrent use.
type Writer struct {
	db       *sql.DB
	opts     WriterOptions
	tx       *sql.Tx
	pending  int
	saved    int
	inserted int
}

func NewWriter(database *sql.DB, opts WriterOptions) *Writer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Writer{db: database, opts: opts}
}

// Add resolves the song's artist and album and inserts the song under path.
//
// A path that is already indexed returns ErrDuplicatePath and any other
// integrity failure returns ErrConstraint. Both only affect this song: the
// rest of the open batch is kept.
func (w *Writer) Add(ctx context.Context, path string, m *tags.Metadata) error {
	if w.tx == nil {
		tx, err := w.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin batch: %w", err)
		}
		w.tx = tx
	}

	artistID, err := ResolveArtist(ctx, w.tx, m.Artist)
	if err != nil {
		return classify(path, err)
	}
	albumID, err := ResolveAlbum(ctx, w.tx, artistID, m.Album, m.Year)
	if err != nil {
		return classify(path, err)
	}

	_, err = w.tx.ExecContext(ctx, `
		INSERT INTO songs (album_id, title, path, track_number, duration, file_size)
		VALUES (?, ?, ?, ?, ?, ?)
	`, albumID, m.Title, path, m.TrackNumber, m.Duration, m.FileSize)
	if err != nil {
		if dbutil.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, path)
		}
		return classify(path, err)
	}

	w.inserted++
	w.pending++
	if w.pending >= w.opts.BatchSize {
		return w.commit()
	}
	return nil
}

// Close commits the open batch, if any.
func (w *Writer) Close() error {
	if w.tx == nil {
		return nil
	}
	return w.commit()
}

// Rollback discards the open batch and returns how many inserted songs it held.
// Songs of already committed batches stay.
func (w *Writer) Rollback() (int, error) {
	if w.tx == nil {
		return 0, nil
	}
	discarded := w.pending
	err := w.tx.Rollback()
	w.tx = nil
	w.pending = 0
	w.inserted -= discarded
	// A canceled context has already rolled the transaction back.
	if errors.Is(err, sql.ErrTxDone) {
		err = nil
	}
	return discarded, err
}

// Saved returns the number of songs in committed batches.
func (w *Writer) Saved() int {
	return w.saved
}

// Inserted returns the number of songs inserted, committed or not.
func (w *Writer) Inserted() int {
	return w.inserted
}

func (w *Writer) commit() error {
	err := w.tx.Commit()
	w.tx = nil
	if err != nil {
		w.inserted -= w.pending
		w.pending = 0
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}
	w.saved += w.pending
	w.pending = 0
	if w.opts.OnCommit != nil {
		w.opts.OnCommit(w.saved)
	}
	return nil
}

func classify(path string, err error) error {
	if dbutil.IsConstraintViolation(err) {
		return fmt.Errorf("%w: %s: %w", ErrConstraint, path, err)
	}
	return fmt.Errorf("insert %s: %w", path, err)
}
