package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driving"
	"github.com/custodia-labs/pardis/internal/logger"
	"github.com/custodia-labs/pardis/internal/normalisers/pdf"
)

const (
	// ProcessedDir is the subfolder harvested files are moved to.
	ProcessedDir = "processed"

	// DefaultSettle is how long a file's size must hold still before it is harvested.
	DefaultSettle = 500 * time.Millisecond

	// harvestTag marks records created from the inbox.
	harvestTag = "inbox"
)

// Harvested describes one file taken from the inbox.
type Harvested struct {
	File     string
	RecordID string
	Title    string
	Indexed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets how long a file must be unchanged before it is harvested.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithNotify registers a callback run after each successful harvest.
func WithNotify(fn func(Harvested)) Option {
	return func(w *Watcher) {
		w.notify = fn
	}
}

// Watcher moves PDFs from a folder into the library.
type Watcher struct {
	library driving.LibraryService
	dir     string
	settle  time.Duration
	notify  func(Harvested)
}

// pending tracks a file that has not settled yet.
type pending struct {
	size int64
	seen time.Time
}

// NewWatcher creates a watcher over dir.
func NewWatcher(library driving.LibraryService, dir string, opts ...Option) *Watcher {
	w := &Watcher{
		library: library,
		dir:     dir,
		settle:  DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched folder.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run harvests PDFs already in the folder, then watches for new ones
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.dir == "" {
		return fmt.Errorf("inbox folder not set: %w", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Join(w.dir, ProcessedDir), 0o700); err != nil {
		return fmt.Errorf("creating inbox: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() {
		if err := fsw.Close(); err != nil {
			logger.Warn("inbox: closing watcher: %v", err)
		}
	}()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Section("Inbox")
	if _, err := w.Sweep(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	waiting := make(map[string]pending)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isCandidate(event) {
				continue
			}
			size, err := fileSize(event.Name)
			if err != nil {
				delete(waiting, event.Name)
				continue
			}
			prev, seen := waiting[event.Name]
			if seen && size > 0 && size == prev.size {
				delete(waiting, event.Name)
				w.harvestAndReport(ctx, event.Name)
				continue
			}
			waiting[event.Name] = pending{size: size, seen: time.Now()}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("inbox: watcher error: %v", err)

		case now := <-ticker.C:
			for path, p := range waiting {
				if now.Sub(p.seen) < w.settle {
					continue
				}
				size, err := fileSize(path)
				if err != nil {
					delete(waiting, path)
					continue
				}
				if size != p.size || size == 0 {
					waiting[path] = pending{size: size, seen: now}
					continue
				}
				delete(waiting, path)
				w.harvestAndReport(ctx, path)
			}
		}
	}
}

// Sweep harvests every PDF currently in the folder and returns how many
// were taken.
func (w *Watcher) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("reading inbox: %w", err)
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() || !isPDFName(e.Name()) {
			continue
		}
		if ctx.Err() != nil {
			return n, nil
		}
		if w.harvestAndReport(ctx, filepath.Join(w.dir, e.Name())) {
			n++
		}
	}
	return n, nil
}

func (w *Watcher) harvestAndReport(ctx context.Context, path string) bool {
	h, err := w.Harvest(ctx, path)
	if err != nil {
		logger.Error("inbox: %s: %v", filepath.Base(path), err)
		return false
	}
	if w.notify != nil {
		w.notify(*h)
	}
	return true
}

// Harvest creates a record for the PDF at path, attaches the file and
// moves it to the processed folder. A PDF without a text layer is still
// attached. If the file cannot be moved the record is removed again.
func (w *Watcher) Harvest(ctx context.Context, path string) (*Harvested, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if !pdf.IsPDF(data) {
		return nil, fmt.Errorf("not a PDF: %w", domain.ErrInvalidInput)
	}

	title := TitleFromFile(path)
	record, err := w.library.Add(ctx, domain.LibraryRecord{
		Title:   title,
		DocType: domain.DocTypePaper,
		Tags:    []string{harvestTag},
	})
	if err != nil {
		return nil, fmt.Errorf("adding record: %w", err)
	}

	res, err := w.library.AttachFile(ctx, record.ID, data)
	if err != nil {
		if derr := w.library.Delete(ctx, record.ID); derr != nil {
			logger.Warn("inbox: removing record %s: %v", record.ID, derr)
		}
		return nil, fmt.Errorf("attaching file: %w", err)
	}
	if !res.Indexed {
		logger.Warn("inbox: %s stored without searchable text", filepath.Base(path))
	}

	if err := w.moveProcessed(path); err != nil {
		// The file stays in the inbox and will be harvested again.
		if derr := w.library.Delete(ctx, record.ID); derr != nil {
			logger.Warn("inbox: removing record %s: %v", record.ID, derr)
		}
		return nil, err
	}

	logger.Info("inbox: harvested %s as %s", filepath.Base(path), record.ID)
	return &Harvested{
		File:     filepath.Base(path),
		RecordID: record.ID,
		Title:    title,
		Indexed:  res.Indexed,
	}, nil
}

// moveProcessed renames path into the processed folder without
// overwriting an earlier file of the same name.
func (w *Watcher) moveProcessed(path string) error {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	target := filepath.Join(w.dir, ProcessedDir, base)
	for i := 1; ; i++ {
		_, err := os.Stat(target)
		if errors.Is(err, os.ErrNotExist) {
			break
		}
		if err != nil {
			return fmt.Errorf("checking processed folder: %w", err)
		}
		target = filepath.Join(w.dir, ProcessedDir, stem+"-"+strconv.Itoa(i)+ext)
	}

	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("moving to processed: %w", err)
	}
	return nil
}

// TitleFromFile turns a file name such as "bagh-e_fin.pdf" into "bagh e fin".
func TitleFromFile(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(stem)
	title := strings.Join(strings.Fields(stem), " ")
	if title == "" {
		return base
	}
	return title
}

func isCandidate(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return isPDFName(filepath.Base(event.Name))
}

func isPDFName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}
	return info.Size(), nil
}
