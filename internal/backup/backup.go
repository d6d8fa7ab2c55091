package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"crate/internal/catalog"
	"crate/internal/dedupe"
	"crate/internal/logging"
)

// Mode selects how Import applies a document.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeMerge   Mode = "merge"
)

const lockRetryDelay = 100 * time.Millisecond

// ErrLocked is returned when another backup holds the lock and ctx expires.
var ErrLocked = errors.New("backup file is locked")

// Store is the persistence port used by backups.
type Store interface {
	List(ctx context.Context, list catalog.List, mediaType catalog.MediaType) ([]catalog.Item, error)
	ReplaceAll(ctx context.Context, data catalog.CollectionData) error
	Merge(ctx context.Context, updates, inserts []catalog.Item) error
}

// Summary reports what an export or import touched.
type Summary struct {
	Path       string `json:"path"`
	Collection int    `json:"collection"`
	Wantlist   int    `json:"wantlist"`
	Inserted   int    `json:"inserted,omitempty"`
	Merged     int    `json:"merged,omitempty"`
}

// Manager runs exports and imports against a Store.
type Manager struct {
	store      Store
	thresholds dedupe.Thresholds
	logger     *slog.Logger
	now        func() time.Time
}

// New builds a Manager. Merge imports fold items together when they match
// under thresholds.
func New(st Store, thresholds dedupe.Thresholds, logger *slog.Logger) *Manager {
	return &Manager{
		store:      st,
		thresholds: thresholds,
		logger:     logging.NewComponentLogger(logger, "backup"),
		now:        time.Now,
	}
}

// DefaultPath returns a timestamped file name inside dir.
func DefaultPath(dir string, now time.Time) string {
	return filepath.Join(dir, "crate-backup-"+now.Format("20060102-150405")+".json")
}

// Export writes the whole catalog to path.
func (m *Manager) Export(ctx context.Context, path string) (Summary, error) {
	summary := Summary{Path: path}

	collection, err := m.store.List(ctx, catalog.ListCollection, "")
	if err != nil {
		return summary, fmt.Errorf("load collection: %w", err)
	}
	wantlist, err := m.store.List(ctx, catalog.ListWantlist, "")
	if err != nil {
		return summary, fmt.Errorf("load wantlist: %w", err)
	}

	now := m.now().UTC()
	doc := catalog.CollectionData{
		Collection:  nonNil(collection),
		Wantlist:    nonNil(wantlist),
		LastUpdated: &now,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return summary, fmt.Errorf("marshal backup: %w", err)
	}

	unlock, err := acquire(ctx, path)
	if err != nil {
		return summary, err
	}
	defer unlock()

	if err := writeAtomic(path, data); err != nil {
		return summary, err
	}

	summary.Collection = len(doc.Collection)
	summary.Wantlist = len(doc.Wantlist)
	logging.WithContext(ctx, m.logger).Info("backup exported",
		logging.String("path", path),
		logging.Int("collection", summary.Collection),
		logging.Int("wantlist", summary.Wantlist),
	)
	return summary, nil
}

// Import reads the document at path and applies it with mode. Every item is
// validated before anything is written; the first invalid item aborts the
// import. Both modes write in a single transaction, so a failed import
// leaves the catalog unchanged.
func (m *Manager) Import(ctx context.Context, path string, mode Mode) (Summary, error) {
	summary := Summary{Path: path}

	doc, err := m.read(ctx, path)
	if err != nil {
		return summary, err
	}
	summary.Collection = len(doc.Collection)
	summary.Wantlist = len(doc.Wantlist)

	logger := logging.WithContext(ctx, m.logger)
	switch mode {
	case ModeReplace:
		if err := m.store.ReplaceAll(ctx, doc); err != nil {
			return summary, fmt.Errorf("replace catalog: %w", err)
		}
		summary.Inserted = summary.Collection + summary.Wantlist
	case ModeMerge:
		inserted, merged, err := m.merge(ctx, logger, doc)
		summary.Inserted, summary.Merged = inserted, merged
		if err != nil {
			return summary, err
		}
	default:
		return summary, fmt.Errorf("unknown import mode %q", mode)
	}

	logger.Info("backup imported",
		logging.String("path", path),
		logging.String("mode", string(mode)),
		logging.Int("inserted", summary.Inserted),
		logging.Int("merged", summary.Merged),
	)
	return summary, nil
}

func (m *Manager) read(ctx context.Context, path string) (catalog.CollectionData, error) {
	var doc catalog.CollectionData

	unlock, err := acquire(ctx, path)
	if err != nil {
		return doc, err
	}
	data, err := os.ReadFile(path)
	unlock()
	if err != nil {
		return doc, fmt.Errorf("read backup: %w", err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse backup: %w", err)
	}
	if err := prepare(doc.Collection, catalog.ListCollection); err != nil {
		return doc, err
	}
	if err := prepare(doc.Wantlist, catalog.ListWantlist); err != nil {
		return doc, err
	}
	return doc, nil
}

// prepare assigns list membership from the document section, normalizes,
// and validates each item in place.
func prepare(items []catalog.Item, list catalog.List) error {
	for i := range items {
		items[i].List = list
		items[i].Normalize()
		if err := items[i].Validate(); err != nil {
			return fmt.Errorf("%s item %d: %w", list, i, err)
		}
	}
	return nil
}

// merge folds doc into the catalog. Incoming items that match an existing
// item (or an earlier incoming one) are merged into it; the rest are
// inserted ahead of the existing items, keeping their order from doc.
func (m *Manager) merge(ctx context.Context, logger *slog.Logger, doc catalog.CollectionData) (int, int, error) {
	var merged int
	var inserts []catalog.Item
	updates := map[string]catalog.Item{}
	var updateOrder []string

	sections := []struct {
		list  catalog.List
		items []catalog.Item
	}{
		{catalog.ListCollection, doc.Collection},
		{catalog.ListWantlist, doc.Wantlist},
	}

	current := make(map[catalog.List][]catalog.Item, len(sections))
	taken := map[string]struct{}{}
	for _, section := range sections {
		items, err := m.store.List(ctx, section.list, "")
		if err != nil {
			return 0, 0, fmt.Errorf("load %s: %w", section.list, err)
		}
		current[section.list] = items
		for _, item := range items {
			taken[item.ID] = struct{}{}
		}
	}

	for _, section := range sections {
		existing := current[section.list]
		added := 0
		for _, incoming := range section.items {
			if idx := m.matchIndex(existing, incoming); idx >= 0 {
				target := existing[idx]
				combined := catalog.MergeDetails(target, incoming)
				existing[idx] = combined
				merged++
				if i := indexByID(inserts, target.ID); i >= 0 {
					inserts[i] = combined
				} else {
					if _, ok := updates[target.ID]; !ok {
						updateOrder = append(updateOrder, target.ID)
					}
					updates[target.ID] = combined
				}
				logger.Debug("merged backup item",
					logging.String(logging.FieldItemID, target.ID),
					logging.String("title", incoming.Title),
				)
				continue
			}

			if _, ok := taken[incoming.ID]; incoming.ID != "" && ok {
				// ID taken by an item on the other list.
				logging.WarnWithContext(logger, "backup item id already in use", "import_id_conflict",
					logging.String(logging.FieldItemID, incoming.ID),
					logging.String(logging.FieldImpact, "item stored under a new id"),
				)
				incoming.ID = ""
			}
			if incoming.ID == "" {
				incoming.ID = uuid.NewString()
			}
			taken[incoming.ID] = struct{}{}
			inserts = append(inserts, incoming)
			existing = slices.Insert(existing, added, incoming)
			added++
		}
	}

	updateList := make([]catalog.Item, 0, len(updateOrder))
	for _, id := range updateOrder {
		updateList = append(updateList, updates[id])
	}
	if err := m.store.Merge(ctx, updateList, inserts); err != nil {
		return 0, 0, fmt.Errorf("apply merge: %w", err)
	}
	return len(inserts), merged, nil
}

// matchIndex returns the position in existing of the item incoming should be
// merged into, or -1. An identical ID wins; otherwise the first likely
// duplicate of the same media type.
func (m *Manager) matchIndex(existing []catalog.Item, incoming catalog.Item) int {
	if incoming.ID != "" {
		if i := indexByID(existing, incoming.ID); i >= 0 {
			return i
		}
	}
	sameMedia := make([]catalog.Item, 0, len(existing))
	for _, item := range existing {
		if item.MediaType == incoming.MediaType {
			sameMedia = append(sameMedia, item)
		}
	}
	match, ok := dedupe.FindPotentialDuplicate(incoming, sameMedia, m.thresholds)
	if !ok {
		return -1
	}
	return indexByID(existing, match.ID)
}

func indexByID(items []catalog.Item, id string) int {
	return slices.IndexFunc(items, func(item catalog.Item) bool { return item.ID == id })
}

func acquire(ctx context.Context, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return func() { _ = lock.Unlock() }, nil
}

func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func nonNil(items []catalog.Item) []catalog.Item {
	if items == nil {
		return []catalog.Item{}
	}
	return items
}
