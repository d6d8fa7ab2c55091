package library

import (
	"context"
	"fmt"
	"log/slog"

	"crate/internal/catalog"
	"crate/internal/config"
	"crate/internal/dedupe"
	"crate/internal/logging"
	"crate/internal/store"
)

// Store is the persistence port the service depends on.
type Store interface {
	Insert(ctx context.Context, item catalog.Item) (*catalog.Item, error)
	Update(ctx context.Context, item catalog.Item) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*catalog.Item, error)
	List(ctx context.Context, list catalog.List, mediaType catalog.MediaType) ([]catalog.Item, error)
	Move(ctx context.Context, id string, list catalog.List) error
}

// Service runs catalog workflows against a Store.
type Service struct {
	store    Store
	matching config.Matching
	logger   *slog.Logger
}

// New constructs a Service. A nil logger discards output.
func New(st Store, matching config.Matching, logger *slog.Logger) *Service {
	return &Service{
		store:    st,
		matching: matching,
		logger:   logging.NewComponentLogger(logger, "library"),
	}
}

// AddOptions controls duplicate handling on insert.
type AddOptions struct {
	// Force stores the item even when a likely duplicate exists.
	Force bool
	// Version is recorded on the item to tell it apart from the match.
	Version string
}

// ListOptions controls filtering and ordering of List results.
type ListOptions struct {
	Sort  catalog.SortKey
	Order catalog.SortOrder
	Query string
}

func (s *Service) duplicateThresholds() dedupe.Thresholds {
	return dedupe.Uniform(s.matching.DuplicateThreshold)
}

func (s *Service) ownedThresholds() dedupe.Thresholds {
	return dedupe.Thresholds{
		Primary:   s.matching.OwnedArtistThreshold,
		Secondary: s.matching.OwnedTitleThreshold,
	}
}

// Add validates item and stores it on its list. Items resembling an existing
// entry of the same media type on that list are rejected with *DuplicateError
// unless opts.Force is set.
func (s *Service) Add(ctx context.Context, item catalog.Item, opts AddOptions) (*catalog.Item, error) {
	item.ID = ""
	if opts.Version != "" {
		item.Version = opts.Version
	}
	item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, s.logger)
	if err := s.checkDuplicate(ctx, logger, item, item.List, opts.Force); err != nil {
		return nil, err
	}

	stored, err := s.store.Insert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	logger.Info("item added",
		logging.String(logging.FieldItemID, stored.ID),
		logging.String(logging.FieldMediaType, string(stored.MediaType)),
		logging.String("list", string(stored.List)),
	)
	return stored, nil
}

func (s *Service) checkDuplicate(ctx context.Context, logger *slog.Logger, item catalog.Item, list catalog.List, force bool) error {
	existing, err := s.store.List(ctx, list, item.MediaType)
	if err != nil {
		return fmt.Errorf("load %s: %w", list, err)
	}
	match, ok := dedupe.FindPotentialDuplicate(item, existing, s.duplicateThresholds())
	if !ok {
		return nil
	}
	if force {
		logging.WarnWithContext(logger, "storing likely duplicate", "duplicate_forced",
			logging.String("existing_id", match.ID),
			logging.String(logging.FieldImpact, "catalog holds two similar items"),
			logging.String(logging.FieldErrorHint, "set a version to tell the copies apart"),
		)
		return nil
	}
	attrs := logging.DecisionAttrs("duplicate_check", "rejected", "similar artist and title")
	attrs = append(attrs,
		logging.String("existing_id", match.ID),
		logging.Float64("threshold", s.matching.DuplicateThreshold),
	)
	logger.Info("duplicate rejected", logging.Args(attrs...)...)
	return &DuplicateError{Candidate: item, Existing: match}
}

// Update validates and stores changes to an existing item.
func (s *Service) Update(ctx context.Context, item catalog.Item) error {
	item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.store.Update(ctx, item); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes an item from whichever list holds it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	logging.WithContext(ctx, s.logger).Info("item deleted", logging.String(logging.FieldItemID, id))
	return nil
}

// Get returns the item with id or store.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*catalog.Item, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return item, nil
}

// List returns the items on list, optionally filtered by media type and a
// free-text query, sorted per opts. An empty sort key keeps the store's
// newest-first order.
func (s *Service) List(ctx context.Context, list catalog.List, mediaType catalog.MediaType, opts ListOptions) ([]catalog.Item, error) {
	items, err := s.store.List(ctx, list, mediaType)
	if err != nil {
		return nil, err
	}
	items = catalog.Search(items, opts.Query)
	if opts.Sort != "" {
		order := opts.Order
		if order == "" {
			order = catalog.OrderAsc
		}
		catalog.SortItems(items, opts.Sort, order)
	}
	return items, nil
}

// Acquire moves a wantlist item into the collection. A likely duplicate
// already in the collection blocks the move unless opts.Force is set.
func (s *Service) Acquire(ctx context.Context, id string, opts AddOptions) (*catalog.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.List != catalog.ListWantlist {
		return nil, fmt.Errorf("%w: %s is in the %s", ErrWrongList, id, item.List)
	}

	logger := logging.WithContext(ctx, s.logger)
	if err := s.checkDuplicate(ctx, logger, *item, catalog.ListCollection, opts.Force); err != nil {
		return nil, err
	}
	if opts.Version != "" {
		item.Version = opts.Version
		if err := s.store.Update(ctx, *item); err != nil {
			return nil, fmt.Errorf("set version: %w", err)
		}
	}
	if err := s.store.Move(ctx, id, catalog.ListCollection); err != nil {
		return nil, fmt.Errorf("move to collection: %w", err)
	}
	logger.Info("wantlist item acquired", logging.String(logging.FieldItemID, id))
	return s.Get(ctx, id)
}
