package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jcmexdev/greyden-storefront/internal/catalog"
)

// DefaultKey is the storage key the cart snapshot is mirrored under.
const DefaultKey = "greydenCart"

// hotDefaultSize is the size hot drinks fall back to when none is selected.
const hotDefaultSize = 12

var (
	ErrSizeUnavailable = errors.New("cart: size not offered for this drink")
	ErrNoSizes         = errors.New("cart: drink has no size variants")
)

// Restored describes what Restore found in storage.
type Restored int

const (
	// RestoredNothing means no cart was stored; the cart starts empty.
	RestoredNothing Restored = iota
	// RestoredCart means a stored cart was decoded and loaded.
	RestoredCart
	// RestoredMalformed means the stored value could not be decoded and was
	// ignored; the cart starts empty.
	RestoredMalformed
)

func (r Restored) String() string {
	switch r {
	case RestoredNothing:
		return "nothing"
	case RestoredCart:
		return "cart"
	case RestoredMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Restored(%d)", int(r))
	}
}

// Notifier is told the display name of every drink added to the cart.
type Notifier interface {
	Notify(itemName string)
}

type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithNotifier sets the receiver of "item added" notifications.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithIDGenerator overrides how line ids are produced.
func WithIDGenerator(gen func(drinkID string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store is the authoritative in-session cart. Every mutation is written
// through to Storage before it becomes visible in memory.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	key      string
	items    []LineItem
	selected map[string]int
	notifier Notifier
	newID    func(drinkID string) string
}

func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		key:      DefaultKey,
		selected: make(map[string]int),
		newID:    defaultLineID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultLineID(drinkID string) string {
	return drinkID + "-" + uuid.NewString()
}

// Restore replaces the in-memory cart with the stored snapshot. A missing or
// malformed snapshot leaves the cart empty. A storage read failure is
// returned and keeps the current in-memory cart, so a later write cannot
// overwrite the stored lines with an empty cart.
func (s *Store) Restore(ctx context.Context) (Restored, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		s.items = nil
		return RestoredNothing, nil
	}
	if err != nil {
		return RestoredNothing, fmt.Errorf("cart: restore %q: %w", s.key, err)
	}

	items, err := Decode(data)
	if err != nil {
		slog.WarnContext(ctx, "error loading cart, starting empty", "key", s.key, "error", err)
		s.items = nil
		return RestoredMalformed, nil
	}

	s.items = items
	return RestoredCart, nil
}

// SelectSize records an explicit size choice for a drink. It is session
// state only and is not persisted.
func (s *Store) SelectSize(d catalog.Drink, size int) error {
	if !d.HasSizes() {
		return fmt.Errorf("%w: %q", ErrNoSizes, d.ID)
	}
	if _, ok := d.Size(size); !ok {
		return fmt.Errorf("%w: %q %d oz", ErrSizeUnavailable, d.ID, size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[d.ID] = size
	return nil
}

// SelectedSizes returns a copy of the explicit size choices keyed by drink id.
func (s *Store) SelectedSizes() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.selected))
	for k, v := range s.selected {
		out[k] = v
	}
	return out
}

// AddItem appends a new line for d. For sized drinks the size is, in order:
// explicitSize when non-zero, the recorded selection, 12 oz for hot
// categories offering it, then the first variant. Identical adds are never
// merged; each produces its own line.
func (s *Store) AddItem(ctx context.Context, d catalog.Drink, explicitSize int) (LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.lineFor(d, explicitSize)
	if err != nil {
		return LineItem{}, err
	}
	item.ID = s.uniqueID(d.ID)

	next := make([]LineItem, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, item)

	if err := s.commit(ctx, next); err != nil {
		return LineItem{}, err
	}

	if s.notifier != nil {
		s.notifier.Notify(d.Name)
	}
	return item, nil
}

func (s *Store) lineFor(d catalog.Drink, explicitSize int) (LineItem, error) {
	if !d.HasSizes() {
		if explicitSize != 0 {
			return LineItem{}, fmt.Errorf("%w: %q", ErrNoSizes, d.ID)
		}
		if d.Price == nil {
			return LineItem{}, fmt.Errorf("cart: drink %q has no price", d.ID)
		}
		return LineItem{DrinkID: d.ID, Name: d.Name, Price: *d.Price}, nil
	}

	opt, err := s.resolveSize(d, explicitSize)
	if err != nil {
		return LineItem{}, err
	}
	return LineItem{
		DrinkID:      d.ID,
		Name:         fmt.Sprintf("%s (%d oz)", d.Name, opt.Size),
		Price:        opt.Price,
		SelectedSize: opt.Size,
	}, nil
}

func (s *Store) resolveSize(d catalog.Drink, explicitSize int) (catalog.SizeOption, error) {
	if explicitSize != 0 {
		opt, ok := d.Size(explicitSize)
		if !ok {
			return catalog.SizeOption{}, fmt.Errorf("%w: %q %d oz", ErrSizeUnavailable, d.ID, explicitSize)
		}
		return opt, nil
	}

	if size, ok := s.selected[d.ID]; ok {
		if opt, ok := d.Size(size); ok {
			return opt, nil
		}
	}

	if catalog.IsHotCategory(d.Category) {
		if opt, ok := d.Size(hotDefaultSize); ok {
			return opt, nil
		}
	}

	return d.Sizes[0], nil
}

func (s *Store) uniqueID(drinkID string) string {
	for {
		id := s.newID(drinkID)
		if !s.hasLine(id) {
			return id
		}
	}
}

func (s *Store) hasLine(id string) bool {
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// RemoveItem drops the line with the given id. Removing an absent id is a
// no-op and does not touch storage.
func (s *Store) RemoveItem(ctx context.Context, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, it := range s.items {
		if it.ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make([]LineItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)

	return s.commit(ctx, next)
}

// Clear removes the stored snapshot entirely and empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("cart: clear %q: %w", s.key, err)
	}
	s.items = nil
	return nil
}

// Replace overwrites the whole cart with items, writing through to storage.
func (s *Store) Replace(ctx context.Context, items []LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]LineItem, len(items))
	copy(next, items)
	return s.commit(ctx, next)
}

// Snapshot returns a copy of the cart in insertion order.
func (s *Store) Snapshot() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of lines in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// commit persists next and only then makes it the in-memory cart.
// Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []LineItem) error {
	data, err := Encode(next)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("cart: persist %q: %w", s.key, err)
	}
	s.items = next
	return nil
}
