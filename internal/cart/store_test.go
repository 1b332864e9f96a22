package cart

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/jcmexdev/greyden-storefront/internal/catalog"
)

func price(v float64) *float64 { return &v }

var (
	americano = catalog.Drink{
		ID: "americano", Name: "Americano", Category: "Hot Coffee",
		Sizes: []catalog.SizeOption{{Size: 8, Price: 60}, {Size: 12, Price: 70}, {Size: 16, Price: 80}},
	}
	matcha = catalog.Drink{
		ID: "matcha", Name: "Matcha Latte", Category: "Hot Non-Coffee",
		Sizes: []catalog.SizeOption{{Size: 8, Price: 90}, {Size: 16, Price: 115}},
	}
	icedLatte = catalog.Drink{
		ID: "iced-latte", Name: "Iced Latte", Category: "Iced Coffee",
		Sizes: []catalog.SizeOption{{Size: 16, Price: 90}, {Size: 12, Price: 75}},
	}
	croissant = catalog.Drink{
		ID: "croissant", Name: "Croissant", Category: "Bakery", Price: price(50),
	}
)

type recordingNotifier struct {
	names []string
}

func (r *recordingNotifier) Notify(name string) { r.names = append(r.names, name) }

// failingStorage wraps MemoryStorage and fails reads or writes on demand.
type failingStorage struct {
	*MemoryStorage
	failSet bool
	failGet bool
}

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryStorage.Set(ctx, key, value)
}

func (f *failingStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errors.New("io error")
	}
	return f.MemoryStorage.Get(ctx, key)
}

func sequentialIDs() func(string) string {
	n := 0
	return func(drinkID string) string {
		n++
		return fmt.Sprintf("%s-%d", drinkID, n)
	}
}

func TestAddItem_SizeResolution(t *testing.T) {
	tests := []struct {
		name      string
		drink     catalog.Drink
		selected  int
		explicit  int
		wantSize  int
		wantPrice float64
		wantName  string
	}{
		{"hot drink defaults to 12 oz", americano, 0, 0, 12, 70, "Americano (12 oz)"},
		{"hot drink without 12 oz takes first", matcha, 0, 0, 8, 90, "Matcha Latte (8 oz)"},
		{"cold drink takes first even with 12 oz", icedLatte, 0, 0, 16, 90, "Iced Latte (16 oz)"},
		{"selection beats hot default", americano, 16, 0, 16, 80, "Americano (16 oz)"},
		{"explicit beats selection", americano, 16, 8, 8, 60, "Americano (8 oz)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(NewMemoryStorage())
			if tt.selected != 0 {
				if err := s.SelectSize(tt.drink, tt.selected); err != nil {
					t.Fatalf("select size: %v", err)
				}
			}

			item, err := s.AddItem(context.Background(), tt.drink, tt.explicit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.SelectedSize != tt.wantSize {
				t.Errorf("expected size %d, got %d", tt.wantSize, item.SelectedSize)
			}
			if item.Price != tt.wantPrice {
				t.Errorf("expected price %v, got %v", tt.wantPrice, item.Price)
			}
			if item.Name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, item.Name)
			}
			if item.DrinkID != tt.drink.ID {
				t.Errorf("expected drink id %q, got %q", tt.drink.ID, item.DrinkID)
			}
		})
	}
}

func TestAddItem_FlatPrice(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	item, err := s.AddItem(context.Background(), croissant, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Price != 50 || item.Name != "Croissant" || item.SelectedSize != 0 {
		t.Errorf("unexpected line %+v", item)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("expected 1 line, got %d", got)
	}
}

func TestAddItem_NeverMerges(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	ctx := context.Background()

	a, _ := s.AddItem(ctx, americano, 12)
	b, _ := s.AddItem(ctx, americano, 12)

	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both %q", a.ID)
	}
	if got := s.Len(); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
}

func TestAddItem_RerollsCollidingID(t *testing.T) {
	calls := 0
	gen := func(drinkID string) string {
		calls++
		if calls <= 2 {
			return "fixed"
		}
		return fmt.Sprintf("id-%d", calls)
	}
	s := NewStore(NewMemoryStorage(), WithIDGenerator(gen))
	ctx := context.Background()

	first, _ := s.AddItem(ctx, croissant, 0)
	second, err := s.AddItem(ctx, croissant, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != "fixed" || second.ID != "id-3" {
		t.Errorf("expected ids fixed and id-3, got %q and %q", first.ID, second.ID)
	}
}

func TestAddItem_Rejects(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	ctx := context.Background()

	if _, err := s.AddItem(ctx, americano, 20); !errors.Is(err, ErrSizeUnavailable) {
		t.Errorf("expected ErrSizeUnavailable, got %v", err)
	}
	if _, err := s.AddItem(ctx, croissant, 12); !errors.Is(err, ErrNoSizes) {
		t.Errorf("expected ErrNoSizes, got %v", err)
	}
	if got := s.Len(); got != 0 {
		t.Errorf("rejected adds must not change the cart, got %d lines", got)
	}
}

func TestAddItem_Notifies(t *testing.T) {
	n := &recordingNotifier{}
	s := NewStore(NewMemoryStorage(), WithNotifier(n))

	if _, err := s.AddItem(context.Background(), americano, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(n.names, []string{"Americano"}) {
		t.Errorf("expected notification for Americano, got %v", n.names)
	}
}

func TestSelectSize(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	if err := s.SelectSize(americano, 16); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SelectSize(americano, 20); !errors.Is(err, ErrSizeUnavailable) {
		t.Errorf("expected ErrSizeUnavailable, got %v", err)
	}
	if err := s.SelectSize(croissant, 8); !errors.Is(err, ErrNoSizes) {
		t.Errorf("expected ErrNoSizes, got %v", err)
	}

	if got := s.SelectedSizes(); !reflect.DeepEqual(got, map[string]int{"americano": 16}) {
		t.Errorf("unexpected selections %v", got)
	}
}

func TestRemoveItem_KeepsOrderAndIdentity(t *testing.T) {
	s := NewStore(NewMemoryStorage(), WithIDGenerator(sequentialIDs()))
	ctx := context.Background()

	a, _ := s.AddItem(ctx, americano, 0)
	b, _ := s.AddItem(ctx, croissant, 0)
	c, _ := s.AddItem(ctx, matcha, 0)

	if err := s.RemoveItem(ctx, b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot(); !reflect.DeepEqual(got, []LineItem{a, c}) {
		t.Errorf("expected [a c], got %+v", got)
	}

	if err := s.RemoveItem(ctx, "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Len(); got != 2 {
		t.Errorf("removing an absent id must be a no-op, got %d lines", got)
	}
}

func TestStore_WriteThroughRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	s := NewStore(storage)
	s.AddItem(ctx, americano, 16)
	s.AddItem(ctx, croissant, 0)
	s.AddItem(ctx, americano, 16)
	want := s.Snapshot()

	restored := NewStore(storage)
	got, err := restored.Restore(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != RestoredCart {
		t.Errorf("expected RestoredCart, got %v", got)
	}
	if !reflect.DeepEqual(restored.Snapshot(), want) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", want, restored.Snapshot())
	}
}

func TestRestore_Outcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		s := NewStore(NewMemoryStorage())
		got, err := s.Restore(ctx)
		if err != nil || got != RestoredNothing || s.Len() != 0 {
			t.Errorf("expected empty RestoredNothing, got %v, %v, %d lines", got, err, s.Len())
		}
	})

	t.Run("malformed", func(t *testing.T) {
		storage := NewMemoryStorage()
		storage.Set(ctx, DefaultKey, []byte("{not json"))
		s := NewStore(storage)
		got, err := s.Restore(ctx)
		if err != nil || got != RestoredMalformed || s.Len() != 0 {
			t.Errorf("expected empty RestoredMalformed, got %v, %v, %d lines", got, err, s.Len())
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		storage := &failingStorage{MemoryStorage: NewMemoryStorage(), failGet: true}
		s := NewStore(storage)
		if _, err := s.Restore(ctx); err == nil {
			t.Error("expected an error")
		}
		if s.Len() != 0 {
			t.Error("cart must be empty after a failed restore")
		}
	})

	t.Run("custom key", func(t *testing.T) {
		storage := NewMemoryStorage()
		NewStore(storage, WithKey("other")).AddItem(ctx, croissant, 0)

		if got, _ := NewStore(storage).Restore(ctx); got != RestoredNothing {
			t.Errorf("default key must not see other key, got %v", got)
		}
		if got, _ := NewStore(storage, WithKey("other")).Restore(ctx); got != RestoredCart {
			t.Errorf("expected RestoredCart, got %v", got)
		}
	})
}

func TestRestore_ReadFailureKeepsCart(t *testing.T) {
	storage := &failingStorage{MemoryStorage: NewMemoryStorage()}
	s := NewStore(storage)
	ctx := context.Background()

	s.AddItem(ctx, croissant, 0)
	s.AddItem(ctx, croissant, 0)
	before := s.Snapshot()

	storage.failGet = true
	if _, err := s.Restore(ctx); err == nil {
		t.Fatal("expected an error")
	}
	if got := s.Snapshot(); !reflect.DeepEqual(got, before) {
		t.Fatalf("failed restore must keep the cart, got %+v", got)
	}

	storage.failGet = false
	if _, err := s.AddItem(ctx, croissant, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := storage.Get(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 stored lines, got %d", len(items))
	}
}

func TestStore_FailedWriteRollsBack(t *testing.T) {
	storage := &failingStorage{MemoryStorage: NewMemoryStorage()}
	s := NewStore(storage)
	ctx := context.Background()

	kept, _ := s.AddItem(ctx, croissant, 0)

	storage.failSet = true
	if _, err := s.AddItem(ctx, americano, 0); err == nil {
		t.Fatal("expected an error")
	}
	if err := s.RemoveItem(ctx, kept.ID); err == nil {
		t.Fatal("expected an error")
	}
	if got := s.Snapshot(); !reflect.DeepEqual(got, []LineItem{kept}) {
		t.Errorf("memory diverged from storage: %+v", got)
	}

	storage.failSet = false
	reloaded := NewStore(storage)
	reloaded.Restore(ctx)
	if !reflect.DeepEqual(reloaded.Snapshot(), s.Snapshot()) {
		t.Error("storage and memory disagree")
	}
}

func TestClear(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	s := NewStore(storage)
	s.AddItem(ctx, croissant, 0)

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Error("expected empty cart")
	}
	if _, err := storage.Get(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected key removed, got %v", err)
	}

	if got, _ := NewStore(storage).Restore(ctx); got != RestoredNothing {
		t.Errorf("expected RestoredNothing after clear, got %v", got)
	}
}

func TestReplace(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	s := NewStore(storage)

	items := []LineItem{{ID: "a", DrinkID: "x", Name: "X", Price: 10}}
	if err := s.Replace(ctx, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := NewStore(storage)
	restored.Restore(ctx)
	if !reflect.DeepEqual(restored.Snapshot(), items) {
		t.Errorf("expected %+v, got %+v", items, restored.Snapshot())
	}
}

func TestEncode_EmptyCart(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}

func TestDecode_RejectsLineWithoutID(t *testing.T) {
	if _, err := Decode([]byte(`[{"name":"x","price":1}]`)); err == nil {
		t.Error("expected an error")
	}
}
