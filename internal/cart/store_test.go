package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	items     []LineItem
	loadErr   error
	saveErr   error
	saveCalls int
}

func (f *fakeStorage) Load(_ context.Context) ([]LineItem, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]LineItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeStorage) Save(_ context.Context, items []LineItem) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.items = make([]LineItem, len(items))
	copy(f.items, items)
	return nil
}

func newTestStore(t *testing.T, storage *fakeStorage) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	s := NewStore(storage, logger)
	s.Load(context.Background())
	return s
}

func TestAddDistinctProducts(t *testing.T) {
	s := newTestStore(t, &fakeStorage{})
	ctx := context.Background()

	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10}, 2)
	s.Add(ctx, Product{ID: "p2", Name: "Star Charm", Price: 15}, 1)
	s.Add(ctx, Product{ID: "p3", Name: "Moon Charm", Price: 12.5}, 3)

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 6, s.TotalQuantity())
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "p2", items[1].ID)
	assert.Equal(t, "p3", items[2].ID)
}

func TestAddSameProductMergesQuantity(t *testing.T) {
	s := newTestStore(t, &fakeStorage{})
	ctx := context.Background()

	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10, Image: "img-1"}, 2)
	// A later add with different name/price must not overwrite the
	// snapshot captured at first add.
	s.Add(ctx, Product{ID: "p1", Name: "Renamed", Price: 99, Image: "img-2"}, 3)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "Heart Charm", items[0].Name)
	assert.Equal(t, 10.0, items[0].Price)
	assert.Equal(t, "img-1", items[0].Image)
}

func TestAdjustQuantity(t *testing.T) {
	s := newTestStore(t, &fakeStorage{})
	ctx := context.Background()

	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10}, 2)

	s.AdjustQuantity(ctx, "p1", Increment)
	require.Equal(t, 3, s.Items()[0].Quantity)

	s.AdjustQuantity(ctx, "p1", Decrement)
	s.AdjustQuantity(ctx, "p1", Decrement)
	require.Len(t, s.Items(), 1)
	require.Equal(t, 1, s.Items()[0].Quantity)

	// Decrement at quantity 1 removes the line item.
	s.AdjustQuantity(ctx, "p1", Decrement)
	assert.Empty(t, s.Items())
}

func TestAdjustQuantityUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t, &fakeStorage{})
	ctx := context.Background()

	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10}, 1)
	s.AdjustQuantity(ctx, "ghost", Increment)

	require.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestRemoveUnknownIDLeavesCartUnchanged(t *testing.T) {
	s := newTestStore(t, &fakeStorage{})
	ctx := context.Background()

	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10}, 1)
	s.Add(ctx, Product{ID: "p2", Name: "Star Charm", Price: 15}, 2)
	before := s.Items()

	s.Remove(ctx, "ghost")

	assert.Equal(t, before, s.Items())
}

func TestRemove(t *testing.T) {
	s := newTestStore(t, &fakeStorage{})
	ctx := context.Background()

	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10}, 1)
	s.Add(ctx, Product{ID: "p2", Name: "Star Charm", Price: 15}, 2)

	s.Remove(ctx, "p1")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
}

func TestTotalPriceRecomputedAfterEveryMutation(t *testing.T) {
	s := newTestStore(t, &fakeStorage{})
	ctx := context.Background()

	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10}, 2)
	s.Add(ctx, Product{ID: "p2", Name: "Star Charm", Price: 15}, 1)
	assert.Equal(t, 35.0, s.TotalPrice())

	s.AdjustQuantity(ctx, "p2", Increment)
	assert.Equal(t, 50.0, s.TotalPrice())

	s.Remove(ctx, "p1")
	assert.Equal(t, 30.0, s.TotalPrice())

	s.Clear(ctx)
	assert.Equal(t, 0.0, s.TotalPrice())
	assert.Equal(t, 0, s.TotalQuantity())
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := &fakeStorage{}
	ctx := context.Background()

	s := newTestStore(t, storage)
	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10, Image: "img-1"}, 2)
	s.Add(ctx, Product{ID: "p2", Name: "Star Charm", Price: 15}, 1)

	// A fresh store over the same storage sees the identical snapshot.
	reloaded := newTestStore(t, storage)
	assert.Equal(t, s.Items(), reloaded.Items())
	assert.Equal(t, s.TotalQuantity(), reloaded.TotalQuantity())
}

func TestEveryMutationPersists(t *testing.T) {
	storage := &fakeStorage{}
	ctx := context.Background()

	s := newTestStore(t, storage)
	s.Add(ctx, Product{ID: "p1", Name: "Heart Charm", Price: 10}, 1)
	s.AdjustQuantity(ctx, "p1", Increment)
	s.Remove(ctx, "p1")
	s.Clear(ctx)

	assert.Equal(t, 4, storage.saveCalls)
}

func TestSaveSuppressedBeforeLoad(t *testing.T) {
	storage := &fakeStorage{items: []LineItem{{ID: "p1", Name: "Heart Charm", Price: 10, Quantity: 1}}}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s := NewStore(storage, logger)
	s.Add(context.Background(), Product{ID: "p2", Name: "Star Charm", Price: 15}, 1)

	// The not-yet-loaded store must not clobber the stored snapshot.
	assert.Equal(t, 0, storage.saveCalls)
	require.Len(t, storage.items, 1)
	assert.Equal(t, "p1", storage.items[0].ID)
}

func TestLoadFailureYieldsEmptyCart(t *testing.T) {
	storage := &fakeStorage{loadErr: errors.New("corrupt snapshot")}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s := NewStore(storage, logger)
	s.Load(context.Background())

	assert.Empty(t, s.Items())

	// The store is usable and persists after a failed load.
	s.Add(context.Background(), Product{ID: "p1", Name: "Heart Charm", Price: 10}, 1)
	assert.Equal(t, 1, storage.saveCalls)
}

func TestDrawerVisibility(t *testing.T) {
	s := newTestStore(t, &fakeStorage{})

	assert.False(t, s.DrawerOpen())
	s.OpenDrawer()
	assert.True(t, s.DrawerOpen())
	s.CloseDrawer()
	assert.False(t, s.DrawerOpen())
}

func TestNewStoreNilStoragePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewStore(nil, logrus.New())
	})
}
