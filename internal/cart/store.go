package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store holds the line items of one cart in insertion order, together with
// the drawer visibility flag, and re-persists the full snapshot through
// its Storage after every mutation.
//
// Saves are suppressed until Load has run once, so a store that has not
// hydrated yet can never clobber a previously persisted snapshot with an
// empty one.
type Store struct {
	mu         sync.Mutex
	items      []LineItem
	drawerOpen bool
	loaded     bool

	storage Storage
	log     *logrus.Entry
}

func NewStore(storage Storage, logger *logrus.Logger) *Store {
	if storage == nil {
		panic("cart: NewStore called with nil storage")
	}
	return &Store{
		storage: storage,
		log:     logrus.NewEntry(logger).WithField("component", "cart"),
	}
}

// Load hydrates the store from its storage. An absent or unreadable
// snapshot leaves the cart empty; it is logged, never surfaced as an
// error. After Load returns, mutations persist.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.storage.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("loading cart snapshot failed, starting empty")
		items = nil
	}
	s.items = items
	s.loaded = true
}

// Add merges a product into the cart: if a line item with the same id
// exists its quantity grows by quantity, otherwise a new line item is
// appended. Callers pass positive quantities.
func (s *Store) Add(ctx context.Context, p Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity += quantity
			s.persist(ctx)
			return
		}
	}
	s.items = append(s.items, LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: quantity,
		Image:    p.Image,
	})
	s.persist(ctx)
}

// Remove deletes the line item with the given id. Removing an absent id is
// a harmless no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.persist(ctx)
}

// AdjustQuantity increments or decrements one item's quantity. A decrement
// at quantity 1 removes the item. Unknown ids are ignored.
func (s *Store) AdjustQuantity(ctx context.Context, id string, dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		switch dir {
		case Increment:
			s.items[i].Quantity++
		case Decrement:
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
			} else {
				s.items = append(s.items[:i], s.items[i+1:]...)
			}
		}
		break
	}
	s.persist(ctx)
}

// Clear empties the cart and persists the empty snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalQuantity is the sum of all line item quantities, recomputed on
// every call.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is Σ(price × quantity) over the current line items.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (s *Store) OpenDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = true
}

func (s *Store) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = false
}

func (s *Store) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawerOpen
}

// persist writes the current snapshot. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if !s.loaded {
		return
	}
	if err := s.storage.Save(ctx, s.items); err != nil {
		s.log.WithError(err).Error("persisting cart snapshot failed")
	}
}
