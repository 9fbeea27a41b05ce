package basket

import (
	"context"
	stdErrors "errors"
	"sync"

	"gorm.io/gorm"

	"github.com/worklabs/emarket-backend/internal/catalog"
	"github.com/worklabs/emarket-backend/pkg/db/models"
	pkgerrors "github.com/worklabs/emarket-backend/pkg/errors"
	"github.com/worklabs/emarket-backend/pkg/logger"
	"github.com/worklabs/emarket-backend/pkg/stream"
)

// MaxQuantityPerProduct caps how many units of a single product a basket can
// hold. Adds that would push a line past the cap are ignored whole, the
// existing quantity stays untouched.
const MaxQuantityPerProduct = 99

// Service owns all basket mutations. Every mutation runs under a single lock
// so the read-modify-write against the store is serialized, and every
// successful mutation publishes a fresh snapshot to watchers.
type Service struct {
	store   Store
	log     *logger.Logger
	changes *stream.Broadcast[[]models.BasketLine]

	mu sync.Mutex
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		log:     log,
		changes: stream.NewBroadcast[[]models.BasketLine](),
	}
}

// AddItem adds delta units of product to the basket. A new line is created at
// min(delta, cap); an existing line only grows if the whole delta fits under
// the cap, otherwise the add is a silent no-op and the unchanged snapshot is
// returned. Mutations publish the updated snapshot to watchers.
func (s *Service) AddItem(ctx context.Context, product catalog.Product, delta int) ([]models.BasketLine, error) {
	if delta < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity delta must be at least 1")
	}
	if product.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}

	ctx = s.log.WithProduct(ctx, product.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.FindByName(ctx, product.Name)
	switch {
	case err == nil:
		next := existing.Quantity + delta
		if next > MaxQuantityPerProduct {
			// Adds past the cap come from ordinary rapid tapping; the line
			// stays as it is and the caller sees the unchanged basket.
			s.log.Info(ctx, "basket add ignored, quantity cap reached")
			return s.snapshotLocked(ctx)
		}
		existing.Quantity = next
		existing.UnitPrice = product.Price
		existing.ImageURL = product.ImageURL
		if err := s.store.Update(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update basket line")
		}
	case stdErrors.Is(err, gorm.ErrRecordNotFound):
		quantity := delta
		if quantity > MaxQuantityPerProduct {
			quantity = MaxQuantityPerProduct
		}
		line := &models.BasketLine{
			ProductName: product.Name,
			UnitPrice:   product.Price,
			ImageURL:    product.ImageURL,
			Quantity:    quantity,
		}
		if err := s.store.Insert(ctx, line); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert basket line")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read basket line")
	}

	s.log.Info(ctx, "basket item added")
	return s.publishSnapshotLocked(ctx)
}

// RemoveItem removes one unit of the named product. A line at quantity one is
// deleted; removing an absent product is a no-op.
func (s *Service) RemoveItem(ctx context.Context, productName string) ([]models.BasketLine, error) {
	if productName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}

	ctx = s.log.WithProduct(ctx, productName)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.FindByName(ctx, productName)
	switch {
	case stdErrors.Is(err, gorm.ErrRecordNotFound):
		return s.snapshotLocked(ctx)
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read basket line")
	}

	if existing.Quantity > 1 {
		existing.Quantity--
		if err := s.store.Update(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update basket line")
		}
	} else {
		if err := s.store.Delete(ctx, productName); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete basket line")
		}
	}

	s.log.Info(ctx, "basket item removed")
	return s.publishSnapshotLocked(ctx)
}

// Clear empties the basket unconditionally and publishes the empty snapshot.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearAll(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear basket")
	}

	s.log.Info(ctx, "basket cleared")
	if _, err := s.publishSnapshotLocked(ctx); err != nil {
		return err
	}
	return nil
}

// Snapshot returns the current basket contents in insertion order.
func (s *Service) Snapshot(ctx context.Context) ([]models.BasketLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(ctx)
}

// Watch subscribes to basket snapshots. The current contents are delivered
// immediately, then a fresh snapshot follows every mutation. The cancel
// function detaches the subscription; it also fires when ctx is done.
func (s *Service) Watch(ctx context.Context) (<-chan []models.BasketLine, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, primed := s.changes.Latest(); !primed {
		if _, err := s.publishSnapshotLocked(ctx); err != nil {
			return nil, nil, err
		}
	}

	ch, cancel := s.changes.Subscribe(ctx)
	return ch, cancel, nil
}

func (s *Service) snapshotLocked(ctx context.Context) ([]models.BasketLine, error) {
	lines, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list basket lines")
	}
	return lines, nil
}

func (s *Service) publishSnapshotLocked(ctx context.Context) ([]models.BasketLine, error) {
	lines, err := s.snapshotLocked(ctx)
	if err != nil {
		return nil, err
	}
	s.changes.Publish(lines)
	return lines, nil
}
