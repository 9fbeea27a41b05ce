package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/worklabs/emarket-backend/internal/catalog"
	"github.com/worklabs/emarket-backend/pkg/db/models"
	pkgerrors "github.com/worklabs/emarket-backend/pkg/errors"
	"github.com/worklabs/emarket-backend/pkg/logger"
	"github.com/worklabs/emarket-backend/pkg/metrics"
	"github.com/worklabs/emarket-backend/pkg/stream"
)

// DefaultDeliveryAddress stands in when the caller supplies no address.
const DefaultDeliveryAddress = "-"

// SnapshotReader provides the basket contents an order is built from.
type SnapshotReader interface {
	Snapshot(ctx context.Context) ([]models.BasketLine, error)
}

// BasketClearer empties the basket after a successful submission.
type BasketClearer interface {
	Clear(ctx context.Context) error
}

// OrderSubmitter delivers an assembled order to the upstream store API.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order catalog.OrderRequest) error
}

// Coordinator drives the order submission lifecycle. At most one attempt is
// in flight at a time; every attempt publishes InFlight before its terminal
// state, and the basket is cleared exactly once, only after the upstream has
// acknowledged the order.
type Coordinator struct {
	basket    SnapshotReader
	clearer   BasketClearer
	submitter OrderSubmitter
	log       *logger.Logger
	metrics   *metrics.SubmissionMetrics

	states *stream.Broadcast[SubmissionState]

	mu       sync.Mutex
	inFlight bool
}

func NewCoordinator(
	basket SnapshotReader,
	clearer BasketClearer,
	submitter OrderSubmitter,
	log *logger.Logger,
	submissionMetrics *metrics.SubmissionMetrics,
) *Coordinator {
	c := &Coordinator{
		basket:    basket,
		clearer:   clearer,
		submitter: submitter,
		log:       log,
		metrics:   submissionMetrics,
		states:    stream.NewBroadcast[SubmissionState](),
	}
	c.states.Publish(StateIdle())
	return c
}

// Submit runs one submission attempt to completion and returns its terminal
// error, if any. A second call while an attempt is in flight is rejected
// without touching the lifecycle of the running attempt.
func (c *Coordinator) Submit(ctx context.Context, deliveryAddress string) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeConflict, "order submission already in flight")
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	attemptID := newAttemptID()
	ctx = c.log.WithAttempt(ctx, attemptID)
	start := time.Now()

	c.states.Publish(StateInFlight())
	c.log.Info(ctx, "order submission started")

	lines, err := c.basket.Snapshot(ctx)
	if err != nil {
		return c.fail(ctx, start, "snapshot_read", err)
	}
	if len(lines) == 0 {
		err := pkgerrors.New(pkgerrors.CodeValidation, "basket is empty")
		return c.fail(ctx, start, "empty_basket", err)
	}

	order := buildOrder(lines, deliveryAddress)
	if err := c.submitter.SubmitOrder(ctx, order); err != nil {
		return c.fail(ctx, start, "upstream", err)
	}

	if err := c.clearer.Clear(ctx); err != nil {
		// The upstream accepted the order but the basket still holds it. The
		// attempt is reported as failed so observers never see a success
		// alongside a non-empty basket.
		c.log.Error(ctx, "basket clear failed after accepted order", err)
		return c.fail(ctx, start, "basket_clear", err)
	}

	c.states.Publish(StateSucceeded())
	c.metrics.IncSuccess()
	c.metrics.ObserveDuration("success", time.Since(start))
	c.log.Info(ctx, "order submission succeeded")
	return nil
}

// Watch subscribes to lifecycle states, replaying the latest one first.
func (c *Coordinator) Watch(ctx context.Context) (<-chan SubmissionState, func()) {
	return c.states.Subscribe(ctx)
}

// State returns the most recently published lifecycle state.
func (c *Coordinator) State() SubmissionState {
	state, _ := c.states.Latest()
	return state
}

func (c *Coordinator) fail(ctx context.Context, start time.Time, reason string, err error) error {
	c.states.Publish(StateFailed(publicMessage(err)))
	c.metrics.IncFailure(reason)
	c.metrics.ObserveDuration("failure", time.Since(start))
	c.log.Error(ctx, "order submission failed", err)
	return err
}

// buildOrder expands basket lines into the upstream order payload, one product
// entry per unit, preserving line order. A blank address is replaced by the
// default placeholder.
func buildOrder(lines []models.BasketLine, deliveryAddress string) catalog.OrderRequest {
	products := make([]catalog.Product, 0, totalUnits(lines))
	for _, line := range lines {
		for i := 0; i < line.Quantity; i++ {
			products = append(products, catalog.Product{
				Name:     line.ProductName,
				Price:    line.UnitPrice,
				ImageURL: line.ImageURL,
			})
		}
	}

	address := strings.TrimSpace(deliveryAddress)
	if address == "" {
		address = DefaultDeliveryAddress
	}

	return catalog.OrderRequest{
		Products:        products,
		DeliveryAddress: address,
	}
}

func totalUnits(lines []models.BasketLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

func newAttemptID() string {
	return uuid.NewString()
}

func publicMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	if err != nil {
		return err.Error()
	}
	return "order submission failed"
}
