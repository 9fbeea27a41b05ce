package checkout

import (
	"context"
	stdErrors "errors"
	"io"
	"testing"
	"time"

	"github.com/worklabs/emarket-backend/internal/catalog"
	"github.com/worklabs/emarket-backend/pkg/db/models"
	pkgerrors "github.com/worklabs/emarket-backend/pkg/errors"
	"github.com/worklabs/emarket-backend/pkg/logger"
	"github.com/worklabs/emarket-backend/pkg/metrics"
)

type fakeBasket struct {
	lines       []models.BasketLine
	snapshotErr error

	clearCalls int
	clearErr   error
}

func (f *fakeBasket) Snapshot(context.Context) ([]models.BasketLine, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	out := make([]models.BasketLine, len(f.lines))
	copy(out, f.lines)
	return out, nil
}

func (f *fakeBasket) Clear(context.Context) error {
	f.clearCalls++
	return f.clearErr
}

type fakeSubmitter struct {
	orders []catalog.OrderRequest
	err    error

	// When set, SubmitOrder blocks until the channel is closed.
	gate chan struct{}
}

func (f *fakeSubmitter) SubmitOrder(_ context.Context, order catalog.OrderRequest) error {
	if f.gate != nil {
		<-f.gate
	}
	f.orders = append(f.orders, order)
	return f.err
}

func newTestCoordinator(basket *fakeBasket, submitter *fakeSubmitter) *Coordinator {
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewCoordinator(basket, basket, submitter, log, metrics.NewSubmissionMetrics(nil))
}

func awaitState(t *testing.T, ch <-chan SubmissionState, match func(SubmissionState) bool) SubmissionState {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case state := <-ch:
			if match(state) {
				return state
			}
		case <-deadline:
			t.Fatal("timed out waiting for state")
		}
	}
}

func TestSubmitHappyPath(t *testing.T) {
	t.Parallel()

	basket := &fakeBasket{lines: []models.BasketLine{
		{ProductName: "Latte", UnitPrice: 1200, ImageURL: "https://img/latte", Quantity: 2},
		{ProductName: "Americano", UnitPrice: 900, Quantity: 1},
	}}
	submitter := &fakeSubmitter{}
	coord := newTestCoordinator(basket, submitter)

	if err := coord.Submit(context.Background(), "1 Main St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if basket.clearCalls != 1 {
		t.Fatalf("clear called %d times, want exactly 1", basket.clearCalls)
	}
	if len(submitter.orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(submitter.orders))
	}

	order := submitter.orders[0]
	if order.DeliveryAddress != "1 Main St" {
		t.Fatalf("delivery address = %q", order.DeliveryAddress)
	}
	wantNames := []string{"Latte", "Latte", "Americano"}
	if len(order.Products) != len(wantNames) {
		t.Fatalf("expected %d product entries, got %d", len(wantNames), len(order.Products))
	}
	for i, name := range wantNames {
		if order.Products[i].Name != name {
			t.Fatalf("product[%d] = %q, want %q", i, order.Products[i].Name, name)
		}
	}

	if state := coord.State(); !state.IsSuccess {
		t.Fatalf("final state %+v, want success", state)
	}
}

func TestSubmitDefaultsBlankAddress(t *testing.T) {
	t.Parallel()

	basket := &fakeBasket{lines: []models.BasketLine{
		{ProductName: "Latte", UnitPrice: 1200, Quantity: 1},
	}}
	submitter := &fakeSubmitter{}
	coord := newTestCoordinator(basket, submitter)

	if err := coord.Submit(context.Background(), "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := submitter.orders[0].DeliveryAddress; got != DefaultDeliveryAddress {
		t.Fatalf("delivery address = %q, want %q", got, DefaultDeliveryAddress)
	}
}

func TestSubmitPublishesInFlightBeforeTerminal(t *testing.T) {
	t.Parallel()

	basket := &fakeBasket{lines: []models.BasketLine{
		{ProductName: "Latte", UnitPrice: 1200, Quantity: 1},
	}}
	submitter := &fakeSubmitter{gate: make(chan struct{})}
	coord := newTestCoordinator(basket, submitter)

	ch, cancel := coord.Watch(context.Background())
	defer cancel()

	awaitState(t, ch, func(s SubmissionState) bool { return s == StateIdle() })

	done := make(chan error, 1)
	go func() { done <- coord.Submit(context.Background(), "") }()

	awaitState(t, ch, func(s SubmissionState) bool { return s.IsLoading })
	close(submitter.gate)

	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := awaitState(t, ch, SubmissionState.Terminal)
	if !state.IsSuccess {
		t.Fatalf("terminal state %+v, want success", state)
	}
}

func TestSubmitUpstreamFailureKeepsBasket(t *testing.T) {
	t.Parallel()

	basket := &fakeBasket{lines: []models.BasketLine{
		{ProductName: "Latte", UnitPrice: 1200, Quantity: 1},
	}}
	submitter := &fakeSubmitter{err: pkgerrors.New(pkgerrors.CodeDependency, "store unavailable")}
	coord := newTestCoordinator(basket, submitter)

	err := coord.Submit(context.Background(), "")
	if err == nil {
		t.Fatal("expected upstream failure")
	}
	if basket.clearCalls != 0 {
		t.Fatalf("clear called %d times, want 0", basket.clearCalls)
	}
	state := coord.State()
	if state.IsSuccess || state.Error == "" {
		t.Fatalf("final state %+v, want failure", state)
	}
}

func TestSubmitSnapshotFailureSkipsUpstream(t *testing.T) {
	t.Parallel()

	basket := &fakeBasket{snapshotErr: stdErrors.New("disk gone")}
	submitter := &fakeSubmitter{}
	coord := newTestCoordinator(basket, submitter)

	if err := coord.Submit(context.Background(), ""); err == nil {
		t.Fatal("expected snapshot failure")
	}
	if len(submitter.orders) != 0 {
		t.Fatalf("upstream called with %d orders, want 0", len(submitter.orders))
	}
	if basket.clearCalls != 0 {
		t.Fatalf("clear called %d times, want 0", basket.clearCalls)
	}
}

func TestSubmitEmptyBasketSkipsUpstream(t *testing.T) {
	t.Parallel()

	basket := &fakeBasket{}
	submitter := &fakeSubmitter{}
	coord := newTestCoordinator(basket, submitter)

	err := coord.Submit(context.Background(), "")
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error type: %v", err)
	}
	if len(submitter.orders) != 0 || basket.clearCalls != 0 {
		t.Fatal("empty basket must not reach upstream or clear")
	}
}

func TestSubmitClearFailureReportsFailure(t *testing.T) {
	t.Parallel()

	basket := &fakeBasket{
		lines:    []models.BasketLine{{ProductName: "Latte", UnitPrice: 1200, Quantity: 1}},
		clearErr: stdErrors.New("locked"),
	}
	submitter := &fakeSubmitter{}
	coord := newTestCoordinator(basket, submitter)

	if err := coord.Submit(context.Background(), ""); err == nil {
		t.Fatal("expected clear failure to surface")
	}
	state := coord.State()
	if state.IsSuccess {
		t.Fatalf("state %+v, want failure while basket still holds the order", state)
	}
	if len(submitter.orders) != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", len(submitter.orders))
	}
}

func TestSubmitRejectsConcurrentAttempt(t *testing.T) {
	t.Parallel()

	basket := &fakeBasket{lines: []models.BasketLine{
		{ProductName: "Latte", UnitPrice: 1200, Quantity: 1},
	}}
	submitter := &fakeSubmitter{gate: make(chan struct{})}
	coord := newTestCoordinator(basket, submitter)

	done := make(chan error, 1)
	go func() { done <- coord.Submit(context.Background(), "") }()

	// Wait for the first attempt to take the in-flight slot.
	deadline := time.After(2 * time.Second)
	for !coord.State().IsLoading {
		select {
		case <-deadline:
			t.Fatal("first attempt never reached in-flight")
		case <-time.After(5 * time.Millisecond):
		}
	}

	err := coord.Submit(context.Background(), "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("second attempt error = %v, want conflict", err)
	}

	close(submitter.gate)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if basket.clearCalls != 1 {
		t.Fatalf("clear called %d times, want exactly 1", basket.clearCalls)
	}
}
