package basket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/worklabs/emarket-backend/internal/catalog"
	"github.com/worklabs/emarket-backend/pkg/db/models"
	pkgerrors "github.com/worklabs/emarket-backend/pkg/errors"
	"github.com/worklabs/emarket-backend/pkg/types"
)

type fakeService struct {
	lines []models.BasketLine

	addErr error

	addedProduct catalog.Product
	addedDelta   int
	removedName  string
	cleared      bool
}

func (f *fakeService) Snapshot(context.Context) ([]models.BasketLine, error) {
	return f.lines, nil
}

func (f *fakeService) AddItem(_ context.Context, product catalog.Product, delta int) ([]models.BasketLine, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.addedProduct = product
	f.addedDelta = delta
	return f.lines, nil
}

func (f *fakeService) RemoveItem(_ context.Context, productName string) ([]models.BasketLine, error) {
	f.removedName = productName
	return f.lines, nil
}

func (f *fakeService) Clear(context.Context) error {
	f.cleared = true
	return nil
}

func decodeBasketView(t *testing.T, resp *httptest.ResponseRecorder) BasketView {
	t.Helper()
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	var view BasketView
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("decode basket view: %v", err)
	}
	return view
}

func TestBasketFetchIncludesTotals(t *testing.T) {
	svc := &fakeService{lines: []models.BasketLine{
		{ProductName: "Latte", UnitPrice: 1000, Quantity: 2},
		{ProductName: "Americano", UnitPrice: 500, Quantity: 1},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/basket", nil)
	resp := httptest.NewRecorder()
	BasketFetch(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	view := decodeBasketView(t, resp)
	if view.TotalItems != 3 || view.TotalPrice != 2500 {
		t.Fatalf("unexpected totals %+v", view)
	}
	if view.FormattedTotalPrice != "2,500" {
		t.Fatalf("unexpected formatted total %q", view.FormattedTotalPrice)
	}
	if len(view.Items) != 2 || view.Items[0].LineTotal != 2000 {
		t.Fatalf("unexpected items %+v", view.Items)
	}
}

func TestBasketAddItemDefaultsQuantity(t *testing.T) {
	svc := &fakeService{}

	body := `{"name":"Latte","price":1200,"imageUrl":"https://img/latte"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/basket/items", strings.NewReader(body))
	resp := httptest.NewRecorder()
	BasketAddItem(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.addedDelta != 1 {
		t.Fatalf("delta = %d, want 1", svc.addedDelta)
	}
	if svc.addedProduct.Name != "Latte" || svc.addedProduct.Price != 1200 {
		t.Fatalf("unexpected product %+v", svc.addedProduct)
	}
}

func TestBasketAddItemRejectsMissingName(t *testing.T) {
	svc := &fakeService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/basket/items", strings.NewReader(`{"price":1200}`))
	resp := httptest.NewRecorder()
	BasketAddItem(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestBasketAddItemAtCapReturnsUnchangedBasket(t *testing.T) {
	svc := &fakeService{lines: []models.BasketLine{
		{ProductName: "Latte", UnitPrice: 1200, Quantity: 99},
	}}

	body := `{"name":"Latte","price":1200,"quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/basket/items", strings.NewReader(body))
	resp := httptest.NewRecorder()
	BasketAddItem(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	view := decodeBasketView(t, resp)
	if len(view.Items) != 1 || view.Items[0].Quantity != 99 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestBasketAddItemSurfacesServiceError(t *testing.T) {
	svc := &fakeService{addErr: pkgerrors.New(pkgerrors.CodeValidation, "product name is required")}

	body := `{"name":"Latte","price":1200,"quantity":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/basket/items", strings.NewReader(body))
	resp := httptest.NewRecorder()
	BasketAddItem(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "product name is required" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestBasketRemoveItemUsesPathParam(t *testing.T) {
	svc := &fakeService{}

	router := chi.NewRouter()
	router.Delete("/api/v1/basket/items/{productName}", BasketRemoveItem(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/basket/items/Latte", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.removedName != "Latte" {
		t.Fatalf("removed %q, want Latte", svc.removedName)
	}
}

func TestBasketClear(t *testing.T) {
	svc := &fakeService{}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/basket", nil)
	resp := httptest.NewRecorder()
	BasketClear(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatal("clear was not invoked")
	}
	view := decodeBasketView(t, resp)
	if len(view.Items) != 0 || view.TotalItems != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}
