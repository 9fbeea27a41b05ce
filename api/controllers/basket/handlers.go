package basket

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/worklabs/emarket-backend/api/responses"
	"github.com/worklabs/emarket-backend/api/validators"
	"github.com/worklabs/emarket-backend/internal/catalog"
	"github.com/worklabs/emarket-backend/pkg/db/models"
	pkgerrors "github.com/worklabs/emarket-backend/pkg/errors"
	"github.com/worklabs/emarket-backend/pkg/logger"
)

// Service is the slice of the basket aggregator the handlers need.
type Service interface {
	Snapshot(ctx context.Context) ([]models.BasketLine, error)
	AddItem(ctx context.Context, product catalog.Product, delta int) ([]models.BasketLine, error)
	RemoveItem(ctx context.Context, productName string) ([]models.BasketLine, error)
	Clear(ctx context.Context) error
}

// BasketFetch exposes the current basket with derived totals.
func BasketFetch(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket service unavailable"))
			return
		}

		lines, err := svc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBasketView(lines))
	}
}

// BasketAddItem adds units of a product to the basket.
func BasketAddItem(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket service unavailable"))
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delta := payload.Quantity
		if delta == 0 {
			delta = 1
		}

		product := catalog.Product{
			Name:     validators.SanitizeString(payload.Name, 0),
			Price:    payload.Price,
			ImageURL: validators.SanitizeString(payload.ImageURL, 0),
		}

		lines, err := svc.AddItem(r.Context(), product, delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBasketView(lines))
	}
}

// BasketRemoveItem removes one unit of the named product.
func BasketRemoveItem(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket service unavailable"))
			return
		}

		productName := chi.URLParam(r, "productName")
		if productName == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product name is required"))
			return
		}

		lines, err := svc.RemoveItem(r.Context(), productName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBasketView(lines))
	}
}

// BasketClear empties the basket.
func BasketClear(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket service unavailable"))
			return
		}

		if err := svc.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBasketView(nil))
	}
}
