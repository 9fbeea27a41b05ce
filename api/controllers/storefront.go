package controllers

import (
	"context"
	"net/http"

	"github.com/worklabs/emarket-backend/api/responses"
	"github.com/worklabs/emarket-backend/internal/catalog"
	"github.com/worklabs/emarket-backend/internal/storefront"
	pkgerrors "github.com/worklabs/emarket-backend/pkg/errors"
	"github.com/worklabs/emarket-backend/pkg/logger"
)

// StorefrontService is the read surface the storefront controllers expose.
type StorefrontService interface {
	Store(ctx context.Context) (storefront.StoreView, error)
	Products(ctx context.Context) ([]catalog.Product, error)
}

// StoreFetch serves the store header with display-formatted opening hours.
func StoreFetch(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}

		view, err := svc.Store(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// ProductList serves the upstream catalog in upstream order.
func ProductList(svc StorefrontService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}

		products, err := svc.Products(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}
