package controllers

import (
	"context"
	"net/http"

	"github.com/worklabs/emarket-backend/api/responses"
	"github.com/worklabs/emarket-backend/api/validators"
	"github.com/worklabs/emarket-backend/internal/checkout"
	pkgerrors "github.com/worklabs/emarket-backend/pkg/errors"
	"github.com/worklabs/emarket-backend/pkg/logger"
)

// SubmitOrderRequest carries the optional delivery address for a submission.
type SubmitOrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress" validate:"omitempty,max=500"`
}

// OrderCoordinator is the submission lifecycle surface the order controllers use.
type OrderCoordinator interface {
	Submit(ctx context.Context, deliveryAddress string) error
	State() checkout.SubmissionState
}

// OrderSubmit runs one submission attempt and reports its terminal state.
func OrderSubmit(coord OrderCoordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if coord == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order coordinator unavailable"))
			return
		}

		var payload SubmitOrderRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if err := coord.Submit(r.Context(), payload.DeliveryAddress); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, coord.State())
	}
}

// OrderStatus exposes the latest submission lifecycle state.
func OrderStatus(coord OrderCoordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if coord == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order coordinator unavailable"))
			return
		}

		responses.WriteSuccess(w, coord.State())
	}
}
