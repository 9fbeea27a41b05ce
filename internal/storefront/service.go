package storefront

import (
	"context"

	"github.com/worklabs/emarket-backend/internal/catalog"
	pkgerrors "github.com/worklabs/emarket-backend/pkg/errors"
	"github.com/worklabs/emarket-backend/pkg/logger"
)

// CatalogReader is the slice of the upstream client the storefront needs.
type CatalogReader interface {
	FetchStoreInfo(ctx context.Context) (*catalog.StoreInfo, error)
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
}

// StoreView is the presentation shape of the store header: the raw upstream
// timestamps are collapsed to display clocks, with fixed fallbacks when the
// upstream sends something unparseable.
type StoreView struct {
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	OpeningHours string  `json:"openingHours"`
	ClosingHours string  `json:"closingHours"`
}

// Service serves the read-only storefront surface backed by the upstream
// store API.
type Service struct {
	upstream CatalogReader
	log      *logger.Logger
}

func NewService(upstream CatalogReader, log *logger.Logger) *Service {
	return &Service{upstream: upstream, log: log}
}

// Store fetches the store header and formats its opening hours for display.
func (s *Service) Store(ctx context.Context) (StoreView, error) {
	info, err := s.upstream.FetchStoreInfo(ctx)
	if err != nil {
		return StoreView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch store info")
	}

	return StoreView{
		Name:         info.Name,
		Rating:       info.Rating,
		OpeningHours: catalog.FormatClock(info.OpeningTime, catalog.FallbackOpening),
		ClosingHours: catalog.FormatClock(info.ClosingTime, catalog.FallbackClosing),
	}, nil
}

// Products returns the upstream product list in upstream order.
func (s *Service) Products(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.upstream.FetchProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch products")
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}
