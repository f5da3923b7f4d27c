package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
	"github.com/angelmondragon/pricing-engine-backend/pkg/metrics"
	"github.com/angelmondragon/pricing-engine-backend/pkg/redis"
)

// Service exposes the price resolution operations.
type Service interface {
	Quote(ctx context.Context, order OrderInput) (*QuoteDTO, error)
	QuoteBatch(ctx context.Context, orders []OrderInput) ([]QuoteDTO, error)
	Candidates(ctx context.Context, order OrderInput) (*BreakdownDTO, error)
}

// CatalogSource provides the product rows one calculation snapshots.
type CatalogSource interface {
	ListWithRules(ctx context.Context) ([]models.Product, error)
}

// DirectorySource provides the customer rows one calculation snapshots.
type DirectorySource interface {
	ListWithRules(ctx context.Context) ([]models.Customer, error)
}

// QuoteRecorder persists resolved quotes for later inspection.
type QuoteRecorder interface {
	RecordQuotes(ctx context.Context, quotes []models.OrderQuote) error
}

// service implements the pricing service.
type service struct {
	catalog   CatalogSource
	directory DirectorySource
	recorder  QuoteRecorder
	cache     *redis.Client
	cacheTTL  time.Duration
	metrics   *metrics.QuoteMetrics
	logg      *logger.Logger
}

// NewService constructs a pricing service. The cache, metrics, and recorder
// are optional; nil disables them.
func NewService(catalog CatalogSource, directory DirectorySource, recorder QuoteRecorder, cache *redis.Client, cacheTTL time.Duration, quoteMetrics *metrics.QuoteMetrics, logg *logger.Logger) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if directory == nil {
		return nil, fmt.Errorf("directory source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		catalog:   catalog,
		directory: directory,
		recorder:  recorder,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   quoteMetrics,
		logg:      logg,
	}, nil
}

// Quote prices a single order. Results are cached per (customer, product,
// quantity) for the configured TTL; rule changes therefore take up to one TTL
// to surface in cached quotes.
func (s *service) Quote(ctx context.Context, order OrderInput) (*QuoteDTO, error) {
	key := s.cacheKey(order)
	if cached, ok := s.cacheGet(ctx, key); ok {
		s.metrics.IncCacheHit()
		return cached, nil
	}
	s.metrics.IncCacheMiss()

	quotes, err := s.QuoteBatch(ctx, []OrderInput{order})
	if err != nil {
		return nil, err
	}
	quote := quotes[0]

	s.cacheSet(ctx, key, quote)
	return &quote, nil
}

// QuoteBatch prices every order against one consistent snapshot. The result
// slice is positionally aligned with the input; failed lookups yield ERROR
// entries instead of aborting.
func (s *service) QuoteBatch(ctx context.Context, orders []OrderInput) ([]QuoteDTO, error) {
	started := time.Now()

	catalog, directory, err := s.snapshot(ctx)
	if err != nil {
		s.metrics.ObserveBatch("snapshot_error", time.Since(started))
		return nil, err
	}

	engineOrders := make([]Order, 0, len(orders))
	for _, order := range orders {
		engineOrders = append(engineOrders, Order{
			CustomerID: order.CustomerID,
			ProductID:  order.ProductID,
			Quantity:   order.Quantity,
		})
	}

	results := SelectBest(engineOrders, catalog, directory)

	quotes := make([]QuoteDTO, 0, len(results))
	for _, result := range results {
		s.metrics.IncResolved(result.PriceType.String())
		quotes = append(quotes, toQuoteDTO(result))
	}

	s.record(ctx, orders, results)
	s.metrics.ObserveBatch("ok", time.Since(started))
	return quotes, nil
}

// Candidates prices a single order and exposes the full candidate breakdown.
// Unlike Quote, a failed lookup is returned as an error.
func (s *service) Candidates(ctx context.Context, order OrderInput) (*BreakdownDTO, error) {
	catalog, directory, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	engineOrder := Order{
		CustomerID: order.CustomerID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
	}
	set, err := ResolveCandidates(engineOrder, catalog, directory)
	if err != nil {
		return nil, err
	}

	selected := SelectBest([]Order{engineOrder}, catalog, directory)[0]

	breakdown := &BreakdownDTO{
		BasePrice:    set.BasePrice,
		LoyaltyPrice: set.LoyaltyPrice,
		TierPrice:    set.TierPrice,
		GroupPrices:  make([]GroupPriceDTO, 0, len(set.GroupPrices)),
		Selected:     toQuoteDTO(selected),
	}
	for _, group := range set.GroupPrices {
		breakdown.GroupPrices = append(breakdown.GroupPrices, GroupPriceDTO{
			Group: group.Group,
			Price: group.Price,
		})
	}
	return breakdown, nil
}

func (s *service) snapshot(ctx context.Context) (*Catalog, *Directory, error) {
	products, err := s.catalog.ListWithRules(ctx)
	if err != nil {
		return nil, nil, err
	}
	customers, err := s.directory.ListWithRules(ctx)
	if err != nil {
		return nil, nil, err
	}
	catalog, directory := SnapshotFromModels(products, customers)
	return catalog, directory, nil
}

// record persists the batch outcome. History is best effort; a write failure
// is logged and does not fail the quote.
func (s *service) record(ctx context.Context, orders []OrderInput, results []Result) {
	if s.recorder == nil || len(results) == 0 {
		return
	}

	rows := make([]models.OrderQuote, 0, len(results))
	for i, result := range results {
		rows = append(rows, models.OrderQuote{
			CustomerID: orders[i].CustomerID,
			ProductID:  orders[i].ProductID,
			Quantity:   orders[i].Quantity,
			ProductRef: result.ProductID,
			Price:      result.Price,
			PriceType:  result.PriceType,
		})
	}
	if err := s.recorder.RecordQuotes(ctx, rows); err != nil {
		s.logg.Error(ctx, "pricing: record quote history", err)
	}
}

func (s *service) cacheKey(order OrderInput) string {
	return s.cache.QuoteKey(
		strconv.Itoa(order.CustomerID),
		strconv.Itoa(order.ProductID),
		strconv.Itoa(order.Quantity),
	)
}

func (s *service) cacheGet(ctx context.Context, key string) (*QuoteDTO, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logg.Warn(ctx, "pricing: quote cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var quote QuoteDTO
	if err := json.Unmarshal([]byte(raw), &quote); err != nil {
		s.logg.Warn(ctx, "pricing: quote cache entry corrupt")
		return nil, false
	}
	return &quote, true
}

func (s *service) cacheSet(ctx context.Context, key string, quote QuoteDTO) {
	payload, err := json.Marshal(quote)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logg.Warn(ctx, "pricing: quote cache write failed")
	}
}
