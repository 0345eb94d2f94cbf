package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ordersync/internal/logger"
	"ordersync/internal/metrics"
	"ordersync/internal/models"
	"ordersync/internal/services/klaviyo"
	"ordersync/internal/services/shopify"
)

// OrdersAPI is the upstream storefront surface the sync driver consumes.
type OrdersAPI interface {
	GetOrders(ctx context.Context) ([]shopify.Order, error)
	GetOrdersSince(ctx context.Context, createdAtMin time.Time) ([]shopify.Order, error)
	GetCollects(ctx context.Context) ([]shopify.Collect, error)
	CatalogAPI
}

// Tracker records one event downstream.
type Tracker interface {
	Track(ctx context.Context, event *klaviyo.Event) error
}

// Publisher mirrors emitted events onto a stream. A publish failure is
// logged but never fails the sync; the tracker is the system of record.
type Publisher interface {
	Publish(ctx context.Context, event *klaviyo.Event) error
}

// RunStore persists run audit records. Run records are write-only for the
// syncer; no state is read back between runs.
type RunStore interface {
	CreateSyncRun(run *models.SyncRun) error
	SaveSyncRun(run *models.SyncRun) error
}

// Syncer drives full passes over Shopify orders, emitting one
// "Ordered Product" event per line item followed by one "Placed Order"
// event per order. Processing is sequential; an order-level failure stops
// the run.
type Syncer struct {
	api         OrdersAPI
	tracker     Tracker
	transformer *Transformer
	catalog     *Catalog
	metrics     *metrics.Registry
	logger      *logger.Logger

	// Optional collaborators, set before the first run.
	Publisher Publisher
	Store     RunStore

	Interval        time.Duration
	Window          time.Duration
	TestEmailDomain string
}

func New(api OrdersAPI, tracker Tracker, transformer *Transformer, m *metrics.Registry, logger *logger.Logger) *Syncer {
	return &Syncer{
		api:             api,
		tracker:         tracker,
		transformer:     transformer,
		catalog:         NewCatalog(api, m),
		metrics:         m,
		logger:          logger,
		Interval:        10 * time.Minute,
		Window:          30 * time.Minute,
		TestEmailDomain: "@example.com",
	}
}

// Historical fetches the full unfiltered order list once, processes every
// order, and returns.
func (s *Syncer) Historical(ctx context.Context) error {
	run := s.beginRun(models.SyncModeHistorical)

	counter, events, err := s.syncPass(ctx, func(ctx context.Context) ([]shopify.Order, error) {
		return s.api.GetOrders(ctx)
	})
	s.finishRun(run, counter, events, err)
	if err != nil {
		return err
	}

	s.logger.Info("Historical sync completed. Synced %d orders.", counter)
	return nil
}

// Periodic re-fetches a trailing time window on a fixed cadence until the
// context is cancelled. Wake times are computed against the anchor taken
// at entry, so time spent processing does not shift the cadence.
func (s *Syncer) Periodic(ctx context.Context) error {
	anchor := time.Now()

	for {
		run := s.beginRun(models.SyncModePeriodic)

		counter, events, err := s.syncPass(ctx, func(ctx context.Context) ([]shopify.Order, error) {
			return s.api.GetOrdersSince(ctx, time.Now().Add(-s.Window))
		})
		s.finishRun(run, counter, events, err)
		if err != nil {
			return err
		}

		s.logger.Info("Periodic sync completed. Running again in %s", s.Interval)

		wait := s.Interval - time.Since(anchor)%s.Interval
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// syncPass runs one full fetch-and-process cycle over the orders returned
// by fetch. It returns the count of non-test orders and events emitted.
func (s *Syncer) syncPass(ctx context.Context, fetch func(context.Context) ([]shopify.Order, error)) (int, int, error) {
	start := time.Now()

	orders, err := fetch(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	collects, err := s.api.GetCollects(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch collects: %w", err)
	}

	counter := 0
	events := 0
	for i := range orders {
		emitted, counted, err := s.syncOrder(ctx, &orders[i], collects)
		events += emitted
		if err != nil {
			return counter, events, err
		}
		if counted {
			counter++
			s.logger.Info("Syncing orders... order count: %d", counter)
		}
	}

	s.metrics.SyncDuration.Observe(time.Since(start).Seconds())
	return counter, events, nil
}

// syncOrder transforms and emits one order: a product event per line item,
// then the order event. The bool result reports whether the order counts
// toward the progress counter.
func (s *Syncer) syncOrder(ctx context.Context, order *shopify.Order, collects []shopify.Collect) (int, bool, error) {
	if order.Customer == nil || order.Customer.Email == "" {
		return 0, false, fmt.Errorf("order %d has no customer email", order.ID)
	}

	timestamp, err := s.transformer.Timestamp(order)
	if err != nil {
		return 0, false, err
	}

	customer := s.transformer.CustomerProperties(order)
	billing := s.transformer.BillingAddress(order)
	shipping := s.transformer.ShippingAddress(order)
	discounts := s.transformer.DiscountCodes(order)
	itemNames := s.transformer.ItemNames(order)
	brands := s.transformer.Vendors(order)

	collectIDs := s.transformer.CollectIDs(order, collects)
	categories, err := s.transformer.Categories(ctx, s.catalog, collectIDs)
	if err != nil {
		return 0, false, err
	}

	emitted := 0
	products := make(map[int64]shopify.Product, len(order.LineItems))
	for _, item := range order.LineItems {
		product, err := s.catalog.Product(ctx, item.ProductID)
		if err != nil {
			return emitted, false, err
		}
		products[item.ProductID] = product

		properties := s.transformer.ProductProperties(item, product, categories)
		if err := s.emit(ctx, s.transformer.ProductPayload(customer, properties, timestamp)); err != nil {
			return emitted, false, err
		}
		emitted++
	}

	items := s.transformer.OrderItems(order, products, categories)
	properties := s.transformer.OrderProperties(order, categories, itemNames, brands, discounts, items, billing, shipping)
	extended := s.transformer.ExtendedCustomerProperties(order)
	if err := s.emit(ctx, s.transformer.OrderPayload(extended, properties, timestamp)); err != nil {
		return emitted, false, err
	}
	emitted++

	s.metrics.OrdersProcessed.Inc()
	counted := !strings.HasSuffix(order.Customer.Email, s.TestEmailDomain)
	if !counted {
		s.metrics.OrdersExcluded.Inc()
	}
	return emitted, counted, nil
}

func (s *Syncer) emit(ctx context.Context, event *klaviyo.Event) error {
	if err := s.tracker.Track(ctx, event); err != nil {
		return err
	}
	s.metrics.EventsEmitted.WithLabelValues(event.Event).Inc()

	if s.Publisher != nil {
		if err := s.Publisher.Publish(ctx, event); err != nil {
			s.metrics.PublishFailures.Inc()
			s.logger.Warn("Failed to mirror %s event: %v", event.Event, err)
		}
	}
	return nil
}

func (s *Syncer) beginRun(mode string) *models.SyncRun {
	run := &models.SyncRun{
		Mode:      mode,
		Status:    models.SyncRunStatusRunning,
		StartedAt: time.Now(),
	}
	if s.Store != nil {
		if err := s.Store.CreateSyncRun(run); err != nil {
			s.logger.Warn("Failed to record sync run: %v", err)
		}
	}
	return run
}

func (s *Syncer) finishRun(run *models.SyncRun, counter, events int, runErr error) {
	now := time.Now()
	run.CompletedAt = &now
	run.OrdersSynced = counter
	run.EventsEmitted = events
	run.Status = models.SyncRunStatusCompleted
	if runErr != nil {
		run.Status = models.SyncRunStatusFailed
		message := runErr.Error()
		run.Error = &message
	}
	if s.Store != nil {
		if err := s.Store.SaveSyncRun(run); err != nil {
			s.logger.Warn("Failed to record sync run: %v", err)
		}
	}
}
