package sync

import (
	"context"

	"ordersync/internal/metrics"
	"ordersync/internal/services/shopify"
)

// CatalogAPI is the slice of the Shopify client the catalog needs.
type CatalogAPI interface {
	GetCollection(ctx context.Context, collectionID int64) (shopify.Collection, error)
	GetProduct(ctx context.Context, productID int64) (shopify.Product, error)
}

// Catalog memoizes per-ID collection and product lookups for the lifetime
// of one sync session. Each distinct ID is fetched at most once; an empty
// result for an ID the upstream has no record of is cached like any other
// value. Lookup errors are not cached, so a failed fetch may be retried.
type Catalog struct {
	api     CatalogAPI
	metrics *metrics.Registry

	collectionNames map[int64]string
	products        map[int64]shopify.Product
}

func NewCatalog(api CatalogAPI, m *metrics.Registry) *Catalog {
	return &Catalog{
		api:             api,
		metrics:         m,
		collectionNames: make(map[int64]string),
		products:        make(map[int64]shopify.Product),
	}
}

// CollectionName resolves a collection ID to its title. An unknown ID
// resolves to "".
func (c *Catalog) CollectionName(ctx context.Context, collectionID int64) (string, error) {
	if name, ok := c.collectionNames[collectionID]; ok {
		c.metrics.CatalogHits.Inc()
		return name, nil
	}

	c.metrics.CatalogMisses.Inc()
	collection, err := c.api.GetCollection(ctx, collectionID)
	if err != nil {
		return "", err
	}

	c.collectionNames[collectionID] = collection.Title
	return collection.Title, nil
}

// Product resolves a product ID to its product-level detail. An unknown ID
// resolves to the zero Product.
func (c *Catalog) Product(ctx context.Context, productID int64) (shopify.Product, error) {
	if product, ok := c.products[productID]; ok {
		c.metrics.CatalogHits.Inc()
		return product, nil
	}

	c.metrics.CatalogMisses.Inc()
	product, err := c.api.GetProduct(ctx, productID)
	if err != nil {
		return shopify.Product{}, err
	}

	c.products[productID] = product
	return product, nil
}
