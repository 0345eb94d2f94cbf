package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ordersync/internal/services/klaviyo"
	"ordersync/internal/services/shopify"
)

// createdAtLayout matches Shopify's created_at format: ISO-8601 with a
// numeric UTC offset.
const createdAtLayout = "2006-01-02T15:04:05-07:00"

// Transformer derives Klaviyo event payloads from raw Shopify orders.
type Transformer struct {
	token    string
	storeURL string
}

func NewTransformer(token, storeURL string) *Transformer {
	return &Transformer{
		token:    token,
		storeURL: strings.TrimSuffix(storeURL, "/"),
	}
}

// CustomerProperties builds the customer block for an "Ordered Product"
// event. The caller guarantees order.Customer is present.
func (t *Transformer) CustomerProperties(order *shopify.Order) klaviyo.CustomerProperties {
	customer := order.Customer
	return klaviyo.CustomerProperties{
		Email:     customer.Email,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
	}
}

// ExtendedCustomerProperties builds the customer block for a "Placed Order"
// event: the base properties plus phone and default-address fields, each
// null when the customer record has no value for it.
func (t *Transformer) ExtendedCustomerProperties(order *shopify.Order) klaviyo.ExtendedCustomerProperties {
	customer := order.Customer
	extended := klaviyo.ExtendedCustomerProperties{
		CustomerProperties: t.CustomerProperties(order),
		PhoneNumber:        customer.Phone,
	}

	if address := customer.DefaultAddress; address != nil {
		extended.Address1 = address.Address1
		extended.Address2 = address.Address2
		extended.City = address.City
		extended.Zip = address.Zip
		extended.Region = address.Province
		extended.Country = address.Country
	}

	return extended
}

// BillingAddress maps the order's billing address. Every field defaults to
// "" when the address or a sub-field is absent.
func (t *Transformer) BillingAddress(order *shopify.Order) klaviyo.Address {
	return mapAddress(order.BillingAddress)
}

// ShippingAddress maps the order's shipping address, with the same
// defaulting as BillingAddress.
func (t *Transformer) ShippingAddress(order *shopify.Order) klaviyo.Address {
	return mapAddress(order.ShippingAddress)
}

func mapAddress(address *shopify.Address) klaviyo.Address {
	if address == nil {
		return klaviyo.Address{}
	}
	return klaviyo.Address{
		FirstName:   address.FirstName,
		LastName:    address.LastName,
		Company:     address.Company,
		Address1:    address.Address1,
		Address2:    address.Address2,
		City:        address.City,
		Region:      address.Province,
		RegionCode:  address.ProvinceCode,
		Country:     address.Country,
		CountryCode: address.CountryCode,
		Zip:         address.Zip,
		Phone:       address.Phone,
	}
}

// Timestamp converts the order's created_at to integer Unix seconds.
// Every payload emitted for the order shares this value.
func (t *Transformer) Timestamp(order *shopify.Order) (int64, error) {
	createdAt, err := time.Parse(createdAtLayout, order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("order %d has invalid created_at %q: %w", order.ID, order.CreatedAt, err)
	}
	return createdAt.Unix(), nil
}

// DiscountCodes lists the order's applied discount codes in order.
// Duplicates are kept.
func (t *Transformer) DiscountCodes(order *shopify.Order) []string {
	discounts := []string{}
	for _, code := range order.DiscountCodes {
		discounts = append(discounts, code.Code)
	}
	return discounts
}

// ItemNames lists each line item's name in line-item order. Duplicates are
// kept.
func (t *Transformer) ItemNames(order *shopify.Order) []string {
	itemNames := []string{}
	for _, item := range order.LineItems {
		itemNames = append(itemNames, item.Name)
	}
	return itemNames
}

// Vendors lists the distinct vendors across line items, in order of first
// appearance.
func (t *Transformer) Vendors(order *shopify.Order) []string {
	brands := []string{}
	for _, item := range order.LineItems {
		if !contains(brands, item.Vendor) {
			brands = append(brands, item.Vendor)
		}
	}
	return brands
}

// CollectIDs gathers the collection IDs of every membership record whose
// product matches one of the order's line items, in line-item order.
func (t *Transformer) CollectIDs(order *shopify.Order, collects []shopify.Collect) []int64 {
	collectIDs := []int64{}
	for _, item := range order.LineItems {
		for _, collect := range collects {
			if item.ProductID == collect.ProductID {
				collectIDs = append(collectIDs, collect.CollectionID)
			}
		}
	}
	return collectIDs
}

// Categories resolves collect IDs to collection names through the catalog.
// Empty names are skipped and duplicates dropped, keeping first-discovery
// order.
func (t *Transformer) Categories(ctx context.Context, catalog *Catalog, collectIDs []int64) ([]string, error) {
	categories := []string{}
	for _, collectID := range collectIDs {
		name, err := catalog.CollectionName(ctx, collectID)
		if err != nil {
			return nil, err
		}
		if name != "" && !contains(categories, name) {
			categories = append(categories, name)
		}
	}
	return categories, nil
}

// ImageURL returns the src of the product's first image, or "" when the
// product has none.
func (t *Transformer) ImageURL(product shopify.Product) string {
	if len(product.Images) == 0 {
		return ""
	}
	return product.Images[0].Src
}

// ProductURL builds the public product page URL. A product with no handle
// yields a bare trailing segment.
func (t *Transformer) ProductURL(product shopify.Product) string {
	return t.storeURL + "/products/" + product.Handle
}

// ProductProperties builds the properties block for one line item's
// "Ordered Product" event.
func (t *Transformer) ProductProperties(item shopify.LineItem, product shopify.Product, categories []string) klaviyo.ProductProperties {
	return klaviyo.ProductProperties{
		EventID:           item.ID,
		Value:             item.Price,
		ProductID:         item.ProductID,
		SKU:               item.Sku,
		ProductName:       item.Name,
		Quantity:          item.Quantity,
		ProductURL:        t.ProductURL(product),
		ImageURL:          t.ImageURL(product),
		ProductCategories: categories,
		ProductBrand:      item.Vendor,
	}
}

// OrderItems builds the Items array of a "Placed Order" event, one entry
// per line item. RowTotal mirrors the unit price; no quantity
// multiplication happens upstream of Klaviyo.
func (t *Transformer) OrderItems(order *shopify.Order, products map[int64]shopify.Product, categories []string) []klaviyo.OrderItem {
	items := []klaviyo.OrderItem{}
	for _, item := range order.LineItems {
		product := products[item.ProductID]
		items = append(items, klaviyo.OrderItem{
			ProductID:   item.ProductID,
			SKU:         item.Sku,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			ItemPrice:   item.Price,
			RowTotal:    item.Price,
			ProductURL:  t.ProductURL(product),
			ImageURL:    t.ImageURL(product),
			Categories:  categories,
			Brand:       item.Vendor,
		})
	}
	return items
}

// OrderProperties builds the properties block of a "Placed Order" event.
func (t *Transformer) OrderProperties(order *shopify.Order, categories, itemNames, brands, discounts []string,
	items []klaviyo.OrderItem, billing, shipping klaviyo.Address) klaviyo.OrderProperties {
	return klaviyo.OrderProperties{
		EventID:         order.ID,
		Value:           order.TotalPrice,
		Categories:      categories,
		ItemNames:       itemNames,
		Brands:          brands,
		DiscountCode:    discounts,
		DiscountValue:   order.TotalDiscounts,
		Items:           items,
		BillingAddress:  billing,
		ShippingAddress: shipping,
	}
}

// ProductPayload wraps product properties into an "Ordered Product" event.
func (t *Transformer) ProductPayload(customer klaviyo.CustomerProperties, properties klaviyo.ProductProperties, timestamp int64) *klaviyo.Event {
	return &klaviyo.Event{
		Token:              t.token,
		Event:              klaviyo.EventOrderedProduct,
		CustomerProperties: customer,
		Properties:         properties,
		Time:               timestamp,
	}
}

// OrderPayload wraps order properties into a "Placed Order" event.
func (t *Transformer) OrderPayload(customer klaviyo.ExtendedCustomerProperties, properties klaviyo.OrderProperties, timestamp int64) *klaviyo.Event {
	return &klaviyo.Event{
		Token:              t.token,
		Event:              klaviyo.EventPlacedOrder,
		CustomerProperties: customer,
		Properties:         properties,
		Time:               timestamp,
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
