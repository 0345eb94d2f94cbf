package shopify

// Order represents a Shopify order as returned by the Orders API.
// Raw input only; the sync pipeline never mutates it.
type Order struct {
	ID              int64          `json:"id"`
	TotalPrice      string         `json:"total_price"`
	TotalDiscounts  string         `json:"total_discounts"`
	CreatedAt       string         `json:"created_at"`
	Customer        *Customer      `json:"customer"`
	BillingAddress  *Address       `json:"billing_address"`
	ShippingAddress *Address       `json:"shipping_address"`
	DiscountCodes   []DiscountCode `json:"discount_codes"`
	LineItems       []LineItem     `json:"line_items"`
}

// Customer represents the customer block on an order. First/last name and
// phone are nullable upstream, so they stay pointers here.
type Customer struct {
	Email          string           `json:"email"`
	FirstName      *string          `json:"first_name"`
	LastName       *string          `json:"last_name"`
	Phone          *string          `json:"phone"`
	DefaultAddress *CustomerAddress `json:"default_address"`
}

// CustomerAddress is the customer's default address. Every field is
// nullable upstream.
type CustomerAddress struct {
	Address1 *string `json:"address1"`
	Address2 *string `json:"address2"`
	City     *string `json:"city"`
	Zip      *string `json:"zip"`
	Province *string `json:"province"`
	Country  *string `json:"country"`
}

// Address is an order-level billing or shipping address. Missing fields
// decode to empty strings, which is what the downstream payloads expect.
type Address struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	ProvinceCode string `json:"province_code"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
	Zip          string `json:"zip"`
	Phone        string `json:"phone"`
}

// DiscountCode is one applied discount code entry.
type DiscountCode struct {
	Code string `json:"code"`
}

// LineItem is one product entry within an order.
type LineItem struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Sku       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Vendor    string `json:"vendor"`
}

// Collect is one (product, collection) membership record from the
// Collects API. It carries no collection name; that is resolved separately.
type Collect struct {
	ProductID    int64 `json:"product_id"`
	CollectionID int64 `json:"collection_id"`
}

// Collection represents a custom collection. Only the title is needed.
type Collection struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Product carries the product-level fields that are not available from the
// order itself (image URLs and the URL handle). The zero value stands in
// for a product the API has no record of.
type Product struct {
	ID     int64   `json:"id"`
	Handle string  `json:"handle"`
	Images []Image `json:"images"`
}

// Image is a product image.
type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// OrdersResponse represents the response from the orders API
type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

// CollectsResponse represents the response from the collects API
type CollectsResponse struct {
	Collects []Collect `json:"collects"`
}
