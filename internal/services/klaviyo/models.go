package klaviyo

// Event names recognized by the tracking pipeline.
const (
	EventOrderedProduct = "Ordered Product"
	EventPlacedOrder    = "Placed Order"
)

// Event is one track API payload. CustomerProperties and Properties hold
// either the product-level or order-level shapes depending on the event.
type Event struct {
	Token              string      `json:"token"`
	Event              string      `json:"event"`
	CustomerProperties interface{} `json:"customer_properties"`
	Properties         interface{} `json:"properties"`
	Time               int64       `json:"time"`
}

// CustomerProperties identifies the customer on an "Ordered Product" event.
// First and last name serialize as null when the order has no value for them.
type CustomerProperties struct {
	Email     string  `json:"$email"`
	FirstName *string `json:"$first_name"`
	LastName  *string `json:"$last_name"`
}

// ExtendedCustomerProperties is the "Placed Order" customer block: the base
// identification extended with phone and default-address fields.
type ExtendedCustomerProperties struct {
	CustomerProperties
	PhoneNumber *string `json:"$phone_number"`
	Address1    *string `json:"$address1"`
	Address2    *string `json:"$address2"`
	City        *string `json:"$city"`
	Zip         *string `json:"$zip"`
	Region      *string `json:"$region"`
	Country     *string `json:"$country"`
}

// Address is the order-level billing or shipping address attached to a
// "Placed Order" event. Fields are always present, defaulting to "".
type Address struct {
	FirstName   string `json:"FirstName"`
	LastName    string `json:"LastName"`
	Company     string `json:"Company"`
	Address1    string `json:"Address1"`
	Address2    string `json:"Address2"`
	City        string `json:"City"`
	Region      string `json:"Region"`
	RegionCode  string `json:"RegionCode"`
	Country     string `json:"Country"`
	CountryCode string `json:"CountryCode"`
	Zip         string `json:"Zip"`
	Phone       string `json:"Phone"`
}

// ProductProperties is the properties block of an "Ordered Product" event,
// one per line item.
type ProductProperties struct {
	EventID           int64    `json:"$event_id"`
	Value             string   `json:"$value"`
	ProductID         int64    `json:"ProductID"`
	SKU               string   `json:"SKU"`
	ProductName       string   `json:"ProductName"`
	Quantity          int      `json:"Quantity"`
	ProductURL        string   `json:"ProductURL"`
	ImageURL          string   `json:"ImageURL"`
	ProductCategories []string `json:"ProductCategories"`
	ProductBrand      string   `json:"ProductBrand"`
}

// OrderItem is one entry of the Items array on a "Placed Order" event.
type OrderItem struct {
	ProductID   int64    `json:"ProductID"`
	SKU         string   `json:"SKU"`
	ProductName string   `json:"ProductName"`
	Quantity    int      `json:"Quantity"`
	ItemPrice   string   `json:"ItemPrice"`
	RowTotal    string   `json:"RowTotal"`
	ProductURL  string   `json:"ProductURL"`
	ImageURL    string   `json:"ImageURL"`
	Categories  []string `json:"Categories"`
	Brand       string   `json:"Brand"`
}

// OrderProperties is the properties block of a "Placed Order" event.
type OrderProperties struct {
	EventID         int64       `json:"$event_id"`
	Value           string      `json:"$value"`
	Categories      []string    `json:"Categories"`
	ItemNames       []string    `json:"ItemNames"`
	Brands          []string    `json:"Brands"`
	DiscountCode    []string    `json:"DiscountCode"`
	DiscountValue   string      `json:"DiscountValue"`
	Items           []OrderItem `json:"Items"`
	BillingAddress  Address     `json:"billing_address"`
	ShippingAddress Address     `json:"shipping_address"`
}
