package address

// Address is one saved shipping address. At most one address per user is the
// default; SetDefault keeps that invariant.
type Address struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"isDefault"`
}
