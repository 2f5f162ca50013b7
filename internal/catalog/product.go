package catalog

import "time"

// Product represents a catalog entry. Timestamps are RFC3339 strings to match
// the JSON contract used across the API. YAML tags cover the seed file.
type Product struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description" yaml:"description"`
	Price          float64           `json:"price" yaml:"price"`
	OriginalPrice  *float64          `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	Category       string            `json:"category" yaml:"category"`
	Brand          string            `json:"brand" yaml:"brand"`
	Images         []string          `json:"images" yaml:"images"`
	Stock          int               `json:"stock" yaml:"stock"`
	Rating         float64           `json:"rating" yaml:"rating"`
	ReviewCount    int               `json:"reviewCount" yaml:"reviewCount"`
	Features       []string          `json:"features" yaml:"features"`
	Specifications map[string]string `json:"specifications,omitempty" yaml:"specifications,omitempty"`
	CreatedAt      string            `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      string            `json:"updatedAt" yaml:"updatedAt"`
}

// createdTime parses CreatedAt for the newest-first sort. Unparsable
// timestamps sort as the zero time, i.e. last.
func (p Product) createdTime() time.Time {
	t, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
