package farmstand

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Product is a catalog entry. The id is assigned once at creation and never
// changes; products are created and deleted, never updated in place.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
	Img      string  `json:"img"`
}

// GalleryItem is a single captioned image record shown in the public gallery.
type GalleryItem struct {
	ID      string `json:"id"`
	Src     string `json:"src"`
	Caption string `json:"caption"`
}

// Principal is the authenticated identity stored in a session after a
// successful login.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CreateProduct carries the fields of a product creation request. The server
// assigns the id.
type CreateProduct struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Price    Price  `json:"price" validate:"gte=0"`
	Unit     string `json:"unit" validate:"required"`
	Img      string `json:"img"`
}

// Price is a non-negative product price. Admin form clients historically sent
// it as either a JSON number or a numeric string; both decode to the same
// value, and it always marshals back as a number.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*p = 0
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse price %q: %w", s, ErrInvalidInput)
	}
	if v < 0 {
		return fmt.Errorf("parse price: %w: price cannot be negative", ErrInvalidInput)
	}

	*p = Price(v)
	return nil
}

// Tables holds configurable table names for the relational store.
type Tables struct {
	Products string `mapstructure:"products"`
	Gallery  string `mapstructure:"gallery"`
}

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// Validate checks that both table names are set and valid.
func (t Tables) Validate() error {
	for _, name := range []string{t.Products, t.Gallery} {
		if name == "" {
			return errors.New("validate tables: table name cannot be empty")
		}
		if !IsValidTableName(name) {
			return fmt.Errorf("validate tables: invalid table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", name)
		}
	}
	return nil
}
