// Package normalize turns the marketplace API's loosely shaped payloads
// into canonical records. The server answers with either lowercase or
// Go-exported field names depending on the endpoint, so every logical
// field is resolved through a fixed priority list of candidate keys.
package normalize

import (
	"errors"
	"strconv"

	"marketfront/internal/domain"
)

// ErrMissingID is returned when a record carries no identifier under
// any candidate key. Absence of an id is a caller-visible condition;
// every other field has a defined default.
var ErrMissingID = errors.New("record has no identifier")

// DefaultItemName is used when an item record has no name field.
const DefaultItemName = "Unnamed"

// Item produces a canonical item from a raw record. The input map is
// never mutated.
func Item(rec map[string]any) (domain.Item, error) {
	id, ok := intField(rec, "id", "ID")
	if !ok {
		return domain.Item{}, ErrMissingID
	}

	return domain.Item{
		ID:           id,
		Name:         stringField(rec, DefaultItemName, "name", "Name"),
		Price:        numberField(rec, 0, "price", "Price"),
		ImageURL:     stringField(rec, domain.PlaceholderImageURL, "image_url", "ImageURL"),
		CategoryName: stringField(rec, "", "category", "Category"),
	}, nil
}

// Items normalizes every record of a response sequence independently.
// Records without an identifier are dropped; the second return value
// counts them.
func Items(recs []any) ([]domain.Item, int) {
	items := make([]domain.Item, 0, len(recs))
	skipped := 0
	for _, raw := range recs {
		rec, ok := raw.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		item, err := Item(rec)
		if err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped
}

// Category produces a canonical category. Identifier candidates are
// checked exported-first: the backing store serializes categories with
// Go field names, the mapped endpoints with lowercase ones.
func Category(rec map[string]any) (domain.Category, error) {
	id, ok := idField(rec, "ID", "id")
	if !ok {
		return domain.Category{}, ErrMissingID
	}

	return domain.Category{
		ID:   id,
		Name: stringField(rec, "", "name", "Name"),
	}, nil
}

// Categories normalizes a category sequence, dropping records without
// an identifier.
func Categories(recs []any) ([]domain.Category, int) {
	cats := make([]domain.Category, 0, len(recs))
	skipped := 0
	for _, raw := range recs {
		rec, ok := raw.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		cat, err := Category(rec)
		if err != nil {
			skipped++
			continue
		}
		cats = append(cats, cat)
	}
	return cats, skipped
}

// Cart accepts either the documented {"items": [...]} wrapper or the
// bare array some deployments answer with, and normalizes each line.
func Cart(payload any) domain.Cart {
	var recs []any
	switch v := payload.(type) {
	case map[string]any:
		recs, _ = v["items"].([]any)
	case []any:
		recs = v
	}

	lines := make([]domain.CartLine, 0, len(recs))
	for _, raw := range recs {
		rec, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		line, err := CartLine(rec)
		if err != nil {
			continue
		}
		lines = append(lines, line)
	}
	return domain.Cart{Lines: lines}
}

// CartLine normalizes a single cart entry. Quantity is clamped to be
// non-negative.
func CartLine(rec map[string]any) (domain.CartLine, error) {
	itemID, ok := intField(rec, "item_id", "ItemID")
	if !ok {
		return domain.CartLine{}, ErrMissingID
	}

	qty := int(numberField(rec, 0, "qty", "Qty"))
	if qty < 0 {
		qty = 0
	}

	return domain.CartLine{
		ItemID: itemID,
		Name:   stringField(rec, DefaultItemName, "name", "Name"),
		Qty:    qty,
		Price:  numberField(rec, 0, "price", "Price"),
	}, nil
}

// stringField resolves the first present candidate key holding a
// string, falling back to def.
func stringField(rec map[string]any, def string, keys ...string) string {
	for _, key := range keys {
		if v, ok := rec[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return def
}

// numberField resolves the first present candidate key holding a
// number. JSON numbers decode as float64; numeric strings are accepted
// the way the browser client coerced them.
func numberField(rec map[string]any, def float64, keys ...string) float64 {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case string:
			if parsed, err := strconv.ParseFloat(n, 64); err == nil {
				return parsed
			}
		}
	}
	return def
}

// intField resolves an integer identifier; there is no default.
func intField(rec map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n), true
		case int:
			return n, true
		case string:
			if parsed, err := strconv.Atoi(n); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// idField resolves an identifier keeping its wire form as a string.
func idField(rec map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case string:
			if n != "" {
				return n, true
			}
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), true
		case int:
			return strconv.Itoa(n), true
		}
	}
	return "", false
}
