package normalize

import (
	"testing"

	"marketfront/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemResolvesLowercaseKeys(t *testing.T) {
	item, err := Item(map[string]any{
		"id":        float64(1),
		"name":      "Lamp",
		"price":     float64(500),
		"image_url": "http://img/lamp.png",
		"category":  "Home",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.Item{
		ID:           1,
		Name:         "Lamp",
		Price:        500,
		ImageURL:     "http://img/lamp.png",
		CategoryName: "Home",
	}, item)
}

func TestItemResolvesExportedKeys(t *testing.T) {
	item, err := Item(map[string]any{
		"ID":       float64(7),
		"Name":     "Chair",
		"Price":    float64(1250.5),
		"ImageURL": "http://img/chair.png",
		"Category": "Furniture",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, item.ID)
	assert.Equal(t, "Chair", item.Name)
	assert.Equal(t, 1250.5, item.Price)
	assert.Equal(t, "Furniture", item.CategoryName)
}

func TestItemDefaults(t *testing.T) {
	item, err := Item(map[string]any{"id": float64(3)})

	require.NoError(t, err)
	assert.Equal(t, DefaultItemName, item.Name)
	assert.Equal(t, 0.0, item.Price)
	assert.Equal(t, domain.PlaceholderImageURL, item.ImageURL)
	assert.Equal(t, "", item.CategoryName)
}

func TestItemMissingIDIsAnError(t *testing.T) {
	_, err := Item(map[string]any{"name": "Ghost"})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestItemsDropBadRecordsIndependently(t *testing.T) {
	items, skipped := Items([]any{
		map[string]any{"id": float64(1), "name": "Lamp"},
		map[string]any{"name": "no id"},
		"not a record",
		map[string]any{"ID": float64(2), "Name": "Chair"},
	})

	assert.Equal(t, 2, skipped)
	require.Len(t, items, 2)
	assert.Equal(t, "Lamp", items[0].Name)
	assert.Equal(t, "Chair", items[1].Name)
}

func TestItemDoesNotMutateInput(t *testing.T) {
	rec := map[string]any{"id": float64(1)}
	_, err := Item(rec)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(1)}, rec)
}

func TestCategoryKeyVariants(t *testing.T) {
	exported, err := Category(map[string]any{"ID": float64(4), "Name": "Home"})
	require.NoError(t, err)
	assert.Equal(t, domain.Category{ID: "4", Name: "Home"}, exported)

	lower, err := Category(map[string]any{"id": "4", "name": "Home"})
	require.NoError(t, err)
	assert.Equal(t, exported, lower)

	// Category names default to empty, not "Unnamed"
	nameless, err := Category(map[string]any{"id": float64(9)})
	require.NoError(t, err)
	assert.Equal(t, "", nameless.Name)
}

func TestCartAcceptsWrapperAndBareArray(t *testing.T) {
	line := map[string]any{
		"item_id": float64(2),
		"name":    "Lamp",
		"qty":     float64(3),
		"price":   float64(500),
	}

	wrapped := Cart(map[string]any{"items": []any{line}})
	bare := Cart([]any{line})

	assert.Equal(t, wrapped, bare)
	require.Len(t, wrapped.Lines, 1)
	assert.Equal(t, 1500.0, wrapped.Lines[0].Subtotal())
}

func TestCartToleratesUnusableShapes(t *testing.T) {
	assert.True(t, Cart(nil).Empty())
	assert.True(t, Cart("garbage").Empty())
	assert.True(t, Cart(map[string]any{"items": "nope"}).Empty())
}

func TestProperty_KeyVariantYieldsSameCanonicalValue(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("items normalize identically regardless of key casing", prop.ForAll(
		func(id int, name string, price float64, image string, category string) bool {
			lower := map[string]any{
				"id":        float64(id),
				"name":      name,
				"price":     price,
				"image_url": image,
				"category":  category,
			}
			exported := map[string]any{
				"ID":       float64(id),
				"Name":     name,
				"Price":    price,
				"ImageURL": image,
				"Category": category,
			}

			a, errA := Item(lower)
			b, errB := Item(exported)
			if errA != nil || errB != nil {
				t.Logf("FAIL: unexpected error: %v / %v", errA, errB)
				return false
			}
			return a == b
		},
		gen.IntRange(1, 1_000_000),
		gen.RegexMatch(`[A-Za-z ]{1,20}`),
		gen.Float64Range(0, 1_000_000),
		gen.RegexMatch(`https?://[a-z]{3,10}\.(com|net)/[a-z]{1,8}`),
		gen.RegexMatch(`[A-Za-z]{1,12}`),
	))

	properties.Property("missing price normalizes to zero", prop.ForAll(
		func(id int, name string) bool {
			item, err := Item(map[string]any{"id": float64(id), "name": name})
			if err != nil {
				return false
			}
			return item.Price == 0
		},
		gen.IntRange(1, 1_000_000),
		gen.RegexMatch(`[A-Za-z ]{1,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_CartTotalEqualsSumOfSubtotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	lineGen := gopter.CombineGens(
		gen.IntRange(1, 10_000),
		gen.IntRange(1, 50),
		gen.Float64Range(0, 10_000),
	).Map(func(vs []interface{}) map[string]any {
		return map[string]any{
			"item_id": float64(vs[0].(int)),
			"qty":     float64(vs[1].(int)),
			"price":   vs[2].(float64),
		}
	})

	properties.Property("total is recomputed as the sum of qty times price", prop.ForAll(
		func(rawLines []map[string]any) bool {
			recs := make([]any, 0, len(rawLines))
			for _, l := range rawLines {
				recs = append(recs, any(l))
			}

			cart := Cart(map[string]any{"items": recs})

			var want float64
			for _, l := range cart.Lines {
				want += float64(l.Qty) * l.Price
			}
			return cart.Total() == want
		},
		gen.SliceOf(lineGen),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
