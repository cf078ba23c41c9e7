package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLineItemsArray(t *testing.T) {
	items := ParseLineItems([]any{
		map[string]any{"productId": "p1", "quantity": float64(2)},
		map[string]any{"productId": "p2", "quantity": float64(1)},
	})
	assert.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID())
}

func TestParseLineItemsJSONString(t *testing.T) {
	items := ParseLineItems(`[{"productId":"p1","quantity":2,"unitPrice":50}]`)
	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID())

	q, ok := items[0].Quantity()
	assert.True(t, ok)
	assert.Equal(t, float64(2), q)
	assert.Equal(t, float64(50), items[0].UnitPrice())
}

func TestParseLineItemsCSVEscaped(t *testing.T) {
	// CSV export wraps the payload in quotes and doubles every inner quote.
	raw := `"[{""productId"":""p1"",""quantity"":2}]"`
	items := ParseLineItems(raw)
	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID())

	// Same payload decoded through the three shapes must agree.
	plain := ParseLineItems(`[{"productId":"p1","quantity":2}]`)
	fromBytes := ParseLineItems(json.RawMessage(`[{"productId":"p1","quantity":2}]`))
	assert.Equal(t, plain, items)
	assert.Equal(t, plain, fromBytes)
}

func TestParseLineItemsSingleQuoteWrapped(t *testing.T) {
	items := ParseLineItems(`'[{"productId":"p1"}]'`)
	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID())
}

func TestParseLineItemsGarbage(t *testing.T) {
	assert.Nil(t, ParseLineItems("not json at all"))
	assert.Nil(t, ParseLineItems(""))
	assert.Nil(t, ParseLineItems("   "))
	assert.Nil(t, ParseLineItems(nil))
	assert.Nil(t, ParseLineItems(float64(42)))
	assert.Nil(t, ParseLineItems(`{"productId":"p1"}`))
	assert.Nil(t, ParseLineItems(json.RawMessage(`null`)))
}

func TestParseLineItemsFiltersNonObjects(t *testing.T) {
	items := ParseLineItems(`[1, "x", null, {"productId":"p1"}]`)
	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID())
}

func TestProductIDPriority(t *testing.T) {
	it := RawItem{"productId": "a", "product_id": "b", "id": "c"}
	assert.Equal(t, "a", it.ProductID())

	it = RawItem{"product_id": "b", "id": "c"}
	assert.Equal(t, "b", it.ProductID())

	it = RawItem{"id": float64(42)}
	assert.Equal(t, "42", it.ProductID())

	it = RawItem{"productId": nil, "id": "c"}
	assert.Equal(t, "c", it.ProductID())

	assert.Equal(t, "", RawItem{}.ProductID())
}

func TestQuantity(t *testing.T) {
	q, ok := RawItem{"quantity": float64(3)}.Quantity()
	assert.True(t, ok)
	assert.Equal(t, float64(3), q)

	q, ok = RawItem{"totalQuantity": "4"}.Quantity()
	assert.True(t, ok)
	assert.Equal(t, float64(4), q)

	// Absent quantity is a valid zero, not a malformed item.
	q, ok = RawItem{}.Quantity()
	assert.True(t, ok)
	assert.Equal(t, float64(0), q)

	_, ok = RawItem{"quantity": "many"}.Quantity()
	assert.False(t, ok)

	q, ok = RawItem{"quantity": true}.Quantity()
	assert.True(t, ok)
	assert.Equal(t, float64(1), q)
}

func TestUnitPricePriority(t *testing.T) {
	it := RawItem{"unitPrice": float64(10), "price": float64(20)}
	assert.Equal(t, float64(10), it.UnitPrice())

	it = RawItem{"totalRevenue": float64(15), "price": float64(20)}
	assert.Equal(t, float64(15), it.UnitPrice())

	it = RawItem{"product": map[string]any{"price": float64(25)}}
	assert.Equal(t, float64(25), it.UnitPrice())

	assert.Equal(t, float64(0), RawItem{"unitPrice": "free"}.UnitPrice())
	assert.Equal(t, float64(0), RawItem{}.UnitPrice())
}

func TestName(t *testing.T) {
	it := RawItem{"name": "flat", "product": map[string]any{"name": "nested"}}
	assert.Equal(t, "nested", it.Name("fallback"))

	it = RawItem{"name": "  flat  "}
	assert.Equal(t, "flat", it.Name("fallback"))

	assert.Equal(t, "fallback", RawItem{"name": "   "}.Name("fallback"))
	assert.Equal(t, "fallback", RawItem{}.Name("fallback"))
}
