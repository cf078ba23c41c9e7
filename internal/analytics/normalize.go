// Package analytics computes the order analytics rollups: per-product sales
// totals, per-customer lifetime profiles and the abandoned-cart mirror of
// them. Everything is recomputed from a full order scan on every call;
// nothing is cached or shared between calls.
package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawItem is one loosely-typed line item as found in an order's products
// payload. Field access goes through the accessor helpers below so the
// fallback priority stays in one place.
type RawItem map[string]any

// ParseLineItems converts an order's raw products payload into a list of
// item records. The payload shows up in at least four shapes: a plain
// array, a JSON-encoded string, a CSV-escaped double-quoted JSON string,
// or a single object. Anything that cannot be resolved to an array of
// objects yields nil; parsing never fails.
func ParseLineItems(raw any) []RawItem {
	switch v := raw.(type) {
	case nil:
		return nil
	case []RawItem:
		return v
	case []any:
		return filterItems(v)
	case string:
		return parseItemsString(v)
	case json.RawMessage:
		return parseItemsBytes(v)
	case []byte:
		return parseItemsBytes(v)
	default:
		return nil
	}
}

func parseItemsBytes(b []byte) []RawItem {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		// CSV exports leave doubled quotes that break the outer parse;
		// the string branch knows how to undo that.
		return parseItemsString(string(b))
	}
	return ParseLineItems(v)
}

func parseItemsString(s string) []RawItem {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		var unwrapped string
		if err := json.Unmarshal([]byte(s), &unwrapped); err == nil {
			s = unwrapped
		} else {
			s = s[1 : len(s)-1]
		}
	}
	if strings.Contains(s, `""`) {
		s = strings.ReplaceAll(s, `""`, `"`)
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	return filterItems(arr)
}

func filterItems(arr []any) []RawItem {
	items := make([]RawItem, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok && m != nil {
			items = append(items, RawItem(m))
		}
	}
	return items
}

// firstValue returns the first present, non-nil value among keys.
func firstValue(it RawItem, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := it[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ProductID resolves the item's product id, trying productId, product_id
// and id in that order. Empty means the item is not attributable to a
// product and is discarded by the rollups.
func (it RawItem) ProductID() string {
	v, ok := firstValue(it, "productId", "product_id", "id")
	if !ok {
		return ""
	}
	return coerceString(v)
}

// Quantity resolves the item quantity from quantity or totalQuantity.
// The second return is false when the value is not a finite number.
func (it RawItem) Quantity() (float64, bool) {
	v, ok := firstValue(it, "quantity", "totalQuantity")
	if !ok {
		return 0, true
	}
	return toNumber(v)
}

// UnitPrice resolves the unit price from unitPrice, totalRevenue, price or
// the nested product.price, defaulting to 0 when absent or not a number.
func (it RawItem) UnitPrice() float64 {
	v, ok := firstValue(it, "unitPrice", "totalRevenue", "price")
	if !ok {
		if p, pok := it.product(); pok {
			v, ok = firstValue(p, "price")
		}
		if !ok {
			return 0
		}
	}
	n, finite := toNumber(v)
	if !finite {
		return 0
	}
	return n
}

// Name resolves the display name from the nested product.name or the flat
// name field, falling back to the given placeholder.
func (it RawItem) Name(placeholder string) string {
	var candidate any
	if p, ok := it.product(); ok {
		candidate, _ = firstValue(p, "name")
	}
	if candidate == nil {
		candidate = it["name"]
	}
	if s, ok := candidate.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return placeholder
}

func (it RawItem) product() (RawItem, bool) {
	if p, ok := it["product"].(map[string]any); ok && p != nil {
		return RawItem(p), true
	}
	return nil, false
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
