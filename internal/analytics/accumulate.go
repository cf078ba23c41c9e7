package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenthra/zenthra-manager/internal/entity"
)

const (
	unknownProductName = "Unknown Product"
	unnamedProductName = "Unnamed product"
	unknownStatus      = "unknown"
)

// productAccumulator builds the global per-product rollup. Insertion order
// is tracked so that quantity ties in the final sort resolve the way they
// were first observed.
type productAccumulator struct {
	metrics map[string]*entity.ProductSalesMetric
	order   []string
}

func newProductAccumulator() *productAccumulator {
	return &productAccumulator{metrics: make(map[string]*entity.ProductSalesMetric)}
}

func (acc *productAccumulator) fold(o *entity.OrderRecord) {
	for _, item := range ParseLineItems(o.Products) {
		productID := item.ProductID()
		if productID == "" {
			continue
		}
		quantity, ok := item.Quantity()
		if !ok || quantity <= 0 {
			continue
		}
		unitPrice := item.UnitPrice()

		m, seen := acc.metrics[productID]
		if !seen {
			m = &entity.ProductSalesMetric{
				ProductID: productID,
				Name:      item.Name(unknownProductName),
			}
			acc.metrics[productID] = m
			acc.order = append(acc.order, productID)
		}
		m.TotalQuantity += quantity
		m.TotalRevenue = m.TotalRevenue.Add(decimal.NewFromFloat(quantity * unitPrice))
	}
}

// customerState is the growable per-customer record built by the fold.
type customerState struct {
	identity customerIdentity

	orders int
	value  decimal.Decimal
	dates  []time.Time

	products     map[string]*productCount
	productOrder []string

	details []detailEntry
}

type productCount struct {
	name     string
	quantity float64
}

// detailEntry pairs the outgoing order detail with its parsed creation
// time so the finalizer can sort without reparsing.
type detailEntry struct {
	detail  entity.OrderDetail
	created time.Time
}

// customerAccumulator folds status-filtered orders into per-customer
// states, the month chart and the grand totals. It is local to one
// aggregation call; concurrent calls never share one.
type customerAccumulator struct {
	states map[string]*customerState
	order  []string

	chart map[string]*chartBucket

	totalOrders int
	totalValue  decimal.Decimal

	// malformed counts orders whose products payload did not resolve to
	// any item. Diagnostic only; it never feeds the numeric outputs.
	malformed int
}

type chartBucket struct {
	orders  int
	revenue decimal.Decimal
}

func newCustomerAccumulator() *customerAccumulator {
	return &customerAccumulator{
		states: make(map[string]*customerState),
		chart:  make(map[string]*chartBucket),
	}
}

func (acc *customerAccumulator) fold(o *entity.OrderRecord) {
	identity, ok := resolveCustomer(o)
	if !ok {
		return
	}

	total := decimal.Zero
	if o.Total.Valid {
		total = o.Total.Decimal
	}

	st, seen := acc.states[identity.key]
	if !seen {
		st = &customerState{
			identity: identity,
			products: make(map[string]*productCount),
		}
		acc.states[identity.key] = st
		acc.order = append(acc.order, identity.key)
	}

	st.orders++
	st.value = st.value.Add(total)
	if o.Created.Valid {
		st.dates = append(st.dates, o.Created.Time)
	}

	items := ParseLineItems(o.Products)
	if len(items) == 0 && len(o.Products) > 0 {
		acc.malformed++
	}

	var itemsCount float64
	for _, item := range items {
		if q, ok := item.Quantity(); ok {
			itemsCount += q
		}
	}

	perOrder := make(map[string]*productCount)
	var perOrderKeys []string
	for _, item := range items {
		productID := item.ProductID()
		if productID == "" {
			continue
		}
		quantity, ok := item.Quantity()
		if !ok || quantity <= 0 {
			continue
		}
		name := item.Name(unnamedProductName)

		pc, ok := st.products[productID]
		if !ok {
			pc = &productCount{name: name}
			st.products[productID] = pc
			st.productOrder = append(st.productOrder, productID)
		}
		pc.quantity += quantity

		op, ok := perOrder[productID]
		if !ok {
			op = &productCount{name: name}
			perOrder[productID] = op
			perOrderKeys = append(perOrderKeys, productID)
		}
		op.quantity += quantity
	}

	orderProducts := make([]entity.TopProduct, 0, len(perOrderKeys))
	for _, id := range perOrderKeys {
		orderProducts = append(orderProducts, entity.TopProduct{
			ProductID: id,
			Name:      perOrder[id].name,
			Quantity:  perOrder[id].quantity,
		})
	}

	status := unknownStatus
	if o.Status.Valid {
		status = o.Status.String
	}
	var created string
	var createdAt time.Time
	if o.Created.Valid {
		createdAt = o.Created.Time
		created = createdAt.UTC().Format(time.RFC3339)
	}
	st.details = append(st.details, detailEntry{
		detail: entity.OrderDetail{
			ID:            o.ID,
			Total:         total,
			Status:        status,
			PaymentStatus: o.PaymentStatus.String,
			Created:       created,
			ItemsCount:    itemsCount,
			Email:         identity.email,
			Phone:         identity.phone,
			Products:      orderProducts,
		},
		created: createdAt,
	})

	acc.totalOrders++
	acc.totalValue = acc.totalValue.Add(total)

	if o.Created.Valid {
		key := monthKey(o.Created.Time)
		b, ok := acc.chart[key]
		if !ok {
			b = &chartBucket{}
			acc.chart[key] = b
		}
		b.orders++
		b.revenue = b.revenue.Add(total)
	}
}

// monthKey buckets a timestamp into its UTC YYYY-MM month. Zero padding
// keeps the lexicographic sort of bucket keys chronological.
func monthKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
