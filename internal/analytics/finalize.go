package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenthra/zenthra-manager/internal/entity"
)

const topListSize = 5

// finalize renders the global product rollup sorted by quantity sold.
func (acc *productAccumulator) finalize() *entity.ProductSalesSummary {
	items := make([]entity.ProductSalesMetric, 0, len(acc.order))
	var totalItems float64
	for _, id := range acc.order {
		m := *acc.metrics[id]
		m.TotalRevenue = m.TotalRevenue.Round(2)
		items = append(items, m)
		totalItems += m.TotalQuantity
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalQuantity > items[j].TotalQuantity
	})
	return &entity.ProductSalesSummary{
		Items:             items,
		TotalProductsSold: len(items),
		TotalItemsSold:    totalItems,
	}
}

// customerRollup is one finalized customer profile before it is mapped
// into the paid or pending output shape.
type customerRollup struct {
	identity customerIdentity

	orders            int
	value             decimal.Decimal
	averageOrderValue decimal.Decimal

	firstDate *time.Time
	lastDate  *time.Time

	averageGapDays *float64
	daysSinceLast  *float64

	topProducts []entity.TopProduct
}

// rollupResult is the complete output of one customer aggregation pass.
type rollupResult struct {
	customers []customerRollup

	totalOrders int
	totalValue  decimal.Decimal

	details map[string][]entity.OrderDetail
	chart   []entity.ChartPoint
}

// finalize derives the statistics that need each customer's complete
// history: date extremes, gap averages, recency, per-customer top
// products, sorted details and the month chart. The same now instant is
// applied to every customer so one response is internally consistent.
func (acc *customerAccumulator) finalize(now time.Time) *rollupResult {
	res := &rollupResult{
		totalOrders: acc.totalOrders,
		totalValue:  acc.totalValue.Round(2),
		details:     make(map[string][]entity.OrderDetail, len(acc.order)),
	}

	for _, key := range acc.order {
		st := acc.states[key]
		c := customerRollup{
			identity: st.identity,
			orders:   st.orders,
			value:    st.value.Round(2),
		}

		if len(st.dates) > 0 {
			dates := append([]time.Time(nil), st.dates...)
			sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
			first, last := dates[0], dates[len(dates)-1]
			c.firstDate, c.lastDate = &first, &last

			if len(dates) > 1 {
				var gapTotal time.Duration
				for i := 1; i < len(dates); i++ {
					gapTotal += dates[i].Sub(dates[i-1])
				}
				avg := gapTotal.Hours() / 24 / float64(len(dates)-1)
				c.averageGapDays = ptr(round1(avg))
			}

			c.daysSinceLast = ptr(round1(now.Sub(last).Hours() / 24))
		}

		if st.orders > 0 {
			c.averageOrderValue = st.value.Div(decimal.NewFromInt(int64(st.orders))).Round(2)
		}

		c.topProducts = topProducts(st)
		res.customers = append(res.customers, c)

		sort.SliceStable(st.details, func(i, j int) bool {
			return st.details[i].created.After(st.details[j].created)
		})
		details := make([]entity.OrderDetail, 0, len(st.details))
		for _, d := range st.details {
			d.detail.Total = d.detail.Total.Round(2)
			details = append(details, d.detail)
		}
		res.details[key] = details
	}

	keys := make([]string, 0, len(acc.chart))
	for k := range acc.chart {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b := acc.chart[k]
		res.chart = append(res.chart, entity.ChartPoint{
			Month:   k,
			Orders:  b.orders,
			Revenue: b.revenue.Round(2),
		})
	}

	return res
}

func topProducts(st *customerState) []entity.TopProduct {
	products := make([]entity.TopProduct, 0, len(st.productOrder))
	for _, id := range st.productOrder {
		pc := st.products[id]
		products = append(products, entity.TopProduct{
			ProductID: id,
			Name:      pc.name,
			Quantity:  pc.quantity,
		})
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Quantity > products[j].Quantity
	})
	if len(products) > topListSize {
		products = products[:topListSize]
	}
	return products
}

// sortedByValue returns the customers ordered by cumulative value desc,
// ties kept in first-seen order.
func (r *rollupResult) sortedByValue() []customerRollup {
	out := append([]customerRollup(nil), r.customers...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].value.GreaterThan(out[j].value)
	})
	return out
}

// sortedByOrders returns the customers ordered by order count desc.
func (r *rollupResult) sortedByOrders() []customerRollup {
	out := append([]customerRollup(nil), r.customers...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].orders > out[j].orders
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ptr[T any](v T) *T {
	return &v
}
