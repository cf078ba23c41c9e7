package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/zenthra/zenthra-manager/internal/dependency"
	"github.com/zenthra/zenthra-manager/internal/entity"
)

const (
	paymentStatusPaid = "paid"
	statusCancelled   = "cancelled"
	statusDelivered   = "delivered"
)

// Service exposes the analytics entry points. Each call fetches the full
// order set, folds it into call-local accumulators and finalizes; a fetch
// failure aborts the call with no partial result.
type Service struct {
	orders dependency.Orders
	now    func() time.Time
}

// New creates the analytics service over the given order source.
func New(orders dependency.Orders) *Service {
	return &Service{orders: orders, now: time.Now}
}

// ProductSalesSummary aggregates per-product quantity and revenue across
// every order, regardless of payment status or customer attribution. The
// optional created range is pushed down into the store query.
func (s *Service) ProductSalesSummary(ctx context.Context, filter entity.OrderFilter) (*entity.ProductSalesSummary, error) {
	orders, err := s.orders.GetOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	acc := newProductAccumulator()
	for i := range orders {
		acc.fold(&orders[i])
	}
	return acc.finalize(), nil
}

// CustomerOrderAnalytics aggregates paid orders into per-customer
// lifetime profiles, leaderboards and the monthly chart.
func (s *Service) CustomerOrderAnalytics(ctx context.Context) (*entity.CustomerAnalytics, error) {
	orders, err := s.orders.GetOrders(ctx, entity.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	acc := newCustomerAccumulator()
	for i := range orders {
		if !isPaid(&orders[i]) {
			continue
		}
		acc.fold(&orders[i])
	}
	logMalformed(ctx, "customer analytics", acc.malformed)
	r := acc.finalize(s.now())

	bySpend := make([]entity.CustomerSummary, 0, len(r.customers))
	for _, c := range r.sortedByValue() {
		bySpend = append(bySpend, paidSummary(c))
	}
	byOrders := make([]entity.CustomerSummary, 0, len(r.customers))
	for _, c := range r.sortedByOrders() {
		byOrders = append(byOrders, paidSummary(c))
	}

	return &entity.CustomerAnalytics{
		Customers:            bySpend,
		TotalCustomers:       len(r.customers),
		TotalOrders:          r.totalOrders,
		TotalRevenue:         r.totalValue,
		TopCustomersBySpend:  topSlice(bySpend),
		TopCustomersByOrders: topSlice(byOrders),
		OrderDetails:         r.details,
		Chart:                r.chart,
	}, nil
}

// AbandonedCartAnalytics is the pending mirror of the paid pipeline: it
// aggregates orders that were never paid and not cancelled.
func (s *Service) AbandonedCartAnalytics(ctx context.Context) (*entity.AbandonedCartAnalytics, error) {
	orders, err := s.orders.GetOrders(ctx, entity.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	acc := newCustomerAccumulator()
	for i := range orders {
		if !isAbandoned(&orders[i]) {
			continue
		}
		acc.fold(&orders[i])
	}
	logMalformed(ctx, "abandoned cart analytics", acc.malformed)
	r := acc.finalize(s.now())

	byValue := make([]entity.AbandonedCartSummary, 0, len(r.customers))
	for _, c := range r.sortedByValue() {
		byValue = append(byValue, pendingSummary(c))
	}
	byOrders := make([]entity.AbandonedCartSummary, 0, len(r.customers))
	for _, c := range r.sortedByOrders() {
		byOrders = append(byOrders, pendingSummary(c))
	}

	return &entity.AbandonedCartAnalytics{
		Customers:            byValue,
		TotalCustomers:       len(r.customers),
		TotalPendingOrders:   r.totalOrders,
		TotalPendingValue:    r.totalValue,
		TopCustomersByValue:  topSlice(byValue),
		TopCustomersByOrders: topSlice(byOrders),
		OrderDetails:         r.details,
		Chart:                r.chart,
	}, nil
}

// DashboardMetrics computes the admin landing-page counters from the same
// full scan the other entry points use.
func (s *Service) DashboardMetrics(ctx context.Context) (*entity.DashboardMetrics, error) {
	orders, err := s.orders.GetOrders(ctx, entity.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	m := &entity.DashboardMetrics{}
	for i := range orders {
		o := &orders[i]
		total := decimal.Zero
		if o.Total.Valid {
			total = o.Total.Decimal
		}
		if isPaid(o) {
			m.TotalOrders++
			m.TotalRevenue = m.TotalRevenue.Add(total)
			if o.Created.Valid && !o.Created.Time.Before(midnight) {
				m.RevenueToday = m.RevenueToday.Add(total)
			}
		} else {
			m.PendingOrders++
		}
		if strings.EqualFold(o.Status.String, statusDelivered) {
			m.CompletedOrders++
		}
	}
	m.TotalRevenue = m.TotalRevenue.Round(2)
	m.RevenueToday = m.RevenueToday.Round(2)
	if m.TotalOrders > 0 {
		m.AverageOrderValue = m.TotalRevenue.Div(decimal.NewFromInt(int64(m.TotalOrders))).Round(2)
	}
	return m, nil
}

// MonthlyRevenue returns the current-year Jan..Dec revenue series across
// all orders, with empty months zero-filled.
func (s *Service) MonthlyRevenue(ctx context.Context) ([]entity.MonthRevenuePoint, error) {
	orders, err := s.orders.GetOrders(ctx, entity.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	year := s.now().Year()
	byMonth := make(map[time.Month]decimal.Decimal, 12)
	for i := range orders {
		o := &orders[i]
		if !o.Created.Valid || o.Created.Time.Year() != year {
			continue
		}
		total := decimal.Zero
		if o.Total.Valid {
			total = o.Total.Decimal
		}
		byMonth[o.Created.Time.Month()] = byMonth[o.Created.Time.Month()].Add(total)
	}

	points := make([]entity.MonthRevenuePoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		points = append(points, entity.MonthRevenuePoint{
			Month:   m.String()[:3],
			Revenue: byMonth[m].Round(2),
		})
	}
	return points, nil
}

func isPaid(o *entity.OrderRecord) bool {
	return strings.EqualFold(o.PaymentStatus.String, paymentStatusPaid)
}

func isAbandoned(o *entity.OrderRecord) bool {
	return !isPaid(o) && !strings.EqualFold(o.Status.String, statusCancelled)
}

func paidSummary(c customerRollup) entity.CustomerSummary {
	return entity.CustomerSummary{
		CustomerID:         c.identity.key,
		Name:               c.identity.name,
		Email:              c.identity.email,
		Phone:              c.identity.phone,
		AccountID:          c.identity.accountID,
		TotalOrders:        c.orders,
		TotalSpend:         c.value,
		AverageOrderValue:  c.averageOrderValue,
		FirstOrderDate:     c.firstDate,
		LastOrderDate:      c.lastDate,
		AverageGapDays:     c.averageGapDays,
		DaysSinceLastOrder: c.daysSinceLast,
		TopProducts:        c.topProducts,
	}
}

func pendingSummary(c customerRollup) entity.AbandonedCartSummary {
	return entity.AbandonedCartSummary{
		CustomerID:           c.identity.key,
		Name:                 c.identity.name,
		Email:                c.identity.email,
		Phone:                c.identity.phone,
		AccountID:            c.identity.accountID,
		PendingOrders:        c.orders,
		TotalValue:           c.value,
		AverageOrderValue:    c.averageOrderValue,
		FirstPendingDate:     c.firstDate,
		LastPendingDate:      c.lastDate,
		DaysSinceLastPending: c.daysSinceLast,
		TopProducts:          c.topProducts,
	}
}

func topSlice[T any](list []T) []T {
	if len(list) > topListSize {
		list = list[:topListSize]
	}
	return append([]T(nil), list...)
}

func logMalformed(ctx context.Context, op string, n int) {
	if n > 0 {
		slog.Default().DebugContext(ctx, "orders with unparseable products payload",
			slog.String("op", op),
			slog.Int("count", n),
		)
	}
}
