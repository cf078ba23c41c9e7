package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSalesMetric is one row of the per-product sales rollup.
type ProductSalesMetric struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	TotalQuantity float64         `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// ProductSalesSummary is the product-sales entry point result.
type ProductSalesSummary struct {
	Items             []ProductSalesMetric `json:"items"`
	TotalProductsSold int                  `json:"totalProductsSold"`
	TotalItemsSold    float64              `json:"totalItemsSold"`
}

// TopProduct is one entry of a customer's top-products leaderboard or of
// an order detail's item list.
type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
}

// CustomerSummary is the paid-order lifetime profile of one customer key.
type CustomerSummary struct {
	CustomerID         string          `json:"userId"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	AccountID          string          `json:"accountId,omitempty"`
	TotalOrders        int             `json:"totalOrders"`
	TotalSpend         decimal.Decimal `json:"totalSpend"`
	AverageOrderValue  decimal.Decimal `json:"averageOrderValue"`
	FirstOrderDate     *time.Time      `json:"firstOrderDate"`
	LastOrderDate      *time.Time      `json:"lastOrderDate"`
	AverageGapDays     *float64        `json:"averageGapDays"`
	DaysSinceLastOrder *float64        `json:"daysSinceLastOrder"`
	TopProducts        []TopProduct    `json:"topProducts"`
}

// AbandonedCartSummary mirrors CustomerSummary with pending semantics.
type AbandonedCartSummary struct {
	CustomerID           string          `json:"userId"`
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	Phone                string          `json:"phone"`
	AccountID            string          `json:"accountId,omitempty"`
	PendingOrders        int             `json:"pendingOrders"`
	TotalValue           decimal.Decimal `json:"totalValue"`
	AverageOrderValue    decimal.Decimal `json:"averageOrderValue"`
	FirstPendingDate     *time.Time      `json:"firstPendingDate"`
	LastPendingDate      *time.Time      `json:"lastPendingDate"`
	DaysSinceLastPending *float64        `json:"daysSinceLastPending"`
	TopProducts          []TopProduct    `json:"topProducts"`
}

// OrderDetail is one qualifying order inside a customer's history.
type OrderDetail struct {
	ID            string          `json:"id"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus,omitempty"`
	Created       string          `json:"created"`
	ItemsCount    float64         `json:"itemsCount"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Products      []TopProduct    `json:"products"`
}

// ChartPoint is one month bucket of the order/revenue time series.
type ChartPoint struct {
	Month   string          `json:"month"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CustomerAnalytics is the paid-customer entry point result.
type CustomerAnalytics struct {
	Customers            []CustomerSummary        `json:"customers"`
	TotalCustomers       int                      `json:"totalCustomers"`
	TotalOrders          int                      `json:"totalOrders"`
	TotalRevenue         decimal.Decimal          `json:"totalRevenue"`
	TopCustomersBySpend  []CustomerSummary        `json:"topCustomersBySpend"`
	TopCustomersByOrders []CustomerSummary        `json:"topCustomersByOrders"`
	OrderDetails         map[string][]OrderDetail `json:"orderDetails"`
	Chart                []ChartPoint             `json:"chart"`
}

// AbandonedCartAnalytics is the abandoned-cart entry point result.
type AbandonedCartAnalytics struct {
	Customers            []AbandonedCartSummary   `json:"customers"`
	TotalCustomers       int                      `json:"totalCustomers"`
	TotalPendingOrders   int                      `json:"totalPendingOrders"`
	TotalPendingValue    decimal.Decimal          `json:"totalPendingValue"`
	TopCustomersByValue  []AbandonedCartSummary   `json:"topCustomersByValue"`
	TopCustomersByOrders []AbandonedCartSummary   `json:"topCustomersByOrders"`
	OrderDetails         map[string][]OrderDetail `json:"orderDetails"`
	Chart                []ChartPoint             `json:"chart"`
}

// DashboardMetrics is the admin landing-page counters block.
type DashboardMetrics struct {
	TotalOrders       int             `json:"total_orders"`
	PendingOrders     int             `json:"pending_orders"`
	CompletedOrders   int             `json:"completed_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	RevenueToday      decimal.Decimal `json:"revenue_today"`
}

// MonthRevenuePoint is one bucket of the current-year monthly revenue chart.
type MonthRevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}
