package dependency

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/zenthra/zenthra-manager/internal/entity"
)

type (
	// Orders is the order datastore as seen by the analytics engine and
	// the admin write path. GetOrders always expands the linked account.
	Orders interface {
		// GetOrders returns the full order list sorted by created desc.
		// The optional created range in filter is applied in the query.
		GetOrders(ctx context.Context, filter entity.OrderFilter) ([]entity.OrderRecord, error)
		// GetOrderByID returns a single order with its account expanded.
		GetOrderByID(ctx context.Context, id string) (*entity.OrderRecord, error)
		// CreateOrder inserts a new order and returns its generated id.
		CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (string, error)
		// UpdateOrderStatus sets the fulfilment status of an order.
		UpdateOrderStatus(ctx context.Context, id string, status string) error
		// SetOrderTracking stores tracking details and marks the order shipped.
		SetOrderTracking(ctx context.Context, id string, trackingCode, trackingURL string) error
	}

	// Analytics is the aggregation engine as consumed by the report
	// handlers. Every call recomputes from a full order scan.
	Analytics interface {
		ProductSalesSummary(ctx context.Context, filter entity.OrderFilter) (*entity.ProductSalesSummary, error)
		CustomerOrderAnalytics(ctx context.Context) (*entity.CustomerAnalytics, error)
		AbandonedCartAnalytics(ctx context.Context) (*entity.AbandonedCartAnalytics, error)
		DashboardMetrics(ctx context.Context) (*entity.DashboardMetrics, error)
		MonthlyRevenue(ctx context.Context) ([]entity.MonthRevenuePoint, error)
	}

	// Repository groups the store facets and owns the connection.
	Repository interface {
		Orders() Orders
		Close()
	}

	// DB is the sqlx subset used by the store query helpers.
	DB interface {
		QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
		QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	}
)
