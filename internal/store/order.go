package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zenthra/zenthra-manager/internal/dependency"
	"github.com/zenthra/zenthra-manager/internal/entity"
	gerr "github.com/zenthra/zenthra-manager/internal/errors"
)

type orderStore struct {
	*MYSQLStore
}

// Orders returns an object implementing the Orders interface.
func (ms *MYSQLStore) Orders() dependency.Orders {
	return &orderStore{MYSQLStore: ms}
}

// orderRow is the flattened join of an order with its optional linked
// account. The raw products payload is scanned as-is; the store never
// interprets it.
type orderRow struct {
	ID            string              `db:"id"`
	Status        sql.NullString      `db:"status"`
	PaymentStatus sql.NullString      `db:"payment_status"`
	Total         decimal.NullDecimal `db:"total"`
	Created       sql.NullTime        `db:"created"`
	CustomerName  sql.NullString      `db:"customer_name"`
	CustomerEmail sql.NullString      `db:"customer_email"`
	CustomerPhone sql.NullString      `db:"customer_phone"`
	TrackingCode  sql.NullString      `db:"tracking_code"`
	TrackingURL   sql.NullString      `db:"tracking_url"`
	Products      sql.NullString      `db:"products"`

	AccountID    sql.NullString `db:"account_id"`
	AccountName  sql.NullString `db:"account_name"`
	AccountEmail sql.NullString `db:"account_email"`
	AccountPhone sql.NullString `db:"account_phone"`
}

const orderSelect = `
	SELECT o.id, o.status, o.payment_status, o.total, o.created,
		o.customer_name, o.customer_email, o.customer_phone,
		o.tracking_code, o.tracking_url, o.products,
		ca.id AS account_id, ca.name AS account_name,
		ca.email AS account_email, ca.phone AS account_phone
	FROM orders o
	LEFT JOIN customer_account ca ON o.account_id = ca.id
`

// GetOrders returns the full order list sorted by created desc, with the
// linked account expanded. The optional created bounds are applied in the
// query, not in memory.
func (os *orderStore) GetOrders(ctx context.Context, filter entity.OrderFilter) ([]entity.OrderRecord, error) {
	var conditions []string
	params := map[string]any{}
	if filter.CreatedFrom.Valid {
		conditions = append(conditions, "o.created >= :from")
		params["from"] = filter.CreatedFrom.Time
	}
	if filter.CreatedTo.Valid {
		conditions = append(conditions, "o.created <= :to")
		params["to"] = filter.CreatedTo.Time
	}

	query := orderSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY o.created DESC"

	rows, err := QueryListNamed[orderRow](ctx, os.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't get orders: %w", err)
	}

	orders := make([]entity.OrderRecord, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].toRecord())
	}
	return orders, nil
}

// GetOrderByID returns one order with its account expanded.
func (os *orderStore) GetOrderByID(ctx context.Context, id string) (*entity.OrderRecord, error) {
	row, err := QueryNamedOne[orderRow](ctx, os.DB(), orderSelect+" WHERE o.id = :id", map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.OrderNotFound
		}
		return nil, fmt.Errorf("can't get order by id: %w", err)
	}
	order := row.toRecord()
	return &order, nil
}

// CreateOrder inserts a new order and returns its generated id.
func (os *orderStore) CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (string, error) {
	id := uuid.New().String()
	err := ExecNamed(ctx, os.DB(), `
		INSERT INTO orders
			(id, account_id, customer_name, customer_email, customer_phone,
			status, payment_status, total, products, created)
		VALUES
			(:id, :accountId, :customerName, :customerEmail, :customerPhone,
			:status, :paymentStatus, :total, :products, :created)
	`, map[string]any{
		"id":            id,
		"accountId":     nullString(orderNew.AccountID),
		"customerName":  nullString(orderNew.CustomerName),
		"customerEmail": nullString(orderNew.CustomerEmail),
		"customerPhone": nullString(orderNew.CustomerPhone),
		"status":        orderNew.Status,
		"paymentStatus": orderNew.PaymentStatus,
		"total":         orderNew.Total,
		"products":      nullString(string(orderNew.Products)),
		"created":       time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("can't insert order: %w", err)
	}
	return id, nil
}

// UpdateOrderStatus sets the fulfilment status of an order.
func (os *orderStore) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	err := ExecNamed(ctx, os.DB(), `
		UPDATE orders SET status = :status WHERE id = :id
	`, map[string]any{"id": id, "status": status})
	if err != nil {
		return fmt.Errorf("can't update order status: %w", err)
	}
	return nil
}

// SetOrderTracking stores tracking details and marks the order shipped.
func (os *orderStore) SetOrderTracking(ctx context.Context, id string, trackingCode, trackingURL string) error {
	err := ExecNamed(ctx, os.DB(), `
		UPDATE orders
		SET tracking_code = :trackingCode, tracking_url = :trackingUrl, status = 'shipped'
		WHERE id = :id
	`, map[string]any{"id": id, "trackingCode": trackingCode, "trackingUrl": trackingURL})
	if err != nil {
		return fmt.Errorf("can't set order tracking: %w", err)
	}
	return nil
}

func (r *orderRow) toRecord() entity.OrderRecord {
	rec := entity.OrderRecord{
		ID:            r.ID,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		Total:         r.Total,
		Created:       r.Created,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		TrackingCode:  r.TrackingCode,
		TrackingURL:   r.TrackingURL,
	}
	if r.Products.Valid {
		rec.Products = json.RawMessage(r.Products.String)
	}
	if r.AccountID.Valid {
		rec.Account = &entity.CustomerAccount{
			ID:    r.AccountID.String,
			Name:  r.AccountName.String,
			Email: r.AccountEmail.String,
			Phone: r.AccountPhone.String,
		}
	}
	return rec
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
