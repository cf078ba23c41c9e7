package entity

import (
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderRecord is one order as read from the store. The raw products payload
// is carried verbatim; whatever shape it has is resolved by the analytics
// engine, never by the store.
type OrderRecord struct {
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
	Products      json.RawMessage     `db:"products"`

	// Account is the expanded linked account, nil when the order
	// carries no account reference.
	Account *CustomerAccount `db:"-"`
}

// CustomerAccount is the linked account row expanded onto an order.
type CustomerAccount struct {
	ID    string `db:"account_id"`
	Name  string `db:"account_name"`
	Email string `db:"account_email"`
	Phone string `db:"account_phone"`
}

// OrderFilter narrows the full-list order fetch. Both bounds are optional
// and are pushed down into the query, not applied in memory.
type OrderFilter struct {
	CreatedFrom sql.NullTime
	CreatedTo   sql.NullTime
}

// OrderNew is the write-path request for creating an order.
type OrderNew struct {
	AccountID     string          `valid:"-"`
	CustomerName  string          `valid:"-"`
	CustomerEmail string          `valid:"email,optional"`
	CustomerPhone string          `valid:"-"`
	Status        string          `valid:"required"`
	PaymentStatus string          `valid:"required"`
	Total         decimal.Decimal `valid:"-"`
	Products      json.RawMessage `valid:"-"`
}
