package analytics

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zenthra/zenthra-manager/internal/entity"
)

func TestResolveCustomerFromOrderFields(t *testing.T) {
	o := &entity.OrderRecord{
		CustomerName:  ns("  Jane Doe "),
		CustomerEmail: ns(" Jane@Example.COM "),
		CustomerPhone: ns("+1 (555) 123-4567"),
	}

	id, ok := resolveCustomer(o)
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com::15551234567", id.key)
	assert.Equal(t, "Jane Doe", id.name)
	assert.Equal(t, "jane@example.com", id.email)
	assert.Equal(t, "15551234567", id.phone)
	assert.Empty(t, id.accountID)
}

func TestResolveCustomerPrefersAccount(t *testing.T) {
	o := &entity.OrderRecord{
		CustomerName:  ns("Guest"),
		CustomerEmail: ns("guest@example.com"),
		CustomerPhone: ns("999"),
		Account: &entity.CustomerAccount{
			ID:    "acc1",
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Phone: "555",
		},
	}

	id, ok := resolveCustomer(o)
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com::555", id.key)
	assert.Equal(t, "Jane Doe", id.name)
	assert.Equal(t, "acc1", id.accountID)
}

func TestResolveCustomerAccountShadowsOrderFields(t *testing.T) {
	// A linked account wins even when its contact fields are emptier
	// than the order's denormalized ones.
	o := &entity.OrderRecord{
		CustomerEmail: ns("guest@example.com"),
		Account: &entity.CustomerAccount{
			ID:    "acc1",
			Phone: "555",
		},
	}

	id, ok := resolveCustomer(o)
	assert.True(t, ok)
	assert.Equal(t, "::555", id.key)
	assert.Equal(t, unknownCustomerName, id.name)
}

func TestResolveCustomerNoIdentity(t *testing.T) {
	_, ok := resolveCustomer(&entity.OrderRecord{CustomerName: ns("Jane")})
	assert.False(t, ok)

	_, ok = resolveCustomer(&entity.OrderRecord{
		CustomerEmail: ns("   "),
		CustomerPhone: ns("ext."),
	})
	assert.False(t, ok)
}

func TestResolveCustomerEmailOnly(t *testing.T) {
	id, ok := resolveCustomer(&entity.OrderRecord{CustomerEmail: ns("a@b.c")})
	assert.True(t, ok)
	assert.Equal(t, "a@b.c::", id.key)
	assert.Equal(t, unknownCustomerName, id.name)
}

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
