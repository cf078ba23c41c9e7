package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderRowToRecord(t *testing.T) {
	row := orderRow{
		ID:            "o1",
		Status:        sql.NullString{String: "placed", Valid: true},
		Products:      sql.NullString{String: `[{"productId":"p1"}]`, Valid: true},
		CustomerEmail: sql.NullString{String: "guest@example.com", Valid: true},
		AccountID:     sql.NullString{String: "acc1", Valid: true},
		AccountEmail:  sql.NullString{String: "jane@example.com", Valid: true},
	}

	rec := row.toRecord()
	assert.Equal(t, "o1", rec.ID)
	assert.Equal(t, `[{"productId":"p1"}]`, string(rec.Products))
	assert.NotNil(t, rec.Account)
	assert.Equal(t, "acc1", rec.Account.ID)
	assert.Equal(t, "jane@example.com", rec.Account.Email)
}

func TestOrderRowToRecordNoAccount(t *testing.T) {
	rec := (&orderRow{ID: "o1"}).toRecord()
	assert.Nil(t, rec.Account)
	assert.Nil(t, rec.Products)
}

func TestNullString(t *testing.T) {
	assert.False(t, nullString("").Valid)
	assert.True(t, nullString("x").Valid)
}
