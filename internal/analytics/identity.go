package analytics

import (
	"strings"

	"github.com/zenthra/zenthra-manager/internal/entity"
)

const customerKeySeparator = "::"

const unknownCustomerName = "Unknown customer"

// customerIdentity is a stable per-order customer attribution. The key is
// normalized email and normalized phone joined by "::". Two accounts whose
// email and phone both normalize to empty would collide on the same key;
// that is an accepted approximation of the upstream data model, not
// something this package tries to repair.
type customerIdentity struct {
	key       string
	name      string
	email     string
	phone     string
	accountID string
}

// resolveCustomer derives the customer identity for one order. Linked
// account fields take precedence over the order's denormalized customer_*
// columns. Returns false when neither a normalized email nor a normalized
// phone is left, in which case the order is excluded from customer-level
// rollups (it still counts in product-level ones).
func resolveCustomer(o *entity.OrderRecord) (customerIdentity, bool) {
	var email, phone, name, accountID string
	if o.Account != nil {
		email = o.Account.Email
		phone = o.Account.Phone
		name = o.Account.Name
		accountID = o.Account.ID
	} else {
		email = o.CustomerEmail.String
		phone = o.CustomerPhone.String
		name = o.CustomerName.String
	}

	email = strings.ToLower(strings.TrimSpace(email))
	phone = digitsOnly(phone)
	if email == "" && phone == "" {
		return customerIdentity{}, false
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = unknownCustomerName
	}

	return customerIdentity{
		key:       email + customerKeySeparator + phone,
		name:      name,
		email:     email,
		phone:     phone,
		accountID: accountID,
	}, true
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
