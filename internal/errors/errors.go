package gerr

import "errors"

var (
	OrderNotFound    = errors.New("order not found")
	NotAuthenticated = errors.New("not authenticated")
)
