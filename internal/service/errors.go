package service

import "go-order-desk/pkg/apperr"

var (
	ErrCustomerNotFound  = apperr.New(apperr.KindNotFound, "customer not found")
	ErrProductNotFound   = apperr.New(apperr.KindNotFound, "product not found")
	ErrOrderNotFound     = apperr.New(apperr.KindNotFound, "order not found")
	ErrOperatorNotFound  = apperr.New(apperr.KindNotFound, "operator not found")
	ErrEmailExists       = apperr.New(apperr.KindConflict, "email already exists")
	ErrSKUExists         = apperr.New(apperr.KindConflict, "SKU already exists")
	ErrCustomerHasOrders = apperr.New(apperr.KindConflict, "customer has orders and cannot be deleted")
	ErrProductInUse      = apperr.New(apperr.KindConflict, "product is referenced by orders and cannot be deleted")

	ErrNoItems              = apperr.New(apperr.KindValidation, "order must contain at least one item")
	ErrInvalidQuantity      = apperr.New(apperr.KindValidation, "quantity must be greater than zero")
	ErrDuplicateProduct     = apperr.New(apperr.KindValidation, "product appears more than once in the order")
	ErrProductInactive      = apperr.New(apperr.KindValidation, "product is not active")
	ErrInsufficientStock    = apperr.New(apperr.KindValidation, "insufficient stock")
	ErrInvalidStatus        = apperr.New(apperr.KindValidation, "unrecognized order status")
	ErrInvalidCategory      = apperr.New(apperr.KindValidation, "unrecognized product category")
	ErrNegativePrice        = apperr.New(apperr.KindValidation, "price cannot be negative")
	ErrTransitionNotAllowed = apperr.New(apperr.KindValidation, "status transition not allowed")
	ErrInvalidCredentials   = apperr.New(apperr.KindValidation, "invalid email or password")
	ErrOperatorInactive     = apperr.New(apperr.KindValidation, "operator account is inactive")
	ErrUnknownStatusPolicy  = apperr.New(apperr.KindValidation, "unknown order status policy")
)
