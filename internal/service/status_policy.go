package service

import (
	"fmt"
	"strings"

	"go-order-desk/internal/model"
)

// StatusPolicy decides which order status transitions are accepted
type StatusPolicy string

const (
	// PolicyPermissive accepts any known status from any status
	PolicyPermissive StatusPolicy = "permissive"
	// PolicyStrict refuses to leave delivered or cancelled
	PolicyStrict StatusPolicy = "strict"
)

func ParseStatusPolicy(name string) (StatusPolicy, error) {
	switch StatusPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatusPolicy, name)
	}
}

// Check returns ErrTransitionNotAllowed when the policy refuses from -> to.
// Setting the current status again is always accepted.
func (p StatusPolicy) Check(from, to model.OrderStatus) error {
	if p != PolicyStrict || from == to {
		return nil
	}
	if from.Terminal() {
		return fmt.Errorf("%w: order is already %s", ErrTransitionNotAllowed, from)
	}
	return nil
}
