package order

import (
	"database/sql/driver"
	"errors"
)

type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDelivery DeliveryMethod = "delivery"
)

var ErrInvalidDeliveryMethod = errors.New("invalid delivery method")

func (m DeliveryMethod) String() string {
	return string(m)
}

func (m DeliveryMethod) Value() (driver.Value, error) {
	return m.String(), nil
}

// ParseDeliveryMethod maps a raw string onto a known delivery method.
// The empty string defaults to pickup.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case "":
		return DeliveryMethodPickup, nil
	case DeliveryMethodPickup, DeliveryMethodDelivery:
		return DeliveryMethod(s), nil
	default:
		return "", ErrInvalidDeliveryMethod
	}
}
