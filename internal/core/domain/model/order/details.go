package order

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
)

// Details carries the descriptive fields of an order: product identity,
// quantity, and shipment preferences. The lifecycle engine never interprets
// these values; they are validated for presence once at intake and carried
// verbatim afterwards.
type Details struct {
	productName         string
	description         string
	quantity            int
	specifications      string
	deliveryMode        string
	destinationHandling string
}

// NewDetails creates order details with presence validation. Product name,
// description, delivery mode, and destination handling must be non-empty and
// quantity must be positive; specifications are optional.
func NewDetails(
	productName string,
	description string,
	quantity int,
	specifications string,
	deliveryMode string,
	destinationHandling string,
) (Details, error) {
	d := Details{
		productName:         productName,
		description:         description,
		quantity:            quantity,
		specifications:      specifications,
		deliveryMode:        deliveryMode,
		destinationHandling: destinationHandling,
	}

	if err := errors.Join(
		requireField("productName", productName),
		requireField("description", description),
		requireField("deliveryMode", deliveryMode),
		requireField("destinationHandling", destinationHandling),
		validateQuantity(quantity),
	); err != nil {
		return Details{}, err
	}

	return d, nil
}

// ProductName returns the ordered product's name.
func (d Details) ProductName() string {
	return d.productName
}

// Description returns the free-text product description.
func (d Details) Description() string {
	return d.description
}

// Quantity returns the ordered quantity.
func (d Details) Quantity() int {
	return d.quantity
}

// Specifications returns the optional product specifications.
func (d Details) Specifications() string {
	return d.specifications
}

// DeliveryMode returns the requested delivery mode (opaque to the engine).
func (d Details) DeliveryMode() string {
	return d.deliveryMode
}

// DestinationHandling returns the destination-handling choice (opaque to the
// engine).
func (d Details) DestinationHandling() string {
	return d.destinationHandling
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
