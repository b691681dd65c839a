package models

// BouquetSize is the size of a bouquet. Stored and transmitted as a
// single-letter token.
type BouquetSize string

const (
	SizeSmall  BouquetSize = "S"
	SizeMedium BouquetSize = "M"
	SizeLarge  BouquetSize = "L"
)

// Valid reports whether s is one of the known size tokens.
func (s BouquetSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// PaymentStatus tracks whether money has been collected for an order.
type PaymentStatus string

const (
	PaymentIncomplete PaymentStatus = "Incomplete"
	PaymentCompleted  PaymentStatus = "Completed"
)

// Valid reports whether s is one of the known payment status tokens.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentIncomplete, PaymentCompleted:
		return true
	}
	return false
}

// OrderStatus tracks fulfillment progress, independent of payment.
type OrderStatus string

const (
	OrderNotStarted OrderStatus = "Not Started"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
)

// Valid reports whether s is one of the known order status tokens.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderNotStarted, OrderInProgress, OrderCompleted:
		return true
	}
	return false
}
