package model

// PaymentMethod selects one of the three payment confirmation flows a
// client can finish a reservation with.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayCard, PayTransfer:
		return true
	}
	return false
}
