package order

// PaymentStatus is the client-facing projection of the payment-relevant
// subset of order states. The mapping is total and order-preserving; states
// outside the payment window project to PaymentNotApplicable and show no
// payment UI.
type PaymentStatus int

const (
	// PaymentNotApplicable is the projection of every state outside the
	// payment window.
	PaymentNotApplicable PaymentStatus = iota

	// PaymentFailed is the projection of Rejected.
	PaymentFailed

	// PaymentPending is the projection of AwaitingPayment.
	PaymentPending

	// PaymentProcessing is the projection of PaymentSubmitted.
	PaymentProcessing

	// PaymentPaid is the projection of Paid.
	PaymentPaid
)

// String returns the client-facing name of the payment status.
func (p PaymentStatus) String() string {
	switch p {
	case PaymentFailed:
		return "failed"
	case PaymentPending:
		return "pending"
	case PaymentProcessing:
		return "processing"
	case PaymentPaid:
		return "paid"
	default:
		return "not_applicable"
	}
}

// PaymentStatus projects the state onto the client-facing payment enum.
// The projection is pure and deterministic: Rejected -> failed,
// AwaitingPayment -> pending, PaymentSubmitted -> processing, Paid -> paid,
// everything else -> not applicable.
func (s State) PaymentStatus() PaymentStatus {
	switch s {
	case Rejected:
		return PaymentFailed
	case AwaitingPayment:
		return PaymentPending
	case PaymentSubmitted:
		return PaymentProcessing
	case Paid:
		return PaymentPaid
	default:
		return PaymentNotApplicable
	}
}
