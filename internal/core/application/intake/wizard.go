// Package intake implements the stepped controller gating the creation of a
// new order. The wizard walks three ordered steps, refuses to advance until
// the current step's required fields are present, and only hands a complete
// draft onward on final confirmation.
package intake

import (
	"context"
	"errors"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// Step identifies one wizard page.
type Step int

const (
	// StepProductIdentity collects what is being bought.
	StepProductIdentity Step = 1

	// StepShipmentPreference collects how it should travel.
	StepShipmentPreference Step = 2

	// StepReview shows the assembled draft and offers submission.
	StepReview Step = 3
)

// ErrNotOnReviewStep is returned when Submit is called before the review
// step is reached.
var ErrNotOnReviewStep = errors.New("submission is only available from the review step")

// Draft holds the order fields collected so far. Zero values mean "not yet
// provided".
type Draft struct {
	ProductName         string
	Description         string
	Quantity            int
	Specifications      string
	DeliveryMode        string
	DestinationHandling string
}

// SubmitFunc receives the completed creation command. Wired to the mutation
// protocol in production; the wizard itself performs no I/O.
type SubmitFunc func(ctx context.Context, cmd commands.CreateOrderCommand) error

// Wizard is the intake stepper for one draft order. Not safe for concurrent
// use; each client session owns its own instance.
type Wizard struct {
	clientID kernel.UUID
	submit   SubmitFunc
	step     Step
	draft    Draft
}

// NewWizard creates a wizard for the given client.
func NewWizard(clientID kernel.UUID, submit SubmitFunc) (*Wizard, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}
	if submit == nil {
		return nil, errs.NewValueIsRequiredError("submit")
	}

	return &Wizard{
		clientID: clientID,
		submit:   submit,
		step:     StepProductIdentity,
	}, nil
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Draft returns the fields collected so far.
func (w *Wizard) Draft() Draft {
	return w.draft
}

// SetProductIdentity records the step-1 fields.
func (w *Wizard) SetProductIdentity(productName, description string, quantity int, specifications string) {
	w.draft.ProductName = productName
	w.draft.Description = description
	w.draft.Quantity = quantity
	w.draft.Specifications = specifications
}

// SetShipmentPreference records the step-2 fields.
func (w *Wizard) SetShipmentPreference(deliveryMode, destinationHandling string) {
	w.draft.DeliveryMode = deliveryMode
	w.draft.DestinationHandling = destinationHandling
}

// CanAdvance reports whether the current step's required fields are present.
// The review step is always satisfied.
func (w *Wizard) CanAdvance() bool {
	switch w.step {
	case StepProductIdentity:
		return w.draft.ProductName != "" && w.draft.Description != ""
	case StepShipmentPreference:
		return w.draft.DeliveryMode != "" && w.draft.DestinationHandling != ""
	case StepReview:
		return true
	default:
		return false
	}
}

// Next advances to the following step. A no-op returning false when the
// current step's requirements are unmet or the wizard is already on review.
func (w *Wizard) Next() bool {
	if w.step >= StepReview || !w.CanAdvance() {
		return false
	}

	w.step++
	return true
}

// Back returns to the previous step. Disabled on step 1.
func (w *Wizard) Back() bool {
	if w.step <= StepProductIdentity {
		return false
	}

	w.step--
	return true
}

// Cancel discards all draft state and restarts the wizard. No I/O happens;
// nothing was created.
func (w *Wizard) Cancel() {
	w.draft = Draft{}
	w.step = StepProductIdentity
}

// Submit assembles the draft into a creation command and hands it to the
// submit callback. Only reachable from the review step. On success the
// wizard resets for the next draft and returns the new order's id.
func (w *Wizard) Submit(ctx context.Context) (kernel.UUID, error) {
	if w.step != StepReview {
		return kernel.UUID{}, ErrNotOnReviewStep
	}

	details, err := order.NewDetails(
		w.draft.ProductName,
		w.draft.Description,
		w.draft.Quantity,
		w.draft.Specifications,
		w.draft.DeliveryMode,
		w.draft.DestinationHandling,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, w.clientID, details)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = w.submit(ctx, cmd); err != nil {
		return kernel.UUID{}, err
	}

	w.Cancel()
	return orderID, nil
}
