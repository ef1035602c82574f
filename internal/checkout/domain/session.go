package domain

import (
	"fmt"
	"time"
)

// EstimatedDeliveryDays is how far out the confirmation promises delivery, whatever the method.
const EstimatedDeliveryDays = 5

// Confirmation is the receipt of a submitted order.
type Confirmation struct {
	Number            string    `json:"confirmationNumber"`
	Email             string    `json:"email"`
	PlacedAt          time.Time `json:"placedAt"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	Quote             Quote     `json:"quote"`
}

// EstimatedDelivery is placedAt plus EstimatedDeliveryDays calendar days.
func EstimatedDelivery(placedAt time.Time) time.Time {
	return placedAt.AddDate(0, 0, EstimatedDeliveryDays)
}

// Session is one pass through the checkout wizard. Every method enforces the step order
// and leaves the session unchanged when it returns an error.
type Session struct {
	Step           Step           `json:"step"`
	Information    *Information   `json:"information,omitempty"`
	ShippingMethod ShippingMethod `json:"shippingMethod"`
	Confirmation   *Confirmation  `json:"confirmation,omitempty"`
}

// NewSession starts on the information step with standard shipping selected.
func NewSession() *Session {
	return &Session{Step: StepInformation, ShippingMethod: ShippingStandard}
}

// SubmitInformation records contact details and advances to shipping.
func (s *Session) SubmitInformation(info Information) error {
	if err := s.expect(StepInformation); err != nil {
		return err
	}
	if err := info.Validate(); err != nil {
		return err
	}
	s.Information = &info
	return s.advance()
}

// ChooseShipping records the method and advances to payment.
func (s *Session) ChooseShipping(method ShippingMethod) error {
	if err := s.expect(StepShipping); err != nil {
		return err
	}
	s.ShippingMethod = method
	return s.advance()
}

// Back returns to the previous step.
func (s *Session) Back() error {
	previous, err := s.Step.Previous()
	if err != nil {
		return err
	}
	s.Step = previous
	return nil
}

// Confirm enters the confirmation step. It is the only way there.
func (s *Session) Confirm(confirmation Confirmation) error {
	if err := s.expect(StepPayment); err != nil {
		return err
	}
	s.Confirmation = &confirmation
	return s.advance()
}

func (s *Session) expect(step Step) error {
	if s.Step != step {
		return fmt.Errorf("%w: at %s, not %s", ErrInvalidTransition, s.Step, step)
	}
	return nil
}

func (s *Session) advance() error {
	next, err := s.Step.Next()
	if err != nil {
		return err
	}
	s.Step = next
	return nil
}
