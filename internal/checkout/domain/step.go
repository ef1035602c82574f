package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a step is requested out of order.
var ErrInvalidTransition = errors.New("invalid checkout transition")

// Step is a stage of the checkout wizard.
type Step string

const (
	StepInformation  Step = "information"
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// Next is the step that follows s. Confirmation is terminal.
func (s Step) Next() (Step, error) {
	switch s {
	case StepInformation:
		return StepShipping, nil
	case StepShipping:
		return StepPayment, nil
	case StepPayment:
		return StepConfirmation, nil
	default:
		return s, fmt.Errorf("%w: no step after %s", ErrInvalidTransition, s)
	}
}

// Previous is the step back from s. Only shipping and payment can go back.
func (s Step) Previous() (Step, error) {
	switch s {
	case StepShipping:
		return StepInformation, nil
	case StepPayment:
		return StepShipping, nil
	default:
		return s, fmt.Errorf("%w: cannot go back from %s", ErrInvalidTransition, s)
	}
}
