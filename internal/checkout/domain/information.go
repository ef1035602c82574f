package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Information is the contact and delivery address collected on the first step.
type Information struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// Validate reports every missing required field at once. Phone and apartment are optional.
func (i Information) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"email", i.Email},
		{"firstName", i.FirstName},
		{"lastName", i.LastName},
		{"address", i.Address},
		{"city", i.City},
		{"state", i.State},
		{"zip", i.Zip},
	}

	var errs []error
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", field.name))
		}
	}
	if email := strings.TrimSpace(i.Email); email != "" && !strings.Contains(email, "@") {
		errs = append(errs, errors.New("email must be valid"))
	}
	return errors.Join(errs...)
}
