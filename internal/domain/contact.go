package domain

import (
	"fmt"
	"strings"
	"time"
)

// ContactMessage represents a message submitted through the public
// contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// ValidateContactMessage validates a ContactMessage instance.
func ValidateContactMessage(m *ContactMessage) error {
	if m == nil {
		return fmt.Errorf("contact message cannot be nil")
	}

	if m.ID == "" {
		return fmt.Errorf("contact message ID is required")
	}

	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("contact message Name is required")
	}

	if !strings.Contains(m.Email, "@") {
		return fmt.Errorf("contact message Email is invalid: %s", m.Email)
	}

	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("contact message Body is required")
	}

	return nil
}
