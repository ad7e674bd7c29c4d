package message

import (
	"net/mail"
	"strings"

	"github.com/portfolio-space/core/internal/pkg/apperr"
)

type CreateMessageDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Trim strips surrounding whitespace from every field.
func (d *CreateMessageDTO) Trim() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Subject = strings.TrimSpace(d.Subject)
	d.Message = strings.TrimSpace(d.Message)
}

// Missing returns the first empty required field, or "".
func (d *CreateMessageDTO) Missing() string {
	for _, f := range []struct{ name, value string }{
		{"name", d.Name}, {"email", d.Email}, {"subject", d.Subject}, {"message", d.Message},
	} {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}

func (d *CreateMessageDTO) validate() error {
	d.Trim()
	if field := d.Missing(); field != "" {
		return apperr.Required(field)
	}
	return checkEmail(d.Email)
}

type UpdateMessageDTO struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`
	Read    *bool   `json:"read"`
	Replied *bool   `json:"replied"`
}

func (d *UpdateMessageDTO) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	for _, f := range []struct {
		column string
		value  *string
	}{
		{"name", d.Name}, {"email", d.Email}, {"subject", d.Subject}, {"message", d.Message},
	} {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v == "" {
			return nil, apperr.Required(f.column)
		}
		updates[f.column] = v
	}
	if email, ok := updates["email"].(string); ok {
		if err := checkEmail(email); err != nil {
			return nil, err
		}
	}
	if d.Read != nil {
		updates["read"] = *d.Read
	}
	if d.Replied != nil {
		updates["replied"] = *d.Replied
	}
	return updates, nil
}

func checkEmail(addr string) error {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return apperr.Invalid("email", "enter a valid email address")
	}
	return nil
}
