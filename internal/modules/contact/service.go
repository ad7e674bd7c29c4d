// Package contact records visitor messages and notifies the site owner.
package contact

import (
	"context"
	"errors"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/message"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"go.uber.org/zap"
)

// Response texts shared by the JSON endpoint and the HTML form.
const (
	MsgSent          = "Message sent successfully!"
	MsgThanks        = "Thank you for your message! We will get back to you soon."
	MsgFieldsMissing = "All fields are required"
	MsgGenericError  = "An error occurred. Please try again."
)

// ErrMissingFields is returned when any of the four fields is blank.
var ErrMissingFields = apperr.ErrMissingFields

// Input is a contact form submission.
type Input struct {
	Name    string `json:"name"    form:"name"`
	Email   string `json:"email"   form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Notifier delivers a notification about a stored message.
type Notifier interface {
	NotifyContact(ctx context.Context, m *models.MessageModel) error
}

type Service struct {
	messages *message.Service
	notifier Notifier
	log      *zap.Logger
}

func NewService(messages *message.Service, notifier Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{messages: messages, notifier: notifier, log: log}
}

// Submit stores the message and then notifies best-effort.
// Notification failures are logged and never returned.
func (s *Service) Submit(ctx context.Context, in Input) (*models.MessageModel, error) {
	m, err := s.messages.Record(&message.CreateMessageDTO{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrMissingFields) {
			return nil, ErrMissingFields
		}
		return nil, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, m); err != nil {
			s.log.Warn("contact notification failed", zap.String("message_id", m.ID), zap.Error(err))
		}
	}
	return m, nil
}
