package contact

import (
	"context"
	"errors"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	pkgmail "github.com/portfolio-space/core/internal/pkg/mail"
)

var errNoRecipient = errors.New("no contact email configured")

// MailNotifier emails the site owner through the configured mail provider.
type MailNotifier struct {
	sender   *pkgmail.Sender
	to       string
	settings *settings.Service
}

// NewMailNotifier sends to `to`, or to SiteSettings.contact_email when to is empty.
func NewMailNotifier(sender *pkgmail.Sender, to string, st *settings.Service) *MailNotifier {
	return &MailNotifier{sender: sender, to: to, settings: st}
}

// Recipient resolves the notification address.
func (n *MailNotifier) Recipient() string {
	if n.to != "" {
		return n.to
	}
	if n.settings == nil {
		return ""
	}
	if st, err := n.settings.SiteSettings(); err == nil && st != nil {
		return st.ContactEmail
	}
	return ""
}

func (n *MailNotifier) NotifyContact(_ context.Context, m *models.MessageModel) error {
	if !n.sender.Enabled() {
		return nil
	}
	to := n.Recipient()
	if to == "" {
		return errNoRecipient
	}
	siteName := ""
	if n.settings != nil {
		if st, err := n.settings.SiteSettings(); err == nil && st != nil {
			siteName = st.SiteTitle
		}
	}
	return n.sender.SendContactNotify(to, pkgmail.ContactNotifyData{
		Name:     m.Name,
		Email:    m.Email,
		Subject:  m.Subject,
		Message:  m.Message,
		SiteName: siteName,
	})
}
