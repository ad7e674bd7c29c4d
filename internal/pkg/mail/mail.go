package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

const defaultResendEndpoint = "https://api.resend.com/emails"

// Config holds mail provider settings.
type Config struct {
	Enable         bool   `json:"enable"`
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Pass           string `json:"pass"`
	From           string `json:"from"`
	ReplyTo        string `json:"reply_to"`
	UseResend      bool   `json:"use_resend"`
	ResendKey      string `json:"resend_key"`
	ResendEndpoint string `json:"resend_endpoint"`
}

// Message is a single email to send.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

// Sender sends emails via SMTP or Resend.
type Sender struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Sender {
	return &Sender{cfg: cfg, client: &http.Client{Timeout: 15 * time.Second}}
}

// Enabled reports whether sending is switched on.
func (s *Sender) Enabled() bool { return s != nil && s.cfg.Enable }

// Send dispatches an email. Uses Resend if configured, otherwise SMTP.
func (s *Sender) Send(msg Message) error {
	if !s.Enabled() {
		return nil
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("mail: no recipients")
	}
	if s.cfg.UseResend && s.cfg.ResendKey != "" {
		return s.sendResend(msg)
	}
	return s.sendSMTP(msg)
}

func (s *Sender) from() string {
	if s.cfg.From != "" {
		return s.cfg.From
	}
	return s.cfg.User
}

func (s *Sender) replyTo(msg Message) string {
	if msg.ReplyTo != "" {
		return msg.ReplyTo
	}
	return s.cfg.ReplyTo
}

// sendSMTP sends via net/smtp.
func (s *Sender) sendSMTP(msg Message) error {
	host := s.cfg.Host
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	from := s.from()

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, host)
	}
	return smtp.SendMail(addr, auth, from, msg.To, buildMIME(from, s.replyTo(msg), msg))
}

// buildMIME renders msg as an RFC 5322 message. A message with both bodies
// becomes multipart/alternative so plain-text clients get the text part.
func buildMIME(from, replyTo string, msg Message) []byte {
	var b bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("MIME-Version", "1.0")
	header("Date", time.Now().Format(time.RFC1123Z))
	header("From", sanitizeHeader(from))
	header("To", sanitizeHeader(strings.Join(msg.To, ", ")))
	header("Subject", mime.QEncoding.Encode("utf-8", sanitizeHeader(msg.Subject)))
	if replyTo != "" {
		header("Reply-To", sanitizeHeader(replyTo))
	}

	if msg.HTML == "" || msg.Text == "" {
		contentType, content := "text/plain", msg.Text
		if msg.HTML != "" {
			contentType, content = "text/html", msg.HTML
		}
		header("Content-Type", contentType+"; charset=UTF-8")
		b.WriteString("\r\n")
		b.WriteString(content)
		return b.Bytes()
	}

	var parts bytes.Buffer
	mw := multipart.NewWriter(&parts)
	header("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
	b.WriteString("\r\n")
	for _, p := range []struct{ typ, body string }{{"text/plain", msg.Text}, {"text/html", msg.HTML}} {
		w, _ := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.typ + "; charset=UTF-8"}})
		_, _ = io.WriteString(w, p.body)
	}
	_ = mw.Close()
	b.Write(parts.Bytes())
	return b.Bytes()
}

// sanitizeHeader strips CR/LF so user input cannot inject headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// sendResend sends via the Resend HTTP API.
func (s *Sender) sendResend(msg Message) error {
	body := map[string]interface{}{
		"from":    s.from(),
		"to":      msg.To,
		"subject": msg.Subject,
	}
	if msg.HTML != "" {
		body["html"] = msg.HTML
	}
	if msg.Text != "" {
		body["text"] = msg.Text
	}
	if rt := s.replyTo(msg); rt != "" {
		body["reply_to"] = rt
	}
	payload, _ := json.Marshal(body)

	endpoint := s.cfg.ResendEndpoint
	if endpoint == "" {
		endpoint = defaultResendEndpoint
	}
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ResendKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("resend error %d: %s", resp.StatusCode, errResp.Message)
	}
	return nil
}

const contactNotifyTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#fff;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Helvetica Neue,Arial,sans-serif;padding:.5rem">
  <div style="max-width:550px;margin:40px auto;padding:20px;border:1px solid rgb(22,101,52);border-radius:.25rem">
    <h1 style="font-size:18px;font-weight:400;margin:0 0 24px">New message from <strong>{{.Name}}</strong></h1>
    <p style="font-size:14px;margin:8px 0">From: {{.Name}} ({{.Email}})</p>
    <p style="font-size:14px;margin:8px 0">Subject: {{.Subject}}</p>
    <div style="background-color:rgb(243,244,246);border-radius:.75rem;padding:.5rem 1rem;white-space:pre-wrap;font-size:13px">{{.Message}}</div>
    <p style="font-size:10px;margin:24px 0 0;text-align:center;color:rgb(156,163,175)">Sent by the {{.SiteName}} contact form, {{year}}</p>
  </div>
</body>
</html>`

// ContactNotifyData is the data for contact form notification emails.
type ContactNotifyData struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	SiteName string
}

// ContactSubject is the subject line of a contact notification.
func ContactSubject(subject string) string {
	return "New Contact Form Message: " + subject
}

// ContactText is the plain-text body of a contact notification.
func ContactText(data ContactNotifyData) string {
	return fmt.Sprintf("From: %s (%s)\n\n%s", data.Name, data.Email, data.Message)
}

func renderTemplate(tpl string, data interface{}) (string, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
	}).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendContactNotify notifies the site owner about a contact submission.
// The visitor's address is used as Reply-To.
func (s *Sender) SendContactNotify(to string, data ContactNotifyData) error {
	if strings.TrimSpace(data.SiteName) == "" {
		data.SiteName = "portfolio"
	}
	html, err := renderTemplate(contactNotifyTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{to},
		Subject: ContactSubject(data.Subject),
		HTML:    html,
		Text:    ContactText(data),
		ReplyTo: data.Email,
	})
}
