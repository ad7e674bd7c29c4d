package mail

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestContactFormat(t *testing.T) {
	data := ContactNotifyData{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello there"}
	if got := ContactSubject(data.Subject); got != "New Contact Form Message: Hi" {
		t.Fatalf("subject = %q", got)
	}
	if got := ContactText(data); got != "From: Ada (ada@example.com)\n\nHello there" {
		t.Fatalf("text = %q", got)
	}
}

func TestSend_DisabledIsNoop(t *testing.T) {
	s := New(Config{Enable: false, Host: "127.0.0.1", Port: 1})
	if err := s.Send(Message{To: []string{"x@example.com"}}); err != nil {
		t.Fatalf("disabled send: %v", err)
	}
	var nilSender *Sender
	if nilSender.Enabled() {
		t.Fatalf("nil sender should be disabled")
	}
}

func TestBuildMIME_StripsHeaderInjection(t *testing.T) {
	raw := string(buildMIME("site@example.com", "a@b.c\r\nBcc: evil@x.io", Message{
		To:      []string{"owner@example.com"},
		Subject: "Hi\r\nBcc: evil@x.io",
		Text:    "body",
	}))
	if strings.Contains(raw, "\r\nBcc:") {
		t.Fatalf("header injection survived:\n%s", raw)
	}
	if !strings.Contains(raw, "Content-Type: text/plain") {
		t.Fatalf("expected text/plain part")
	}
}

func TestSendContactNotify_Resend(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer re_test" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	s := New(Config{Enable: true, From: "site@example.com", UseResend: true, ResendKey: "re_test", ResendEndpoint: srv.URL})
	err := s.SendContactNotify("owner@example.com", ContactNotifyData{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["subject"] != "New Contact Form Message: Hi" || got["reply_to"] != "ada@example.com" {
		t.Fatalf("payload = %#v", got)
	}
	if !strings.Contains(got["text"].(string), "From: Ada (ada@example.com)") {
		t.Fatalf("text = %v", got["text"])
	}
}

func TestSendResend_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	s := New(Config{Enable: true, UseResend: true, ResendKey: "k", ResendEndpoint: srv.URL})
	err := s.Send(Message{To: []string{"x@example.com"}, Subject: "s", Text: "t"})
	if err == nil || !strings.Contains(err.Error(), "invalid from") {
		t.Fatalf("expected resend error, got %v", err)
	}
}

func TestBuildMIME_Alternative(t *testing.T) {
	raw := string(buildMIME("site@example.com", "", Message{
		To:      []string{"owner@example.com"},
		Subject: "Grüße",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	}))
	for _, want := range []string{"multipart/alternative; boundary=", "plain body", "<p>html body</p>", "=?utf-8?q?"} {
		if !strings.Contains(raw, want) {
			t.Errorf("message lacks %q:\n%s", want, raw)
		}
	}
	if strings.Index(raw, "plain body") > strings.Index(raw, "html body") {
		t.Error("text part should come before html part")
	}
}
