// Package flash carries one-shot user messages across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const cookieName = "portfolio_flash"

// Levels.
const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

// Message is a single flash message.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Secure marks flash cookies Secure. Set once at startup.
var Secure bool

// Set queues msg for the next request.
func Set(c *gin.Context, level, text string) {
	existing := peek(c)
	existing = append(existing, Message{Level: level, Text: text})
	raw, err := json.Marshal(existing)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		Secure:   Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending messages and clears them.
func Pop(c *gin.Context) []Message {
	msgs := peek(c)
	if len(msgs) == 0 {
		return nil
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs
}

func peek(c *gin.Context) []Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}
