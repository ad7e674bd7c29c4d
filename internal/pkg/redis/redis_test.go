package redis

import (
	"context"
	"errors"
	"testing"
)

func TestNilClient(t *testing.T) {
	var c *Client
	if c.Raw() != nil {
		t.Fatal("nil client exposed a raw connection")
	}
	if err := c.Ping(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Ping = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close = %v", err)
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	if _, err := Connect("http://not-redis"); err == nil {
		t.Fatal("non-redis scheme accepted")
	}
}
