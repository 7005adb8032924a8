package db

import (
	"context"
	"testing"
)

func TestConnectRequiresDSN(t *testing.T) {
	if _, err := Connect(context.Background(), "", DefaultOptions()); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestCloseNilIsSafe(t *testing.T) {
	var p *Postgres
	if err := p.Close(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
