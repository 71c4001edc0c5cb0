package config

import "testing"

func TestNormalizeConnectionStringSemicolonForm(t *testing.T) {
	got := normalizeConnectionString("Host=db;Port=5432;Database=banking;Username=app;Password=secret;Timeout=30")
	want := "host=db port=5432 dbname=banking user=app password=secret connect_timeout=30 sslmode=disable"
	if got != want {
		t.Fatalf("normalized = %q, want %q", got, want)
	}
}

func TestNormalizeConnectionStringPassesLibpqForm(t *testing.T) {
	dsn := "host=db port=5432 dbname=banking user=app sslmode=require"
	if got := normalizeConnectionString(dsn); got != dsn {
		t.Fatalf("normalized = %q, want unchanged", got)
	}
}

func TestNormalizeConnectionStringKeepsExplicitSSLMode(t *testing.T) {
	got := normalizeConnectionString("Host=db;Database=banking;SSLMode=require")
	want := "host=db dbname=banking sslmode=require"
	if got != want {
		t.Fatalf("normalized = %q, want %q", got, want)
	}
}
