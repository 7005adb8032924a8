package bootstrap

import "testing"

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":       ":8080",
		"  ":     ":8080",
		"9090":   ":9090",
		":7070":  ":7070",
		" 6060 ": ":6060",
	}
	for input, want := range cases {
		if got := normalizeAddr(input); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBuildAPIRequiresPostgresDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("POSTGRES_DSN", "")
	if _, err := BuildAPI(); err == nil {
		t.Fatal("expected missing POSTGRES_DSN to fail")
	}
}

func TestBuildAPIRejectsOutOfRangeWorkerID(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("POSTGRES_DSN", "postgres://unused")
	t.Setenv("SNOWFLAKE_WORKER_ID", "32")
	if _, err := BuildAPI(); err == nil {
		t.Fatal("expected out of range worker id to fail before connecting")
	}
}
