package connect

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("expected embedded migrations")
	}

	body, err := migrationFiles.ReadFile(names[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, table := range []string{"users", "rooms", "bookings"} {
		if !strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("schema is missing table %s", table)
		}
	}
	if !strings.Contains(string(body), "CHECK (check_in < check_out)") {
		t.Error("schema should enforce check_in < check_out")
	}
}

func TestRedisConnectRejectsBadURL(t *testing.T) {
	if _, err := RedisConnect(context.Background(), "not a url"); err == nil {
		t.Error("expected an error for a malformed url")
	}
}
