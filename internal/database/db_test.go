package database

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{User: "hotel", Pass: "pw", Host: "db", Port: "3306", Name: "hotel"})
	for _, want := range []string{"hotel:pw@tcp(db:3306)/hotel", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestStatementsCoverTables(t *testing.T) {
	stmts := Statements()
	if len(stmts) != 3 {
		t.Fatalf("statements = %d, want 3", len(stmts))
	}
	for i, table := range []string{"users", "rooms", "reservations"} {
		if !strings.Contains(stmts[i], "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("statement %d does not create %s", i, table)
		}
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	for range Statements() {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
