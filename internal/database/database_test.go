package database

import (
	"testing"

	"github.com/xelth-com/goodstrack/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.example.com",
		Port:     "5432",
		Username: "gts",
		Password: "secret",
		Database: "goodstrack",
	}

	want := "host=db.example.com port=5432 user=gts password=secret dbname=goodstrack sslmode=disable"
	if got := DSN(cfg); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	cfg.SSLMode = "require"
	if got := DSN(cfg); got != "host=db.example.com port=5432 user=gts password=secret dbname=goodstrack sslmode=require" {
		t.Errorf("DSN() with sslmode = %q", got)
	}
}

func TestGormConfigUsesUTC(t *testing.T) {
	cfg := GormConfig(1)
	if !cfg.SkipDefaultTransaction {
		t.Error("single statements should not be wrapped in transactions")
	}
	if loc := cfg.NowFunc().Location(); loc.String() != "UTC" {
		t.Errorf("NowFunc location = %s, want UTC", loc)
	}
}
