package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/cycletracker/internal/config"
	"github.com/terraincognita07/cycletracker/internal/db"
	"github.com/terraincognita07/cycletracker/internal/models"
	"github.com/terraincognita07/cycletracker/internal/services"
)

func TestStoreOptionsMapsConfig(t *testing.T) {
	cfg := config.Config{
		StorageDriver: config.StorageMongo,
		DBPath:        "data/test.db",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "cycletracker",
	}

	opts := storeOptions(cfg, nil)
	if opts.Driver != config.StorageMongo || opts.SQLitePath != "data/test.db" {
		t.Fatalf("unexpected store options %#v", opts)
	}
	if opts.MongoURI != cfg.MongoURI || opts.MongoDatabase != "cycletracker" {
		t.Fatalf("unexpected mongo options %#v", opts)
	}
}

func TestRunClearPeriodLogsCommandAgainstSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cycletracker-cli.db")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_FILE", "")

	ctx := context.Background()
	repos, err := db.Open(ctx, db.Options{SQLitePath: dbPath})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	periodLog := models.PeriodLog{
		StartDate: mustDay(t, "2024-01-01"),
		EndDate:   mustDay(t, "2024-01-04"),
		Flow:      models.FlowLight,
	}
	if _, err := repos.Profiles.AppendPeriodLog(ctx, periodLog, 4); err != nil {
		t.Fatalf("seed period log: %v", err)
	}
	if err := repos.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{clearPeriodLogsCommand, "-yes"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run clear-period-logs: %v", err)
	}
	if !strings.Contains(out.String(), "Period logs cleared.") {
		t.Fatalf("unexpected command output %q", out.String())
	}

	repos, err = db.Open(ctx, db.Options{SQLitePath: dbPath})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer repos.Close()
	profile, found, err := repos.Profiles.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load profile found=%v err=%v", found, err)
	}
	if len(profile.PeriodLogs) != 0 {
		t.Fatalf("expected period logs to be cleared, got %#v", profile.PeriodLogs)
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cycletracker-unknown.db"))
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_FILE", "")

	err := run([]string{"reset-everything"}, strings.NewReader(""), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := services.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return value
}
