package db

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	embeddedmigrations "github.com/terraincognita07/cycletracker/migrations"
	"gorm.io/gorm"
)

// appliedMigration is one row of the schema_migrations ledger.
type appliedMigration struct {
	Version   string    `gorm:"primaryKey;column:version"`
	Name      string    `gorm:"not null;column:name"`
	AppliedAt time.Time `gorm:"not null;column:applied_at"`
}

func (appliedMigration) TableName() string {
	return "schema_migrations"
}

// migrationFile is an embedded NNN_description.sql script.
type migrationFile struct {
	Version    string
	Sequence   int
	Name       string
	Statements []string
}

// migrationPlan is the ordered set of migration files shipped with the binary.
type migrationPlan []migrationFile

func readMigrationPlan(files fs.FS) (migrationPlan, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list embedded migrations: %w", err)
	}

	plan := make(migrationPlan, 0, len(names))
	owners := make(map[int]string, len(names))
	for _, name := range names {
		prefix, _, found := strings.Cut(name, "_")
		if !found {
			continue
		}
		sequence, err := strconv.Atoi(prefix)
		if err != nil || sequence < 0 {
			continue
		}
		if owner, taken := owners[sequence]; taken {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", prefix, owner, name)
		}
		owners[sequence] = name

		script, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := sqlStatements(string(script))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no SQL statements", name)
		}
		plan = append(plan, migrationFile{
			Version:    prefix,
			Sequence:   sequence,
			Name:       path.Base(name),
			Statements: statements,
		})
	}

	sort.SliceStable(plan, func(i, j int) bool { return plan[i].Sequence < plan[j].Sequence })
	return plan, nil
}

// pending keeps the files whose version is missing from the ledger, in order.
func (plan migrationPlan) pending(applied []string) migrationPlan {
	done := make(map[string]bool, len(applied))
	for _, version := range applied {
		done[version] = true
	}
	var remaining migrationPlan
	for _, file := range plan {
		if !done[file.Version] {
			remaining = append(remaining, file)
		}
	}
	return remaining
}

// applyEmbeddedMigrations brings the schema up to date with the embedded
// migrations. Each file runs in its own transaction together with its ledger row.
func applyEmbeddedMigrations(database *gorm.DB, logger *logrus.Logger) error {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	plan, err := readMigrationPlan(embeddedmigrations.Files)
	if err != nil {
		return err
	}

	var applied []string
	if err := database.Model(&appliedMigration{}).Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}

	for _, file := range plan.pending(applied) {
		if err := runMigration(database, file); err != nil {
			return err
		}
		logger.WithField("migration", file.Name).Info("applied schema migration")
	}
	return nil
}

func runMigration(database *gorm.DB, file migrationFile) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for index, statement := range file.Statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s statement %d: %w", file.Name, index+1, err)
			}
		}
		record := appliedMigration{Version: file.Version, Name: file.Name, AppliedAt: time.Now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", file.Name, err)
		}
		return nil
	})
}

// sqlStatements reads a script line by line, dropping "--" comment lines, and
// ends a statement at every line terminated by a semicolon.
func sqlStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
	)
	flush := func() {
		statement := strings.TrimSpace(current.String())
		statement = strings.TrimSpace(strings.TrimSuffix(statement, ";"))
		if statement != "" {
			statements = append(statements, statement)
		}
		current.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(script))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		if strings.HasSuffix(line, ";") {
			flush()
		}
	}
	flush()
	return statements
}
