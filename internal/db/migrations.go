package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/mahwari/migrations"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	migrationFileName     = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnStatement    = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
	errEmptyMigration     = errors.New("migration has no SQL statements")
	errDuplicateMigration = errors.New("duplicate migration version")
)

type migration struct {
	version int
	name    string
	body    string
}

type migrator struct {
	database *gorm.DB
	source   fs.FS
	logger   *zap.Logger
}

func newMigrator(database *gorm.DB, logger *zap.Logger) *migrator {
	return &migrator{
		database: database,
		source:   embeddedmigrations.Files,
		logger:   logger,
	}
}

func (m *migrator) apply() error {
	const bootstrap = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := m.database.Exec(bootstrap).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := m.load()
	if err != nil {
		return err
	}
	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	for _, next := range pending {
		if applied[strconv.Itoa(next.version)] {
			continue
		}
		if err := m.run(next); err != nil {
			return err
		}
		m.logger.Info("migration applied", zap.String("name", next.name))
	}
	return nil
}

func (m *migrator) load() ([]migration, error) {
	entries, err := fs.ReadDir(m.source, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	result := make([]migration, 0, len(entries))
	byVersion := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := migrationFileName.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}

		version, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", entry.Name(), err)
		}
		if previous, seen := byVersion[version]; seen {
			return nil, fmt.Errorf("%w %d in %s and %s", errDuplicateMigration, version, previous, entry.Name())
		}
		byVersion[version] = entry.Name()

		body, err := fs.ReadFile(m.source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		result = append(result, migration{version: version, name: entry.Name(), body: string(body)})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].version < result[j].version
	})
	return result, nil
}

func (m *migrator) appliedVersions() (map[string]bool, error) {
	type appliedRow struct {
		Version string `gorm:"column:version"`
	}
	rows := make([]appliedRow, 0)
	if err := m.database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make(map[string]bool, len(rows))
	for _, row := range rows {
		applied[row.Version] = true
	}
	return applied, nil
}

func (m *migrator) run(next migration) error {
	statements := splitStatements(next.body)
	if len(statements) == 0 {
		return fmt.Errorf("%s: %w", next.name, errEmptyMigration)
	}

	return m.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			redundant, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", next.name, err)
			}
			if redundant {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", next.name, statement, err)
			}
		}

		return tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			strconv.Itoa(next.version),
			next.name,
		).Error
	})
}

func splitStatements(body string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(body, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded lets ADD COLUMN migrations run against databases that already have the column.
func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	match := addColumnStatement.FindStringSubmatch(statement)
	if match == nil {
		return false, nil
	}

	table := unquoteIdentifier(match[1])
	column := unquoteIdentifier(match[2])

	type tableColumn struct {
		Name string `gorm:"column:name"`
	}
	columns := make([]tableColumn, 0)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(strings.TrimSpace(existing.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
