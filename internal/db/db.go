package db

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/HFQ252/Shelflife/internal/config"
	"github.com/HFQ252/Shelflife/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database and brings the schema up to date. With an empty
// DSN it uses the embedded sqlite file; with a postgres DSN it retries the
// connection (containerized postgres may still be starting) and, when
// MIGRATIONS=1, runs the SQL migrations instead of AutoMigrate.
func Connect(cfg config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if cfg.DatabaseDSN == "" {
		conn, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
	} else {
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), gormCfg)
			if err == nil {
				break
			}
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("connect postgres after retries: %w", err)
		}
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if err := Migrate(conn, cfg); err != nil {
		return nil, err
	}

	if config.ParseBool("DB_SEED", false) {
		SeedDemo(conn)
	}
	return conn, nil
}

// Migrate applies the schema. The MIGRATIONS env gate mirrors deployments
// that manage SQL files explicitly; everything else uses AutoMigrate.
func Migrate(conn *gorm.DB, cfg config.Config) error {
	if config.ParseBool("MIGRATIONS", false) && cfg.DatabaseDSN != "" {
		if err := runSQLMigrations(cfg.DatabaseDSN); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []interface{}{&models.Product{}, &models.ProductRecord{}} {
			if err := conn.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}

	for _, table := range []string{"products", "product_records"} {
		if !conn.Migrator().HasTable(table) {
			return fmt.Errorf("missing table after migration: %s", table)
		}
	}
	return nil
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// MaskDSN hides the password in a DSN for log output.
func MaskDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	if strings.Contains(dsn, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		return re.ReplaceAllString(dsn, `${1}***`)
	}
	re := regexp.MustCompile(`(//[^:/@]+:)([^@]+)(@)`)
	return re.ReplaceAllString(dsn, `${1}***${3}`)
}
