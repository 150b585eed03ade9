package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"blogapi/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type MethodsDB interface {
	CloseDB() error
	RunMigrations(migrationFilePath string) error
	HealthCheck() error
}

type DB struct {
	*sqlx.DB
}

func DSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.DbHOST,
		cfg.DB.DbPORT,
		cfg.DB.DbUSER,
		cfg.DB.DbPASSWORD,
		cfg.DB.DbNAME,
		cfg.DB.DbSSLMODE,
	)
}

// Open connects and sizes the pool without touching the schema.
func Open(cfg *config.Config) (*DB, error) {
	log.Printf("connecting to database: host=%s, dbname=%s", cfg.DB.DbHOST, cfg.DB.DbNAME)

	db, err := sqlx.Connect("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &DB{db}, nil
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	dbStruct, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := dbStruct.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Printf("Warning: migrations not applied: %v", err)
	}

	if err := dbStruct.HealthCheck(); err != nil {
		dbStruct.Close()
		return nil, fmt.Errorf("database health check: %w", err)
	}

	log.Println("connected to PostgreSQL")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations executes the SQL file as a single batch. Statements must be idempotent.
func (db *DB) RunMigrations(migrationFilePath string) error {
	migrationSQL, err := os.ReadFile(migrationFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("migration file not found: %s", migrationFilePath)
		}
		return fmt.Errorf("read migration file: %w", err)
	}

	log.Printf("applying migrations from %s", migrationFilePath)

	if _, err = db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.Println("migrations applied")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}
