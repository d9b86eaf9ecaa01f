package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Config holds database configuration
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN builds the MySQL connection string for this configuration.
func (cfg Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)
}

// Connection wraps sql.DB with pool tuning applied
type Connection struct {
	DB *sql.DB
}

// NewConnection opens a connection pool and verifies it with a ping.
// The initial ping is retried because the database container is often
// still starting when the service comes up.
func NewConnection(cfg Config) (*Connection, error) {
	database, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		err = database.Ping()
		if err == nil {
			break
		}
		if i == maxRetries-1 {
			database.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}

	if cfg.MaxOpenConns > 0 {
		database.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		database.SetMaxOpenConns(25)
	}
	if cfg.MaxIdleConns > 0 {
		database.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		database.SetMaxIdleConns(5)
	}
	if cfg.ConnMaxLifetime > 0 {
		database.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		database.SetConnMaxLifetime(5 * time.Minute)
	}

	return &Connection{DB: database}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}

// Ping verifies connection is alive
func (c *Connection) Ping() error {
	return c.DB.Ping()
}

// Stats exposes pool statistics for metrics collection
func (c *Connection) Stats() sql.DBStats {
	return c.DB.Stats()
}
