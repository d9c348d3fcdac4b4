package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATE/DATETIME -> time.Time | loc=UTC keeps dates consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the contract tables when they do not exist yet.
// Room detail rows belong to exactly one contract and are removed with it.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS contracts (
			id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			hotel_name   VARCHAR(255)    NOT NULL,
			start_date   DATE            NOT NULL,
			end_date     DATE            NOT NULL,
			mark_up_rate DOUBLE          NOT NULL,
			INDEX idx_contracts_window (start_date, end_date),
			INDEX idx_contracts_hotel (hotel_name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS room_details (
			id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			contract_id      BIGINT UNSIGNED NOT NULL,
			room_type        VARCHAR(255)    NOT NULL,
			price_per_person DOUBLE          NOT NULL,
			number_of_rooms  INT             NOT NULL,
			max_adults       INT             NOT NULL,
			CONSTRAINT fk_room_details_contract FOREIGN KEY (contract_id) REFERENCES contracts (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
