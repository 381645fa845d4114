package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// AppConfig holds the remaining server settings
type AppConfig struct {
	ServerPort  string
	TokenSecret string
	CookieName  string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// LoadAppConfig loads server settings. A missing token secret is a startup
// error, not something to fall back from.
func LoadAppConfig() (*AppConfig, error) {
	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET not set in environment")
	}

	cookieName := os.Getenv("AUTH_COOKIE_NAME")
	if cookieName == "" {
		cookieName = "auth_token"
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	return &AppConfig{ServerPort: port, TokenSecret: secret, CookieName: cookieName}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(cfg *DBConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				logger.Info("connected to PostgreSQL")
				return pool, nil
			}
		}
		logger.Warn("failed to connect to database, retrying",
			zap.Int("attempt", i+1), zap.Int("max", maxRetries), zap.Error(err))
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		fullname TEXT NOT NULL,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		ident_document VARCHAR(14) NOT NULL,
		birth_date DATE,
		street_name VARCHAR(40) NOT NULL,
		house_number VARCHAR(10) NOT NULL,
		complements VARCHAR(20),
		district VARCHAR(25) NOT NULL,
		municipality VARCHAR(40) NOT NULL,
		state CHAR(2) NOT NULL,
		phone VARCHAR(15) NOT NULL,
		email TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cars (
		id BIGSERIAL PRIMARY KEY,
		brand VARCHAR(25) NOT NULL,
		model VARCHAR(25) NOT NULL,
		color VARCHAR(12) NOT NULL,
		year_manufacture INT NOT NULL,
		imported BOOLEAN NOT NULL,
		plates VARCHAR(8) NOT NULL,
		selling_date DATE,
		selling_price NUMERIC(10,2),
		customer_id BIGINT REFERENCES customers(id),
		created_user_id BIGINT NOT NULL REFERENCES users(id),
		updated_user_id BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_cars_brand_model ON cars(brand, model, id);
	CREATE INDEX IF NOT EXISTS idx_cars_customer_id ON cars(customer_id);
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	return nil
}
