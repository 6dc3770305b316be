package database

import (
	"context"
	"log"
	"os"
	"time"

	"tavola/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance (mongo driver only).
var MongoClient *mongo.Client

// PgPool is the global Postgres connection pool (postgres driver only).
var PgPool *pgxpool.Pool

// InitDB prepares the storage backend selected by STORAGE_DRIVER.
func InitDB() {
	switch config.AppConfig.StorageDriver {
	case config.DriverFile:
		if err := os.MkdirAll(config.AppConfig.DataDir, 0o755); err != nil {
			log.Fatalf("failed to create data dir %s: %v", config.AppConfig.DataDir, err)
		}
	case config.DriverPostgres:
		initPostgres()
	case config.DriverMongo:
		initMongo()
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", config.AppConfig.StorageDriver)
	}
}

func initMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

func initPostgres() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to ping Postgres: %v", err)
	}
	if err := migratePostgres(ctx, pool); err != nil {
		log.Fatalf("failed to run Postgres migrations: %v", err)
	}
	PgPool = pool
	log.Println("Connected to Postgres successfully!")
}

// migratePostgres creates the two tables the service owns. The unique
// constraint on (date, time) is what makes reservation creation atomic
// with respect to the double-booking check.
func migratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reservations (
			seq BIGSERIAL,
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			contact TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			people INT NOT NULL DEFAULT 0,
			extra JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (date, time)
		)`,
		`CREATE TABLE IF NOT EXISTS form_schema (
			id INT PRIMARY KEY CHECK (id = 1),
			fields JSONB NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
