package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDatabase starts a disposable PostgreSQL container, applies the
// schema and returns a ready connection pool
func setupTestDatabase(t *testing.T, ctx context.Context) (*pgxpool.Pool, func()) {
	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("agrismart_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Should be able to start postgres container")

	connString, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "Should be able to connect to database")

	err = pool.Ping(ctx)
	require.NoError(t, err, "Should be able to ping database")

	runTestMigrations(t, ctx, pool)

	t.Log("Database connection established and schema applied")

	cleanup := func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return pool, cleanup
}

// runTestMigrations applies the database schema
func runTestMigrations(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			phone_encrypted TEXT NOT NULL,
			phone_hash VARCHAR(64) UNIQUE NOT NULL,
			language VARCHAR(10) NOT NULL DEFAULT 'en',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			last_login_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS farmer_profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL DEFAULT '',
			village VARCHAR(255) NOT NULL,
			land_size DOUBLE PRECISION NOT NULL CHECK (land_size > 0),
			land_unit VARCHAR(20) NOT NULL,
			irrigation_type VARCHAR(50) NOT NULL DEFAULT '',
			water_source VARCHAR(50) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			soil_n VARCHAR(50),
			soil_p VARCHAR(50),
			soil_k VARCHAR(50),
			soil_ph VARCHAR(50),
			soil_card_image VARCHAR(500),
			active_crop VARCHAR(100),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS plan_tasks (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			crop_name VARCHAR(100) NOT NULL,
			tasks JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, crop_name)
		)`,
		`CREATE TABLE IF NOT EXISTS market_snapshot (
			id INTEGER PRIMARY KEY,
			quotes JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY,
			author VARCHAR(255) NOT NULL,
			role VARCHAR(255) NOT NULL,
			type VARCHAR(50) NOT NULL,
			content TEXT NOT NULL,
			likes INTEGER NOT NULL DEFAULT 0,
			comments INTEGER NOT NULL DEFAULT 0,
			tag VARCHAR(100) NOT NULL DEFAULT '',
			avatar VARCHAR(500) NOT NULL DEFAULT '',
			crop_tags TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(50) NOT NULL,
			title VARCHAR(255) NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			avatar VARCHAR(500) NOT NULL DEFAULT '',
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS irrigation_zones (
			zone_id INTEGER NOT NULL,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			moisture INTEGER NOT NULL CHECK (moisture >= 0 AND moisture <= 100),
			active BOOLEAN NOT NULL DEFAULT FALSE,
			next_schedule VARCHAR(100) NOT NULL DEFAULT '',
			image VARCHAR(500) NOT NULL DEFAULT '',
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, zone_id)
		)`,
		`CREATE TABLE IF NOT EXISTS scans (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			image_path VARCHAR(500) NOT NULL DEFAULT '',
			result JSONB NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL,
			operation_type VARCHAR(20) NOT NULL,
			resource_type VARCHAR(50) NOT NULL,
			resource_id VARCHAR(100) NOT NULL DEFAULT '',
			timestamp TIMESTAMP NOT NULL DEFAULT NOW(),
			ip_address VARCHAR(50) NOT NULL DEFAULT '',
			user_agent VARCHAR(500) NOT NULL DEFAULT '',
			additional_data JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			crop VARCHAR(100) NOT NULL,
			file_path VARCHAR(500) NOT NULL,
			generated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
	}

	for _, migration := range migrations {
		_, err := pool.Exec(ctx, migration)
		require.NoError(t, err, "Migration should apply cleanly")
	}
}

// createTestUser inserts a user row directly and returns its ID. Used by
// flows that bypass the login endpoints.
func createTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool) string {
	userID := uuid.New().String()

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, phone_encrypted, phone_hash) VALUES ($1, $2, $3)`,
		userID, "enc", fmt.Sprintf("hash-%s", userID))
	require.NoError(t, err, "Should be able to insert test user")

	return userID
}

// authStub injects a fixed user ID the way the auth middleware would
func authStub(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

// captureOTPSender records the last one-time code instead of sending SMS
type captureOTPSender struct {
	mu    sync.Mutex
	phone string
	code  string
}

func (s *captureOTPSender) Send(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phone = phone
	s.code = code
	return nil
}

func (s *captureOTPSender) last() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phone, s.code
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeJSON unmarshals a response body into out
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "Response should be valid JSON: %s", w.Body.String())
}
