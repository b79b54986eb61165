package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	Port string

	// OperatorWorkers is the number of write workers draining the action queue.
	OperatorWorkers int

	// KeyRetention is how long idempotency keys are kept before the sweep
	// removes them. A resubmission after expiry creates a new expense.
	KeyRetention time.Duration

	// SweepInterval is how often the background sweep runs.
	SweepInterval time.Duration

	// RequireIdempotencyKey rejects create requests without an
	// X-Idempotency-Key header instead of generating one server-side.
	RequireIdempotencyKey bool
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Optional; real environment variables win over .env entries.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:       "localhost",
		PostgresPort:          "5433",
		PostgresDB:            "postgres",
		PostgresUsername:      "postgres",
		PostgresPassword:      "testpassword",
		Port:                  "9446",
		OperatorWorkers:       4,
		KeyRetention:          24 * time.Hour,
		SweepInterval:         time.Hour,
		RequireIdempotencyKey: false,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envPort := os.Getenv("PORT")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if envWorkers := os.Getenv("OPERATOR_WORKERS"); len(envWorkers) != 0 {
		workers, err := strconv.Atoi(envWorkers)
		if err != nil {
			return nil, err
		}
		env.OperatorWorkers = workers
	}

	if envRetention := os.Getenv("KEY_RETENTION"); len(envRetention) != 0 {
		retention, err := time.ParseDuration(envRetention)
		if err != nil {
			return nil, err
		}
		env.KeyRetention = retention
	}

	if envSweep := os.Getenv("SWEEP_INTERVAL"); len(envSweep) != 0 {
		interval, err := time.ParseDuration(envSweep)
		if err != nil {
			return nil, err
		}
		env.SweepInterval = interval
	}

	if envRequireKey := os.Getenv("REQUIRE_IDEMPOTENCY_KEY"); len(envRequireKey) != 0 {
		requireKey, err := strconv.ParseBool(envRequireKey)
		if err != nil {
			return nil, err
		}
		env.RequireIdempotencyKey = requireKey
	}

	return &env, nil
}
