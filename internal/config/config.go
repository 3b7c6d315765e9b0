package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port   string
	Secret string

	// DatabaseDSN is resolved from TEST_DATABASE, DATABASE_URL or DATABASE,
	// in that order. The first two mark a disposable database: the schema is
	// dropped and recreated on boot and the seed fixtures are inserted.
	DatabaseDSN   string
	ResetDatabase bool
	SeedDatabase  bool

	RedisAddr     string
	RedisPassword string

	// APIURL is the GraphQL endpoint the SSR layer queries. Defaults to the
	// server's own /graphql.
	APIURL     string
	SSRTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:   getenv("PORT", "8000"),
		Secret: os.Getenv("SECRET"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		APIURL:     os.Getenv("API_URL"),
		SSRTimeout: getduration("SSR_TIMEOUT", 5*time.Second),
	}

	test := os.Getenv("TEST_DATABASE")
	prod := os.Getenv("DATABASE_URL")
	disposable := test != "" || prod != ""

	switch {
	case test != "":
		cfg.DatabaseDSN = test
	case prod != "":
		cfg.DatabaseDSN = prod
	default:
		cfg.DatabaseDSN = os.Getenv("DATABASE")
	}

	// Reset and seeding default to the disposable-database behavior but are
	// independently overridable. Seeding is not idempotent; enabling it
	// without the reset will duplicate rows on every boot.
	cfg.ResetDatabase = getbool("RESET_DATABASE", disposable)
	cfg.SeedDatabase = getbool("SEED_DATABASE", disposable)

	if cfg.APIURL == "" {
		cfg.APIURL = "http://localhost:" + cfg.Port + "/graphql"
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
