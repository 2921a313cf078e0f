package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	StoreFirestore = "firestore"
	StoreSQLite    = "sqlite"

	defaultPort       = "8080"
	defaultSQLitePath = "./data/bookkeeping.db"
)

type Config struct {
	ProjectID         string
	FirestoreDatabase string
	LogLevel          string
	Port              string
	StoreBackend      string
	SQLitePath        string
}

func New() *Config {
	return &Config{
		ProjectID:         os.Getenv("PROJECTID"),
		FirestoreDatabase: os.Getenv("FIRESTOREDATABASE"),
		LogLevel:          os.Getenv("LOGLEVEL"),
		Port:              getEnv("PORT", defaultPort),
		StoreBackend:      getEnv("STOREBACKEND", StoreFirestore),
		SQLitePath:        getEnv("SQLITEPATH", defaultSQLitePath),
	}
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreFirestore:
		if c.ProjectID == "" {
			return fmt.Errorf("PROJECTID is required for the %s store", StoreFirestore)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITEPATH is required for the %s store", StoreSQLite)
		}
	default:
		return fmt.Errorf("unknown STOREBACKEND %q", c.StoreBackend)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
