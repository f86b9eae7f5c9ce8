package storage

import (
	"fmt"

	"servicehub/config"
)

// Open builds the store selected by configuration.
func Open() (Store, error) {
	switch config.AppConfig.StorageEngine {
	case "sqlite", "":
		return NewSQLiteStore(config.AppConfig.SQLitePath)
	case "redis":
		return NewRedisStore(config.AppConfig.RedisAddr, config.AppConfig.RedisPassword, config.AppConfig.RedisDB)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage engine %q", config.AppConfig.StorageEngine)
	}
}
