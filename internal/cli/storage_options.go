package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfriis/ghostlap/internal/storage"
)

// storageOptions selects and configures the KV backend shared by the
// commands that touch stored ghosts.
type storageOptions struct {
	backend       string
	fileDir       string
	sqlitePath    string
	redisAddr     string
	redisPassword string
	redisDB       int
}

func defaultStorageOptions() storageOptions {
	addr := os.Getenv("GHOSTLAP_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return storageOptions{
		backend:       storage.BackendFile,
		fileDir:       "ghosts",
		sqlitePath:    "ghosts.db",
		redisAddr:     addr,
		redisPassword: os.Getenv("GHOSTLAP_REDIS_PASSWORD"),
	}
}

func (o *storageOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.backend, "storage", o.backend, "storage backend (memory, file, sqlite, redis)")
	cmd.Flags().StringVar(&o.fileDir, "file-dir", o.fileDir, "directory for the file backend")
	cmd.Flags().StringVar(&o.sqlitePath, "sqlite-path", o.sqlitePath, "database path for the sqlite backend")
	cmd.Flags().StringVar(&o.redisAddr, "redis-addr", o.redisAddr, "redis host:port")
	cmd.Flags().StringVar(&o.redisPassword, "redis-password", o.redisPassword, "redis password")
	cmd.Flags().IntVar(&o.redisDB, "redis-db", 0, "redis database index")
}

// open constructs the selected backend. The caller owns Close.
func (o *storageOptions) open() (storage.KV, error) {
	switch o.backend {
	case storage.BackendMemory:
		return storage.NewMemoryKV(), nil
	case storage.BackendFile:
		return storage.NewFileKV(o.fileDir)
	case storage.BackendSQLite:
		return storage.NewSQLiteKV(o.sqlitePath)
	case storage.BackendRedis:
		return storage.NewRedisKV(storage.RedisConfig{
			Addr:     o.redisAddr,
			Password: o.redisPassword,
			DB:       o.redisDB,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q, must be one of: memory, file, sqlite, redis", o.backend)
	}
}
