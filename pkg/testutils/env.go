package testutils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
)

// LoadEnv loads the .env file from the project root, if there is one.
func LoadEnv() error {
	_, filename, _, _ := runtime.Caller(0)
	envPath := filepath.Join(filepath.Dir(filename), "..", "..", ".env")

	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(envPath)
}

func LoadEnvOrPanic() {
	if err := LoadEnv(); err != nil {
		panic("Failed to load .env file: " + err.Error())
	}
}

// RedisAddr is the redis used by integration tests; empty means skip them.
func RedisAddr() string {
	LoadEnvOrPanic()
	return os.Getenv("QUKA_TEST_REDIS_ADDR")
}
