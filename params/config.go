package params

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Storage struct {
	// Path to the Pebble database directory holding the account map,
	// order map and order counter.
	DBPath string
}

type API struct {
	ListenAddr string
}

type Oracle struct {
	// MaxPrice is the threshold of the stub price oracle: a limit order's
	// price condition is met while price <= MaxPrice.
	MaxPrice float64
}

type Config struct {
	Storage Storage
	API     API
	Oracle  Oracle
	LogFile string
}

func Default() Config {
	return Config{
		Storage: Storage{DBPath: "data/swapdesk.db"},
		API:     API{ListenAddr: ":8080"},
		Oracle:  Oracle{MaxPrice: 1.2},
		LogFile: "data/swapdesk.log",
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("SWAP_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SWAP_LISTEN_ADDR"); v != "" {
		cfg.API.ListenAddr = v
	}
	if v := os.Getenv("SWAP_ORACLE_MAX_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Oracle.MaxPrice = f
		}
	}
	if v := os.Getenv("SWAP_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg
}
