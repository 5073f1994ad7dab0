package mysql

// Config holds MySQL connection settings
type Config struct {
	// DSN is the MySQL data source name
	// (e.g., user:pass@tcp(localhost:3306)/gost?charset=utf8mb4&parseTime=True&loc=UTC)
	DSN string

	// Pool settings
	MaxOpenConns int
	MaxIdleConns int
}

// DefaultConfig returns sensible defaults for MySQL configuration
func DefaultConfig() Config {
	return Config{
		DSN:          "gost:gost@tcp(localhost:3306)/gost?charset=utf8mb4&parseTime=True&loc=UTC",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
	}
}
