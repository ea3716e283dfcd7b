package config

// Default paths and connection strings
const (
	// DefaultDatabasePath is the sqlite fallback used when no MySQL DSN is configured
	DefaultDatabasePath = "./plataforma.db"

	// DefaultMongoURI points at a local MongoDB instance
	DefaultMongoURI = "mongodb://127.0.0.1:27017"
)
