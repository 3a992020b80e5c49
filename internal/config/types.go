package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	AllowedOrigin string
	Turso         TursoConfig
}

// TursoConfig is the optional remote replica; when PrimaryURL is empty the
// database is a plain local file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
