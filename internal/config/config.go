package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains the settings used to verify bearer tokens issued by
// the identity provider. The engine never provisions identities itself; it
// only needs to recognize the user ID carried by a valid token.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// EngineConfig contains progress-engine tunables.
type EngineConfig struct {
	// Timezone is the fixed reference timezone used to derive calendar day
	// keys for streaks and daily activity (IANA name, e.g. "UTC").
	Timezone string `mapstructure:"timezone" validate:"required"`

	// DefaultDailyGoalXP is the daily XP target snapshotted into new profiles.
	DefaultDailyGoalXP int `mapstructure:"default_daily_goal_xp" validate:"required,gt=0"`
}
