// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Provider ProviderConfig `mapstructure:"provider"`
	Lookup   LookupConfig   `mapstructure:"lookup"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ProviderConfig describes how to reach the upstream business registry.
type ProviderConfig struct {
	RegistryPath string `mapstructure:"registry_path"` // provider profile JSON
	Timeout      int    `mapstructure:"timeout"`       // milliseconds, per request
	UserAgent    string `mapstructure:"user_agent"`
}

// LookupConfig holds batch-driver defaults. CLI flags override all of these.
type LookupConfig struct {
	DefaultThreshold int    `mapstructure:"default_threshold"` // ownership percent, 0-100
	DefaultWorkers   int    `mapstructure:"default_workers"`
	CredentialFile   string `mapstructure:"credential_file"`
	ResultsDir       string `mapstructure:"results_dir"`
}

// CacheConfig controls the website memoization cache. When Redis.Address is
// empty the bounded in-memory cache is used.
type CacheConfig struct {
	Capacity int         `mapstructure:"capacity"`
	Redis    RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds; 0 means no expiry
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
