package tagmap

// Config holds tag mapping service settings.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`

	// Last-known-good cache. Disabled unless RedisAddr is set.
	RedisAddr       string `yaml:"redis_addr"`
	RedisPassword   string `yaml:"redis_password"`
	RedisDB         int    `yaml:"redis_db"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
}

// MappingEntry is one (original, mapped) pair from the service.
type MappingEntry struct {
	Original string `json:"original"`
	Mapped   string `json:"mapped"`
}

// mappingResponse is the service's response envelope.
type mappingResponse struct {
	Mappings []MappingEntry `json:"mappings"`
}
