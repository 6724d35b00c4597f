package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
	// SnapshotTTLSec is how long a decoded realtime snapshot may be served
	// before the next request triggers a fresh fetch. Zero disables reuse.
	SnapshotTTLSec int `yaml:"snapshotTTLSec" validate:"gte=0"`
}

// StaticConfig contains the GTFS static dataset source configuration
type StaticConfig struct {
	URL string `yaml:"url" validate:"omitempty,url"`
	// CachePath, when set, is where the parsed schedule index is persisted
	// between runs so the zip is not downloaded and re-parsed every start.
	CachePath string `yaml:"cachePath"`
}

// HTTPConfig contains outbound fetch configuration
type HTTPConfig struct {
	TimeoutMS int `yaml:"timeoutMS" validate:"gte=0"`
}

// FeedGroup maps one realtime endpoint to the group of subway lines it serves
type FeedGroup struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Static StaticConfig `yaml:"static"`
	HTTP   HTTPConfig   `yaml:"http"`
	Feeds  []FeedGroup  `yaml:"feeds"`
}

// LineLabels returns the configured feed-group labels in config order.
func (c AppConfig) LineLabels() []string {
	labels := make([]string, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		labels = append(labels, f.Name)
	}
	return labels
}
