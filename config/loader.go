package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const mtaFeedBase = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/"

// DefaultConfig returns the built-in configuration: the published MTA static
// dataset and the standard feed-group endpoints. The numbered IRT lines and
// the shuttle share one endpoint; the lettered divisions each have their own.
func DefaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: 8090, SnapshotTTLSec: 30},
		Static: StaticConfig{URL: "http://web.mta.info/developers/data/nyct/subway/google_transit.zip"},
		HTTP:   HTTPConfig{TimeoutMS: 15000},
		Feeds: []FeedGroup{
			{Name: "1-2-3", URL: mtaFeedBase + "nyct%2Fgtfs"},
			{Name: "4-5-6", URL: mtaFeedBase + "nyct%2Fgtfs"},
			{Name: "7", URL: mtaFeedBase + "nyct%2Fgtfs"},
			{Name: "A-C-E", URL: mtaFeedBase + "nyct%2Fgtfs-ace"},
			{Name: "B-D-F-M", URL: mtaFeedBase + "nyct%2Fgtfs-bdfm"},
			{Name: "G", URL: mtaFeedBase + "nyct%2Fgtfs-g"},
			{Name: "J-Z", URL: mtaFeedBase + "nyct%2Fgtfs-jz"},
			{Name: "L", URL: mtaFeedBase + "nyct%2Fgtfs-l"},
			{Name: "N-Q-R-W", URL: mtaFeedBase + "nyct%2Fgtfs-nqrw"},
			{Name: "S", URL: mtaFeedBase + "nyct%2Fgtfs"},
		},
	}
}

// LoadAppConfig loads and validates the application configuration. An empty
// path searches the usual locations; a missing file is not an error and
// yields the built-in defaults. Values present in the file override the
// defaults; a feeds list in the file replaces the default list entirely.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultConfig()

	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "/etc/subway-arrivals/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		if path != "" {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return cfg, err
	}
	if err := v.Struct(cfg.Static); err != nil {
		return cfg, err
	}
	for _, f := range cfg.Feeds {
		if err := v.Struct(f); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// SelectFeedGroup chooses a feed group by label, case-insensitively. An
// empty label selects the first configured group. An unmatched label also
// falls back to the first group but reports false so callers can warn.
func (c AppConfig) SelectFeedGroup(name string) (FeedGroup, bool) {
	for _, f := range c.Feeds {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	if len(c.Feeds) > 0 {
		return c.Feeds[0], name == ""
	}
	return FeedGroup{}, false
}
