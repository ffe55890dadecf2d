package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Remote stores
	Notion NotionConfig
	Zotero ZoteroConfig
}

type EnvironmentConfig struct {
	Name     string
	Timezone string // used to resolve relative Library dates
}

type HTTPServerConfig struct {
	Port        int
	Mode        string
	InternalKey string // optional shared key for /api/v1
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	File         string // optional, rotated
}

// NotionConfig points at the Board database.
type NotionConfig struct {
	Token             string
	DatabaseID        string
	BaseURL           string
	APIVersion        string
	RequestsPerSecond float64
}

// ZoteroConfig points at the Library.
type ZoteroConfig struct {
	Token             string
	GroupID           string
	LibraryType       string
	BaseURL           string
	RequestsPerSecond float64
}

var requiredKeys = []string{
	"notion.token",
	"notion.database_id",
	"zotero.token",
	"zotero.group_id",
}

// Load reads the YAML file at path. Environment variables override file
// values, with "." replaced by "_" (e.g. NOTION_TOKEN).
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: error reading config file: %v", ErrInvalidConfig, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required keys: %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.Environment.Timezone = v.GetString("environment.timezone")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.InternalKey = v.GetString("http_server.internal_key")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.Logger.File = v.GetString("logger.file")

	// Notion
	cfg.Notion.Token = v.GetString("notion.token")
	cfg.Notion.DatabaseID = v.GetString("notion.database_id")
	cfg.Notion.BaseURL = v.GetString("notion.base_url")
	cfg.Notion.APIVersion = v.GetString("notion.api_version")
	cfg.Notion.RequestsPerSecond = v.GetFloat64("notion.requests_per_second")

	// Zotero
	cfg.Zotero.Token = v.GetString("zotero.token")
	cfg.Zotero.GroupID = v.GetString("zotero.group_id")
	cfg.Zotero.LibraryType = v.GetString("zotero.library_type")
	cfg.Zotero.BaseURL = v.GetString("zotero.base_url")
	cfg.Zotero.RequestsPerSecond = v.GetFloat64("zotero.requests_per_second")

	if cfg.Zotero.LibraryType != "group" && cfg.Zotero.LibraryType != "user" {
		return nil, fmt.Errorf("%w: zotero.library_type must be group or user, got %q", ErrInvalidConfig, cfg.Zotero.LibraryType)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "production")
	v.SetDefault("environment.timezone", "UTC")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "release")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "production")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", false)
	v.SetDefault("logger.file", "")

	v.SetDefault("notion.base_url", "https://api.notion.com/v1")
	v.SetDefault("notion.api_version", "2022-06-28")
	v.SetDefault("notion.requests_per_second", 3)

	v.SetDefault("zotero.library_type", "group")
	v.SetDefault("zotero.base_url", "https://api.zotero.org")
	v.SetDefault("zotero.requests_per_second", 0)
}
