package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Backend names
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// AppConfig application configuration
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Mongo  MongoConfig  `toml:"mongo"`
	Data   DataConfig   `toml:"data"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port    int  `toml:"port" validate:"min=1,max=65535"`
	DevMode bool `toml:"dev_mode"`
}

// MongoConfig document store connection
type MongoConfig struct {
	URI            string `toml:"uri"` // overrides the fields below when set
	Host           string `toml:"host" validate:"required_without=URI"`
	Port           int    `toml:"port" validate:"min=0,max=65535"`
	Database       string `toml:"database" validate:"required"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"min=0"`
}

// DataConfig local data settings
type DataConfig struct {
	DataDir string `toml:"data_dir" validate:"required"`
	Backend string `toml:"backend" validate:"oneof=mongo memory"`
}

// LogConfig logging settings
type LogConfig struct {
	Level       string `toml:"level" validate:"oneof=debug info warn error"`
	Development bool   `toml:"development"`
}

// LoadConfigInfo load metadata
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig single-machine defaults: local MongoDB, data dir next to the executable
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Mongo: MongoConfig{
			Host:           "localhost",
			Port:           27017,
			Database:       "teacher_awards",
			TimeoutSeconds: 10,
		},
		Data: DataConfig{
			DataDir: "data",
			Backend: BackendMongo,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// MongoURI builds mongodb://[user:password@]host:port/database
func (c MongoConfig) MongoURI() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme: "mongodb",
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.Database,
	}
	if c.User != "" && c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

var validate = validator.New()

// Validate checks the configuration values
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath config.toml next to the executable
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo loads path over the defaults; a missing file yields the defaults.
// An empty path means DefaultPath().
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return nil, info, err
	default:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// LoadConfig loads config.toml next to the executable
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo("")
	return config, err
}

func applyEnv(config *AppConfig) {
	if v := os.Getenv("KPIAWARDS_MONGO_URI"); v != "" {
		config.Mongo.URI = v
	}
	if v := os.Getenv("KPIAWARDS_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
}

// SaveConfig writes config to path
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir creates the data directory and its subdirectories.
// Relative directories are resolved against the executable's directory.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
