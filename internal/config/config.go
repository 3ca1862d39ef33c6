package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/studentdash/internal/utils"
)

// Global configuration structure.
type Global struct {
	// Data source: local CSV path or http(s) URL
	DataSource string `mapstructure:"data_source" yaml:"data_source"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`

	// HTTP server
	ListenAddr     string   `mapstructure:"listen_addr" yaml:"listen_addr"`
	PublicCSVPath  string   `mapstructure:"public_csv_path" yaml:"public_csv_path"`
	CORSOrigins    []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	HTTPTimeoutSec int      `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`

	// Page
	AssetsHost string `mapstructure:"assets_host" yaml:"assets_host"`
	Title      string `mapstructure:"title" yaml:"title"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"data_source", "delimiter", "listen_addr", "public_csv_path",
	"cors_origins", "http_timeout_sec", "assets_host", "title",
}

// Dir returns ~/.studentdash.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".studentdash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.studentdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is applied to the environment first.
func Load(cfgFile string) (*Global, error) {
	// optional; existing environment wins
	_ = godotenv.Load()
	return load(cfgFile, true)
}

// LoadFile loads the config file over the defaults, ignoring the environment.
// It is the base for edits that are saved back to disk.
func LoadFile(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, env bool) (*Global, error) {
	v := viper.New()
	if env {
		v.SetEnvPrefix("STUDENTDASH")
		v.AutomaticEnv()
	}

	// Defaults
	v.SetDefault("data_source", "studentdashboard.csv")
	v.SetDefault("delimiter", ",")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("public_csv_path", "/studentdashboard.csv")
	v.SetDefault("cors_origins", []string{"http://localhost:3000"})
	// 0 = no limit on the remote fetch
	v.SetDefault("http_timeout_sec", 0)
	v.SetDefault("assets_host", "https://go-echarts.github.io/go-echarts-assets/assets/")
	v.SetDefault("title", "Student Dashboard")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// DelimiterRune returns the first rune of Delimiter, or ',' when unset.
// The literal "\t" selects a tab.
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "":
		return ','
	case `\t`, "tab":
		return '\t'
	}
	return []rune(c.Delimiter)[0]
}
