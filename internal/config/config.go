package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Backend struct {
	BaseURL           string `mapstructure:"base_url"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

type Session struct {
	// TokenFile is where the auth token is persisted between runs.
	TokenFile string `mapstructure:"token_file"`
}

type Checkout struct {
	// SettleDelayMs is the pause after a successful order before navigating
	// to the orders view, simulating payment settlement.
	SettleDelayMs int `mapstructure:"settle_delay_ms"`
}

type Log struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	File  string `mapstructure:"file"`
}

type MockAPI struct {
	Addr      string `mapstructure:"addr"`
	JWTSecret string `mapstructure:"jwt_secret"`
	UploadDir string `mapstructure:"upload_dir"`
}

type Config struct {
	Backend  Backend  `mapstructure:"backend"`
	Session  Session  `mapstructure:"session"`
	Checkout Checkout `mapstructure:"checkout"`
	Log      Log      `mapstructure:"log"`
	MockAPI  MockAPI  `mapstructure:"mockapi"`
}

func (b Backend) RequestTimeout() time.Duration {
	return time.Duration(b.RequestTimeoutSec) * time.Second
}

func (c Checkout) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// Load reads the YAML config at path, falling back to MSTEX_CONFIG and then
// ./configs/config.yaml. MSTEX_* environment variables override file values
// (e.g. MSTEX_BACKEND_BASE_URL). A missing file is not an error; defaults
// still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("MSTEX_CONFIG")
		if path == "" {
			path = "./configs/config.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MSTEX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.request_timeout_sec", 30)
	v.SetDefault("session.token_file", defaultTokenFile())
	v.SetDefault("checkout.settle_delay_ms", 1500)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("mockapi.addr", ":8000")
	v.SetDefault("mockapi.jwt_secret", "dev-secret")
	v.SetDefault("mockapi.upload_dir", "./uploads")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".mstex-token"
	}
	return filepath.Join(dir, "mstex", "token")
}
