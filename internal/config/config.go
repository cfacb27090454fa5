package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API    APIConfig
	Client ClientConfig
	Stub   StubConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ClientConfig struct {
	Env       string
	Locale    string
	TokenPath string
}

type StubConfig struct {
	Port      string
	JWTSecret string
	Seed      bool
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CLIENT_ENV", "development")
	viper.SetDefault("CLIENT_LOCALE", "en-IN")
	viper.SetDefault("TOKEN_PATH", defaultTokenPath())
	viper.SetDefault("STUB_PORT", "8080")
	viper.SetDefault("STUB_JWT_SECRET", "dev-secret")
	viper.SetDefault("STUB_SEED", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		},
		Client: ClientConfig{
			Env:       viper.GetString("CLIENT_ENV"),
			Locale:    viper.GetString("CLIENT_LOCALE"),
			TokenPath: viper.GetString("TOKEN_PATH"),
		},
		Stub: StubConfig{
			Port:      viper.GetString("STUB_PORT"),
			JWTSecret: viper.GetString("STUB_JWT_SECRET"),
			Seed:      viper.GetBool("STUB_SEED"),
		},
	}
}

// defaultTokenPath places the credential file under the user config
// directory, falling back to the working directory when none exists.
func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".marketfront_token"
	}
	return filepath.Join(dir, "marketfront", "token")
}
