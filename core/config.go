package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the application configuration. It is loaded once at start up.
var Conf *Config

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		Build    string
		WorkDir  string

		RollbarToken string
		StateFile    string

		Backend  BackendConfig
		Identity IdentityConfig
		Preview  PreviewConfig
	}

	// BackendConfig points at the Learn-X API server. The session cookie it
	// issues is attached to every subsequent request.
	BackendConfig struct {
		BaseURL        string
		RequestTimeout time.Duration
	}

	// IdentityConfig points at the identity provider used to exchange
	// credentials for an ID token.
	IdentityConfig struct {
		BaseURL string
		APIKey  string
	}

	PreviewConfig struct {
		Addr string
	}
)

func init() {
	Conf = NewConfig()
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Learn-X")
	conf.SetDefault("build", "dev")
	conf.SetDefault("backendBaseUrl", "http://localhost:8080")
	conf.SetDefault("backendRequestTimeout", 15*time.Second)
	conf.SetDefault("identityBaseUrl", "https://identitytoolkit.googleapis.com/v1")
	conf.SetDefault("identityApiKey", "")
	conf.SetDefault("previewAddr", "127.0.0.1:0")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("stateFile", defaultStateFile())

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	conf.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     testMode,
		Env:          env,
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		WorkDir:      wd,
		RollbarToken: conf.GetString("rollbarToken"),
		StateFile:    conf.GetString("stateFile"),
		Backend: BackendConfig{
			BaseURL:        conf.GetString("backendBaseUrl"),
			RequestTimeout: conf.GetDuration("backendRequestTimeout"),
		},
		Identity: IdentityConfig{
			BaseURL: conf.GetString("identityBaseUrl"),
			APIKey:  conf.GetString("identityApiKey"),
		},
		Preview: PreviewConfig{
			Addr: conf.GetString("previewAddr"),
		},
	}
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "learnx", "state.json")
}
