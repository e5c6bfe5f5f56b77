package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	LLM    LLMConfig
	OCR    OCRConfig
	Upload UploadConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Env    string
	Level  string
	Output string // stdout or stderr
}

// LLMConfig selects and configures the structured-output provider.
type LLMConfig struct {
	Provider     string
	Model        string
	GeminiAPIKey string
	OpenAIAPIKey string
	ServerURL    string // ollama only
	Timeout      time.Duration
	Temperature  float64
}

type OCRConfig struct {
	Language string
	Workers  int
	MinWidth int
}

type UploadConfig struct {
	Dir               string
	AllowedExtensions []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.body_limit", 32*1024*1024)
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.timeout", 60)
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.workers", 4)
	v.SetDefault("ocr.min_width", 600)
	v.SetDefault("upload.dir", "assets")
	v.SetDefault("upload.allowed_extensions", []string{"txt", "pdf"})
}

// bindEnv accepts the variable names of the original .env layout next to the
// LLM_* forms AutomaticEnv derives from the keys.
func bindEnv(v *viper.Viper) error {
	bindings := [][]string{
		{"llm.gemini_api_key", "LLM_GEMINI_API_KEY", "GEMINI_API_KEY"},
		{"llm.openai_api_key", "LLM_OPENAI_API_KEY", "OPENAI_API_KEY"},
		{"llm.model", "LLM_MODEL", "MODEL_NAME"},
		{"logger.env", "LOGGER_ENV", "ENV"},
	}
	for _, b := range bindings {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig reads config.yaml from the working directory (or ./config) and
// applies environment overrides. A missing file is not an error.
func LoadConfig() (*Config, error) {
	return load(nil)
}

// LoadConfigWithFlags is LoadConfig with flags layered over file and
// environment. Flags are matched by their config key, e.g. --llm.model.
func LoadConfigWithFlags(flags *pflag.FlagSet) (*Config, error) {
	return load(flags)
}

func load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Env:    v.GetString("logger.env"),
			Level:  v.GetString("logger.level"),
			Output: v.GetString("logger.output"),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(v.GetString("llm.provider")),
			Model:        v.GetString("llm.model"),
			GeminiAPIKey: v.GetString("llm.gemini_api_key"),
			OpenAIAPIKey: v.GetString("llm.openai_api_key"),
			ServerURL:    v.GetString("llm.server_url"),
			Timeout:      time.Duration(v.GetInt("llm.timeout")) * time.Second,
			Temperature:  v.GetFloat64("llm.temperature"),
		},
		OCR: OCRConfig{
			Language: v.GetString("ocr.language"),
			Workers:  v.GetInt("ocr.workers"),
			MinWidth: v.GetInt("ocr.min_width"),
		},
		Upload: UploadConfig{
			Dir:               v.GetString("upload.dir"),
			AllowedExtensions: v.GetStringSlice("upload.allowed_extensions"),
		},
	}

	exts := make([]string, 0, len(cfg.Upload.AllowedExtensions))
	for _, ext := range cfg.Upload.AllowedExtensions {
		if ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")); ext != "" {
			exts = append(exts, ext)
		}
	}
	cfg.Upload.AllowedExtensions = exts

	return cfg
}

// Validate reports configuration that would make the service unusable.
func (c *Config) Validate() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("gemini API key is required for provider %q", c.LLM.Provider)
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("openai API key is required for provider %q", c.LLM.Provider)
		}
	case ProviderOllama:
		if c.LLM.ServerURL == "" {
			return fmt.Errorf("llm.server_url is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}
	if c.OCR.Workers <= 0 {
		return fmt.Errorf("ocr.workers must be positive")
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		return fmt.Errorf("upload.allowed_extensions must not be empty")
	}
	return nil
}
