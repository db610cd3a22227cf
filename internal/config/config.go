package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	LLM struct {
		Provider string `yaml:"provider" default:"ollama"` // active provider: ollama or claude

		Ollama struct {
			URL   string `yaml:"url" default:"http://localhost:11434"`
			Model string `yaml:"model" default:"deepseek-r1:1.5b"`
		} `yaml:"ollama"`

		Claude struct {
			APIKey string `yaml:"api_key"`
			Model  string `yaml:"model" default:"claude-3-haiku-20240307"`
		} `yaml:"claude"`

		MaxTokens               int           `yaml:"max_tokens" default:"4000"`
		ExtractionTemperature   float32       `yaml:"extraction_temperature" default:"0.1"`
		ConversationTemperature float32       `yaml:"conversation_temperature" default:"0.7"`
		ExtractionTimeout       time.Duration `yaml:"extraction_timeout" default:"60s"`
		ConversationTimeout     time.Duration `yaml:"conversation_timeout" default:"60s"`
	} `yaml:"llm"`

	Extractor struct {
		MaxHTMLChars   int    `yaml:"max_html_chars" default:"15000"`
		DefaultCountry string `yaml:"default_country" default:"AU"`
	} `yaml:"extractor"`

	Sources struct {
		RequestTimeout time.Duration `yaml:"request_timeout" default:"15s"`
		UserAgent      string        `yaml:"user_agent"`
		RateLimit      int           `yaml:"rate_limit" default:"30"` // requests per minute

		Indeed struct {
			FeedURL        string `yaml:"feed_url" default:"https://www.indeed.com/rss"`
			DefaultCountry string `yaml:"default_country" default:"US"`
		} `yaml:"indeed"`

		USAJobs struct {
			APIURL         string `yaml:"api_url" default:"https://data.usajobs.gov/api/search"`
			APIKey         string `yaml:"api_key"`
			Email          string `yaml:"email"`
			ResultsPerPage int    `yaml:"results_per_page" default:"100"`
			DefaultCountry string `yaml:"default_country" default:"US"`
		} `yaml:"usajobs"`
	} `yaml:"sources"`

	Ingest struct {
		RunTimeout time.Duration `yaml:"run_timeout" default:"10m"`
		Queries    []string      `yaml:"queries"`
		Location   string        `yaml:"location" default:"remote"`
	} `yaml:"ingest"`

	Storage struct {
		Backend string `yaml:"backend" default:"memory"` // memory or redis
	} `yaml:"storage"`

	Chat struct {
		HistoryWindow int           `yaml:"history_window" default:"5"`
		SessionTTL    time.Duration `yaml:"session_ttl" default:"24h"`
	} `yaml:"chat"`

	Tasks struct {
		MaxWorkers  int           `yaml:"max_workers" default:"4"`
		QueueSize   int           `yaml:"queue_size" default:"50"`
		TaskTimeout time.Duration `yaml:"task_timeout" default:"15m"`
		MaxTaskAge  time.Duration `yaml:"max_task_age" default:"24h"`
	} `yaml:"tasks"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	config := &Config{}

	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.LLM.Provider = "ollama"
	config.LLM.Ollama.URL = "http://localhost:11434"
	config.LLM.Ollama.Model = "deepseek-r1:1.5b"
	config.LLM.Claude.Model = "claude-3-haiku-20240307"
	config.LLM.MaxTokens = 4000
	config.LLM.ExtractionTemperature = 0.1
	config.LLM.ConversationTemperature = 0.7
	config.LLM.ExtractionTimeout = 60 * time.Second
	config.LLM.ConversationTimeout = 60 * time.Second

	config.Extractor.MaxHTMLChars = 15000
	config.Extractor.DefaultCountry = "AU"

	config.Sources.RequestTimeout = 15 * time.Second
	config.Sources.RateLimit = 30
	config.Sources.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	config.Sources.Indeed.FeedURL = "https://www.indeed.com/rss"
	config.Sources.Indeed.DefaultCountry = "US"
	config.Sources.USAJobs.APIURL = "https://data.usajobs.gov/api/search"
	config.Sources.USAJobs.ResultsPerPage = 100
	config.Sources.USAJobs.DefaultCountry = "US"

	config.Ingest.RunTimeout = 10 * time.Minute
	config.Ingest.Queries = []string{"software developer"}
	config.Ingest.Location = "remote"

	config.Storage.Backend = "memory"

	config.Chat.HistoryWindow = 5
	config.Chat.SessionTTL = 24 * time.Hour

	config.Tasks.MaxWorkers = 4
	config.Tasks.QueueSize = 50
	config.Tasks.TaskTimeout = 15 * time.Minute
	config.Tasks.MaxTaskAge = 24 * time.Hour

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	return config
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := DefaultConfig()

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if url := os.Getenv("OLLAMA_URL"); url != "" {
		c.LLM.Ollama.URL = url
	}

	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		c.LLM.Ollama.Model = model
	}

	if apiKey := os.Getenv("CLAUDE_API_KEY"); apiKey != "" {
		c.LLM.Claude.APIKey = apiKey
	}

	// Also support the generic LLM_API_KEY for compatibility
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.Claude.APIKey = apiKey
	}

	if model := os.Getenv("CLAUDE_MODEL"); model != "" {
		c.LLM.Claude.Model = model
	}

	if apiKey := os.Getenv("USAJOBS_API_KEY"); apiKey != "" {
		c.Sources.USAJobs.APIKey = apiKey
	}

	if email := os.Getenv("USAJOBS_EMAIL"); email != "" {
		c.Sources.USAJobs.Email = email
	}

	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if runTimeout := os.Getenv("INGEST_RUN_TIMEOUT"); runTimeout != "" {
		if timeout, err := time.ParseDuration(runTimeout); err == nil {
			c.Ingest.RunTimeout = timeout
		}
	}
}
