package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Token            string `json:"token"`
	AllowedChannelID string `json:"allowedChannelID"`
	ApiUser          string `json:"apiUser"`
	ApiKey           string `json:"apiKey"`
	UserName         string `json:"userName"`
	ClientIP         string `json:"clientIP"`
	UseSandbox       bool   `json:"useSandbox"`
	HTTPTimeout      int    `json:"httpTimeout"`
	BatchSize        int    `json:"batchSize"`
	DebugXML         bool   `json:"debugXML"`
}

// Load reads config.json when present and then applies environment
// overrides, so a deployment can run with no config file at all. A .env file
// in the working directory is honored.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{
		HTTPTimeout: 20,
		BatchSize:   50,
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	envString(&c.Token, "BOT_TOKEN")
	envString(&c.AllowedChannelID, "ALLOWED_CHANNEL_ID")
	envString(&c.ApiUser, "NAMECHEAP_API_USER")
	envString(&c.ApiKey, "NAMECHEAP_API_KEY")
	envString(&c.UserName, "NAMECHEAP_USERNAME")
	envString(&c.ClientIP, "NAMECHEAP_CLIENT_IP")
	envBool(&c.UseSandbox, "USE_SANDBOX")
	envInt(&c.HTTPTimeout, "HTTP_TIMEOUT")
	envInt(&c.BatchSize, "BATCH_SIZE")
	envBool(&c.DebugXML, "DEBUG_XML")
}

// Validate checks the credentials every API call needs.
func (c *Config) Validate() error {
	missing := []string{}
	if c.ApiUser == "" {
		missing = append(missing, "NAMECHEAP_API_USER")
	}
	if c.ApiKey == "" {
		missing = append(missing, "NAMECHEAP_API_KEY")
	}
	if c.UserName == "" {
		missing = append(missing, "NAMECHEAP_USERNAME")
	}
	if c.ClientIP == "" {
		missing = append(missing, "NAMECHEAP_CLIENT_IP")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func envString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func envBool(target *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*target = strings.ToLower(v) == "true" || v == "1"
	}
}

func envInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
