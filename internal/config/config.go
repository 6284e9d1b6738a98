package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"github.com/rohitpal119/district-state-watch/internal/utils"
)

const AppName = "district-state-watch"

type Config struct {
	AppName string
	AppPort string

	// Database
	DBUrl string

	// Auth: public half of the SSO signing key; tokens are issued by
	// the external identity provider.
	RSAPublicKey *rsa.PublicKey

	// Notification channels (empty key disables the channel)
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string
	SendGridAPIKey   string
	SendGridFrom     string

	// Vision check for progress photos (empty disables)
	OpenAIAPIKey string

	// CORS
	AllowedOrigins []string

	SeedTestData bool
}

func LoadConfig() *Config {
	cfg := &Config{
		AppName:          AppName,
		AppPort:          envOr("APP_PORT", "8080"),
		DBUrl:            os.Getenv("DB_URL"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromPhone:  os.Getenv("TWILIO_FROM_PHONE"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:     envOr("SENDGRID_FROM_EMAIL", "alerts@district-state-watch.in"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		SeedTestData:     os.Getenv("SEED_TEST_DATA") == "true",
	}

	if cfg.DBUrl == "" {
		utils.Logger.Fatal("DB_URL env var missing")
	}

	for _, o := range strings.Split(envOr("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	pub, err := loadRSAPublicKey(os.Getenv("JWT_PUBLIC_KEY_B64"))
	if err != nil {
		utils.Logger.Fatal("Could not load JWT public key: ", err)
	}
	cfg.RSAPublicKey = pub

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadRSAPublicKey decodes a base64-wrapped PEM public key.
func loadRSAPublicKey(b64 string) (*rsa.PublicKey, error) {
	if b64 == "" {
		return nil, fmt.Errorf("JWT_PUBLIC_KEY_B64 env var missing")
	}
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("could not parse public key: %w", err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key is not RSA")
	}
	return pub, nil
}
