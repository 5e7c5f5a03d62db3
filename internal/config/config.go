package config

import (
	"os"
	"strconv"
)

// Config carries the environment-driven settings. Everything has a
// default so the app runs without any setup when the inference service
// lives on localhost.
type Config struct {
	InferenceURL  string // base URL of the classification service
	Discover      bool   // browse mDNS for the service before falling back to InferenceURL
	PositiveLabel string // label that counts as a flagged finding
	UseStream     bool   // prefer the websocket predict endpoint
	AdvertisePort int    // if >0, advertise a local inference bridge on this port
}

func Load() *Config {
	return &Config{
		InferenceURL:  getEnv("MARKLENS_INFERENCE_URL", "http://localhost:5000"),
		Discover:      getEnv("MARKLENS_DISCOVER", "1") != "0",
		PositiveLabel: getEnv("MARKLENS_POSITIVE_LABEL", "melanoma"),
		UseStream:     getEnv("MARKLENS_STREAM", "") == "1",
		AdvertisePort: getEnvInt("MARKLENS_ADVERTISE_PORT", 0),
	}
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
