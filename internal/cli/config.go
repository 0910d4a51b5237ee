package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	DeviceID     string
	DeviceIDFile string
	StudioCode   string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("BINGO_SERVER", "http://localhost:8080"),
		DeviceID:     os.Getenv("BINGO_DEVICE_ID"),
		DeviceIDFile: getEnvOrDefault("BINGO_DEVICE_ID_FILE", defaultDeviceIDFile()),
		StudioCode:   os.Getenv("BINGO_STUDIO_CODE"),
		Output:       "text",
		Verbose:      false,
	}
}

// EnsureDeviceID loads the persisted device id, generating and saving a
// fresh one on first use. The id is what ties a phone (or here, a
// terminal) to its submissions, so it must stay stable across runs.
func (c *Config) EnsureDeviceID() error {
	if c.DeviceID != "" {
		return nil
	}

	data, err := os.ReadFile(c.DeviceIDFile)
	if err == nil {
		c.DeviceID = strings.TrimSpace(string(data))
		if c.DeviceID != "" {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	c.DeviceID = uuid.NewString()

	dir := filepath.Dir(c.DeviceIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(c.DeviceIDFile, []byte(c.DeviceID), 0600)
}

func defaultDeviceIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bingo/device-id"
	}
	return filepath.Join(home, ".bingo", "device-id")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
