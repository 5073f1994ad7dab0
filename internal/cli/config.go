package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	Identity     string
	IdentityFile string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("GOST_SERVER", "http://localhost:8080"),
		Identity:     os.Getenv("GOST_IDENTITY"),
		IdentityFile: getEnvOrDefault("GOST_IDENTITY_FILE", defaultIdentityFile()),
		Output:       "text",
		Verbose:      false,
	}
}

// LoadIdentity loads the identity from file if not already set
func (c *Config) LoadIdentity() error {
	if c.Identity != "" {
		return nil
	}

	data, err := os.ReadFile(c.IdentityFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No identity file is fine
		}
		return err
	}

	c.Identity = strings.TrimSpace(string(data))
	return nil
}

// EnsureIdentity generates and saves a fresh random identity if none is
// configured. The identity doubles as the credential, so it must be
// unguessable.
func (c *Config) EnsureIdentity() error {
	if c.Identity != "" {
		return nil
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate identity: %w", err)
	}

	return c.SaveIdentity(hex.EncodeToString(buf))
}

// SaveIdentity saves the identity to the identity file
func (c *Config) SaveIdentity(identity string) error {
	c.Identity = identity

	dir := filepath.Dir(c.IdentityFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.IdentityFile, []byte(identity), 0600)
}

func defaultIdentityFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gost/identity"
	}
	return filepath.Join(home, ".gost", "identity")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
