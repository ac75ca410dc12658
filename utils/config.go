// File: utils/config.go
package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and LoadConfig for unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configurable rally parameters.
type Config struct {
	// Exchange
	MessageLimit   int    `yaml:"messageLimit" json:"messageLimit"`     // Highest counter value a player stamps; 0 means no message is exchanged
	OpeningMessage string `yaml:"openingMessage" json:"openingMessage"` // Text the initiator sends on kickoff
	InitiatorName  string `yaml:"initiatorName" json:"initiatorName"`   // Registry name of the player that opens the rally
	ResponderName  string `yaml:"responderName" json:"responderName"`   // Registry name of the answering player

	// Engine
	MailboxSize     int           `yaml:"mailboxSize" json:"mailboxSize"`         // Capacity of every actor mailbox
	AskTimeout      time.Duration `yaml:"askTimeout" json:"askTimeout"`           // Deadline for request/reply queries to a player
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout"` // How long Shutdown waits for actors to exit

	// Logging
	LogLevel string `yaml:"logLevel" json:"logLevel"` // debug, info, warn or error
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		MessageLimit:   10,
		OpeningMessage: "Hello",
		InitiatorName:  "Initiator",
		ResponderName:  "Responder",

		MailboxSize:     16,
		AskTimeout:      time.Second,
		ShutdownTimeout: 2 * time.Second,

		LogLevel: "warn",
	}
}

// Validate reports the first unusable value in c.
func (c Config) Validate() error {
	switch {
	case c.MessageLimit < 0:
		return fmt.Errorf("%w: messageLimit must not be negative, got %d", ErrInvalidConfig, c.MessageLimit)
	case c.InitiatorName == "" || c.ResponderName == "":
		return fmt.Errorf("%w: player names must not be empty", ErrInvalidConfig)
	case c.InitiatorName == c.ResponderName:
		return fmt.Errorf("%w: player names must differ, both are %q", ErrInvalidConfig, c.InitiatorName)
	case c.MailboxSize <= 0:
		return fmt.Errorf("%w: mailboxSize must be positive, got %d", ErrInvalidConfig, c.MailboxSize)
	case c.AskTimeout <= 0 || c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
