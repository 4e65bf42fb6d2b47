package ai

import (
	"os"
	"strings"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

// CredentialSource supplies the API key for each call.
type CredentialSource interface {
	APIKey() (string, error)
}

// EnvCredentials reads the key from an environment variable at call time, so a
// key exported after start-up is picked up without a restart.
type EnvCredentials struct {
	Var string
}

func (c EnvCredentials) APIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(c.Var))
	if key == "" {
		return "", &model.ConfigurationError{Setting: c.Var, Err: model.ErrMissingCredential}
	}
	return key, nil
}

// StaticCredentials holds a key taken from the config file.
type StaticCredentials struct {
	Key string
}

func (c StaticCredentials) APIKey() (string, error) {
	key := strings.TrimSpace(c.Key)
	if key == "" {
		return "", &model.ConfigurationError{Setting: "model.api_key", Err: model.ErrMissingCredential}
	}
	return key, nil
}
