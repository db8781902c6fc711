package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EmbeddingKeyEnv is the environment variable consulted when the secrets
// file does not supply an embedding API key.
const EmbeddingKeyEnv = "OPENAI_API_KEY"

// ErrNoEmbeddingKey is returned when no layer of the lookup yields a key.
var ErrNoEmbeddingKey = errors.New(
	"no embedding API key found: set openai_api_key in the secrets file or the OPENAI_API_KEY environment variable")

type secretsFile struct {
	OpenAIAPIKey string `yaml:"openai_api_key"`
}

// ResolveEmbeddingKey looks up the embedding API key in layers: the
// secrets file first, then the environment. A missing or unreadable
// secrets file is not an error; a missing key everywhere is.
func ResolveEmbeddingKey(secretsPath string) (string, error) {
	if secretsPath != "" {
		if data, err := os.ReadFile(secretsPath); err == nil {
			var s secretsFile
			if err := yaml.Unmarshal(data, &s); err != nil {
				return "", fmt.Errorf("error parsing secrets file %s: %v", secretsPath, err)
			}
			if s.OpenAIAPIKey != "" {
				return s.OpenAIAPIKey, nil
			}
		}
	}

	if key := os.Getenv(EmbeddingKeyEnv); key != "" {
		return key, nil
	}

	return "", ErrNoEmbeddingKey
}
