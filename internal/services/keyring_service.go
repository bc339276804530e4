package services

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const keyringServiceName = "intellidoc"

// KeyringService stores provider API keys in the OS keyring as a fallback
// for environments where putting credentials in .env is unwanted.
type KeyringService struct {
}

func NewKeyringService() *KeyringService {
	return &KeyringService{}
}

func (s *KeyringService) StoreApiKey(provider string, apiKey string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	if apiKey == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(keyringServiceName, provider, apiKey)
}

func (s *KeyringService) GetApiKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	return keyring.Get(keyringServiceName, provider)
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	return keyring.Delete(keyringServiceName, provider)
}
