package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LoadOrGenerateSecret reads a base64url secret from path. If the file does
// not exist a new random secret of size bytes is generated and written with
// 0600 permissions so restarts keep the same value.
func LoadOrGenerateSecret(path string, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret size must be positive, got %d", size)
	}

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret, err := base64.RawURLEncoding.DecodeString(string(raw))
		if err != nil {
			return nil, fmt.Errorf("decode secret %s: %w", path, err)
		}
		if len(secret) == 0 {
			return nil, fmt.Errorf("secret file %s is empty", path)
		}
		return secret, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	secret := make([]byte, size)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}

	encoded := base64.RawURLEncoding.EncodeToString(secret)
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return nil, err
	}

	return secret, nil
}
