package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadOrCreateSecret reads the secret stored at path. When the file does not
// exist, generate is called and its output is written with 0600 permissions,
// so the same secret survives restarts.
func LoadOrCreateSecret(path string, generate func() ([]byte, error)) ([]byte, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cryptox: read secret %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("cryptox: create secret dir: %w", err)
	}

	data, err = generate()
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("cryptox: write secret %s: %w", path, err)
	}
	return data, nil
}

// GeneratePepper returns 32 random bytes encoded as base64url.
func GeneratePepper() ([]byte, error) {
	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("cryptox: generate pepper: %w", err)
	}
	return []byte(base64.RawURLEncoding.EncodeToString(buf)), nil
}
