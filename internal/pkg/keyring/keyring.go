package keyring

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

// Keyring stores exactly one secret, the API bearer token, sealed at rest in
// a single file. The mobile builds keep this in the OS secure store; here the
// equivalent is an encrypted file with owner-only permissions.
type Keyring struct {
	path string
	key  []byte
}

// New creates a keyring writing to path. The seal key is derived from secret;
// when secret is empty a random key is generated next to path on first use.
func New(path, secret string) (*Keyring, error) {
	if path == "" {
		return nil, fmt.Errorf("keyring: credential path is empty")
	}

	var key []byte
	if secret != "" {
		sum := sha256.Sum256([]byte(secret))
		key = sum[:]
	} else {
		var err error
		key, err = loadOrCreateKey(keyFilePath(path))
		if err != nil {
			return nil, fmt.Errorf("keyring: %w", err)
		}
	}

	return &Keyring{path: path, key: key}, nil
}

// Save seals and writes the token, replacing any previous value.
func (k *Keyring) Save(token string) error {
	aead, err := chacha20poly1305.NewX(k.key)
	if err != nil {
		return fmt.Errorf("keyring: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("keyring: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(token), nil)

	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return fmt.Errorf("keyring: %w", err)
	}
	if err := os.WriteFile(k.path, sealed, 0o600); err != nil {
		return fmt.Errorf("keyring: %w", err)
	}
	return nil
}

// Retrieve returns the stored token. A missing credential file is not an
// error; it returns the empty string.
func (k *Keyring) Retrieve() (string, error) {
	sealed, err := os.ReadFile(k.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("keyring: %w", err)
	}

	aead, err := chacha20poly1305.NewX(k.key)
	if err != nil {
		return "", fmt.Errorf("keyring: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("keyring: credential file is corrupt")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	token, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("keyring: credential file cannot be unsealed: %w", err)
	}
	return string(token), nil
}

// Clear removes the stored token. Clearing an empty keyring is a no-op.
func (k *Keyring) Clear() error {
	if err := os.Remove(k.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("keyring: %w", err)
	}
	return nil
}

func keyFilePath(credentialPath string) string {
	return credentialPath + ".key"
}

func loadOrCreateKey(path string) ([]byte, error) {
	if data, err := os.ReadFile(path); err == nil {
		key, decodeErr := hex.DecodeString(string(data))
		if decodeErr == nil && len(key) == chacha20poly1305.KeySize {
			return key, nil
		}
		return nil, fmt.Errorf("key file %s is corrupt", path)
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, err
	}
	return key, nil
}
