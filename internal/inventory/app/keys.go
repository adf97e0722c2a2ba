package app

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/stocktake/pkg/cryptox"
	"github.com/aussiebroadwan/stocktake/pkg/jwtx"
)

// SessionKeys bundles the material used to sign and check session cookies.
type SessionKeys struct {
	KeySet   *jwtx.KeySet
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
}

// InitSessionKeys loads the Ed25519 session key from cfg.SessionKeyFile,
// generating it on first start so sessions survive restarts.
func InitSessionKeys(cfg Config, logger *slog.Logger) (SessionKeys, error) {
	pemKey, err := cryptox.LoadOrCreateSecret(cfg.SessionKeyFile, cryptox.GenerateEd25519Key)
	if err != nil {
		return SessionKeys{}, fmt.Errorf("failed to load session key: %w", err)
	}

	priv, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return SessionKeys{}, fmt.Errorf("failed to parse session key: %w", err)
	}

	kid := keyID(priv.Public().(ed25519.PublicKey))
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return SessionKeys{}, fmt.Errorf("failed to create signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return SessionKeys{}, fmt.Errorf("failed to register signing key: %w", err)
	}

	logger.Info("session signing key loaded", "kid", kid, "path", cfg.SessionKeyFile)

	return SessionKeys{
		KeySet:   keys,
		Signer:   signer,
		Verifier: jwtx.NewVerifierEdDSA(keys, cfg.SessionIssuer, nil),
	}, nil
}

// InitPasswordHasher loads the pepper from cfg.PepperFile, generating it on
// first start.
func InitPasswordHasher(cfg Config) (*cryptox.PasswordHasher, error) {
	pepper, err := cryptox.LoadOrCreateSecret(cfg.PepperFile, cryptox.GeneratePepper)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	return cryptox.NewPasswordHasher(string(bytes.TrimSpace(pepper))), nil
}

// keyID is the first 8 bytes of the public key's SHA-256, hex encoded.
func keyID(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:8])
}
