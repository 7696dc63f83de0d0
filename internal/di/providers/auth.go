package providers

import (
	"encoding/hex"

	"github.com/samber/do/v2"

	"github.com/staffpicks/staffpicks-server/internal/auth"
	"github.com/staffpicks/staffpicks-server/internal/config"
	"github.com/staffpicks/staffpicks-server/internal/logger"
)

// SessionKey wraps the PASETO session key bytes.
type SessionKey []byte

// ProvideSessionKey loads or generates the session signing key.
func ProvideSessionKey(i do.Injector) (SessionKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}
	cfg.Session.Key = key

	log.Info("Session key loaded",
		"cookie_name", cfg.Session.CookieName,
		"session_duration", cfg.Session.Duration,
	)

	return SessionKey(key), nil
}

// ProvideSessionService provides the PASETO session token service.
func ProvideSessionService(i do.Injector) (*auth.SessionService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[SessionKey](i)

	return auth.NewSessionService(hex.EncodeToString([]byte(key)), cfg.Session.Duration)
}
