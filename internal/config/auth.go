package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

type AuthConfig struct {
	JWTSecret     string
	TokenLifetime time.Duration
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "change-me"
			log.Println("Warning: JWT_SECRET not set, using insecure default")
		}
		minutes := 30
		if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				minutes = n
			}
		}
		authConfig = &AuthConfig{
			JWTSecret:     secret,
			TokenLifetime: time.Duration(minutes) * time.Minute,
		}
	})
	return authConfig
}
