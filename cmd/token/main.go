// Command token mints a bearer token for the planner API using the
// JWT_SECRET and JWT_ISSUER of the current environment.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/fastygo/spideplan/internal/config"
	"github.com/fastygo/spideplan/internal/middleware"
)

func main() {
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime, 0 for no expiry")
	subject := flag.String("sub", "spider", "subject claim")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if !cfg.AuthEnabled() {
		log.Fatal("JWT_SECRET is empty; the API accepts requests without a token")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": *subject,
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}
	if *ttl > 0 {
		claims["exp"] = now.Add(*ttl).Unix()
	}

	token, err := middleware.IssueToken(cfg.JWT.Secret, cfg.JWT.Issuer, claims)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
