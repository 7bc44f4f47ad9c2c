// Command token mints an access token for a user id, signed with the
// configured secret. It is meant for local development and smoke tests.
//
//	token -user 6f1c...
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/victorazesc/appseed-sub000/internal/auth"
	"github.com/victorazesc/appseed-sub000/internal/config"
)

func main() {
	user := flag.String("user", "", "user id (uuid) to put in the token subject")
	flag.Parse()

	userID, err := uuid.Parse(*user)
	if err != nil {
		log.Fatalf("-user: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwtManager.GenerateAccessToken(userID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	fmt.Println(token)
}
