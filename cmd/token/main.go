// Command token mints a bearer token for the browser extension.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"jobclip/internal/auth"
	"jobclip/internal/config"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("subject", "extension", "token subject")
	client := flag.String("client", "chrome", "client name recorded in the token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	token, expiresAt, err := auth.NewTokenService(&cfg.JWT).Issue(*subject, *client)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Println(token)
	if expiresAt.IsZero() {
		log.Println("token does not expire")
	} else {
		log.Printf("token expires at %s", expiresAt.Format("2006-01-02 15:04:05 MST"))
	}
}
