// tokengen mints access tokens for local testing, using the same signing
// path as the server. Point it at the server's JWT_SIGNING_KEY and paste the
// output into an Authorization header.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	jwttoken "github.com/Flv72S/Eterna-Home-sub001/internal/jwt_token"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

func main() {
	key := flag.String("key", os.Getenv("JWT_SIGNING_KEY"), "signing key (defaults to JWT_SIGNING_KEY)")
	userArg := flag.String("user", "", "user id (random when empty)")
	tenantArg := flag.String("tenant", "", "tenant id (random when empty)")
	email := flag.String("email", "dev@example.com", "email claim")
	ttl := flag.Duration("ttl", 30*time.Minute, "token lifetime")
	flag.Parse()

	if *key == "" {
		fmt.Fprintln(os.Stderr, "a signing key is required (-key or JWT_SIGNING_KEY)")
		os.Exit(1)
	}

	userID := id.UserID(uuid.New())
	if *userArg != "" {
		parsed, err := id.ParseUserID(*userArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad user id: %v\n", err)
			os.Exit(1)
		}
		userID = parsed
	}
	tenantID := id.TenantID(uuid.New())
	if *tenantArg != "" {
		parsed, err := id.ParseTenantID(*tenantArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad tenant id: %v\n", err)
			os.Exit(1)
		}
		tenantID = parsed
	}

	svc := jwttoken.NewService(*key, "eterna-home", *ttl)
	token, jti, err := svc.GenerateAccessToken(userID, tenantID, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user:   %s\ntenant: %s\njti:    %s\n\n%s\n", userID, tenantID, jti, token)
}
