package main

import (
	"fmt"
	"os"

	"github.com/osse101/HatcheryOps_Go/internal/auth"
	"github.com/osse101/HatcheryOps_Go/internal/config"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

type TokenCommand struct{}

func (c *TokenCommand) Name() string {
	return "token"
}

func (c *TokenCommand) Description() string {
	return "Mint an access token: token <userId> [seller|admin]"
}

func (c *TokenCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user id required")
	}
	userID, err := domain.ParseUserID(args[0])
	if err != nil {
		return err
	}
	role := domain.RoleSeller
	if len(args) > 1 {
		role = args[1]
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	issuer, err := auth.NewIssuer(secret, getEnv("JWT_ISSUER", config.DefaultServiceName), config.DefaultTokenTTL)
	if err != nil {
		return err
	}

	token, err := issuer.Mint(userID, role)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
