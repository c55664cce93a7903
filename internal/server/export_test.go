package server

import (
	"github.com/newsdeskhq/newsdesk/internal/model"
	"github.com/newsdeskhq/newsdesk/internal/server/service"
)

// This file is only for test purpose and is only loaded by test framework.

// TokenFromUser returns a JWT for the given user.
func TokenFromUser(ioc IOC, u *model.User) string {
	token, err := service.NewUser(ioc.Database, ioc.SigningKey, ioc.TokenExpirationTime).TokenFromUser(u)
	if err != nil {
		panic(err)
	}
	return token
}
