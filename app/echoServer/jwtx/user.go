package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	jwtutil "litera/util/jwt"
)

// ContextKey is where echo-jwt stores the parsed token.
const ContextKey = "user"

func claims(c echo.Context) (*jwtutil.Claims, error) {
	tok, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no jwt token in context")
	}
	cl, ok := tok.Claims.(*jwtutil.Claims)
	if !ok {
		return nil, errors.New("invalid jwt claims")
	}
	return cl, nil
}

func UserIDFromContext(c echo.Context) (int64, error) {
	cl, err := claims(c)
	if err != nil {
		return 0, err
	}
	if cl.UserID <= 0 {
		return 0, errors.New("uid missing in claims")
	}
	return cl.UserID, nil
}

func EmailFromContext(c echo.Context) (string, error) {
	cl, err := claims(c)
	if err != nil {
		return "", err
	}
	if cl.Email == "" {
		return "", errors.New("email missing in claims")
	}
	return cl.Email, nil
}
