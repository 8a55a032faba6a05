package utils

import (
	"context"
)

type contextKey string

const (
	UsernameKey contextKey = "username"
	TokenKey    contextKey = "token"
)

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(UsernameKey)
	if val == nil {
		return "", false
	}
	username, ok := val.(string)
	return username, ok && username != ""
}

func SetUsernameContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(TokenKey)
	if val == nil {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
