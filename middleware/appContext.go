package middleware

import (
	"context"

	"steg-backend/token"

	"github.com/redis/go-redis/v9"
)

// AppContext bundles all dependencies
type AppContext struct {
	TokenMaker  token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
}
