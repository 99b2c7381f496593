package controllers

import (
	"context"
	"time"

	"steg-backend/config"
	"steg-backend/token"
	"steg-backend/users/repositories"
	"steg-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	accessTokenDuration  = 15 * time.Minute
	refreshTokenDuration = 7 * 24 * time.Hour
)

type UserController struct {
	UserRepo    repositories.UserRepository
	TokenMaker  token.Maker
	RedisClient *redis.Client
	Ctx         context.Context
	DB          *gorm.DB
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUserController authenticates a staff account and opens a session:
// short-lived access token plus a single-use refresh token kept in Redis.
func (uc *UserController) LoginUserController(c *fiber.Ctx) error {
	var request LoginRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	if request.Email == "" || request.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email et mot de passe sont obligatoires",
		})
	}

	user, err := uc.UserRepo.GetUserByEmail(request.Email)
	if err != nil {
		// Same answer whether the account is unknown or the password is
		// wrong, so the endpoint does not leak which emails exist.
		config.Logger.Debug("Login attempt for unknown email",
			zap.String("email", request.Email))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Email ou mot de passe incorrect",
		})
	}

	if !services.CheckPasswordHash(request.Password, user.Password) {
		config.Logger.Debug("Login attempt with wrong password",
			zap.String("email", request.Email))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Email ou mot de passe incorrect",
		})
	}

	if !user.Active {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Ce compte est désactivé",
		})
	}

	accessToken, err := uc.TokenMaker.CreateToken(user.Email, accessTokenDuration)
	if err != nil {
		config.Logger.Error("Could not create access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	refreshToken, err := uc.TokenMaker.CreateToken(user.Email, refreshTokenDuration)
	if err != nil {
		config.Logger.Error("Could not create refresh token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	// The refresh token string itself is the Redis key so the middleware
	// can look it up and invalidate it in one round trip.
	err = uc.RedisClient.Set(uc.Ctx, "refresh_token:"+refreshToken, user.Email, refreshTokenDuration).Err()
	if err != nil {
		config.Logger.Error("Error storing refresh token in Redis",
			zap.String("email", user.Email),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	if err := uc.UserRepo.TouchLastLogin(user.ID); err != nil {
		config.Logger.Warn("Failed to update last login timestamp",
			zap.String("userID", user.ID.String()),
			zap.Error(err))
	}

	setSessionCookies(c, accessToken, refreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Login successful",
		"access_token": accessToken,
		"data": fiber.Map{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"role":       user.Role,
		},
	})
}

// LogoutUserController drops the Redis-side refresh token and clears both
// session cookies.
func (uc *UserController) LogoutUserController(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		if err := uc.RedisClient.Del(uc.Ctx, "refresh_token:"+refreshToken).Err(); err != nil {
			config.Logger.Warn("Error deleting refresh token on logout", zap.Error(err))
		}
	}

	clearSessionCookies(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logout successful",
	})
}

// Cookie attributes mirror what the auth middleware sets on rotation.
func setSessionCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	secure := config.GetEnv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(accessTokenDuration),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(refreshTokenDuration),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearSessionCookies(c *fiber.Ctx) {
	secure := config.GetEnv("APP_ENV") == "production"

	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   secure,
			SameSite: "Lax",
			Path:     "/",
		})
	}
}
