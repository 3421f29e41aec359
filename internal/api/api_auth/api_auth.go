package api_auth

import (
	"database/sql"
	"errors"
	"net/http"

	"devconnector/internal/config"
	"devconnector/internal/models"
	"devconnector/internal/models/api_error"
	"devconnector/internal/utils/utils_auth"
	"devconnector/internal/utils/utils_db"
	"devconnector/internal/utils/utils_handler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Login authenticates by email and password. An unknown email and a failed
// hash comparison produce the same response so accounts cannot be
// enumerated.
func Login(store utils_db.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := c.MustGet("cfg").(config.Config)

		req, err := utils_handler.GetObj[models.LoginRequest](c)
		if err != nil {
			c.Error(api_error.NewFromErr(err, http.StatusBadRequest))
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			c.Error(errs)
			return
		}

		storedUser, err := store.GetUserByEmail(c.Request.Context(), req.Email)
		if errors.Is(err, sql.ErrNoRows) {
			c.Error(api_error.ErrInvalidCredentials)
			return
		}
		if err != nil {
			c.Error(err)
			return
		}

		if !utils_auth.VerifyArgon2Hash(req.Password, storedUser.PasswordHash) {
			c.Error(api_error.ErrInvalidCredentials)
			return
		}

		token, err := utils_auth.IssueToken(storedUser.ID, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// Me returns the authenticated user's credential record, password hash
// excluded.
func Me(store utils_db.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("UserID").(uuid.UUID)

		user, err := store.GetUserByID(c.Request.Context(), userID)
		if errors.Is(err, sql.ErrNoRows) {
			c.Error(api_error.ErrUnauthorized)
			return
		}
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
