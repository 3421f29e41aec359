package api_user

import (
	"net/http"

	"devconnector/internal/config"
	"devconnector/internal/gravatar"
	"devconnector/internal/models"
	"devconnector/internal/models/api_error"
	"devconnector/internal/utils/utils_auth"
	"devconnector/internal/utils/utils_db"
	"devconnector/internal/utils/utils_handler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Register creates a new user. Input is validated before any side effect
// and a duplicate email stops the request before any write.
func Register(store utils_db.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := c.MustGet("cfg").(config.Config)

		req, err := utils_handler.GetObj[models.RegisterRequest](c)
		if err != nil {
			c.Error(api_error.NewFromErr(err, http.StatusBadRequest))
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			c.Error(errs)
			return
		}

		exists, err := store.UserEmailExists(c.Request.Context(), req.Email)
		if err != nil {
			c.Error(err)
			return
		}
		if exists {
			c.Error(api_error.ErrDuplicateUser)
			return
		}

		passwordHash, err := utils_auth.GenerateArgon2Hash(req.Password)
		if err != nil {
			c.Error(err)
			return
		}

		newUser := models.User{
			ID:           uuid.New(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: passwordHash,
			AvatarURL:    gravatar.URL(req.Email),
		}

		if err := store.InsertUser(c.Request.Context(), &newUser); err != nil {
			c.Error(err)
			return
		}

		token, err := utils_auth.IssueToken(newUser.ID, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
