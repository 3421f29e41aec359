package api_profile

import (
	"database/sql"
	"errors"
	"net/http"

	"devconnector/internal/models"
	"devconnector/internal/models/api_error"
	"devconnector/internal/utils/utils_db"
	"devconnector/internal/utils/utils_handler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	db, userID := utils_handler.GetReqCx(c)

	profile, err := utils_db.GetProfileByUserID(c.Request.Context(), db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		c.Error(api_error.ErrProfileNotFound)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Upsert creates the profile on first call and updates it in place after.
// Only keys present in the payload are applied; absent keys are neither
// cleared nor defaulted.
func Upsert(c *gin.Context) {
	db, userID := utils_handler.GetReqCx(c)

	req, err := utils_handler.GetObj[models.ProfileRequest](c)
	if err != nil {
		c.Error(api_error.NewFromErr(err, http.StatusBadRequest))
		return
	}

	existing, err := utils_db.GetProfileByUserID(c.Request.Context(), db, userID)
	creating := errors.Is(err, sql.ErrNoRows)
	if err != nil && !creating {
		c.Error(err)
		return
	}

	if errs := req.Validate(creating); len(errs) > 0 {
		c.Error(errs)
		return
	}

	if creating {
		profile := models.Profile{
			ID:         uuid.New(),
			UserID:     userID,
			Skills:     pq.StringArray{},
			Experience: models.ExperienceList{},
			Education:  models.EducationList{},
		}
		req.Apply(&profile)

		if err := utils_db.InsertProfile(c.Request.Context(), db, &profile); err != nil {
			c.Error(err)
			return
		}

		// Reload to pick up the denormalized owner fields.
		profile, err = utils_db.GetProfileByUserID(c.Request.Context(), db, userID)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, profile)
		return
	}

	req.Apply(&existing)

	if err := utils_db.UpdateProfile(c.Request.Context(), db, &existing); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

// List is public: every profile with the owner's name and avatar joined in.
func List(c *gin.Context) {
	db := c.MustGet("db").(*sqlx.DB)

	profiles, err := utils_db.ListProfiles(c.Request.Context(), db)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// ByUserID is public. Unknown and malformed ids are indistinguishable to
// the caller.
func ByUserID(c *gin.Context) {
	db := c.MustGet("db").(*sqlx.DB)

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(api_error.NewFromStr("profile not found", http.StatusBadRequest))
		return
	}

	profile, err := utils_db.GetProfileByUserID(c.Request.Context(), db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		c.Error(api_error.NewFromStr("profile not found", http.StatusBadRequest))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the user's posts, profile and credential record.
// Irreversible; outstanding tokens stay valid until expiry.
func DeleteAccount(c *gin.Context) {
	db, userID := utils_handler.GetReqCx(c)

	if err := utils_db.DeleteUserCascade(c.Request.Context(), db, userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "user deleted"})
}
