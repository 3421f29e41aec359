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
)

func getOwnProfile(c *gin.Context, db *sqlx.DB, userID uuid.UUID) (models.Profile, bool) {
	profile, err := utils_db.GetProfileByUserID(c.Request.Context(), db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		c.Error(api_error.ErrProfileNotFound)
		return models.Profile{}, false
	}
	if err != nil {
		c.Error(err)
		return models.Profile{}, false
	}
	return profile, true
}

// AddExperience validates the entry and inserts it at the head of the
// experience list, most recent first.
func AddExperience(c *gin.Context) {
	db, userID := utils_handler.GetReqCx(c)

	req, err := utils_handler.GetObj[models.ExperienceRequest](c)
	if err != nil {
		c.Error(api_error.NewFromErr(err, http.StatusBadRequest))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		c.Error(errs)
		return
	}

	profile, ok := getOwnProfile(c, db, userID)
	if !ok {
		return
	}

	profile.Experience = profile.Experience.Insert(req.ToEntry())

	if err := utils_db.UpdateProfile(c.Request.Context(), db, &profile); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RemoveExperience deletes the entry with the given id. An id that is not
// in the list leaves it unchanged; no error is surfaced.
func RemoveExperience(c *gin.Context) {
	db, userID := utils_handler.GetReqCx(c)

	profile, ok := getOwnProfile(c, db, userID)
	if !ok {
		return
	}

	if entryID, err := uuid.Parse(c.Param("exp_id")); err == nil {
		profile.Experience = profile.Experience.Remove(entryID)
	}

	if err := utils_db.UpdateProfile(c.Request.Context(), db, &profile); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// AddEducation mirrors AddExperience for the education list.
func AddEducation(c *gin.Context) {
	db, userID := utils_handler.GetReqCx(c)

	req, err := utils_handler.GetObj[models.EducationRequest](c)
	if err != nil {
		c.Error(api_error.NewFromErr(err, http.StatusBadRequest))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		c.Error(errs)
		return
	}

	profile, ok := getOwnProfile(c, db, userID)
	if !ok {
		return
	}

	profile.Education = profile.Education.Insert(req.ToEntry())

	if err := utils_db.UpdateProfile(c.Request.Context(), db, &profile); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func RemoveEducation(c *gin.Context) {
	db, userID := utils_handler.GetReqCx(c)

	profile, ok := getOwnProfile(c, db, userID)
	if !ok {
		return
	}

	if entryID, err := uuid.Parse(c.Param("edu_id")); err == nil {
		profile.Education = profile.Education.Remove(entryID)
	}

	if err := utils_db.UpdateProfile(c.Request.Context(), db, &profile); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
