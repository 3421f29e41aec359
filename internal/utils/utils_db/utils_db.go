package utils_db

import (
	"context"

	"devconnector/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UserStore is the credential-store surface the auth handlers depend on.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	UserEmailExists(ctx context.Context, email string) (bool, error)
	InsertUser(ctx context.Context, user *models.User) error
}

// SQLUserStore implements UserStore over the query helpers below.
type SQLUserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

func (s *SQLUserStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return GetUserByEmail(ctx, s.db, email)
}

func (s *SQLUserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return GetUserByID(ctx, s.db, userID)
}

func (s *SQLUserStore) UserEmailExists(ctx context.Context, email string) (bool, error) {
	return UserEmailExists(ctx, s.db, email)
}

func (s *SQLUserStore) InsertUser(ctx context.Context, user *models.User) error {
	return InsertUser(ctx, s.db, user)
}

const profileColumns = `
	p.id, p.user_id, p.company, p.website, p.location, p.bio, p.status,
	p.github_username, p.skills, p.social, p.experience, p.education, p.created_at,
	u.name AS owner_name, u.avatar_url AS owner_avatar`

// profileRow joins the denormalized owner fields onto the profile record.
type profileRow struct {
	models.Profile
	OwnerName   string `db:"owner_name"`
	OwnerAvatar string `db:"owner_avatar"`
}

func (r *profileRow) toProfile() models.Profile {
	p := r.Profile
	p.Owner = models.ProfileOwner{
		ID:     p.UserID,
		Name:   r.OwnerName,
		Avatar: r.OwnerAvatar,
	}
	return p
}

func GetUserByEmail(ctx context.Context, db *sqlx.DB, email string) (models.User, error) {
	var user models.User
	err := db.GetContext(ctx, &user,
		"SELECT id, name, email, password_hash, avatar_url, created_at FROM users WHERE email = $1", email)
	return user, err
}

func GetUserByID(ctx context.Context, db *sqlx.DB, userID uuid.UUID) (models.User, error) {
	var user models.User
	err := db.GetContext(ctx, &user,
		"SELECT id, name, email, password_hash, avatar_url, created_at FROM users WHERE id = $1", userID)
	return user, err
}

func UserEmailExists(ctx context.Context, db *sqlx.DB, email string) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email)
	return exists, err
}

func InsertUser(ctx context.Context, db *sqlx.DB, user *models.User) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, avatar_url) VALUES ($1, $2, $3, $4, $5)",
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.AvatarURL,
	)
	return err
}

func GetProfileByUserID(ctx context.Context, db *sqlx.DB, userID uuid.UUID) (models.Profile, error) {
	var row profileRow
	err := db.GetContext(ctx, &row,
		"SELECT"+profileColumns+" FROM profiles p JOIN users u ON u.id = p.user_id WHERE p.user_id = $1",
		userID)
	if err != nil {
		return models.Profile{}, err
	}
	return row.toProfile(), nil
}

func ListProfiles(ctx context.Context, db *sqlx.DB) ([]models.Profile, error) {
	var rows []profileRow
	err := db.SelectContext(ctx, &rows,
		"SELECT"+profileColumns+" FROM profiles p JOIN users u ON u.id = p.user_id ORDER BY p.created_at DESC")
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rows[i].toProfile())
	}
	return profiles, nil
}

func InsertProfile(ctx context.Context, db *sqlx.DB, profile *models.Profile) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO profiles(id, user_id, company, website, location, bio, status,
			github_username, skills, social, experience, education)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		profile.ID,
		profile.UserID,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.Status,
		profile.GithubUsername,
		profile.Skills,
		profile.Social,
		profile.Experience,
		profile.Education,
	)
	return err
}

// UpdateProfile writes the whole record back. Concurrent updates to the
// same profile race at last-write-wins granularity.
func UpdateProfile(ctx context.Context, db *sqlx.DB, profile *models.Profile) error {
	_, err := db.ExecContext(ctx, `
		UPDATE profiles
		SET company = $2, website = $3, location = $4, bio = $5, status = $6,
			github_username = $7, skills = $8, social = $9, experience = $10, education = $11
		WHERE user_id = $1`,
		profile.UserID,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.Status,
		profile.GithubUsername,
		profile.Skills,
		profile.Social,
		profile.Experience,
		profile.Education,
	)
	return err
}

// DeleteUserCascade removes the user's posts, then profile, then the user
// record itself, in one transaction.
func DeleteUserCascade(ctx context.Context, db *sqlx.DB, userID uuid.UUID) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE user_id = $1", userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = $1", userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = $1", userID); err != nil {
		return err
	}

	return tx.Commit()
}
