package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"devconnector/internal/models/api_error"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Profile is the extended, user-owned record of professional details,
// distinct from the credential record. social, experience and education
// live in jsonb columns; skills in a text[] column.
type Profile struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	UserID         uuid.UUID      `db:"user_id" json:"-"`
	Company        string         `db:"company" json:"company,omitempty"`
	Website        string         `db:"website" json:"website,omitempty"`
	Location       string         `db:"location" json:"location,omitempty"`
	Bio            string         `db:"bio" json:"bio,omitempty"`
	Status         string         `db:"status" json:"status"`
	GithubUsername string         `db:"github_username" json:"githubusername,omitempty"`
	Skills         pq.StringArray `db:"skills" json:"skills"`
	Social         Social         `db:"social" json:"social"`
	Experience     ExperienceList `db:"experience" json:"experience"`
	Education      EducationList  `db:"education" json:"education"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`

	// Owner is denormalized from the users table on reads.
	Owner ProfileOwner `db:"-" json:"user"`
}

// ProfileOwner is the slice of the owning User that public profile reads
// carry along.
type ProfileOwner struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

func (s Social) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Social) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// Experience is an owned sub-record of a Profile. Dates are carried as the
// client sent them; only presence is enforced.
type Experience struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to,omitempty"`
	Current     bool      `json:"current"`
	Description string    `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID `json:"id"`
	School       string    `json:"school"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"fieldofstudy"`
	From         string    `json:"from"`
	To           string    `json:"to,omitempty"`
	Current      bool      `json:"current"`
	Description  string    `json:"description,omitempty"`
}

type ExperienceList []Experience

// Insert puts the entry at the head of the list, keeping most-recent-first
// ordering.
func (l ExperienceList) Insert(e Experience) ExperienceList {
	return append(ExperienceList{e}, l...)
}

// Remove filters the entry with the given id out of the list. An unknown id
// leaves the list unchanged; no error is surfaced.
func (l ExperienceList) Remove(id uuid.UUID) ExperienceList {
	out := make(ExperienceList, 0, len(l))
	for _, e := range l {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func (l ExperienceList) Value() (driver.Value, error) {
	if l == nil {
		l = ExperienceList{}
	}
	return json.Marshal(l)
}

func (l *ExperienceList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type EducationList []Education

func (l EducationList) Insert(e Education) EducationList {
	return append(EducationList{e}, l...)
}

func (l EducationList) Remove(id uuid.UUID) EducationList {
	out := make(EducationList, 0, len(l))
	for _, e := range l {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func (l EducationList) Value() (driver.Value, error) {
	if l == nil {
		l = EducationList{}
	}
	return json.Marshal(l)
}

func (l *EducationList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported jsonb source type")
	}
}

// SkillList accepts either a JSON list of strings or a single
// comma-separated string. Entries are trimmed either way and empty ones
// dropped, so "" and " , " both yield an empty list.
type SkillList []string

func (s *SkillList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return errors.New("skills must be a string or a list of strings")
		}
		list = strings.Split(raw, ",")
	}

	out := make(SkillList, 0, len(list))
	for _, p := range list {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*s = out
	return nil
}

// ProfileRequest is the upsert payload. Pointer fields distinguish "absent"
// from "empty": absent keys are neither cleared nor defaulted.
type ProfileRequest struct {
	Company        *string    `json:"company"`
	Website        *string    `json:"website"`
	Location       *string    `json:"location"`
	Bio            *string    `json:"bio"`
	Status         *string    `json:"status"`
	GithubUsername *string    `json:"githubusername"`
	Skills         *SkillList `json:"skills"`
	Youtube        *string    `json:"youtube"`
	Twitter        *string    `json:"twitter"`
	Facebook       *string    `json:"facebook"`
	Linkedin       *string    `json:"linkedin"`
	Instagram      *string    `json:"instagram"`
}

// Validate checks the upsert payload. status and skills are only mandatory
// when no profile exists yet; a present-but-empty status is always invalid.
func (r *ProfileRequest) Validate(creating bool) api_error.ValidationErrors {
	var errs api_error.ValidationErrors

	if r.Status != nil && *r.Status == "" {
		errs = append(errs, api_error.FieldError{Field: "status", Msg: "status is required"})
	}
	if creating {
		if r.Status == nil {
			errs = append(errs, api_error.FieldError{Field: "status", Msg: "status is required"})
		}
		if r.Skills == nil || len(*r.Skills) == 0 {
			errs = append(errs, api_error.FieldError{Field: "skills", Msg: "skills is required"})
		}
	}

	return errs
}

// Apply copies every present field onto the profile, leaving absent ones
// untouched. Applying the same request twice yields the same profile.
func (r *ProfileRequest) Apply(p *Profile) {
	if r.Company != nil {
		p.Company = *r.Company
	}
	if r.Website != nil {
		p.Website = *r.Website
	}
	if r.Location != nil {
		p.Location = *r.Location
	}
	if r.Bio != nil {
		p.Bio = *r.Bio
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	if r.GithubUsername != nil {
		p.GithubUsername = *r.GithubUsername
	}
	if r.Skills != nil {
		p.Skills = pq.StringArray(*r.Skills)
	}
	if r.Youtube != nil {
		p.Social.Youtube = *r.Youtube
	}
	if r.Twitter != nil {
		p.Social.Twitter = *r.Twitter
	}
	if r.Facebook != nil {
		p.Social.Facebook = *r.Facebook
	}
	if r.Linkedin != nil {
		p.Social.Linkedin = *r.Linkedin
	}
	if r.Instagram != nil {
		p.Social.Instagram = *r.Instagram
	}
}

// ExperienceRequest is the add-experience payload.
type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (r *ExperienceRequest) Validate() api_error.ValidationErrors {
	var errs api_error.ValidationErrors

	if r.Title == "" {
		errs = append(errs, api_error.FieldError{Field: "title", Msg: "title is required"})
	}
	if r.Company == "" {
		errs = append(errs, api_error.FieldError{Field: "company", Msg: "company is required"})
	}
	if r.From == "" {
		errs = append(errs, api_error.FieldError{Field: "from", Msg: "from date is required"})
	}

	return errs
}

func (r *ExperienceRequest) ToEntry() Experience {
	return Experience{
		ID:          uuid.New(),
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        r.From,
		To:          r.To,
		Current:     r.Current,
		Description: r.Description,
	}
}

// EducationRequest is the add-education payload.
type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r *EducationRequest) Validate() api_error.ValidationErrors {
	var errs api_error.ValidationErrors

	if r.School == "" {
		errs = append(errs, api_error.FieldError{Field: "school", Msg: "school is required"})
	}
	if r.Degree == "" {
		errs = append(errs, api_error.FieldError{Field: "degree", Msg: "degree is required"})
	}
	if r.FieldOfStudy == "" {
		errs = append(errs, api_error.FieldError{Field: "fieldofstudy", Msg: "fieldofstudy is required"})
	}
	if r.From == "" {
		errs = append(errs, api_error.FieldError{Field: "from", Msg: "from date is required"})
	}

	return errs
}

func (r *EducationRequest) ToEntry() Education {
	return Education{
		ID:           uuid.New(),
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         r.From,
		To:           r.To,
		Current:      r.Current,
		Description:  r.Description,
	}
}
