package api_error

import "net/http"

// Missing and invalid tokens deliberately share one message so a caller
// cannot tell which check failed.
var (
	ErrUnauthorized    = NewFromStr("authorization denied", http.StatusUnauthorized)
	ErrProfileNotFound = NewFromStr("there is no profile for this user", http.StatusBadRequest)
	ErrGithubNotFound  = NewFromStr("no github profile found", http.StatusNotFound)
)

var (
	ErrDuplicateUser      = ValidationErrors{{Msg: "user already exists"}}
	ErrInvalidCredentials = ValidationErrors{{Msg: "invalid credentials"}}
)
