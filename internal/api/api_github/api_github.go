package api_github

import (
	"errors"
	"net/http"

	"devconnector/internal/github"
	"devconnector/internal/models/api_error"

	"github.com/gin-gonic/gin"
)

// Repos forwards the user's most recent GitHub repositories. Any
// non-success upstream answer is reported as not found.
func Repos(client *github.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		repos, err := client.LookupRepos(c.Request.Context(), c.Param("username"))
		if errors.Is(err, github.ErrNotFound) {
			c.Error(api_error.ErrGithubNotFound)
			return
		}
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, repos)
	}
}
