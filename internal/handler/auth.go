package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-catalog/internal/auth"
	"github.com/maxviazov/storefront-catalog/pkg/response"
)

// AuthHandler exposes every registered external sign-in scheme.
type AuthHandler struct {
	schemes *auth.Schemes
}

func NewAuthHandler(schemes *auth.Schemes) *AuthHandler { return &AuthHandler{schemes: schemes} }

// Register mounts the shared login entry point plus each scheme's callback
// and failure paths at the root, where providers redirect back to.
func (h *AuthHandler) Register(r gin.IRouter) {
	r.GET(AuthSchemesPath, h.list)
	r.GET(AuthLoginPath, h.login)
	for _, sc := range h.schemes.All() {
		r.GET(sc.CallbackPath, sc.Callback)
		if sc.FailurePath != "" {
			r.GET(sc.FailurePath, sc.Failure)
		}
	}
}

func (h *AuthHandler) list(c *gin.Context) {
	response.WriteData(c, http.StatusOK, gin.H{"schemes": h.schemes.Names()})
}

func (h *AuthHandler) login(c *gin.Context) {
	sc, ok := h.schemes.Get(c.Param("scheme"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorPayload{
			Error:   "not_found",
			Message: "unknown sign-in scheme",
		})
		return
	}
	sc.Login(c)
}
