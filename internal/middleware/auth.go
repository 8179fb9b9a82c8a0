package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"clinrec/internal/models"
	"clinrec/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

const clinicianKey = "clinician"

// SessionToken extracts the session token from the cookie or, for API
// clients, from a bearer Authorization header.
func SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireAuth resolves the current identity and rejects unauthenticated
// requests with a redirect to the login page, preserving the requested path
// for the post-login redirect.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clinician, err := authService.CurrentIdentity(c.Request.Context(), SessionToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
			return
		}
		if clinician == nil {
			c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Set(clinicianKey, clinician)
		c.Next()
	}
}

// RedirectIfAuthenticated sends an already logged-in clinician to the home
// page instead of re-processing login or registration.
func RedirectIfAuthenticated(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clinician, err := authService.CurrentIdentity(c.Request.Context(), SessionToken(c))
		if err == nil && clinician != nil {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentClinician returns the identity stored by RequireAuth.
func CurrentClinician(c *gin.Context) *models.Clinician {
	value, exists := c.Get(clinicianKey)
	if !exists {
		return nil
	}
	clinician, ok := value.(*models.Clinician)
	if !ok {
		return nil
	}
	return clinician
}
