package handlers

import (
	"net/http"

	"clinrec/internal/middleware"
	"clinrec/internal/models"
	"clinrec/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// LoginForm describes the login form for the presentation layer, echoing the
// next parameter so it survives the round trip.
func (h *Handler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"next": c.Query("next"),
	})
}

// Login authenticates the clinician, establishes a session and redirects to
// the originally requested page.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clinician, err := h.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err, gin.H{"email": req.Email})
		return
	}

	token, err := h.Auth.EstablishSession(c.Request.Context(), clinician)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
		return
	}

	maxAge := int(h.Auth.SessionTTL().Seconds())
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)

	c.Redirect(http.StatusSeeOther, safeNextPath(c.Query("next")))
}

// RegisterForm describes the registration form, listing the accepted roles.
func (h *Handler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"roles": []string{models.RolePhysician, models.RoleNurse, models.RoleAdministrator},
	})
}

// Register creates a clinician account and redirects to the login page.
func (h *Handler) Register(c *gin.Context) {
	var input services.RegisterClinicianInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Auth.RegisterClinician(c.Request.Context(), input); err != nil {
		// Never echo passwords back.
		input.Password = ""
		input.ConfirmPassword = ""
		writeServiceError(c, err, input)
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

// Logout revokes the session, clears the cookie and redirects to login.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.EndSession(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end session"})
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
