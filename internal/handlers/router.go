package handlers

import (
	"clinrec/internal/middleware"
	"clinrec/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler bundles the services the HTTP layer dispatches into.
type Handler struct {
	Auth     *services.AuthService
	Patients *services.PatientService
	Records  *services.RecordService
}

// RegisterRoutes wires the full route table. Login and registration are the
// only routes reachable without a session; everything else sits behind the
// access gate.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	guest := r.Group("/", middleware.RedirectIfAuthenticated(h.Auth))
	{
		guest.GET("/login", h.LoginForm)
		guest.POST("/login", h.Login)
		guest.GET("/register", h.RegisterForm)
		guest.POST("/register", h.Register)
	}

	private := r.Group("/", middleware.RequireAuth(h.Auth))
	{
		private.GET("/", h.Dashboard)
		private.GET("/logout", h.Logout)

		private.GET("/patients", h.ListPatients)
		private.GET("/patients/new", h.NewPatientForm)
		private.POST("/patients/new", h.CreatePatient)
		private.GET("/patients/:id/record", h.ViewRecord)
		private.POST("/patients/:id/record", h.AppendRecord)
		private.GET("/patients/:id/edit", h.EditPatientForm)
		private.POST("/patients/:id/edit", h.UpdatePatient)
		private.POST("/patients/:id/delete", h.DeletePatient)
	}
}
