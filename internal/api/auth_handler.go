package api

import (
	"net/http"

	"fitchallenge/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type CredentialsRequest struct {
	Email    string `json:"correo" form:"correo"`
	Password string `json:"contrasena" form:"contrasena"`
}

type LogoutRequest struct {
	IDToken string `json:"idToken" form:"idToken"`
}

// --- Handler Methods ---

// CreateUser godoc
// @Summary Create an account at the identity provider
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} gin.H "descripcion and the session record"
// @Failure 400 {object} gin.H "Missing correo or contrasena"
// @Failure 500 {object} gin.H "Provider message"
// @Router /createUser [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"descripcion": "usuario creado con exito",
		"result":      session,
	})
}

// LogIn godoc
// @Summary Sign in with email and password
// @Tags Auth
// @Router /logIn [post]
func (h *AuthHandler) LogIn(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"descripcion": "Sesion iniciada con exito",
		"result":      session,
	})
}

func (h *AuthHandler) LogOut(c *gin.Context) {
	var req LogoutRequest
	// the body is optional
	_ = c.ShouldBind(&req)

	if err := h.authService.Logout(c.Request.Context(), req.IDToken); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"descripcion": "Sesion cerrada con exito"})
}
