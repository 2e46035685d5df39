package api

import (
	"net/http"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileFields are the attributes shared by profile creation and generation requests.
type ProfileFields struct {
	Name              domain.Attribute `json:"nombre" form:"nombre"`
	Surname           domain.Attribute `json:"apellido" form:"apellido"`
	Goal              domain.Attribute `json:"objetivo" form:"objetivo"`
	Age               domain.Attribute `json:"edad" form:"edad"`
	Gender            domain.Attribute `json:"genero" form:"genero"`
	Weight            domain.Attribute `json:"peso" form:"peso"`
	Height            domain.Attribute `json:"altura" form:"altura"`
	Experience        domain.Attribute `json:"experiencia" form:"experiencia"`
	AvailableDays     domain.Attribute `json:"dias_disponibles" form:"dias_disponibles"`
	Location          domain.Attribute `json:"ubicacion" form:"ubicacion"`
	PhysicalCondition domain.Attribute `json:"condicion_fisica" form:"condicion_fisica"`
	SessionMinutes    domain.Attribute `json:"tiempo_disponible" form:"tiempo_disponible"`
}

type CreateProfileRequest struct {
	ID    domain.Attribute `json:"id" form:"id"`
	Email domain.Attribute `json:"email" form:"email"`
	ProfileFields
}

func (r CreateProfileRequest) toDomain() *domain.UserProfile {
	return &domain.UserProfile{
		ID:                r.ID.String(),
		Goal:              r.Goal,
		Age:               r.Age,
		Gender:            r.Gender,
		Weight:            r.Weight,
		Experience:        r.Experience,
		AvailableDays:     r.AvailableDays,
		Location:          r.Location,
		PhysicalCondition: r.PhysicalCondition,
		SessionMinutes:    r.SessionMinutes,
		Name:              r.Name,
		Surname:           r.Surname,
		Height:            r.Height,
		Email:             r.Email,
	}
}

// AddUserData godoc
// @Summary Store the profile of a signed-up user
// @Tags Users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} gin.H "mensaje and id"
// @Failure 400 {object} gin.H "Missing id"
// @Failure 409 {object} gin.H "A profile with that id already exists"
// @Router /addUserData [post]
func (h *ProfileHandler) AddUserData(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	id, err := h.profileService.CreateProfile(c.Request.Context(), req.toDomain())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Documento creado con éxito",
		"id":      id,
	})
}

func (h *ProfileHandler) GetUser(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CheckUser(c *gin.Context) {
	if err := h.profileService.CheckUser(c.Request.Context(), c.Param("uid")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User exists", "exists": true})
}
