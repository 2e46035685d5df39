package api

import (
	"net/http"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/service"

	"github.com/gin-gonic/gin"
)

type RoutineHandler struct {
	routineService   service.RoutineService
	challengeService service.ChallengeService
}

func NewRoutineHandler(routineService service.RoutineService, challengeService service.ChallengeService) *RoutineHandler {
	return &RoutineHandler{
		routineService:   routineService,
		challengeService: challengeService,
	}
}

// GenerationRequest is the profile snapshot a routine or challenge is built from.
type GenerationRequest struct {
	UserID domain.Attribute `json:"idUsuario" form:"idUsuario"`
	ProfileFields
}

func (r GenerationRequest) toAttributes() domain.TrainingAttributes {
	return domain.TrainingAttributes{
		UserID:            r.UserID.String(),
		Name:              r.Name,
		Surname:           r.Surname,
		Goal:              r.Goal,
		Age:               r.Age,
		Gender:            r.Gender,
		Weight:            r.Weight,
		Height:            r.Height,
		Experience:        r.Experience,
		AvailableDays:     r.AvailableDays,
		Location:          r.Location,
		PhysicalCondition: r.PhysicalCondition,
		SessionMinutes:    r.SessionMinutes,
	}
}

// GenerateRoutine godoc
// @Summary Generate and store the routine of a user
// @Tags Routines
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} gin.H "message, rutina and id"
// @Failure 400 {object} gin.H "Missing idUsuario"
// @Failure 409 {object} gin.H "The user already has a routine"
// @Failure 500 {object} gin.H "Model, extraction, parse or store failure"
// @Router /generateRoutine [post]
func (h *RoutineHandler) GenerateRoutine(c *gin.Context) {
	var req GenerationRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	routine, err := h.routineService.GenerateRoutine(c.Request.Context(), req.toAttributes())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rutina generada y almacenada con éxito",
		"rutina":  routine,
		"id":      routine.ID,
	})
}

func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	routine, err := h.routineService.GetRoutine(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, routine)
}

// ToggleCompleted flips terminado on the first occurrence of the exercise.
func (h *RoutineHandler) ToggleCompleted(c *gin.Context) {
	exercise, err := h.routineService.ToggleExercise(c.Request.Context(), c.Param("idRutina"), c.Param("idEjercicio"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Estado del ejercicio actualizado.",
		"ejercicio": exercise,
	})
}

func (h *RoutineHandler) GetChallenges(c *gin.Context) {
	challenges, err := h.challengeService.ListChallenges(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// CreateChallenge godoc
// @Summary Generate and store a new challenge
// @Tags Challenges
// @Success 200 {object} gin.H "message, reto and id"
// @Failure 500 {object} gin.H "Model, extraction, parse or store failure"
// @Router /crearReto [post]
func (h *RoutineHandler) CreateChallenge(c *gin.Context) {
	var req GenerationRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	challenge, err := h.challengeService.GenerateChallenge(c.Request.Context(), req.toAttributes())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reto generado y almacenado con éxito",
		"reto":    challenge,
		"id":      challenge.ID.Hex(),
	})
}
