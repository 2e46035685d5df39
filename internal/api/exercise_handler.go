package api

import (
	"net/http"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest carries a catalog entry. Every field is required; the service
// reports the first missing one.
type CreateExerciseRequest struct {
	Name     string `json:"nombre" form:"nombre"`
	Location string `json:"ubicacion" form:"ubicacion"`
	ImageURL string `json:"img" form:"img"`
	VideoURL string `json:"video" form:"video"`
	Category string `json:"categoria" form:"categoria"`
}

type MediaUploadRequest struct {
	Kind        string `json:"kind" form:"kind" binding:"required,oneof=img video"`
	ContentType string `json:"contentType" form:"contentType" binding:"required"`
}

// --- Handler Methods ---

// AddExercise godoc
// @Summary Add an exercise to the catalog
// @Tags Exercises
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} gin.H "mensaje and the generated id"
// @Failure 400 {object} gin.H "A required field is missing"
// @Router /addExercise [post]
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	id, err := h.exerciseService.CreateExercise(c.Request.Context(), &domain.Exercise{
		Name:     req.Name,
		Location: req.Location,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		Category: req.Category,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Ejercicio creado con éxito",
		"id":      id,
	})
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) GetAllExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateMediaUploadURL godoc
// @Summary Get a presigned URL to upload an exercise image or video
// @Tags Exercises
// @Success 200 {object} service.MediaUpload
// @Failure 400 {object} gin.H "Unknown kind or mismatched content type"
// @Failure 503 {object} gin.H "Media storage not configured"
// @Router /exercise-media/upload-url [post]
func (h *ExerciseHandler) CreateMediaUploadURL(c *gin.Context) {
	var req MediaUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.exerciseService.CreateMediaUpload(c.Request.Context(), req.Kind, req.ContentType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
