package api

import (
	"net/http"

	"fitchallenge/internal/logger"
	"fitchallenge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Auth      service.AuthService
	Profile   service.ProfileService
	Exercise  service.ExerciseService
	Routine   service.RoutineService
	Challenge service.ChallengeService
}

// SetupRoutes registers middleware and every route on router. Paths are the ones the
// deployed mobile client already calls.
func SetupRoutes(router *gin.Engine, log *logger.LogMiddleware, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	profileHandler := NewProfileHandler(services.Profile)
	exerciseHandler := NewExerciseHandler(services.Exercise)
	routineHandler := NewRoutineHandler(services.Routine, services.Challenge)

	router.Use(RequestLoggerMiddleware(log), MetricsMiddleware(), CORSMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Fitchallenge"})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Auth Routes ---
	router.POST("/createUser", authHandler.CreateUser)
	router.POST("/logIn", authHandler.LogIn)
	router.POST("/logOut", authHandler.LogOut)

	// --- Profile Routes ---
	router.POST("/addUserData", profileHandler.AddUserData)
	router.GET("/user/:id", profileHandler.GetUser)
	router.GET("/checkUser/:uid", profileHandler.CheckUser)

	// --- Exercise Routes ---
	router.POST("/addExercise", exerciseHandler.AddExercise)
	router.GET("/getExercise/:id", exerciseHandler.GetExercise)
	router.GET("/getAllExercises", exerciseHandler.GetAllExercises)
	router.POST("/exercise-media/upload-url", exerciseHandler.CreateMediaUploadURL)

	// --- Routine Routes ---
	router.POST("/generateRoutine", routineHandler.GenerateRoutine)
	router.GET("/getRoutine/:id", routineHandler.GetRoutine)
	router.PUT("/rutina/:idRutina/toggleTerminado/:idEjercicio", routineHandler.ToggleCompleted)

	// --- Challenge Routes ---
	router.GET("/getChallenges", routineHandler.GetChallenges)
	router.POST("/crearReto", routineHandler.CreateChallenge)
}
