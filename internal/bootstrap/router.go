package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/lumen-studio/lumen-backend/internal/api/http"
	"github.com/lumen-studio/lumen-backend/internal/api/http/middleware"
	authmw "github.com/lumen-studio/lumen-backend/internal/auth/middleware"
	"github.com/lumen-studio/lumen-backend/internal/contact"
	"github.com/lumen-studio/lumen-backend/internal/notes"
	"github.com/lumen-studio/lumen-backend/internal/profiles"
	"github.com/lumen-studio/lumen-backend/internal/projects"

	"cloud.google.com/go/firestore"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/lumen-studio/lumen-backend/internal/ai"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string

	Auth      *firebaseauth.Client
	Firestore *firestore.Client

	Profiles *profiles.Service
	Notes    *notes.Service
	Projects *projects.Service
	Contact  *contact.Service

	// AI is nil when no model API key is configured; the AI routes
	// then answer 503 instead of silently no-opping.
	AI *ai.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Firestore)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	// Contact is the one public API: the marketing site form posts
	// here without a signed-in user.
	contact.NewHandler(dep.Contact).Register(api.Group("/contact"))

	authed := api.Group("")
	authed.Use(authmw.RequireFirebaseUser(dep.Auth))

	profiles.NewHandler(dep.Profiles).Register(authed.Group("/me"))
	notes.NewHandler(dep.Notes).Register(authed.Group("/notes"))

	var gen projects.DetailGenerator
	var text ai.TextGenerator
	if dep.AI != nil {
		gen = dep.AI
		text = dep.AI
	}
	projects.NewHandler(dep.Projects, gen).Register(authed.Group("/projects"))
	ai.NewHandler(text).Register(authed.Group("/ai"))

	return r
}
