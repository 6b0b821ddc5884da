package bootstrap

import (
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/appli-farm/applifarm-backend/internal/api/http"
	"github.com/appli-farm/applifarm-backend/internal/api/http/middleware"
	"github.com/appli-farm/applifarm-backend/internal/auth"
	enghttp "github.com/appli-farm/applifarm-backend/internal/engagement/http"
	engservice "github.com/appli-farm/applifarm-backend/internal/engagement/service"
	engstore "github.com/appli-farm/applifarm-backend/internal/engagement/store"
	"github.com/appli-farm/applifarm-backend/internal/media"
	"github.com/appli-farm/applifarm-backend/internal/profiles"
	profhttp "github.com/appli-farm/applifarm-backend/internal/profiles/http"
	projhttp "github.com/appli-farm/applifarm-backend/internal/projects/http"
	projservice "github.com/appli-farm/applifarm-backend/internal/projects/service"
	projstore "github.com/appli-farm/applifarm-backend/internal/projects/store"
	"github.com/appli-farm/applifarm-backend/internal/search"
	"github.com/appli-farm/applifarm-backend/internal/taxonomy"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	AuthClient     *firebaseauth.Client
	Presigner      *media.Presigner
	AllowedOrigins []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = dep.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-User-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	profileStore := profiles.NewPostgresStore(dep.DB)
	projectSvc := projservice.NewProjectService(
		projstore.NewPostgresStore(dep.DB),
		search.NewFacetCache(dep.Redis, search.DefaultFacetTTL),
	)
	engagementSvc := engservice.NewEngagementService(engstore.NewPostgresStore(dep.DB))

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(auth.Identity(dep.AuthClient))
	api.Use(auth.WithProfile(profileStore))

	taxonomy.Register(api)

	projectsGroup := api.Group("/projects")
	projhttp.Register(projectsGroup, projectSvc, engagementSvc)

	// Likes and comments are the hot write path; keep one client from
	// hammering the counters.
	rl := middleware.NewRateLimiter(5, 10)
	engProjects := api.Group("/projects")
	engProjects.Use(rl.Handler(auth.CtxProfileID))
	engComments := api.Group("/comments")
	engComments.Use(rl.Handler(auth.CtxProfileID))
	enghttp.Register(engProjects, engComments, engagementSvc)

	profhttp.Register(api.Group("/profile"), api.Group("/profiles"), profileStore, projectSvc)

	media.Register(api.Group("/media"), dep.Presigner)

	return r
}
