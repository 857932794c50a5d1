package router

import (
	"filmorate/internal/api/handlers"
	"filmorate/internal/api/middleware"
	"filmorate/internal/config"
	"filmorate/internal/domain/film"
	"filmorate/internal/domain/user"
	"filmorate/internal/infrastructure/cache"
	"filmorate/internal/infrastructure/repository"
	interfaces "filmorate/internal/interfaces/infrastructure"
	"filmorate/internal/service"
	"filmorate/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterComponents bundles the engine with the resources the caller must release.
type RouterComponents struct {
	Router *gin.Engine
	Cache  interfaces.CacheService
}

// Dependencies are the services the HTTP layer calls into.
type Dependencies struct {
	FilmService         film.Service
	UserService         user.Service
	Cache               interfaces.CacheService
	CacheEnabled        bool
	PopularDefaultCount int
}

// NewRouterWithConfig wires the in-memory storage, the popular-films cache and
// both services, then builds the router on top of them.
func NewRouterWithConfig(cfg *config.Config) *RouterComponents {
	filmRepo := repository.NewMemoryFilmRepository()
	userRepo := repository.NewMemoryUserRepository()

	var cacheService interfaces.CacheService
	if cfg.Cache.Enabled {
		cacheService = cache.NewRedisCacheWithConfig(&cfg.Cache)
		logger.Info("Using Redis popular films cache at %s", cfg.Cache.Addr())
	} else {
		cacheService = cache.NewNoopCache()
		logger.Info("Popular films cache disabled")
	}

	filmService := service.NewFilmService(filmRepo, userRepo, cacheService, cfg.Cache.PopularTTLDuration())
	userService := service.NewUserService(userRepo, filmService)

	r := NewRouter(Dependencies{
		FilmService:         filmService,
		UserService:         userService,
		Cache:               cacheService,
		CacheEnabled:        cfg.Cache.Enabled,
		PopularDefaultCount: cfg.Films.PopularDefaultCount,
	})

	return &RouterComponents{
		Router: r,
		Cache:  cacheService,
	}
}

func NewRouter(deps Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(cors.Default())
	r.Use(gin.Recovery())

	filmHandler := handlers.NewFilmHandler(deps.FilmService, deps.PopularDefaultCount)
	userHandler := handlers.NewUserHandler(deps.UserService)
	healthHandler := handlers.NewHealthHandler(deps.Cache, deps.CacheEnabled)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)

	films := r.Group("/films")
	{
		films.POST("", filmHandler.CreateFilm)
		films.PUT("", filmHandler.UpdateFilm)
		films.GET("", filmHandler.ListFilms)
		films.GET("/popular", filmHandler.GetPopular)
		films.GET("/:id", filmHandler.GetFilm)
		films.DELETE("/:id", filmHandler.DeleteFilm)
		films.PUT("/:id/like/:userId", filmHandler.AddLike)
		films.DELETE("/:id/like/:userId", filmHandler.RemoveLike)
	}

	users := r.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.PUT("", userHandler.UpdateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.DELETE("/:id", userHandler.DeleteUser)
		users.GET("/:id/friends", userHandler.GetFriends)
		users.GET("/:id/friends/common/:otherId", userHandler.GetCommonFriends)
		users.PUT("/:id/friends/:friendId", userHandler.AddFriend)
		users.DELETE("/:id/friends/:friendId", userHandler.RemoveFriend)
	}

	return r
}
