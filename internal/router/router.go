package router

import (
	"net/http"
	"time"

	"partage/internal/apierror"
	"partage/internal/config"
	"partage/internal/handler"
	"partage/internal/infra"
	"partage/internal/mailer"
	"partage/internal/middleware"
	"partage/internal/repository"
	"partage/internal/service"
	"partage/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service/Worker ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, store infra.ObjectStore, provider mailer.Provider, emailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, apierror.New("Méthode non autorisée"))
	})

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	emailSortantRepo := repository.NewEmailSortantRepository(db)
	factureRepo := repository.NewFactureRepository(db)
	profilRepo := repository.NewCachedProfilRepository(repository.NewProfilRepository(db), rdb)
	commandeRepo := repository.NewCommandeRepository(db)

	// ── Worker ───────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(*cfg, emailSortantRepo, factureRepo, profilRepo, commandeRepo, store, provider, emailCB)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatchClient := infra.NewDispatchClient(cfg.DispatchURL, cfg.InternalSecret)
	paiementSvc := service.NewPaiementService(db, dispatchClient)
	emailSortantSvc := service.NewEmailSortantService(emailSortantRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	emailsH := handler.NewEmailsSortantsHandler(dispatcher, emailSortantSvc)
	paiementsH := handler.NewPaiementsHandler(paiementSvc)
	facturesH := handler.NewFacturesHandler(factureRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, emailCB))

	// Service-to-service routes, gated by the shared secret
	internalMW := middleware.InternalSecret(cfg.InternalSecret)
	emails := r.Group("/v1/emails-sortants", internalMW)
	{
		emails.POST("/process", emailsH.Process)
		emails.GET("", emailsH.List)
		emails.POST("/:id/requeue", emailsH.Requeue)
	}

	// User-facing routes, forwarded bearer token
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/paiements/finaliser", paiementsH.Finaliser)
		v1.GET("/factures/:id", facturesH.Obtenir)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
