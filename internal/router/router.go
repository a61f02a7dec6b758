package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"postforge-api/internal/client"
	"postforge-api/internal/config"
	"postforge-api/internal/dto"
	"postforge-api/internal/handler"
	"postforge-api/internal/metrics"
	"postforge-api/internal/middleware"
	"postforge-api/internal/repository"
	"postforge-api/internal/service"
)

// Config holds everything the router needs to wire the application
type Config struct {
	Cfg         *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Notifier    client.NotifierClient
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// Setup builds the gin engine with all routes and middleware
func Setup(rc Config) *gin.Engine {
	if rc.Cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(rc.Logger))
	r.Use(middleware.Logger(rc.Logger))
	r.Use(middleware.CORS(rc.Cfg.Server.AllowedOrigins))
	if rc.Metrics != nil {
		r.Use(middleware.Metrics(rc.Metrics))
	}

	// Repositories
	formRepo := repository.NewFormRepository(rc.DB)
	recordRepo := repository.NewRecordRepository(rc.DB)
	taxonomyRepo := repository.NewTaxonomyRepository(rc.DB)
	definitionRepo := repository.NewFieldDefinitionRepository(rc.DB)

	// Services
	discoveryService := service.NewFieldDiscoveryService(
		definitionRepo, recordRepo, rc.RedisClient,
		rc.Cfg.App.DiscoveryCacheTTL, rc.Metrics, rc.Logger,
	)
	schemaService := service.NewSchemaService(
		taxonomyRepo, discoveryService,
		rc.Cfg.App.ProviderTimeout, rc.Metrics, rc.Logger,
	)
	formService := service.NewFormService(formRepo, discoveryService, rc.Metrics, rc.Logger)
	contentTypeService := service.NewContentTypeService(taxonomyRepo, discoveryService, rc.Logger)
	accessEvaluator := service.NewAccessEvaluator()
	renderer := service.NewRenderer()
	submissionService := service.NewSubmissionService(
		recordRepo, taxonomyRepo, schemaService, accessEvaluator,
		rc.Notifier, rc.Metrics, rc.Logger,
	)

	// Handlers
	formHandler := handler.NewFormHandler(formService, schemaService, renderer)
	publicHandler := handler.NewPublicHandler(formService, schemaService, renderer, accessEvaluator, submissionService)
	contentTypeHandler := handler.NewContentTypeHandler(contentTypeService, availableRoles(rc.Cfg))
	healthHandler := handler.NewHealthHandler(rc.DB, rc.RedisClient)

	// Health and metrics endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Admin form-builder routes (require auth)
		forms := api.Group("/forms")
		forms.Use(middleware.Auth(rc.Cfg.Auth.JWTSecret))
		{
			forms.POST("", formHandler.CreateForm)
			forms.GET("", formHandler.ListForms)
			forms.GET("/:formId", formHandler.GetForm)
			forms.PUT("/:formId", formHandler.UpdateForm)
			forms.PATCH("/:formId/enabled", formHandler.SetFormEnabled)
			forms.DELETE("/:formId", formHandler.DeleteForm)
			forms.POST("/preview", formHandler.PreviewForm)
		}

		// Builder support routes (require auth)
		builder := api.Group("")
		builder.Use(middleware.Auth(rc.Cfg.Auth.JWTSecret))
		{
			builder.GET("/content-types/:contentType/data", contentTypeHandler.GetContentTypeData)
			builder.GET("/roles", contentTypeHandler.ListRoles)
		}

		// Public form routes; access rules decide per form whether
		// anonymous visitors may view or submit
		public := api.Group("/public/forms")
		public.Use(middleware.OptionalAuth(rc.Cfg.Auth.JWTSecret))
		{
			public.GET("/:formId", publicHandler.ViewForm)
			public.POST("/:formId/submissions", publicHandler.SubmitForm)
		}
	}

	return r
}

// availableRoles converts the configured roles to their API shape
func availableRoles(cfg *config.Config) []dto.RoleResponse {
	roles := make([]dto.RoleResponse, 0, len(cfg.App.AvailableRoles))
	for _, role := range cfg.App.AvailableRoles {
		roles = append(roles, dto.RoleResponse{Key: role.Key, Label: role.Label})
	}
	return roles
}
