package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	portssvc "github.com/contai-app/contai_backend/internal/core/ports/services"
	"github.com/contai-app/contai_backend/internal/dto"
	"github.com/contai-app/contai_backend/internal/middleware"
	"github.com/contai-app/contai_backend/internal/platform/config"
	"github.com/contai-app/contai_backend/internal/utils"
	"github.com/contai-app/contai_backend/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	launchService portssvc.LaunchSvcFacade,
	posthogClient *utils.PosthogClientWrapper,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterCustomValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations: %w", err)
		}
	}

	// The legacy SPA called the API from any origin.
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		r.Use(cors.New(corsConfig))
	} else {
		r.Use(cors.Default())
	}

	// Add health check route
	r.GET("/health", GetHome)

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	api := r.Group("", middleware.RateLimit(limiterInstance), middleware.AnalyticsMiddleware(posthogClient))
	registerLaunchRoutes(api, launchService)

	if err := setupWebUI(r, launchService); err != nil {
		return err
	}

	return nil
}

// setupWebUI wires the embedded templates, static assets and dashboard routes.
func setupWebUI(r *gin.Engine, launchService portssvc.LaunchSvcFacade) error {
	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse web templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("failed to mount static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(staticFS))

	registerDashboardRoutes(r, launchService)
	return nil
}
