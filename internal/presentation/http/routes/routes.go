package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/kasir-receipt/internal/config"
	domainRepo "github.com/sangkips/kasir-receipt/internal/domain/repository"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/handler"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/middleware"
	"github.com/sangkips/kasir-receipt/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Printer *handler.PrinterHandler
	Report  *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	Logger          logrus.FieldLogger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}
		if deps.IdempotencyRepo != nil {
			protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
				Repo:   deps.IdempotencyRepo,
				Logger: deps.Logger,
			}))
		}

		registerPrinterRoutes(protected, h)
		registerReportRoutes(protected, h)
	}

	return router
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}

	receipts := rg.Group("/receipts")
	{
		receipts.POST("/print", h.Printer.PrintReceipt)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, h *Handlers) {
	reports := rg.Group("/reports")
	{
		reports.POST("/print", h.Report.Print)
		reports.POST("/preview", h.Report.Preview)
		reports.POST("/summary", h.Report.Summary)
		reports.POST("/export", h.Report.Export)
		reports.GET("/history", h.Report.History)
		reports.POST("/history/print", h.Report.PrintHistory)
	}
}
