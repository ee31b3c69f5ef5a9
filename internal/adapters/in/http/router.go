package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// requestValidator adapts validator/v10 to echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

func (v requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// NewRouter registers every route of s on a new echo instance. gatherer backs
// GET /metrics.
func NewRouter(s *Server, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1")
	api.GET("/stats", s.GetStats)

	bicycles := api.Group("/bicycles")
	bicycles.POST("", s.RegisterBicycle)
	bicycles.GET("", s.ListBicycles)
	bicycles.GET("/:id", s.GetBicycle)
	bicycles.DELETE("/:id", s.DeregisterBicycle)
	bicycles.PUT("/:id/station", s.MoveBicycle)
	bicycles.POST("/:id/breakdowns", s.ReportBreakdown)
	bicycles.GET("/:id/repairs", s.GetRepairHistory)
	bicycles.POST("/:id/rental", s.StartRental)
	bicycles.DELETE("/:id/rental", s.EndRental)

	return e
}
