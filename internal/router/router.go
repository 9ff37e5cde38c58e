package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/fpda/backend/internal/auth"
	v1 "github.com/fpda/backend/internal/controllers/v1"
	"github.com/fpda/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router controls the routes for the API.
func Router() (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(&r.RouterGroup, "debug/pprof")
	}

	// Prometheus metrics
	enableMetrics, ok := os.LookupEnv("ENABLE_METRICS")
	if ok && enableMetrics == "true" {
		if err := registerPrometheusMetrics(); err != nil {
			return nil, err
		}

		r.Use(MetricsMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// API v1 setup
	group := r.Group("/v1")
	{
		group.GET("", GetV1)
		group.OPTIONS("", OptionsV1)
	}

	// Login stays reachable without a token
	v1.RegisterLoginRoutes(group.Group("/login"))

	api := group.Group("")
	if secret, ok := os.LookupEnv("JWT_SECRET"); ok && secret != "" {
		api.Use(auth.Middleware([]byte(secret)))
	}

	// Master data
	v1.RegisterLocationRoutes(api.Group("/locations"))
	v1.RegisterItemCategoryRoutes(api.Group("/item-categories"))
	v1.RegisterUnitRoutes(api.Group("/units"))
	v1.RegisterItemRoutes(api.Group("/items"))
	v1.RegisterSupplierRoutes(api.Group("/suppliers"))
	v1.RegisterRecipeTypeRoutes(api.Group("/recipe-types"))
	v1.RegisterRecipeItemRoutes(api.Group("/recipe-items"))

	// Planning and preparation
	v1.RegisterScheduleRoutes(api.Group("/schedules"))
	v1.RegisterRequirementRoutes(api.Group("/requirements"))
	v1.RegisterDayRequirementRoutes(api.Group("/day-requirements"))
	v1.RegisterSupplierRequestRoutes(api.Group("/supplier-requests"))
	v1.RegisterMaterialReceiptRoutes(api.Group("/material-receipts"))

	// Distribution
	v1.RegisterDailyStockRoutes(api.Group("/daily-stocks"))
	v1.RegisterAllocationRoutes(api.Group("/allocations"))
	v1.RegisterDeliveryRoutes(api.Group("/deliveries"))

	// Hygiene and administration
	v1.RegisterCleaningLogRoutes(api.Group("/cleaning-logs"))
	v1.RegisterUserRoutes(api.Group("/users"))
	v1.RegisterAppModuleRoutes(api.Group("/modules"))
	v1.RegisterPermissionRoutes(api.Group("/permissions"))

	log.Info().Str("version", version).Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Version string `json:"version" example:"https://example.com/api/version"`
	V1      string `json:"v1" example:"https://example.com/api/v1"`
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Version: url + "/version",
			V1:      httputil.RequestPathV1(c),
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Locations        string `json:"locations" example:"https://example.com/api/v1/locations"`
	ItemCategories   string `json:"item_categories" example:"https://example.com/api/v1/item-categories"`
	Units            string `json:"units" example:"https://example.com/api/v1/units"`
	Items            string `json:"items" example:"https://example.com/api/v1/items"`
	Suppliers        string `json:"suppliers" example:"https://example.com/api/v1/suppliers"`
	RecipeTypes      string `json:"recipe_types" example:"https://example.com/api/v1/recipe-types"`
	RecipeItems      string `json:"recipe_items" example:"https://example.com/api/v1/recipe-items"`
	Schedules        string `json:"schedules" example:"https://example.com/api/v1/schedules"`
	Requirements     string `json:"requirements" example:"https://example.com/api/v1/requirements"`
	DayRequirements  string `json:"day_requirements" example:"https://example.com/api/v1/day-requirements"`
	SupplierRequests string `json:"supplier_requests" example:"https://example.com/api/v1/supplier-requests"`
	MaterialReceipts string `json:"material_receipts" example:"https://example.com/api/v1/material-receipts"`
	DailyStocks      string `json:"daily_stocks" example:"https://example.com/api/v1/daily-stocks"`
	Allocations      string `json:"allocations" example:"https://example.com/api/v1/allocations"`
	Deliveries       string `json:"deliveries" example:"https://example.com/api/v1/deliveries"`
	CleaningLogs     string `json:"cleaning_logs" example:"https://example.com/api/v1/cleaning-logs"`
	Users            string `json:"users" example:"https://example.com/api/v1/users"`
	Modules          string `json:"modules" example:"https://example.com/api/v1/modules"`
	Permissions      string `json:"permissions" example:"https://example.com/api/v1/permissions"`
	Login            string `json:"login" example:"https://example.com/api/v1/login"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	base := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Locations:        base + "/locations",
			ItemCategories:   base + "/item-categories",
			Units:            base + "/units",
			Items:            base + "/items",
			Suppliers:        base + "/suppliers",
			RecipeTypes:      base + "/recipe-types",
			RecipeItems:      base + "/recipe-items",
			Schedules:        base + "/schedules",
			Requirements:     base + "/requirements",
			DayRequirements:  base + "/day-requirements",
			SupplierRequests: base + "/supplier-requests",
			MaterialReceipts: base + "/material-receipts",
			DailyStocks:      base + "/daily-stocks",
			Allocations:      base + "/allocations",
			Deliveries:       base + "/deliveries",
			CleaningLogs:     base + "/cleaning-logs",
			Users:            base + "/users",
			Modules:          base + "/modules",
			Permissions:      base + "/permissions",
			Login:            base + "/login",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
