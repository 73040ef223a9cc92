package api

import (
	"context"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/api/build"
	"github.com/LambdaTest/knapsack/pkg/api/health"
	"github.com/LambdaTest/knapsack/pkg/api/manifest"
	"github.com/LambdaTest/knapsack/pkg/api/report"
	"github.com/LambdaTest/knapsack/pkg/api/split"
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Router represents the routes for the http server.
type Router struct {
	cfg         *config.Config
	signalCtx   context.Context
	executor    core.Executor
	reportStore core.TestReportStore
	azureClient core.AzureBlob
	logger      lumber.Logger
}

// New returns a new Router. The manifest routes are served only with an azureClient.
func New(
	signalCtx context.Context,
	cfg *config.Config,
	executor core.Executor,
	reportStore core.TestReportStore,
	azureClient core.AzureBlob,
	logger lumber.Logger) Router {
	return Router{
		cfg:         cfg,
		signalCtx:   signalCtx,
		executor:    executor,
		reportStore: reportStore,
		azureClient: azureClient,
		logger:      logger,
	}
}

// Handler function will perform all route operations
func (r *Router) Handler() *gin.Engine {
	r.logger.Infof("Setting up routes")
	router := gin.New()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := configureValidator(v); err != nil {
			r.logger.Fatalf("failed to configure validator %v", err)
		}
	}
	// skip /health API from logs as will be required in probes
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/health"))
	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = constants.CorsAllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization", "cache-control", "pragma")
	router.Use(cors.New(corsConfig))
	router.Use(otelgin.Middleware(constants.ServiceName))
	if r.cfg.Env != constants.Prod {
		pprof.Register(router)
	}

	router.GET("/health", health.Handler(r.signalCtx))
	router.POST("/split", split.HandleCreate(r.executor, r.logger))
	router.POST("/report", report.HandleCreate(r.reportStore, r.logger))

	buildRoutes := router.Group("/build")
	buildRoutes.POST("/:buildID/execute", build.HandleExecute(r.signalCtx, r.executor, r.logger))

	if r.azureClient != nil {
		planRoutes := router.Group("/plan")
		planRoutes.GET("/:planID/:file", manifest.HandleFind(r.azureClient, r.logger))
	}
	return router
}
