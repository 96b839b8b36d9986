package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/vocabtest/config"
	"github.com/lshigami/vocabtest/database"
	_ "github.com/lshigami/vocabtest/docs" // Swagger docs
	"github.com/lshigami/vocabtest/internal/auth"
	"github.com/lshigami/vocabtest/internal/controller/quiz"
	"github.com/lshigami/vocabtest/internal/controller/teacher"
	"github.com/lshigami/vocabtest/internal/i18n"
	"github.com/lshigami/vocabtest/internal/repository"
	"github.com/lshigami/vocabtest/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("port", "p", "", "HTTP port")
	f.String("gin-mode", "", "Gin mode (debug, release, test)")
	f.String("answer-mode", "", "Answer verification (echo, token)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	app := fx.New(appOptions(cfg))
	if err := app.Start(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to start application")
		return err
	}

	// Wait for a shutdown signal
	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return app.Stop(stopCtx)
}

// appOptions is the full application graph.
func appOptions(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			database.NewDatabase,
			NewGinEngine,
			auth.NewAuthenticator,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewClassroomRepository,
			repository.NewStudentRepository,
			repository.NewCategoryRepository,
			repository.NewVocabularyRepository,
			repository.NewTestSessionRepository,
			repository.NewResultRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewRandomizer,
			service.NewScoreService,
			service.NewMediaResolver,
			service.NewAnswerVerifier,
			service.NewQuestionService,
			service.NewAnswerService,
			service.NewResultsService,
			service.NewClassroomService,
			service.NewVocabularyService,
		),

		// API Controllers Layer
		fx.Provide(
			quiz.NewQuizController,
			teacher.NewCatalogController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(CloseDatabaseOnStop),
		fx.Invoke(RegisterRoutesAndStartServer),
	)
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()

	r.Use(requestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		reqID, _ := param.Keys[requestIDKey].(string)
		log.Info().
			Str("request_id", reqID).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	r.Use(i18n.Middleware())

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// requestID keeps a caller supplied X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(requestIDKey, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

func registerRoutes(router *gin.Engine, authenticator *auth.Authenticator, quizCtrl *quiz.QuizController, catalogCtrl *teacher.CatalogController) {
	api := router.Group("/api/v1", authenticator.RequireTeacher())
	catalogCtrl.RegisterRoutes(api)
	quizCtrl.RegisterRoutes(api)
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authenticator *auth.Authenticator,
	quizCtrl *quiz.QuizController,
	catalogCtrl *teacher.CatalogController,
) {
	registerRoutes(router, authenticator, quizCtrl, catalogCtrl)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Vocabulary test API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(cfg *config.Config, db *gorm.DB) error {
	if !cfg.Database.AutoMigrate {
		log.Info().Msg("Auto migration disabled")
		return nil
	}
	return database.AutoMigrate(db)
}

func CloseDatabaseOnStop(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info().Msg("Closing database connection")
			return database.Close(db)
		},
	})
}
