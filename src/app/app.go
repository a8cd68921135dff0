package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/theleywin/Backend-Pulse-Feed/src/config"
	"github.com/theleywin/Backend-Pulse-Feed/src/controllers"
	"github.com/theleywin/Backend-Pulse-Feed/src/lib"
	"github.com/theleywin/Backend-Pulse-Feed/src/middleware"
	"github.com/theleywin/Backend-Pulse-Feed/src/routes"
	"github.com/theleywin/Backend-Pulse-Feed/src/session"
	"github.com/theleywin/Backend-Pulse-Feed/views"
)

// App wires every component together: config, logger, database, redis,
// session store, and the fiber app with all routes registered. It is built
// once in main and passed by reference; there is no ambient global state.
type App struct {
	Config   *config.Config
	Log      *logrus.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions *session.Store
	Fiber    *fiber.App
}

// New builds the application from the given configuration.
func New(cfg *config.Config) (*App, error) {
	log := newLogger(cfg)

	db, err := lib.ConnectDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := lib.AutoMigrate(db); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	sessions := session.NewStore(rdb, cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	engine := html.NewFileSystem(http.FS(views.FS), ".html")

	f := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
	})

	f.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	f.Use(middleware.RequestLogger(log))

	// Superficie operativa, fuera de los guards de sesión
	f.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	guard := middleware.NewSessionGuard(sessions)

	routes.AuthRoutes(f, controllers.NewAuthController(db, sessions, log))
	routes.PostRoutes(f, controllers.NewPostController(db, sessions, log), guard)
	routes.NotificationRoutes(f, controllers.NewNotificationController(db, sessions, log), guard)
	routes.UserRoutes(f, controllers.NewUserController(db, log), guard)

	return &App{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Redis:    rdb,
		Sessions: sessions,
		Fiber:    f,
	}, nil
}

// Listen starts the HTTP server and blocks until it stops.
func (a *App) Listen() error {
	a.Log.WithField("port", a.Config.Port).Info("Server is running")
	return a.Fiber.Listen(":" + a.Config.Port)
}

// Shutdown stops the server and closes the redis connection.
func (a *App) Shutdown() error {
	if err := a.Fiber.Shutdown(); err != nil {
		return err
	}
	return a.Redis.Close()
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
