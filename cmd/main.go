package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"

	"mydrive-server/config"
	_ "mydrive-server/docs"
	"mydrive-server/internal/handler"
	"mydrive-server/internal/repository"
	"mydrive-server/internal/security"
	"mydrive-server/internal/service"
)

// @title MyDrive Server
// @version 1.0
// @description REST API файлового хранилища с иерархией директорий и шарингом

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	if err := config.RunMigrations(db); err != nil {
		log.Fatalf("Ошибка миграций: %v", err)
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	uploadTimeout, err := time.ParseDuration(cfg.Transfer.UploadTimeout)
	if err != nil {
		log.Fatalf("Неверный transfer.upload_timeout: %v", err)
	}
	downloadTimeout, err := time.ParseDuration(cfg.Transfer.DownloadTimeout)
	if err != nil {
		log.Fatalf("Неверный transfer.download_timeout: %v", err)
	}
	presignTTL := time.Duration(cfg.TTL.S3AndRedis) * time.Second

	userRepo := repository.NewUserRepository(db)
	jwtRepo := repository.NewJWTRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)
	fileRepo := repository.NewFileRepository(db)
	shareRepo := repository.NewShareRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, presignTTL)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	shareService := service.NewShareService(shareRepo, directoryRepo, fileRepo, userRepo, db)
	breadcrumbService := service.NewBreadcrumbService(directoryRepo)
	directoryService := service.NewDirectoryService(directoryRepo, fileRepo, userRepo, shareService, breadcrumbService, cacheRepo, s3Service, db)
	fileService := service.NewFileService(fileRepo, directoryRepo, userRepo, shareService, cacheRepo, s3Service, db)
	transferService := service.NewTransferService(fileService, directoryRepo, fileRepo, shareService, s3Service, db, uploadTimeout, downloadTimeout, presignTTL)

	jwtService := security.NewJWTService(&cfg.JWT)
	userService := service.NewUserService(userRepo, jwtService, jwtRepo, db)
	authService := service.NewAuthenticationService(jwtRepo, jwtService, userRepo, &cfg.JWT, db)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService, []byte(cfg.JWT.SecretKey))
	userHandler := handler.NewUserHandler(userService)
	directoryHandler := handler.NewDirectoryHandler(directoryService, transferService)
	fileHandler := handler.NewFileHandler(fileService, transferService)
	shareHandler := handler.NewShareHandler(shareService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	authMiddleware := security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService)

	setupAuthRoutes(router, authHandler, userHandler, authMiddleware)
	setupDirectoryRoutes(router, directoryHandler, authMiddleware)
	setupFileRoutes(router, fileHandler, authMiddleware)
	setupShareRoutes(router, shareHandler, authMiddleware)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, uh *handler.UserHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/me", h.GetCurrentUser)
			r.Post("/refresh", h.RefreshToken)
			r.Post("/logout", h.Logout)
		})
		r.Post("/login", h.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", uh.Register)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/users/{user_uuid}", uh.GetUser)
		})
	})
}

func setupDirectoryRoutes(r chi.Router, h *handler.DirectoryHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/directories", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListRootDirectories)
		r.Post("/", h.CreateDirectory)

		r.Route("/{dir_id}", func(r chi.Router) {
			r.Get("/", h.GetDirectory)
			r.Put("/", h.RenameDirectory)
			r.Delete("/", h.DeleteDirectory)
			r.Get("/download", h.DownloadDirectoryArchive)
		})
	})
}

func setupFileRoutes(r chi.Router, h *handler.FileHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/files", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListFiles)
		r.Post("/upload", h.UploadFile)
		r.Post("/upload-folder", h.UploadFolder)
		r.Get("/directory/{dir_id}", h.ListFilesByDirectory)

		r.Route("/{file_id}", func(r chi.Router) {
			r.Get("/", h.GetFile)
			r.Delete("/", h.DeleteFile)
			r.Get("/download", h.DownloadFile)
			r.Get("/presign", h.PresignDownloadFile)
		})
	})
}

func setupShareRoutes(r chi.Router, h *handler.ShareHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/shared", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/with-me", h.ListSharedWithMe)
		r.Get("/by-me", h.ListSharedByMe)
		r.Post("/file/{item_id}", h.ShareFile)
		r.Post("/directory/{item_id}", h.ShareDirectory)
		r.Put("/{share_id}", h.UpdateShare)
		r.Delete("/{share_id}", h.RevokeShare)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
