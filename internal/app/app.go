package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "spotguide/internal/app/http"
	"spotguide/internal/config"
	"spotguide/internal/lib/logger/sl"
	"spotguide/internal/repository"
	geocode "spotguide/internal/services/geocode_service"
	photos "spotguide/internal/services/photo_service"
	spots "spotguide/internal/services/spot_service"
	filestorage "spotguide/internal/storage/filestorage"
	redisstorage "spotguide/internal/storage/redis"
	httprouters "spotguide/internal/transport/http"
)

// App owns every long-lived client. They are built once here and passed
// down explicitly.
type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	repo       *repository.Repository
	redis      *redisstorage.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	repo, err := repository.NewRepository(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := repo.Migrate(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("%s: file storage: %w", op, err)
	}

	photoOpts := []photos.Option{
		photos.WithStrictJSONCreate(cfg.Photos.StrictJSONCreate),
	}

	var redisClient *redisstorage.Client
	if cfg.Redis.RedisAddr != "" {
		redisClient = redisstorage.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := redisClient.HealthCheck(ctx); err != nil {
			log.Warn("redis unreachable, uploads rely on database constraints only",
				slog.String("addr", cfg.Redis.RedisAddr), sl.Err(err))
		}
		photoOpts = append(photoOpts, photos.WithLocker(redisstorage.NewReservationLocker(redisClient, cfg.Redis.LockTTL)))
	}

	photoService := photos.NewPhotoService(log, repo.Photo, fileStorage, photoOpts...)
	spotService := spots.NewSpotService(log, repo.Spot, repo.Photo)
	geocodeService := geocode.NewGeocodeService(log, nil, geocode.Config{
		BaseURL:   cfg.Geocoding.BaseURL,
		UserAgent: cfg.Geocoding.UserAgent,
		Timeout:   cfg.Geocoding.Timeout,
		CacheTTL:  cfg.Geocoding.CacheTTL,
	})

	routers := httprouters.NewRouter(log, photoService, spotService, geocodeService)
	routers.AddHealthCheck("postgres", repo)
	if redisClient != nil {
		routers.AddHealthCheck("redis", httprouters.PingFunc(redisClient.HealthCheck))
	}

	server := httpapp.New(log, httpapp.Config{
		Host:            cfg.HTTP.Host,
		Port:            cfg.HTTP.Port,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		JWTSecret:       cfg.Auth.JWTSecret,
		AdminRole:       cfg.Auth.AdminRole,
		UploadsDir:      fileStorage.GetBaseDir(),
	}, routers)
	server.BuildRouters()

	return &App{
		log:        log,
		HTTPServer: server,
		repo:       repo,
		redis:      redisClient,
	}, nil
}

// Stop shuts the HTTP server down first, then closes the clients it used.
func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("http server stop failed", sl.Err(err))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("redis close failed", sl.Err(err))
		}
	}

	a.repo.Close()
}
