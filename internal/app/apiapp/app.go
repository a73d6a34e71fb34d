package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vthuan-dev/girl-picks-sub004/internal/config"
	s3infra "github.com/vthuan-dev/girl-picks-sub004/internal/infra/s3"
	pgrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/postgres"
	redrepo "github.com/vthuan-dev/girl-picks-sub004/internal/repo/redis"
	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	communitysvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/community"
	modsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/moderation"
	notifysvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/notifications"
	postsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/posts"
	ratesvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/rate"
	reportsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/reports"
	reviewsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/reviews"
	userssvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)

	userRepo := pgrepo.NewUserRepo(pool)
	postRepo := pgrepo.NewPostRepo(pool)
	reviewRepo := pgrepo.NewReviewRepo(pool)
	communityRepo := pgrepo.NewCommunityPostRepo(pool)
	reportRepo := pgrepo.NewReportRepo(pool)
	moderationRepo := pgrepo.NewModerationRepo(pool)
	notificationRepo := pgrepo.NewNotificationRepo(pool)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, userRepo, sessionRepo, cfg.Auth.RefreshTTL)
	userService := userssvc.NewService(userRepo)
	postService := postsvc.NewService(postRepo)
	reviewService := reviewsvc.NewService(reviewRepo, userRepo)
	communityService := communitysvc.NewService(communityRepo)
	notificationService := notifysvc.NewService(notificationRepo)

	// The moderation queue serves unsigned keys when object storage is down.
	var signer modsvc.URLSigner
	if s3Client != nil {
		signer = s3infra.NewSigner(s3Client, cfg.S3.Bucket)
	}
	moderationService := modsvc.NewService(moderationRepo, reportRepo, notificationService, signer, log)

	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Limits.ReportsPerHour, cfg.Limits.ReportsPerMinute)
	reportService := reportsvc.NewService(reportRepo, userRepo, postRepo, reviewRepo, rateLimiter)

	RegisterRoutes(r, Dependencies{
		AuthService:         authService,
		PostService:         postService,
		ReviewService:       reviewService,
		CommunityService:    communityService,
		ReportService:       reportService,
		ModerationService:   moderationService,
		NotificationService: notificationService,
		UserService:         userService,
		Logger:              log,
		Config:              cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
