package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vthuan-dev/girl-picks-sub004/internal/config"
	authsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/auth"
	"github.com/vthuan-dev/girl-picks-sub004/internal/services/authz"
	communitysvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/community"
	modsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/moderation"
	notifysvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/notifications"
	postsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/posts"
	reportsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/reports"
	reviewsvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/reviews"
	userssvc "github.com/vthuan-dev/girl-picks-sub004/internal/services/users"
	"github.com/vthuan-dev/girl-picks-sub004/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService         *authsvc.Service
	PostService         *postsvc.Service
	ReviewService       *reviewsvc.Service
	CommunityService    *communitysvc.Service
	ReportService       *reportsvc.Service
	ModerationService   *modsvc.Service
	NotificationService *notifysvc.Service
	UserService         *userssvc.Service
	Logger              *zap.Logger
	Config              config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	meHandler := handlers.NewMeHandler(deps.UserService)
	postsHandler := handlers.NewPostsHandler(deps.PostService)
	reviewsHandler := handlers.NewReviewsHandler(deps.ReviewService)
	communityHandler := handlers.NewCommunityHandler(deps.CommunityService)
	reportsHandler := handlers.NewReportsHandler(deps.ReportService)
	moderationHandler := handlers.NewModerationHandler(deps.ModerationService)
	notificationsHandler := handlers.NewNotificationsHandler(deps.NotificationService)
	adminUsersHandler := handlers.NewAdminUsersHandler(deps.UserService)
	staffUploadHandler := handlers.NewStaffUploadHandler(deps.PostService, deps.UserService)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	optionalAuthMW := OptionalAuthMiddleware(deps.AuthService)
	createPostMW := RequireCapability(authz.CapCreatePost)
	createReviewMW := RequireCapability(authz.CapCreateReview)
	createCommunityMW := RequireCapability(authz.CapCreateCommunityPost)
	fileReportMW := RequireCapability(authz.CapFileReport)
	uploadMW := RequireCapability(authz.CapUploadContent)
	moderateMW := RequireCapability(authz.CapModerateContent)
	processReportsMW := RequireCapability(authz.CapProcessReports)
	manageUsersMW := RequireCapability(authz.CapManageUsers)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.With(authMW).Get("/me", meHandler.Handle)

	r.Route("/posts", func(r chi.Router) {
		r.With(authMW, createPostMW).Post("/", postsHandler.Create)
		r.With(optionalAuthMW).Get("/", postsHandler.List)
		r.With(optionalAuthMW).Get("/{postID}", postsHandler.Get)
		r.With(authMW).Put("/{postID}", postsHandler.Update)
		r.With(authMW).Delete("/{postID}", postsHandler.Delete)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.With(authMW, createReviewMW).Post("/", reviewsHandler.Create)
		r.With(optionalAuthMW).Get("/", reviewsHandler.List)
		r.With(optionalAuthMW).Get("/{reviewID}", reviewsHandler.Get)
		r.With(authMW).Put("/{reviewID}", reviewsHandler.Update)
		r.With(authMW).Delete("/{reviewID}", reviewsHandler.Delete)
	})

	r.Route("/community", func(r chi.Router) {
		r.With(authMW, createCommunityMW).Post("/", communityHandler.Create)
		r.With(optionalAuthMW).Get("/", communityHandler.List)
		r.With(optionalAuthMW).Get("/{postID}", communityHandler.Get)
		r.With(authMW).Put("/{postID}", communityHandler.Update)
		r.With(authMW).Delete("/{postID}", communityHandler.Delete)
	})

	r.Route("/reports", func(r chi.Router) {
		r.With(authMW, fileReportMW).Post("/", reportsHandler.Create)
		r.With(authMW).Get("/mine", reportsHandler.Mine)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", notificationsHandler.List)
		r.Post("/{notificationID}/read", notificationsHandler.MarkRead)
		r.Post("/read_all", notificationsHandler.MarkAllRead)
	})

	r.With(authMW, uploadMW).Post("/staff/posts", staffUploadHandler.CreatePost)

	r.Route("/admin", func(r chi.Router) {
		r.Use(authMW)

		r.Route("/moderation", func(r chi.Router) {
			r.With(moderateMW).Get("/pending", moderationHandler.Pending)
			r.With(moderateMW).Get("/queue/{kind}", moderationHandler.Queue)
			r.With(moderateMW).Post("/{kind}/{contentID}/approve", moderationHandler.Approve)
			r.With(moderateMW).Post("/{kind}/{contentID}/reject", moderationHandler.Reject)
			r.With(moderateMW).Post("/{kind}/approve_all", moderationHandler.ApproveAll)
			r.With(processReportsMW).Get("/reports", moderationHandler.Reports)
			r.With(processReportsMW).Get("/reports/{reportID}", moderationHandler.Report)
			r.With(processReportsMW).Post("/reports/{reportID}/process", moderationHandler.ProcessReport)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(manageUsersMW)
			r.Post("/", adminUsersHandler.Create)
			r.Get("/", adminUsersHandler.List)
			r.Post("/{userID}/active", adminUsersHandler.SetActive)
		})
	})
}
