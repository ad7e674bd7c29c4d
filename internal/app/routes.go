package app

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/middleware"
	"github.com/portfolio-space/core/internal/modules/admin"
	"github.com/portfolio-space/core/internal/modules/auth"
	"github.com/portfolio-space/core/internal/modules/blog"
	"github.com/portfolio-space/core/internal/modules/contact"
	"github.com/portfolio-space/core/internal/modules/content/award"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/modules/content/gallery"
	"github.com/portfolio-space/core/internal/modules/content/message"
	"github.com/portfolio-space/core/internal/modules/content/project"
	"github.com/portfolio-space/core/internal/modules/content/testimonial"
	"github.com/portfolio-space/core/internal/modules/search"
	"github.com/portfolio-space/core/internal/modules/site"
	"github.com/portfolio-space/core/internal/modules/storage/media"
	"github.com/portfolio-space/core/internal/modules/syndication/feed"
	"github.com/portfolio-space/core/internal/modules/syndication/sitemap"
	"github.com/portfolio-space/core/internal/modules/system/core/health"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	"github.com/portfolio-space/core/internal/modules/system/util/slugtracker"
	pkgmail "github.com/portfolio-space/core/internal/pkg/mail"
	"github.com/portfolio-space/core/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	apiPrefix   = "/api"
	adminPrefix = "/admin/api"

	contactLimit  = 5
	loginLimit    = 10
	limiterWindow = time.Minute
)

func (a *App) registerRoutes() error {
	r := a.router
	db := a.db
	rdb := a.redis.Raw()
	log := a.logger
	authMW := middleware.Auth(db)

	var limiter middleware.Limiter = middleware.NewMemoryLimiter()
	if rdb != nil {
		limiter = middleware.NewRedisLimiter(rdb)
	}
	limit := func(name string, n int64, onLimit gin.HandlerFunc) gin.HandlerFunc {
		return middleware.RateLimit(limiter, middleware.RateLimitOptions{
			Name: name, Max: n, Window: limiterWindow, OnLimit: onLimit, Log: log,
		})
	}

	// Shared services
	settingsSvc := settings.NewService(db)
	projectSvc := project.NewService(db)
	awardSvc := award.NewService(db)
	gallerySvc := gallery.NewService(db)
	postSvc := blogpost.NewService(db)
	testimonialSvc := testimonial.NewService(db)
	messageSvc := message.NewService(db)
	searchSvc := search.NewService(db)
	slugSvc := slugtracker.NewService(db)
	blogSvc := blog.NewService(db, slugSvc, log.Named("blog"))
	mediaSvc := media.NewService(db, a.store)

	mailer := pkgmail.New(pkgmail.BuildMailConfig(a.cfg))
	notifier := contact.NewMailNotifier(mailer, a.cfg.Mail.ContactEmail, settingsSvc)
	contactSvc := contact.NewService(messageSvc, notifier, log.Named("contact"))

	audit := admin.NewAuditLog(db, log.Named("admin"))
	purge := func(ctx context.Context) {
		if _, err := middleware.PurgeHTTPCache(ctx, rdb); err != nil {
			log.Warn("purge api cache", zap.Error(err))
		}
	}

	// Public pages
	pages, err := site.NewHandler(site.Deps{
		Settings:     settingsSvc,
		Projects:     projectSvc,
		Awards:       awardSvc,
		Gallery:      gallerySvc,
		Posts:        postSvc,
		Testimonials: testimonialSvc,
		Contact:      contactSvc,
		Search:       searchSvc,
		Blog:         blogSvc,
		Log:          log.Named("site"),
	})
	if err != nil {
		return err
	}
	pages.RegisterRoutes(r, limit("contact-form", contactLimit, pages.FormLimited))

	mediaHandler := media.NewHandler(mediaSvc, audit)
	mediaHandler.RegisterPublicRoutes(r)
	feed.NewHandler(blogSvc, settingsSvc, a.cfg.BaseURL, log.Named("feed")).RegisterRoutes(r)
	sitemap.NewHandler(db, blogSvc, a.cfg.BaseURL, log.Named("sitemap")).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	// REST API
	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.HTTPCache(rdb, middleware.HTTPCacheOptions{
		TTL:             15 * time.Second,
		EnableCDNHeader: true,
		Disable:         a.cfg.IsDev(),
		SkipPaths:       []string{apiPrefix + "/health", apiPrefix + "/messages/*"},
	}))

	project.NewHandler(projectSvc).RegisterRoutes(api)
	award.NewHandler(awardSvc).RegisterRoutes(api)
	gallery.NewHandler(gallerySvc).RegisterRoutes(api)
	blogpost.NewHandler(postSvc).RegisterRoutes(api)
	testimonial.NewHandler(testimonialSvc).RegisterRoutes(api)
	settings.NewHandler(settingsSvc).RegisterRoutes(api)

	submitJSON := []gin.HandlerFunc{
		limit("contact-api", contactLimit, contact.JSONLimited),
		middleware.Idempotence(rdb, true),
	}
	message.NewHandler(messageSvc).RegisterRoutes(api, authMW, submitJSON...)
	contact.NewHandler(contactSvc).RegisterRoutes(api, submitJSON...)

	// Admin API
	adm := r.Group(adminPrefix)
	auth.NewHandler(auth.NewService(db)).RegisterRoutes(adm, authMW, limit("login", loginLimit, response.TooManyRequests))

	registry := admin.DefaultRegistry(db, admin.Services{
		Projects:     projectSvc,
		Awards:       awardSvc,
		Gallery:      gallerySvc,
		BlogPosts:    postSvc,
		Testimonials: testimonialSvc,
		Messages:     messageSvc,
		Settings:     settingsSvc,
	})
	admin.NewHandler(registry, audit, purge).RegisterRoutes(adm, authMW)
	blog.NewHandler(blogSvc, blog.NewMigrator(blogSvc, postSvc, log.Named("migrate")), audit).RegisterAdminRoutes(adm, authMW)
	slugtracker.NewHandler(slugSvc).RegisterRoutes(adm, authMW)
	mediaHandler.RegisterAdminRoutes(adm, authMW)

	health.NewHandler(health.Deps{
		DB:     db,
		Redis:  a.redis,
		Mailer: mailer,
		MailTo: notifier.Recipient,
		LogDir: a.cfg.LogDir(),
	}).RegisterRoutes(api, adm.Group("", authMW))

	r.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			response.NotFound(c)
			return
		}
		pages.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})
	return nil
}

func isAPIPath(p string) bool {
	for _, prefix := range []string{apiPrefix, adminPrefix} {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}
