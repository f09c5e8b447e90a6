package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/database"
	"github.com/collegeabroad/backend/internal/handler"
	"github.com/collegeabroad/backend/internal/logger"
	"github.com/collegeabroad/backend/internal/mail"
	"github.com/collegeabroad/backend/internal/middleware"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/collegeabroad/backend/internal/router"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/collegeabroad/backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting College Abroad Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Mailer ────────────────────────────────────────────────────────
	mailer, err := mail.NewMailer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure SMTP mailer")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	principalRepo := repository.NewPrincipalRepository(pool)
	universityRepo := repository.NewUniversityRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	countryRepo := repository.NewCountryRepository(pool)
	faqRepo := repository.NewFaqRepository(pool)
	testimonialRepo := repository.NewTestimonialRepository(pool)
	blogRepo := repository.NewBlogRepository(pool)

	// ─── Response Cache ────────────────────────────────────────────────
	respCache := middleware.NewResponseCache(rdb, 5*time.Minute, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, principalRepo, mailer, log)
	studentService := service.NewStudentService(principalRepo, authService, mailer, log)
	accountService := service.NewAccountService(principalRepo, authService, log)
	oauthService := service.NewGoogleOAuthService(cfg, log)
	universityService := service.NewUniversityService(universityRepo, respCache, log)
	courseService := service.NewCourseService(courseRepo, respCache, log)
	countryService := service.NewCountryService(countryRepo, respCache, log)
	faqService := service.NewFaqService(faqRepo, respCache, log)
	testimonialService := service.NewTestimonialService(testimonialRepo, respCache, log)
	blogService := service.NewBlogService(blogRepo, respCache, log)
	inquiryService := service.NewInquiryService(cfg, mailer, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, authService),
		Student:     handler.NewStudentHandler(studentService),
		Admin:       handler.NewAccountHandler(accountService, model.RoleAdmin),
		Superadmin:  handler.NewAccountHandler(accountService, model.RoleSuperadmin),
		OAuth:       handler.NewOAuthHandler(cfg, oauthService, studentService, authService),
		University:  handler.NewUniversityHandler(universityService),
		Course:      handler.NewCourseHandler(courseService),
		Country:     handler.NewCountryHandler(countryService),
		Faq:         handler.NewFaqHandler(faqService),
		Testimonial: handler.NewTestimonialHandler(testimonialService),
		Blog:        handler.NewBlogHandler(blogService),
		Inquiry:     handler.NewInquiryHandler(inquiryService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(cfg, authService, principalRepo, respCache, handlers, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
