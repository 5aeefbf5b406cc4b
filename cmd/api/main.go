// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/dangerclosesec/atrium/internal/agentgw"
	"github.com/dangerclosesec/atrium/internal/auth"
	"github.com/dangerclosesec/atrium/internal/config"
	"github.com/dangerclosesec/atrium/internal/email"
	"github.com/dangerclosesec/atrium/internal/handler"
	"github.com/dangerclosesec/atrium/internal/middleware"
	"github.com/dangerclosesec/atrium/internal/repository"
	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/dangerclosesec/atrium/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	invRepo := repository.NewInvitationRepository(db)
	agentRepo := repository.NewAgentRepository(db)
	convRepo := repository.NewConversationRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service
	emailService, err := email.NewEmailService(cfg, email.ProviderSendgrid)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize attachment storage
	blobStore, err := storage.NewMinioStore(storage.MinioConfig{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseTLS:    cfg.Minio.UseTLS,
	})
	if err != nil {
		return fmt.Errorf("setting up blob storage: %w", err)
	}

	// Initialize agent gateway client
	gateway := agentgw.NewClient(agentgw.Config{
		BaseURL: cfg.AgentGateway.BaseURL,
		APIKey:  cfg.AgentGateway.APIKey,
		Timeout: cfg.AgentGateway.Timeout,
	})

	// Initialize services
	permService := service.NewPermissionService(orgRepo)
	orgService := service.NewOrganizationService(orgRepo, invRepo, userRepo, permService, emailService, cfg)
	userService := service.NewUserService(userRepo, orgService, passwordHasher, tokenManager, emailService, cfg)
	agentService := service.NewAgentService(agentRepo, permService)
	convService := service.NewConversationService(convRepo, agentRepo, permService, gateway, gateway, blobStore)
	projectService := service.NewProjectService(projectRepo, permService)
	planService := service.NewPlanService(cfg.PlansFile)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	agentHandler := handler.NewAgentHandler(agentService)
	convHandler := handler.NewConversationHandler(convService)
	projectHandler := handler.NewProjectHandler(projectService)
	planHandler := handler.NewPlanHandler(planService)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(chimw.AllowContentType("application/json"))
				r.Use(chimw.Timeout(30 * time.Second))

				r.Post("/signup", authHandler.SignupHandler)
				r.Post("/login", authHandler.LoginHandler)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenManager))

			r.Get("/auth/me", authHandler.MeHandler)

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", planHandler.ListHandler)
				r.Get("/{planID}", planHandler.GetHandler)
			})

			// Invitation redemption is token-addressed, not org-addressed
			r.Post("/invitations/{token}/accept", orgHandler.AcceptInvitationHandler)
			r.Post("/invitations/{token}/decline", orgHandler.DeclineInvitationHandler)

			r.Route("/organizations", func(r chi.Router) {
				r.Post("/", orgHandler.CreateHandler)
				r.Get("/", orgHandler.ListHandler)

				r.Route("/{orgID}", func(r chi.Router) {
					r.Get("/", orgHandler.GetHandler)
					r.Patch("/", orgHandler.UpdateHandler)
					r.Delete("/", orgHandler.DeleteHandler)

					r.Route("/members", func(r chi.Router) {
						r.Get("/", orgHandler.ListMembersHandler)
						r.Put("/{userID}", orgHandler.UpdateMemberRoleHandler)
						r.Delete("/{userID}", orgHandler.RemoveMemberHandler)
					})

					r.Route("/invitations", func(r chi.Router) {
						r.Post("/", orgHandler.InviteMemberHandler)
						r.Get("/", orgHandler.ListInvitationsHandler)
						r.Delete("/{invitationID}", orgHandler.CancelInvitationHandler)
					})

					mountWorkspaceRoutes(r, agentHandler, convHandler, projectHandler)
				})
			})

			// Personal surface: same resources without an organization
			mountWorkspaceRoutes(r, agentHandler, convHandler, projectHandler)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     r,
		ReadTimeout: cfg.Server.ReadTimeout,
		// Streamed agent replies hold the response open well past any
		// sane write timeout; per-route timeouts cover the rest.
		WriteTimeout:      0,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// mountWorkspaceRoutes wires the agent, conversation, and project resources.
// The same tree serves both the organization surface (under
// /organizations/{orgID}) and the personal surface (at the API root); the
// handlers derive tenancy from the presence of the orgID parameter.
func mountWorkspaceRoutes(r chi.Router, agentHandler *handler.AgentHandler, convHandler *handler.ConversationHandler, projectHandler *handler.ProjectHandler) {
	r.Route("/agents", func(r chi.Router) {
		r.Post("/", agentHandler.CreateHandler)
		r.Get("/", agentHandler.ListHandler)
		r.Put("/{agentID}/active", agentHandler.SetActiveHandler)
	})

	r.Route("/conversations", func(r chi.Router) {
		r.Post("/", convHandler.CreateHandler)
		r.Get("/", convHandler.ListHandler)

		r.Route("/{conversationID}", func(r chi.Router) {
			r.Get("/", convHandler.GetHandler)
			r.Patch("/", convHandler.UpdateHandler)
			r.Delete("/", convHandler.DeleteHandler)

			r.Post("/rename", convHandler.RenameHandler)

			r.Get("/messages", convHandler.ListMessagesHandler)
			r.Post("/messages", convHandler.AppendMessageHandler)
			r.Post("/messages/stream", convHandler.StreamMessageHandler)
			r.Post("/title", convHandler.GenerateTitleHandler)
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.Post("/", projectHandler.CreateHandler)
		r.Get("/", projectHandler.ListHandler)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", projectHandler.GetHandler)
			r.Delete("/", projectHandler.DeleteHandler)

			r.Post("/tasks", projectHandler.CreateTaskHandler)
			r.Get("/tasks", projectHandler.ListTasksHandler)

			r.Post("/milestones", projectHandler.CreateMilestoneHandler)
			r.Get("/milestones", projectHandler.ListMilestonesHandler)
		})
	})

	r.Route("/tasks/{taskID}/time-entries", func(r chi.Router) {
		r.Post("/", projectHandler.AddTimeEntryHandler)
		r.Get("/", projectHandler.ListTimeEntriesHandler)
	})
	r.Delete("/time-entries/{entryID}", projectHandler.RemoveTimeEntryHandler)
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Write([]byte("{\"error\":\"error encountered\"}"))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
