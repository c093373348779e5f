package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"taskboard/internal/audit"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/email"
	"taskboard/internal/handler"
	"taskboard/internal/identity"
	"taskboard/internal/logging"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/storage"
	"taskboard/internal/worker"
)

var (
	_ worker.Notifier            = (*email.Mailer)(nil)
	_ service.ConfirmationSender = (*email.Mailer)(nil)
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config

	notifier *worker.DueDateNotifier
}

// Handlers are the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Users       *handler.UserHandler
	Boards      *handler.BoardHandler
	Lists       *handler.TaskListHandler
	Tasks       *handler.TaskHandler
	Labels      *handler.LabelHandler
	Comments    *handler.CommentHandler
	Attachments *handler.AttachmentHandler
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.WithFields(log.Fields{"host": cfg.DBHost, "db": cfg.DBName}).Info("✅ Connected to database")

	if cfg.RunMigrations {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
		}
	}

	files, err := storage.NewLocalStore(cfg.AttachmentsDir)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to prepare attachment storage: %w", err)
	}

	mailer, err := newMailer(cfg)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to configure mail: %w", err)
	}

	m := metrics.New()
	store := repository.NewGormStore(db)
	people := identity.NewDirectory(store.Users(), cfg.UserCacheTTL)
	recorder := audit.NewRecorder(time.Now)
	recorder.OnRecord(m.RecordAuditEntry)

	access := service.NewAccessService(store, m)
	boards := service.NewBoardService(store, access, time.Now)
	lists := service.NewTaskListService(store, access, m)
	tasks := service.NewTaskService(store, access, people, recorder, m)
	labels := service.NewLabelService(store, access)
	comments := service.NewCommentService(store, access, time.Now)
	attachments := service.NewAttachmentService(store, access, people, recorder, files, cfg.MaxAttachmentBytes)
	users := service.NewUserService(store, people, mailer, service.TokenSettings{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.JWTExpiry,
		RefreshTTL: cfg.RefreshTokenTTL,
	})

	h := Handlers{
		Users:       handler.NewUserHandler(users),
		Boards:      handler.NewBoardHandler(boards),
		Lists:       handler.NewTaskListHandler(lists),
		Tasks:       handler.NewTaskHandler(tasks),
		Labels:      handler.NewLabelHandler(labels),
		Comments:    handler.NewCommentHandler(comments),
		Attachments: handler.NewAttachmentHandler(attachments),
	}

	return &Server{
		Engine:   NewRouter(h, cfg.JWTSecret, m),
		DB:       db,
		Config:   cfg,
		notifier: worker.NewDueDateNotifier(tasks, mailer, cfg.DueDatePollInterval, cfg.DueDateWindow, m),
	}, nil
}

// newMailer sends through SMTP when a host is configured and logs mails
// otherwise.
func newMailer(cfg *config.Config) (*email.Mailer, error) {
	if cfg.SMTPHost == "" {
		log.Warn("⚠️ SMTP_HOST not set, mails are written to the log")
		return email.NewMailer(email.LogTransport{}), nil
	}
	transport, err := email.NewSMTPTransport(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		Timeout:  30 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return email.NewMailer(transport), nil
}

// NewRouter mounts the public and authenticated routes.
func NewRouter(h Handlers, jwtSecret string, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(), m.Middleware())

	// Public routes
	r.POST("/register", h.Users.Register)
	r.POST("/confirm-email", h.Users.ConfirmEmail)
	r.POST("/login", h.Users.Login)
	r.POST("/refresh", h.Users.Refresh)
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(jwtSecret))
	{
		authorized.GET("/me", h.Users.Me)
		authorized.PUT("/me", h.Users.UpdateMe)
		authorized.POST("/revoke", h.Users.Revoke)

		// Board routes
		authorized.POST("/boards", h.Boards.Create)
		authorized.GET("/boards", h.Boards.GetAll)
		authorized.GET("/boards/:id", h.Boards.GetByID)
		authorized.PUT("/boards/:id", h.Boards.Update)
		authorized.DELETE("/boards/:id", h.Boards.Delete)
		authorized.GET("/boards/:id/tasks", h.Boards.FilterTasks)

		// Membership routes
		authorized.GET("/boards/:id/members", h.Boards.GetMembers)
		authorized.POST("/boards/:id/members", h.Boards.AddMember)
		authorized.PUT("/boards/:id/members/:user_id", h.Boards.ChangeMemberRole)
		authorized.DELETE("/boards/:id/members/:user_id", h.Boards.RemoveMember)

		// List routes
		authorized.GET("/boards/:id/lists", h.Lists.GetByBoard)
		authorized.POST("/boards/:id/lists", h.Lists.Create)
		authorized.GET("/lists/:id", h.Lists.GetByID)
		authorized.PUT("/lists/:id", h.Lists.Update)
		authorized.DELETE("/lists/:id", h.Lists.Delete)
		authorized.POST("/lists/:id/move", h.Lists.Move)

		// Task routes
		authorized.POST("/lists/:id/tasks", h.Tasks.Create)
		authorized.GET("/tasks/:id", h.Tasks.GetByID)
		authorized.PUT("/tasks/:id", h.Tasks.Update)
		authorized.DELETE("/tasks/:id", h.Tasks.Delete)
		authorized.POST("/tasks/:id/move", h.Tasks.MoveTask)
		authorized.POST("/tasks/:id/labels/:label_id", h.Tasks.AddLabel)
		authorized.DELETE("/tasks/:id/labels/:label_id", h.Tasks.RemoveLabel)
		authorized.POST("/tasks/:id/assignees/:user_id", h.Tasks.AssignUser)
		authorized.DELETE("/tasks/:id/assignees/:user_id", h.Tasks.UnassignUser)

		// Comment and attachment routes
		authorized.GET("/tasks/:id/comments", h.Comments.GetByTask)
		authorized.POST("/tasks/:id/comments", h.Comments.Create)
		authorized.GET("/tasks/:id/attachments", h.Attachments.GetByTask)
		authorized.POST("/tasks/:id/attachments", h.Attachments.Upload)
		authorized.GET("/tasks/:id/attachments/:attachment_id", h.Attachments.Download)
		authorized.DELETE("/tasks/:id/attachments/:attachment_id", h.Attachments.Delete)

		// Label routes
		authorized.GET("/boards/:id/labels", h.Labels.GetByBoardID)
		authorized.POST("/boards/:id/labels", h.Labels.Create)
		authorized.GET("/labels/:id", h.Labels.GetByID)
		authorized.PUT("/labels/:id", h.Labels.Update)
		authorized.DELETE("/labels/:id", h.Labels.Delete)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	if err := s.notifier.Start(); err != nil {
		log.Fatalf("❌ Failed to start due date notifier: %s", err)
	}

	go func() {
		log.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}
	if err := s.notifier.Stop(); err != nil {
		log.WithError(err).Warn("due date notifier did not stop cleanly")
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("✅ Server exited properly")
}
