package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/config"
	"go-backoffice/internal/handler"
	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/notify"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/repository/mongodb"
	"go-backoffice/internal/repository/sheets"
	"go-backoffice/internal/scheduler"
	"go-backoffice/internal/service"
	"go-backoffice/internal/stock"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/clients/sms"
	"go-backoffice/pkg/database"
	"go-backoffice/pkg/jwt"
	applogger "go-backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := flag.String("env", "", "path to an env file (defaults to ./.env when present)")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}

	log := applogger.Must(applogger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server exited")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database.DSN(), applogger.Named(log, "gorm"))
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return err
	}

	// 3. Seed default privileges, roles, settings and admin user
	seed(db, cfg.Seed, applogger.Named(log, "seed"))

	// 4. Setup WebSocket Hub
	hub := ws.NewHub(applogger.Named(log, "ws"))
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	stockLogRepo := repository.NewStockLogRepo(db)
	buyerRepo := repository.NewBuyerRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	tokenRepo := repository.NewAccessTokenRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	channels := []stock.Channel{hub}
	if cfg.SMS.Enabled() {
		channels = append(channels, notify.NewSMSChannel(sms.NewClient(cfg.SMS), userRepo, applogger.Named(log, "sms")))
	}
	notifier := stock.NewNotifier(applogger.Named(log, "notifier"), channels...)
	recorder := stock.NewRecorder(repository.NewStockStore(db), stock.NewLedger(notifier), notifier, applogger.Named(log, "stock"))

	loc := cfg.Reporting.Location()
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)

	settingsService := service.NewSettingsService(settingsRepo, applogger.Named(log, "svc.settings"))
	invService := service.NewInventoryService(productRepo, stockLogRepo, recorder, settingsService, hub, applogger.Named(log, "svc.inventory"))
	saleService := service.NewSaleService(recorder, txRepo, hub, applogger.Named(log, "svc.sales"))
	buyerService := service.NewBuyerService(buyerRepo)
	reportService := service.NewReportService(reportRepo, settingsService, loc)
	notificationService := service.NewNotificationService(notificationRepo)
	auditService := service.NewAuditService(auditRepo, applogger.Named(log, "svc.audit"))
	tokenService := service.NewAccessTokenService(tokenRepo, applogger.Named(log, "svc.tokens"))
	authService := service.NewAuthService(userRepo, roleRepo, tokenRepo, jwtManager, cfg.Session.IdleTimeout, hub, applogger.Named(log, "svc.auth"))
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	hlog := applogger.Named(log, "http")
	invHandler := handler.NewInventoryHandler(invService, hlog)
	saleHandler := handler.NewSaleHandler(saleService, loc, hlog)
	buyerHandler := handler.NewBuyerHandler(buyerService, hlog)
	dashHandler := handler.NewDashboardHandler(reportService, loc, hlog)
	notificationHandler := handler.NewNotificationHandler(notificationService, hlog)
	adminHandler := handler.NewAdminHandler(auditService, settingsService, tokenService, loc, hlog)
	authHandler := handler.NewAuthHandler(authService, hlog)
	userHandler := handler.NewUserHandler(userService, hlog)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo, hlog)
	wsHandler := handler.NewWebSocketHandler(hub, applogger.Named(log, "ws"))

	// 6. Scheduler
	var opts []scheduler.Option
	if cfg.MongoDB.Enabled() {
		archive, err := mongodb.NewMongoReportArchive(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = archive.Close(closeCtx)
		}()
		opts = append(opts, scheduler.WithArchive(archive))
	}
	if cfg.Sheets.Enabled() {
		sheet, err := sheets.NewGoogleReportSheet(ctx, cfg.Sheets, applogger.Named(log, "sheets"))
		if err != nil {
			return err
		}
		opts = append(opts, scheduler.WithSheet(sheet))
	}
	digest := scheduler.NewScheduler(cfg.Reporting, reportService, userRepo, notificationRepo, hub, applogger.Named(log, "scheduler"), opts...)
	if err := digest.Start(); err != nil {
		return err
	}
	defer digest.Stop()

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CORSOrigins}))
	app.Use(middleware.RequestLogger(hlog))

	// 8. Routes
	api := app.Group("/api/v1")
	api.Use(middleware.Audit(auditService, "/api/v1", "/api/v1/auth/heartbeat", "/api/v1/auth/login", "/api/v1/auth/validate-token"))

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/redeem-token", authHandler.RedeemToken)

	requireAuth := middleware.RequireAuth(authService)
	auth.Post("/heartbeat", requireAuth, authHandler.Heartbeat)
	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Post("/change-password", requireAuth, authHandler.ChangePassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)
	priv := middleware.RequirePrivilege
	anyPriv := middleware.RequireAnyPrivilege

	// Summary is scoped to the caller's own sales unless transaction:view_all is held.
	protected.Get("/dashboard/summary",
		anyPriv(model.PrivDashboardView, model.PrivTransactionView), dashHandler.GetSummary)
	protected.Get("/dashboard/stock-movement",
		anyPriv(model.PrivDashboardView, model.PrivProductView), dashHandler.GetStockMovement)

	protected.Get("/products", priv(model.PrivProductView), invHandler.GetProducts)
	protected.Get("/products/:id", priv(model.PrivProductView), invHandler.GetProduct)
	protected.Post("/products", priv(model.PrivProductCreate), invHandler.CreateProduct)
	protected.Put("/products/:id", priv(model.PrivProductUpdate), invHandler.UpdateProduct)
	protected.Delete("/products/:id", priv(model.PrivProductDelete), invHandler.DeleteProduct)
	protected.Post("/products/:id/adjust-stock", priv(model.PrivProductAdjust), invHandler.AdjustStock)
	protected.Get("/products/:id/stock-logs", priv(model.PrivProductView), invHandler.GetStockLogs)

	protected.Get("/buyers", priv(model.PrivBuyerView), buyerHandler.GetBuyers)
	protected.Get("/buyers/:id", priv(model.PrivBuyerView), buyerHandler.GetBuyer)
	protected.Post("/buyers", priv(model.PrivBuyerCreate), buyerHandler.CreateBuyer)
	protected.Put("/buyers/:id", priv(model.PrivBuyerUpdate), buyerHandler.UpdateBuyer)
	protected.Delete("/buyers/:id", priv(model.PrivBuyerDelete), buyerHandler.DeleteBuyer)

	protected.Get("/transactions", priv(model.PrivTransactionView), saleHandler.GetTransactions)
	protected.Get("/transactions/:id", priv(model.PrivTransactionView), saleHandler.GetTransaction)
	protected.Post("/transactions", priv(model.PrivTransactionCreate), saleHandler.CreateTransaction)

	protected.Get("/notifications", notificationHandler.GetNotifications)
	protected.Put("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Put("/notifications/:id/read", notificationHandler.MarkRead)
	protected.Delete("/notifications/:id", notificationHandler.DeleteNotification)

	protected.Get("/audit-logs", priv(model.PrivAuditView), adminHandler.GetAuditLogs)
	protected.Get("/settings", priv(model.PrivSettingsView), adminHandler.GetSettings)
	protected.Put("/settings", priv(model.PrivSettingsEdit), adminHandler.UpdateSettings)
	protected.Get("/access-tokens", priv(model.PrivTokenGenerate), adminHandler.GetAccessTokens)
	protected.Post("/access-tokens", priv(model.PrivTokenGenerate), adminHandler.GenerateAccessToken)

	protected.Get("/users", priv(model.PrivUserView), userHandler.GetUsers)
	protected.Get("/users/:id", priv(model.PrivUserView), userHandler.GetUser)
	protected.Post("/users", priv(model.PrivUserCreate), userHandler.CreateUser)
	protected.Put("/users/:id", priv(model.PrivUserUpdate), userHandler.UpdateUser)
	protected.Delete("/users/:id", priv(model.PrivUserDelete), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", priv(model.PrivUserUpdatePrivilege), userHandler.UpdateUserPrivileges)

	protected.Get("/roles", priv(model.PrivUserView), roleHandler.GetRoles)
	protected.Get("/privileges", priv(model.PrivUserView), roleHandler.GetPrivileges)

	// WebSocket Route: ?token=<jwt>
	app.Use("/ws", wsHandler.RequireUpgrade, requireAuth)
	app.Get("/ws", wsHandler.Serve())

	// 9. Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Server.Port))
		serverErr <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	stopHub()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	return <-serverErr
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Privilege{},
		&model.Role{},
		&model.User{},
		&model.Product{},
		&model.StockLog{},
		&model.Buyer{},
		&model.Transaction{},
		&model.Notification{},
		&model.AuditLog{},
		&model.SystemSettings{},
		&model.AccessToken{},
	)
}
