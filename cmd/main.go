package main

import (
	"context"
	"net/http"

	_ "time/tzdata" // Load timezone data

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	twilio "github.com/twilio/twilio-go"

	"github.com/vegaswarrior/Property-Management-sub001/internal/app"
	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	"github.com/vegaswarrior/Property-Management-sub001/internal/constants"
	"github.com/vegaswarrior/Property-Management-sub001/internal/controllers"
	"github.com/vegaswarrior/Property-Management-sub001/internal/documents"
	"github.com/vegaswarrior/Property-Management-sub001/internal/events"
	"github.com/vegaswarrior/Property-Management-sub001/internal/mailer"
	"github.com/vegaswarrior/Property-Management-sub001/internal/middleware"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/routes"
	"github.com/vegaswarrior/Property-Management-sub001/internal/services"
	"github.com/vegaswarrior/Property-Management-sub001/internal/storage"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Repositories
	landlordRepo := repositories.NewLandlordRepository(application.DB)
	propRepo := repositories.NewPropertyRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	sigRepo := repositories.NewSignatureRequestRepository(application.DB)
	paymentRepo := repositories.NewRentPaymentRepository(application.DB)
	appRepo := repositories.NewRentalApplicationRepository(application.DB)
	notifRepo := repositories.NewNotificationRepository(application.DB)
	teamRepo := repositories.NewTeamMemberRepository(application.DB)
	smsRepo := repositories.NewTenantSMSVerificationRepository(application.DB)

	// Conditionally seed a demo tenant if the feature flag is enabled.
	if cfg.LDFlag_SeedDbWithTestAccounts {
		if err := app.SeedTestAccounts(landlordRepo, propRepo, unitRepo, tenantRepo); err != nil {
			utils.Logger.Fatal("Failed to seed demo accounts:", err)
		}
	}

	// External clients
	twilioClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	sgMailer := mailer.NewSendGridMailer(
		cfg.SendgridAPIKey,
		cfg.OrganizationName,
		cfg.LDFlag_SendgridFromEmail,
		cfg.LDFlag_SendgridSandboxMode,
	)
	store, err := storage.NewMinioStore(
		cfg.ObjectStoreEndpoint,
		cfg.ObjectStoreAccessKey,
		cfg.ObjectStoreSecretKey,
		cfg.ObjectStoreUseSSL,
		cfg.ObjectStorePublicBaseURL,
	)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize object store:", err)
	}
	emitter := events.NewLogEmitter(utils.Logger)
	generator := documents.NewGenerator()

	// Services
	signingService := services.NewSigningService(cfg, sigRepo, leaseRepo, landlordRepo, tenantRepo, unitRepo, propRepo, notifRepo, generator, store, sgMailer, emitter)
	leaseService := services.NewLeaseService(leaseRepo, sigRepo, tenantRepo, unitRepo, propRepo, paymentRepo, notifRepo)
	propertyService := services.NewPropertyService(propRepo, unitRepo)
	applicationService := services.NewApplicationService(cfg, appRepo, propRepo, unitRepo, notifRepo, sgMailer, twilioClient, emitter)
	billingService := services.NewBillingService(cfg, landlordRepo)
	portalService := services.NewPortalService(cfg, landlordRepo, tenantRepo, leaseRepo, unitRepo, propRepo, paymentRepo, smsRepo, twilioClient)
	notificationService := services.NewNotificationService(notifRepo)
	teamService := services.NewTeamService(cfg, teamRepo, landlordRepo, sgMailer)

	// Controllers
	healthController := controllers.NewHealthController(application)
	signingController := controllers.NewSigningController(signingService)
	leaseController := controllers.NewLeaseController(leaseService, signingService)
	propertyController := controllers.NewPropertyController(propertyService)
	applicationController := controllers.NewApplicationController(applicationService)
	billingController := controllers.NewBillingController(billingService)
	notificationController := controllers.NewNotificationController(notificationService)
	teamController := controllers.NewTeamController(teamService)
	portalController := controllers.NewPortalController(portalService, applicationService)

	// Scheduled cleanup of expired signing links and stale OTP rows.
	c := cron.New()
	if _, schErr := c.AddFunc("@hourly", func() {
		if err := sigRepo.CleanupExpired(context.Background()); err != nil {
			utils.Logger.WithError(err).Error("Scheduled signature-request cleanup failed")
		}
		if err := smsRepo.CleanupExpired(context.Background()); err != nil {
			utils.Logger.WithError(err).Error("Scheduled SMS-code cleanup failed")
		}
	}); schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule cleanup job")
	}
	c.Start()
	defer c.Stop()

	// Router
	router := mux.NewRouter()

	// Health
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// Public signing endpoints: the token is the only credential.
	router.HandleFunc(routes.SignByToken, signingController.GetSessionHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.SignByToken, signingController.SubmitHandler).Methods(http.MethodPost)

	// Landlord dashboard (JWT middleware)
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, middleware.ScopeDashboard))

	secured.HandleFunc(routes.DashboardProperties, propertyController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardProperties, propertyController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.DashboardProperties, propertyController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardPropertyByID, propertyController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.DashboardUnits, propertyController.AddUnitHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardUnitVacancy, propertyController.SetUnitVacancyHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.DashboardLeases, leaseController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardLeases, leaseController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.DashboardLeases, leaseController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardLeaseByID, leaseController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardLeaseSend, leaseController.SendForSignatureHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardLeaseEnd, leaseController.EndHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardLeasePayments, leaseController.ListPaymentsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardPayments, leaseController.RecordPaymentHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.DashboardApplications, applicationController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardApplicationsDecide, applicationController.DecideHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.DashboardNotifications, notificationController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardNotificationsRead, notificationController.MarkReadHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardNotificationsReadAll, notificationController.MarkAllReadHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.DashboardTeam, teamController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardTeam, teamController.InviteHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardTeamMemberID, teamController.RemoveHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.DashboardBillingSubscription, billingController.GetSubscriptionHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DashboardBillingCheckout, billingController.CreateCheckoutHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardBillingTier, billingController.ChangeTierHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DashboardBillingCancel, billingController.CancelHandler).Methods(http.MethodPost)

	// Tenant portal: every route is scoped to the landlord resolved from
	// the Host header. The /me routes additionally need a portal token.
	portal := router.NewRoute().Subrouter()
	portal.Use(middleware.TenantResolver(landlordRepo, cfg.BaseDomain))

	portal.HandleFunc(routes.PortalSite, portalController.SiteHandler).Methods(http.MethodGet)
	portal.HandleFunc(routes.PortalApplications, portalController.SubmitApplicationHandler).Methods(http.MethodPost)
	portal.HandleFunc(routes.PortalAuthOTP, portalController.RequestOTPHandler).Methods(http.MethodPost)
	portal.HandleFunc(routes.PortalAuthVerify, portalController.VerifyOTPHandler).Methods(http.MethodPost)

	portalMe := portal.NewRoute().Subrouter()
	portalMe.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, middleware.ScopePortal))
	portalMe.HandleFunc(routes.PortalMyLease, portalController.MyLeaseHandler).Methods(http.MethodGet)
	portalMe.HandleFunc(routes.PortalMyPayments, portalController.MyPaymentsHandler).Methods(http.MethodGet)

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, constants.CORSLowSecurityAllowedOriginLocalhost)
	}

	// CORS config
	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
