package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"barbertime/internal/api"
	"barbertime/internal/auth"
	"barbertime/internal/config"
	"barbertime/internal/db"
	"barbertime/internal/repository"
	"barbertime/internal/service"
	"barbertime/internal/session"
	"barbertime/internal/upstream"
)

func main() {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.EnsureSchema(database); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	tokenRepo := repository.NewTokenRepository(database)
	operatorRepo := repository.NewOperatorRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	panelSessionRepo := repository.NewPanelSessionRepository(database)
	jobRepo := repository.NewJobRepository(database)

	client := upstream.NewClient(cfg.UpstreamURL, &http.Client{Timeout: cfg.UpstreamTimeout})
	manager := session.NewManager(client, tokenRepo, cfg.AuthRedirectURL, cfg.ReturnURL, cfg.RedirectDelay)
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL, panelSessionRepo)

	notify := service.NewNotifyService(service.NotifyConfig{
		SendgridAPIKey:    cfg.SendgridAPIKey,
		SendgridFromEmail: cfg.SendgridFromEmail,
		SendgridFromName:  cfg.SendgridFromName,
		TwilioAccountSID:  cfg.TwilioAccountSID,
		TwilioAuthToken:   cfg.TwilioAuthToken,
		TwilioFromNumber:  cfg.TwilioFromNumber,
	})
	sender := service.NewSenderService(notify)

	var payments *service.PaymentService
	if cfg.StripeSecretKey != "" && cfg.DepositPercent > 0 {
		payments = service.NewPaymentService(paymentRepo, cfg.StripeSecretKey, cfg.DepositPercent, cfg.ReturnURL, cfg.ReturnURL)
	}

	agendaSvc := service.NewAgendaService(client, manager, nil, cfg.OverlapAwareSlots, sender, payments)
	authSvc := service.NewAuthService(client, manager, operatorRepo, issuer)
	empresaSvc := service.NewEmpresaService(client, manager)
	funcionarioSvc := service.NewFuncionarioService(client, manager)
	cadastroSvc := service.NewCadastroService(client, manager)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc, manager)
	agendaHandler := api.NewAgendaHandler(agendaSvc)
	empresaHandler := api.NewEmpresaHandler(empresaSvc)
	funcionarioHandler := api.NewFuncionarioHandler(funcionarioSvc)
	cadastroHandler := api.NewCadastroHandler(cadastroSvc)
	preferenceHandler := api.NewPreferenceHandler(tokenRepo)

	// Resolve any persisted session in the background so the first
	// protected request doesn't pay the validation round trip.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
		defer cancel()
		outcome := manager.Initialize(ctx, "")
		log.Printf("Session initialized: %s", outcome.State)
	}()

	c := cron.New()
	c.AddFunc("@every 10m", func() {
		if err := jobSvc.ExpirePanelSessions(context.Background()); err != nil {
			log.Printf("Cron Job: %v", err)
		}
	})
	c.AddFunc("@hourly", func() {
		n, err := jobSvc.PurgeStalePayments(context.Background(), 24*time.Hour)
		if err != nil {
			log.Printf("Cron Job: purging stale payments: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Cron Job: purged %d stale pending payments.", n)
		}
	})
	c.Start()

	r := mux.NewRouter()
	r.Use(api.RequestLogger)

	// Public endpoints
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/login/local", authHandler.LocalLogin).Methods("POST")
	r.HandleFunc("/api/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/sso/callback", authHandler.SSOCallback).Methods("GET")
	r.HandleFunc("/api/session", authHandler.Session).Methods("GET")

	if payments != nil {
		stripeHandler := api.NewStripeWebhookHandler(cfg.StripeWebhookSecret, payments)
		r.HandleFunc("/api/stripe/webhook", stripeHandler.HandleWebhook).Methods("POST")
	}

	// Panel endpoints (protected)
	panel := r.PathPrefix("/api").Subrouter()
	panel.Use(auth.Guard(manager, issuer))
	panel.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	panel.HandleFunc("/operators", authHandler.CreateOperator).Methods("POST")
	panel.HandleFunc("/empresas", empresaHandler.List).Methods("GET")
	panel.HandleFunc("/empresas", empresaHandler.Create).Methods("POST")
	panel.HandleFunc("/funcionarios", funcionarioHandler.List).Methods("GET")
	panel.HandleFunc("/funcionarios", funcionarioHandler.Create).Methods("POST")
	panel.HandleFunc("/funcionarios/{id}", funcionarioHandler.Update).Methods("PUT")
	panel.HandleFunc("/funcionarios/{id}", funcionarioHandler.Delete).Methods("DELETE")
	panel.HandleFunc("/agenda/slots", agendaHandler.FreeSlots).Methods("GET")
	panel.HandleFunc("/agenda/quote", agendaHandler.Quote).Methods("POST")
	panel.HandleFunc("/agendamentos", agendaHandler.CreateBooking).Methods("POST")
	panel.HandleFunc("/agendamentos/list", agendaHandler.ListBookings).Methods("POST")
	panel.HandleFunc("/clientes", cadastroHandler.CreateCliente).Methods("POST")
	panel.HandleFunc("/servicos", cadastroHandler.ListServicos).Methods("GET")
	panel.HandleFunc("/servicos", cadastroHandler.CreateServico).Methods("POST")
	panel.HandleFunc("/preferences/theme", preferenceHandler.GetTheme).Methods("GET")
	panel.HandleFunc("/preferences/theme", preferenceHandler.SetTheme).Methods("PUT")

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors(r)))
}
