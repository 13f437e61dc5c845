package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/ovis-crm/api-brokerage/internal/auth"
	"github.com/ovis-crm/api-brokerage/internal/broker"
	"github.com/ovis-crm/api-brokerage/internal/commissionsplit"
	"github.com/ovis-crm/api-brokerage/internal/dashboard"
	"github.com/ovis-crm/api-brokerage/internal/deal"
	"github.com/ovis-crm/api-brokerage/internal/httpmw"
	"github.com/ovis-crm/api-brokerage/internal/payment"
	"github.com/ovis-crm/api-brokerage/internal/referralfee"
	"github.com/ovis-crm/api-brokerage/internal/utils/db"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	database, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	for _, migrate := range []func(*gorm.DB) error{
		broker.Migrate,
		deal.Migrate,
		commissionsplit.Migrate,
		payment.Migrate,
		referralfee.Migrate,
	} {
		if err := migrate(database); err != nil {
			log.Fatal().Err(err).Msg("auto-migration failed")
		}
	}

	// Repositories
	brokerRepo := broker.NewRepository(database)
	dealRepo := deal.NewRepository(database)
	splitRepo := commissionsplit.NewRepository(database)
	paymentRepo := payment.NewRepository(database)
	feeRepo := referralfee.NewRepository(database)

	// Read side
	aggregator := dashboard.NewAggregator(database, paymentRepo, feeRepo)

	// Handlers; every mutating handler invalidates the cached payout view of
	// the deal it touched.
	brokerHandler := broker.NewHandler(brokerRepo)
	dealHandler := deal.NewHandler(dealRepo, splitRepo)
	dealHandler.OnChange = aggregator.InvalidateDeal
	splitHandler := commissionsplit.NewHandler(splitRepo)
	splitHandler.OnChange = aggregator.InvalidateDeal
	paymentHandler := payment.NewHandler(paymentRepo)
	paymentHandler.OnChange = aggregator.InvalidateDeal
	feeHandler := referralfee.NewHandler(feeRepo)
	feeHandler.OnChange = aggregator.InvalidateDeal
	dashboardHandler := dashboard.NewHandler(aggregator)

	// Router
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/login", brokerHandler.Login).Methods("POST")
	r.HandleFunc("/brokers", brokerHandler.Create).Methods("POST")

	// Authenticated routes
	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/brokers", brokerHandler.List).Methods("GET")
	api.HandleFunc("/brokers/{id}", brokerHandler.Get).Methods("GET")
	api.HandleFunc("/brokers/{id}/payment-dashboard", dashboardHandler.BrokerDashboard).Methods("GET")

	// Admin-only broker management
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/brokers/{id}", brokerHandler.Update).Methods("PUT")
	admin.HandleFunc("/brokers/{id}", brokerHandler.Delete).Methods("DELETE")

	api.HandleFunc("/deals", dealHandler.Create).Methods("POST")
	api.HandleFunc("/deals", dealHandler.List).Methods("GET")
	api.HandleFunc("/deals/{id}", dealHandler.Get).Methods("GET")
	api.HandleFunc("/deals/{id}", dealHandler.Delete).Methods("DELETE")
	api.HandleFunc("/deals/{id}/commission", dealHandler.UpdateCommission).Methods("PUT")

	api.HandleFunc("/deals/{id}/commission-splits", splitHandler.Import).Methods("POST")
	api.HandleFunc("/deals/{id}/commission-splits", splitHandler.List).Methods("GET")
	api.HandleFunc("/deals/{id}/commission-splits/validation", splitHandler.Validate).Methods("GET")

	api.HandleFunc("/deals/{id}/payments/generate", paymentHandler.Generate).Methods("POST")
	api.HandleFunc("/deals/{id}/payments", paymentHandler.List).Methods("GET")
	api.HandleFunc("/deals/{id}/payments", paymentHandler.DeleteForDeal).Methods("DELETE")
	api.HandleFunc("/payments/{pid}/received", paymentHandler.UpdateReceived).Methods("PATCH")
	api.HandleFunc("/payment-splits/{sid}/paid", paymentHandler.UpdateSplitPaid).Methods("PATCH")

	api.HandleFunc("/deals/{id}/referral-fee", feeHandler.Create).Methods("POST")
	api.HandleFunc("/deals/{id}/referral-fee", feeHandler.Get).Methods("GET")
	api.HandleFunc("/referral-fees/{rid}/paid", feeHandler.UpdatePaid).Methods("PATCH")
	api.HandleFunc("/referral-fees/{rid}", feeHandler.Delete).Methods("DELETE")

	api.HandleFunc("/deals/{id}/payment-dashboard", dashboardHandler.DealDashboard).Methods("GET")

	// Nightly sweep: the dollar cache on deals must always equal the formula
	// chain applied to their inputs; repair any drift.
	c := cron.New()
	if _, err := c.AddFunc("30 2 * * *", func() {
		repaired, err := dealRepo.ReconcileDerivedCache()
		if err != nil {
			logger.Error().Err(err).Msg("commission cache reconciliation failed")
			return
		}
		if len(repaired) > 0 {
			logger.Warn().Interface("deal_ids", repaired).Msg("repaired drifted commission caches")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("could not schedule reconciliation sweep")
	}
	c.Start()
	defer c.Stop()

	handler := cors.AllowAll().Handler(r)
	handler = httpmw.RateLimit(limiter)(handler)
	handler = httpmw.RequestLogger(logger)(handler)

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	logger.Info().Str("addr", addr).Msg("OVIS commission API listening")
	log.Fatal().Err(http.ListenAndServe(addr, handler)).Msg("server stopped")
}
