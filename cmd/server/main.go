package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/openfund/crowdsale-ledger-system/internal/crowdsale"
	"github.com/openfund/crowdsale-ledger-system/internal/events/kafka"
	memoryevents "github.com/openfund/crowdsale-ledger-system/internal/events/memory"
	"github.com/openfund/crowdsale-ledger-system/internal/funds"
	interfaces "github.com/openfund/crowdsale-ledger-system/internal/interfaces"
	"github.com/openfund/crowdsale-ledger-system/internal/server"
	"github.com/openfund/crowdsale-ledger-system/internal/storage/memory"
	"github.com/openfund/crowdsale-ledger-system/internal/storage/postgres"
	"github.com/openfund/crowdsale-ledger-system/internal/token"
	"github.com/shopspring/decimal"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := saleConfigFromEnv()
	if err != nil {
		logger.Error("invalid sale configuration", "error", err)
		os.Exit(1)
	}

	var store interfaces.SaleStore = memory.NewMemorySaleStore()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			logger.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = postgres.NewPostgresSaleStore(db)
		logger.Info("using postgres sale store")
	}

	var publisher interfaces.EventPublisher = memoryevents.NewPublisher()
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		kp := kafka.NewPublisher(strings.Split(brokers, ","))
		defer kp.Close()
		publisher = kp
		logger.Info("publishing events to kafka", "brokers", brokers)
	}

	issuer := token.NewMemoryIssuer()
	gateway := funds.NewMemoryGateway()

	sale, err := crowdsale.New(cfg, issuer, gateway, store, publisher, logger)
	if err != nil {
		logger.Error("failed to construct crowdsale", "error", err)
		os.Exit(1)
	}

	addr := ":" + envOrDefault("PORT", "8080")
	srv := server.New(sale, store, logger)

	logger.Info("starting crowdsale ledger server",
		"addr", addr,
		"owner", cfg.Owner,
		"unit_price", cfg.UnitPrice.String(),
		"funding_objective", cfg.FundingObjective.String(),
	)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// saleConfigFromEnv assembles the one-time sale parameters. SALE_OWNER,
// UNIT_PRICE and FUNDING_OBJECTIVE are required; the sale window defaults to
// starting now and running for thirty days.
func saleConfigFromEnv() (crowdsale.Config, error) {
	unitPrice, err := decimal.NewFromString(envOrDefault("UNIT_PRICE", "0"))
	if err != nil {
		return crowdsale.Config{}, err
	}
	objective, err := decimal.NewFromString(envOrDefault("FUNDING_OBJECTIVE", "0"))
	if err != nil {
		return crowdsale.Config{}, err
	}

	now := time.Now()
	start, err := envTime("SALE_START", now.Add(time.Minute))
	if err != nil {
		return crowdsale.Config{}, err
	}
	end, err := envTime("SALE_END", start.Add(30*24*time.Hour))
	if err != nil {
		return crowdsale.Config{}, err
	}

	return crowdsale.Config{
		Owner:            os.Getenv("SALE_OWNER"),
		StartTime:        start,
		EndTime:          end,
		UnitPrice:        unitPrice,
		FundingObjective: objective,
	}, nil
}

func envTime(key string, fallback time.Time) (time.Time, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, v)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
