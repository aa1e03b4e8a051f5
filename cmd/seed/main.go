package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Seeds a small demo dataset: three customers, three products and one
// order. Safe to run repeatedly; rows that already exist are skipped.
func main() {
	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	ctx := context.Background()
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	customers := []struct {
		name  string
		email string
		phone string
	}{
		{"Alice", "alice@example.com", "+1234567890"},
		{"Bob", "bob@example.com", ""},
		{"Carol", "carol@example.com", ""},
	}

	var alice *partner.Customer
	for _, c := range customers {
		existing, err := customerRepo.FindByEmail(ctx, c.email)
		if err == nil && existing != nil {
			log.Info("Customer already exists, skipping", zap.String("email", c.email))
			if c.name == "Alice" {
				alice = existing
			}
			continue
		}

		customer, fieldErrs := partner.NewCustomer(c.name, c.email, c.phone)
		if len(fieldErrs) > 0 {
			log.Fatal("Invalid seed customer", zap.String("email", c.email), zap.Any("errors", fieldErrs))
		}
		if err := customerRepo.Save(ctx, customer); err != nil {
			log.Fatal("Failed to save customer", zap.String("email", c.email), zap.Error(err))
		}
		log.Info("Customer created", zap.String("name", c.name), zap.String("email", c.email))
		if c.name == "Alice" {
			alice = customer
		}
	}

	products := []struct {
		name  string
		price string
		stock int
	}{
		{"Laptop", "999.99", 10},
		{"Mouse", "25.50", 100},
		{"Keyboard", "45.00", 50},
	}

	seeded := make(map[string]*catalog.Product)
	for _, p := range products {
		product, fieldErrs := catalog.NewProduct(p.name, decimal.RequireFromString(p.price), p.stock)
		if len(fieldErrs) > 0 {
			log.Fatal("Invalid seed product", zap.String("name", p.name), zap.Any("errors", fieldErrs))
		}
		if err := productRepo.Save(ctx, product); err != nil {
			log.Fatal("Failed to save product", zap.String("name", p.name), zap.Error(err))
		}
		seeded[p.name] = product
		log.Info("Product created", zap.String("name", p.name), zap.String("price", p.price))
	}

	// One demo order: Alice buys a laptop and a mouse
	if alice != nil {
		orderCount, err := orderRepo.Count(ctx)
		if err != nil {
			log.Fatal("Failed to count orders", zap.Error(err))
		}
		if orderCount > 0 {
			log.Info("Orders already present, skipping demo order")
		} else {
			laptop := seeded["Laptop"]
			mouse := seeded["Mouse"]
			order, err := trade.NewOrder(alice.ID, alice.Name, alice.Email, []trade.OrderProduct{
				{ProductID: laptop.ID, Name: laptop.Name, Price: laptop.Price},
				{ProductID: mouse.ID, Name: mouse.Name, Price: mouse.Price},
			}, time.Now())
			if err != nil {
				log.Fatal("Failed to build demo order", zap.Error(err))
			}
			if err := orderRepo.Create(ctx, order); err != nil {
				log.Fatal("Failed to save demo order", zap.Error(err))
			}
			log.Info("Demo order created",
				zap.String("customer", alice.Name),
				zap.String("total", order.TotalAmount.StringFixed(2)),
			)
		}
	}

	log.Info("Seed completed")
}
