package main

import (
	"context"
	"time"

	"freightquote/internal/model"
	"freightquote/internal/storage"
	"freightquote/pkg/config"
	"freightquote/pkg/database"
	"freightquote/pkg/logger"
	"freightquote/pkg/password"

	"go.uber.org/zap"
)

// Seeds the database with a demo dataset: one client company, two carriers,
// four users, two quotes and two competing bids. Running twice is a no-op.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()

	if err := database.InitDB(cfg, log); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	store := storage.New(database.GetDB())
	ctx := context.Background()

	if _, err := store.GetUserByUsername(ctx, "admin@platform.com"); err == nil {
		log.Info("Database already seeded")
		return
	}

	log.Info("Seeding database...")

	clientCo := model.Company{
		Name:        "Tech Solutions Ltd",
		CNPJ:        "12345678000100",
		Type:        model.CompanyTypeClient,
		ContactInfo: "contact@techsolutions.com",
	}
	carrierCo1 := model.Company{
		Name:        "Fast Logistics Inc",
		CNPJ:        "98765432000199",
		Type:        model.CompanyTypeCarrier,
		ContactInfo: "dispatch@fastlogistics.com",
	}
	carrierCo2 := model.Company{
		Name:        "Global Freight",
		CNPJ:        "11223344000155",
		Type:        model.CompanyTypeCarrier,
		ContactInfo: "info@globalfreight.com",
	}
	for _, co := range []*model.Company{&clientCo, &carrierCo1, &carrierCo2} {
		if err := store.CreateCompany(ctx, co, nil); err != nil {
			log.Fatal("Failed to seed company", zap.String("name", co.Name), zap.Error(err))
		}
	}

	hashed, err := password.Hash(password.LegacySeedPassword)
	if err != nil {
		log.Fatal("Failed to hash seed password", zap.Error(err))
	}

	clientUser := model.User{
		Username:  "client@tech.com",
		Password:  hashed,
		Name:      "Alice Client",
		Role:      model.RoleClient,
		CompanyID: &clientCo.ID,
	}
	carrierUser1 := model.User{
		Username:  "driver@fast.com",
		Password:  hashed,
		Name:      "Bob Driver",
		Role:      model.RoleCarrier,
		CompanyID: &carrierCo1.ID,
	}
	carrierUser2 := model.User{
		Username:  "manager@global.com",
		Password:  hashed,
		Name:      "Charlie Manager",
		Role:      model.RoleCarrier,
		CompanyID: &carrierCo2.ID,
	}
	adminUser := model.User{
		Username: "admin@platform.com",
		Password: hashed,
		Name:     "Admin User",
		Role:     model.RoleAdmin,
	}
	for _, u := range []*model.User{&clientUser, &carrierUser1, &carrierUser2, &adminUser} {
		if err := store.CreateUser(ctx, u); err != nil {
			log.Fatal("Failed to seed user", zap.String("username", u.Username), zap.Error(err))
		}
	}

	deadline1 := time.Now().Add(7 * 24 * time.Hour)
	quote1 := model.Quote{
		Origin:      "São Paulo, SP",
		Destination: "Rio de Janeiro, RJ",
		Weight:      1500.50,
		Volume:      10.5,
		CargoType:   "Electronics",
		Deadline:    &deadline1,
		Notes:       "Fragile items, handle with care.",
	}
	deadline2 := time.Now().Add(14 * 24 * time.Hour)
	quote2 := model.Quote{
		Origin:      "Curitiba, PR",
		Destination: "Porto Alegre, RS",
		Weight:      5000.00,
		Volume:      25.0,
		CargoType:   "Furniture",
		Deadline:    &deadline2,
		Notes:       "Requires large truck.",
	}
	for _, q := range []*model.Quote{&quote1, &quote2} {
		if err := store.CreateQuote(ctx, clientUser.ID, q); err != nil {
			log.Fatal("Failed to seed quote", zap.String("origin", q.Origin), zap.Error(err))
		}
	}

	bid1 := model.Bid{Amount: 2500.00, EstimatedDays: 2, Conditions: "Insurance included."}
	if err := store.CreateBid(ctx, carrierUser1.ID, quote1.ID, &bid1); err != nil {
		log.Fatal("Failed to seed bid", zap.Error(err))
	}
	bid2 := model.Bid{Amount: 2400.00, EstimatedDays: 3, Conditions: "Standard shipping."}
	if err := store.CreateBid(ctx, carrierUser2.ID, quote1.ID, &bid2); err != nil {
		log.Fatal("Failed to seed bid", zap.Error(err))
	}

	log.Info("Seeding complete",
		zap.Uint("client_user", clientUser.ID),
		zap.Uint("quote1", quote1.ID),
		zap.Uint("quote2", quote2.ID))
}
