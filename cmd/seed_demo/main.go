package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xelth-com/goodstrack/internal/app"
	"github.com/xelth-com/goodstrack/internal/config"
	"github.com/xelth-com/goodstrack/internal/logger"
	"github.com/xelth-com/goodstrack/internal/middleware"
	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/services/parcels"
	"github.com/xelth-com/goodstrack/internal/services/users"
	"github.com/xelth-com/goodstrack/internal/utils"
	"go.uber.org/zap"
)

var (
	parcelCount int
	push        bool
)

var demoItems = []models.Item{
	{Name: "Laptop", Category: "electronics", Value: "450000", Weight: "2.5"},
	{Name: "Ankara fabric bale", Category: "textiles", Value: "120000", Weight: "18"},
	{Name: "Rice 50kg bag", Category: "food", Value: "65000", Weight: "50"},
	{Name: "Paracetamol cartons", Category: "pharmaceuticals", Value: "80000", Weight: "12"},
	{Name: "Office chairs", Category: "furniture", Value: "210000", Weight: "30"},
}

var demoDestinations = []models.Party{
	{Name: "Chika Okafor", Address: "4 Zik Avenue, Enugu", Contact: "+2348022222222"},
	{Name: "Halima Yusuf", Address: "17 Ahmadu Bello Way, Kaduna", Contact: "+2348033333333"},
	{Name: "Tunde Bakare", Address: "9 Ring Road, Ibadan", Contact: "+2348044444444"},
}

var rootCmd = &cobra.Command{
	Use:   "seed_demo",
	Short: "Register a demo driver and official and create sample parcels in the local store",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zl.Sync()

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer a.Close()

	zl.Info("🌱 Seeding demo data", zap.Int("parcels", parcelCount))

	driver, err := ensureUser(ctx, a, users.SignUpRequest{
		Phone:              "+2348030000001",
		DisplayName:        "Musa Bello",
		Role:               models.RoleDriver,
		CompanyName:        "Kano Haulage Ltd",
		VehicleNumber:      "KAN-442-XY",
		VINNumber:          "1HGCM82633A004352",
		VehicleDescription: "MAN TGS 26.440 box truck",
		InsuranceNumber:    "AXA-77120-NG",
		NationalID:         "12345678901",
	})
	if err != nil {
		return err
	}
	if _, err := ensureUser(ctx, a, users.SignUpRequest{
		Phone:       "+2348030000002",
		DisplayName: "Grace Adeyemi",
		Role:        models.RoleOfficial,
	}); err != nil {
		return err
	}

	// parcels are registered as the driver
	driverCtx := middleware.WithClaims(ctx, &utils.SessionClaims{
		UserID:  driver.ID,
		Phone:   driver.Phone,
		Role:    driver.Role,
		Carrier: driver.CarrierProfile(),
	})

	for i := 0; i < parcelCount; i++ {
		p, err := a.Parcels.CreateParcel(driverCtx, parcels.CreateParcelRequest{
			Sender:   models.Party{Name: "Ade Stores", Address: "12 Marina, Lagos", Contact: "+2348011111111"},
			Receiver: demoDestinations[i%len(demoDestinations)],
			Items:    []models.Item{demoItems[i%len(demoItems)]},
			DriverID: driver.ID,
		})
		if err != nil {
			return fmt.Errorf("create parcel %d: %w", i+1, err)
		}
		fmt.Printf("📦 %s -> %s\n", p.ReferenceNumber, p.Receiver.Name)
	}

	if push {
		result, err := a.Sync.PushAll(ctx)
		if err != nil {
			return fmt.Errorf("push: %w", err)
		}
		zl.Info("⬆️ Demo data pushed", zap.Bool("skipped", result.Skipped), zap.Int("synced", result.Synced()))
	}

	fmt.Println("✅ Demo data seeded")
	return nil
}

// ensureUser registers the account unless the phone number is already taken
func ensureUser(ctx context.Context, a *app.App, req users.SignUpRequest) (*models.User, error) {
	if u, err := a.Users.GetByPhone(ctx, req.Phone); err == nil {
		fmt.Printf("👤 %s already registered (%s)\n", u.DisplayName, u.Role)
		return u, nil
	}
	u, err := a.Users.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", req.Phone, err)
	}
	fmt.Printf("👤 Registered %s (%s)\n", u.DisplayName, u.Role)
	return u, nil
}

func init() {
	rootCmd.Flags().IntVar(&parcelCount, "parcels", 5, "Number of parcels to create")
	rootCmd.Flags().BoolVar(&push, "push", false, "Push to the remote backend when done")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
