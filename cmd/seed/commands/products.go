package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/config"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/db"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/logger"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/repository"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/router"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/service"
)

const fetchTimeout = 30 * time.Second

var (
	catalogFile string
	catalogURL  string
	resetFirst  bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Load a product catalog",
	Long: `Load a JSON array of products, each with optional ingredients and health_claims.

Examples:
  seed products --file catalog.json
  seed products --url https://example.com/catalog.json --reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProducts(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)

	productsCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "Path to a JSON catalog")
	productsCmd.Flags().StringVarP(&catalogURL, "url", "u", "", "URL of a JSON catalog")
	productsCmd.Flags().BoolVar(&resetFirst, "reset", false, "Delete every product (and its ratings) before loading")
	productsCmd.MarkFlagsOneRequired("file", "url")
	productsCmd.MarkFlagsMutuallyExclusive("file", "url")
}

func runProducts(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Load()
	log, err := logger.New(verbose || cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var entries []model.ProductInput
	if catalogURL != "" {
		log.Info("fetching catalog", zap.String("url", catalogURL))
		entries, err = fetchCatalog(ctx, catalogURL)
	} else {
		log.Info("reading catalog", zap.String("file", catalogFile))
		entries, err = readCatalogFile(catalogFile)
	}
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.Int("products", len(entries)))

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DB, log)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := db.Migrate(gormDB, false); err != nil {
		return err
	}

	products := service.NewProductService(
		repository.NewProductRepository(gormDB),
		repository.NewRatingRepository(gormDB),
	)
	created, err := seedCatalog(ctx, products, entries, resetFirst)
	if err != nil {
		return err
	}

	log.Info("seed completed", zap.Int("created", created), zap.Bool("reset", resetFirst))
	return nil
}

func readCatalogFile(path string) ([]model.ProductInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return decodeCatalog(f)
}

func fetchCatalog(ctx context.Context, url string) ([]model.ProductInput, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: status code %d", resp.StatusCode)
	}
	return decodeCatalog(resp.Body)
}

// decodeCatalog parses and validates every entry with the same rules as POST /api/products.
func decodeCatalog(r io.Reader) ([]model.ProductInput, error) {
	var entries []model.ProductInput
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	v := router.NewValidator()
	for i := range entries {
		if err := v.Validate(&entries[i]); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, entries[i].Name, err)
		}
	}
	return entries, nil
}

func seedCatalog(ctx context.Context, products service.ProductService, entries []model.ProductInput, reset bool) (int, error) {
	batch := make([]model.Product, 0, len(entries))
	for _, entry := range entries {
		batch = append(batch, *entry.ToProduct())
	}
	return products.SeedProducts(ctx, batch, reset)
}
