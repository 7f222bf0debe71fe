package brandkit

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/brandkit/pkg/config"
	"github.com/dmitrymomot/brandkit/pkg/httpserver"
	"github.com/dmitrymomot/brandkit/pkg/logger"
	"github.com/dmitrymomot/brandkit/pkg/pg"
	"github.com/dmitrymomot/brandkit/pkg/quarantine"
	"github.com/dmitrymomot/brandkit/pkg/storage"
	"github.com/dmitrymomot/brandkit/svc/upload"
)

var flagEnv string

type serveConfig struct {
	Upload upload.Config
	HTTP   httpserver.Config
	PG     pg.Config

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"` // local or s3
	StorageDir     string `env:"STORAGE_DIR" envDefault:"./uploads"`
	StorageBaseURL string `env:"STORAGE_BASE_URL" envDefault:"/files/"`
	S3             storage.S3Config
}

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload API server",
		RunE:  runServe,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagEnv, "env", "development", "environment preset: development, staging, production")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var cfg serveConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(logger.WithEnvironment(flagEnv, "brandkit"))
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrations, err := fs.Sub(upload.Migrations, "migrations")
	if err != nil {
		return err
	}
	if err := pg.Migrate(ctx, pool, migrations, cfg.PG, log); err != nil {
		return err
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	svc := upload.NewService(
		upload.NewScannerFromConfig(cfg.Upload),
		store,
		quarantine.New(),
		upload.NewRepository(pool),
		log,
	)
	handler := upload.NewHandler(svc, cfg.Upload, log, pg.Healthcheck(pool))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, handler.Router())
}

func newStorage(ctx context.Context, cfg serveConfig) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3(ctx, cfg.S3)
	case "local":
		return storage.NewLocal(cfg.StorageDir, cfg.StorageBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
