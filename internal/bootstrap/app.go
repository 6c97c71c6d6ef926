package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"applicant-tracker/internal/applicants"
	"applicant-tracker/internal/services/health"
	"applicant-tracker/internal/shared/config"
	"applicant-tracker/internal/shared/server"
	"applicant-tracker/internal/shared/storage/object"
	localstore "applicant-tracker/internal/shared/storage/object/local"
	s3store "applicant-tracker/internal/shared/storage/object/s3"
	"applicant-tracker/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	Blobs            object.BlobStore
	Store            applicants.Store
	ApplicantService *applicants.Service
	ApplicantHandler *applicants.Handler
	Health           *health.Service
}

// Build constructs every dependency and bootstraps the record file and the
// upload destination. Routes are reachable only after both exist.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.DataFile) == "" {
		cfg.DataFile = "applicants.csv"
	}
	if strings.TrimSpace(cfg.UploadDir) == "" {
		cfg.UploadDir = "uploads"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	blobs, err := buildBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := applicants.NewCSVStore(cfg.DataFile, cfg.SerializeStoreWrites)
	svc := applicants.NewService(store, blobs)
	if err := svc.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	handler := applicants.NewHandler(svc, cfg.MaxUploadBytes)
	healthSvc := health.NewService(buildChecks(store, blobs))

	telemetry.Info("bootstrap.ready", map[string]any{
		"data_file":        cfg.DataFile,
		"upload_dir":       cfg.UploadDir,
		"object_store":     cfg.ObjectStoreType,
		"serialize_writes": cfg.SerializeStoreWrites,
		"max_upload_bytes": handler.MaxUploadSize,
	})

	router := server.NewRouter(server.RouterDeps{
		Config:           cfg,
		ApplicantHandler: handler,
		Health:           healthSvc,
	})

	return &App{
		Config:           cfg,
		Router:           router,
		Blobs:            blobs,
		Store:            store,
		ApplicantService: svc,
		ApplicantHandler: handler,
		Health:           healthSvc,
	}, nil
}

func buildBlobStore(ctx context.Context, cfg config.Config) (object.BlobStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.UploadDir), nil
	}
}

func buildChecks(store applicants.Store, blobs object.BlobStore) map[string]health.Check {
	checks := map[string]health.Check{
		"store": func(ctx context.Context) error {
			_, err := store.List(ctx)
			return err
		},
	}
	if local, ok := blobs.(*localstore.Store); ok {
		checks["uploads"] = func(ctx context.Context) error {
			info, err := os.Stat(local.Dir())
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", local.Dir())
			}
			return nil
		}
	}
	return checks
}
