// Command delvescoped is the Delvescope assessment service. It serves the
// REST API backed by Postgres and blob storage.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/delvescope/delvescope/internal/api"
	"github.com/delvescope/delvescope/internal/archive"
	"github.com/delvescope/delvescope/internal/platform"
	"github.com/delvescope/delvescope/internal/store"
	"github.com/delvescope/delvescope/pkg/config"
	"github.com/delvescope/delvescope/pkg/scoring"
)

type daemonConfig struct {
	Port        string
	DatabaseURL string
	APIKey      string
	ConfigPath  string

	// Blob storage: local path by default, S3 or GCS when configured.
	LocalStoragePath string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	GCSBucket        string
}

func loadDaemonConfig() daemonConfig {
	return daemonConfig{
		Port:        envOrDefault("PORT", "8080"),
		DatabaseURL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/delvescope?sslmode=disable"),
		APIKey:      os.Getenv("API_KEY"),
		ConfigPath:  os.Getenv("DELVESCOPE_CONFIG"),

		LocalStoragePath: envOrDefault("LOCAL_STORAGE_PATH", "/tmp/delvescope-data"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         os.Getenv("S3_REGION"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:      os.Getenv("S3_SECRET_KEY"),
		GCSBucket:        os.Getenv("GCS_BUCKET"),
	}
}

func main() {
	cfg := loadDaemonConfig()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}
	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	blobs, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	engine, err := newEngine(cfg.ConfigPath)
	if err != nil {
		log.Fatalf("init engine: %v", err)
	}

	handler := api.NewHandler(db, store.NewService(db), blobs, engine)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.CORS(api.APIKeyAuth(cfg.APIKey)(mux)),
	}

	go func() {
		log.Printf("starting delvescoped on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// newStorage picks the blob backend: GCS when GCS_BUCKET is set, S3 when
// S3_BUCKET is set, local filesystem otherwise.
func newStorage(ctx context.Context, cfg daemonConfig) (archive.StorageClient, error) {
	switch {
	case cfg.GCSBucket != "":
		return archive.NewGCSStorage(ctx, cfg.GCSBucket)
	case cfg.S3Bucket != "":
		return archive.NewS3Storage(ctx, archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return archive.NewLocalStorage(cfg.LocalStoragePath), nil
	}
}

// newEngine builds the scoring engine from the optional config file.
func newEngine(path string) (*scoring.Engine, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	engine, err := scoring.NewEngineForKeys(cfg.Params(), cfg.EnabledMetrics())
	if err != nil {
		return nil, err
	}
	return engine.WithInferenceOptions(cfg.InferenceOptions()), nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
