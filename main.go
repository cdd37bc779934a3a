package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	api "github.com/rpupo63/portfolio-studio-backend/api"
	"github.com/rpupo63/portfolio-studio-backend/auth"
	"github.com/rpupo63/portfolio-studio-backend/config"
	"github.com/rpupo63/portfolio-studio-backend/content"
	"github.com/rpupo63/portfolio-studio-backend/database"
	"github.com/rpupo63/portfolio-studio-backend/editor"
	"github.com/rpupo63/portfolio-studio-backend/logger"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rpupo63/portfolio-studio-backend/portfolio"
	"github.com/rpupo63/portfolio-studio-backend/services"
	"github.com/rpupo63/portfolio-studio-backend/skills"
	"github.com/rpupo63/portfolio-studio-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()
	c := config.New()

	logger.Init(logger.Config{
		Level:       config.GetString(c, "LOG_LEVEL", "info"),
		Environment: config.GetString(c, "APP_ENV", "development"),
	})

	if prefix := config.GetString(c, "AWS_SSM_PREFIX", ""); prefix != "" {
		store, err := config.NewParameterStore(ctx, config.GetString(c, "AWS_REGION", ""))
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating SSM client")
		}
		n, err := config.LoadSSM(ctx, store, prefix, c)
		if err != nil {
			log.Fatal().Err(err).Str("prefix", prefix).Msg("Error loading SSM parameters")
		}
		log.Info().Int("parameters", n).Str("prefix", prefix).Msg("Loaded SSM parameters")
	}

	db, err := database.Open(database.Config{
		Host:         config.GetString(c, "SUPABASE_DB_HOST", ""),
		User:         config.GetString(c, "SUPABASE_DB_USER", ""),
		Password:     config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
		Name:         config.GetString(c, "SUPABASE_DB_NAME", "postgres"),
		Port:         config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		SSLMode:      config.GetString(c, "SUPABASE_DB_SSLMODE", "require"),
		ReplicaHosts: config.GetList(c, "SUPABASE_DB_REPLICA_HOSTS"),
		MaxOpenConns: config.GetInt(c, "SUPABASE_DB_MAX_OPEN_CONNS", 10),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	currentDB := database.New(db)

	if err := currentDB.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	if config.GetBool(c, "AUTO_MIGRATE", false) {
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error running migrations")
		}
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating query helpers...")
		if err := models.GenerateQueries(db, config.GetString(c, "GENERATE_MODELS_OUT", "./query")); err != nil {
			log.Fatal().Err(err).Msg("Error generating query helpers")
		}
		return
	}

	redisClient, err := database.NewRedis(config.GetString(c, "REDIS_URL", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to redis")
	}
	defer database.CloseRedis(redisClient)

	store, mediaDir, err := newStorage(ctx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing media storage")
	}
	uploader := storage.NewMediaUploader(store, storage.NewProcessor(config.GetInt(c, "MAX_IMAGE_DIMENSION", storage.DefaultMaxDimension)))

	catalog := portfolio.NewCatalog(currentDB.ProjectRepo())
	projects := portfolio.NewService(currentDB.ProjectRepo(), catalog)
	siteContent := content.New(currentDB.SettingRepo())
	defer siteContent.Close()

	authService := auth.NewService(auth.Config{
		Email:        config.GetString(c, "ADMIN_EMAIL", ""),
		PasswordHash: config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
		Secret:       config.GetString(c, "JWT_SECRET", ""),
		TTL:          config.GetDuration(c, "SESSION_TTL_HOURS", time.Hour, 12),
	}, auth.NewRevocations(redisClient))
	unsubscribe := authService.OnSessionChange(func(authorized bool) {
		log.Info().Bool("authorized", authorized).Msg("Owner session changed")
	})
	defer unsubscribe()

	bootstrap(ctx, catalog, siteContent)

	server, err := api.NewServer(c, api.Dependencies{
		Auth:     authService,
		Projects: projects,
		Likes:    portfolio.NewLikeService(currentDB.ProjectRepo(), catalog, portfolio.NewGuard(redisClient)),
		Editors: editor.NewRegistry(currentDB.ProjectRepo(), uploader,
			editor.WithSavedAck(config.GetDuration(c, "SAVED_ACK_MS", time.Millisecond, int(editor.DefaultSavedAck/time.Millisecond)))),
		Content:        siteContent,
		Skills:         skills.NewService(currentDB.SkillRepo()),
		Uploader:       uploader,
		Importer:       services.NewImporter(config.GetDuration(c, "IMPORT_TIMEOUT_SECONDS", time.Second, 15)),
		MaxUploadBytes: int64(config.GetInt(c, "MAX_UPLOAD_MB", 100)) << 20,
		LocalMediaDir:  mediaDir,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// bootstrap loads the catalog and the site content concurrently. Failures
// are logged; the site starts with an empty catalog and default copy.
func bootstrap(ctx context.Context, catalog *portfolio.Catalog, siteContent *content.Store) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		projects, err := catalog.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
		log.Info().Int("projects", len(projects)).Msg("Catalog loaded")
		return nil
	})
	g.Go(func() error {
		if err := siteContent.Load(ctx); err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Bootstrap incomplete")
	}
}

// newStorage picks the media backend from STORAGE_DRIVER. The returned
// directory is non-empty for local storage, which the server then serves.
func newStorage(ctx context.Context, c map[string]string) (storage.Storage, string, error) {
	cfg := storage.Config{
		Driver:        config.GetString(c, "STORAGE_DRIVER", "local"),
		S3Endpoint:    config.GetString(c, "S3_ENDPOINT", ""),
		S3Region:      config.GetString(c, "S3_REGION", "us-east-1"),
		S3Bucket:      config.GetString(c, "S3_BUCKET", "media"),
		S3AccessKey:   config.GetString(c, "S3_ACCESS_KEY", ""),
		S3SecretKey:   config.GetString(c, "S3_SECRET_KEY", ""),
		LocalDir:      config.GetString(c, "LOCAL_STORAGE_DIR", "./uploads"),
		PublicBaseURL: config.GetString(c, "PUBLIC_MEDIA_BASE_URL", ""),
	}

	switch cfg.Driver {
	case "s3":
		s, err := storage.NewS3Storage(ctx, cfg)
		return s, "", err
	case "local":
		baseURL := cfg.PublicBaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%s/media", config.GetString(c, "PORT", "8080"))
		}
		s, err := storage.NewLocalStorage(cfg.LocalDir, baseURL)
		if err != nil {
			return nil, "", err
		}
		return s, s.Dir(), nil
	default:
		return nil, "", fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Driver)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
