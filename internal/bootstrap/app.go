// Package bootstrap assembles the application dependency graph from
// configuration and hands back a ready router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"glance-backend/internal/assist"
	"glance-backend/internal/chat"
	"glance-backend/internal/documents"
	"glance-backend/internal/index"
	"glance-backend/internal/llm"
	openai "glance-backend/internal/llm/openai"
	"glance-backend/internal/search"
	"glance-backend/internal/shared/config"
	"glance-backend/internal/shared/server"
	"glance-backend/internal/shared/server/middleware"
	"glance-backend/internal/shared/storage/db"
	"glance-backend/internal/shared/storage/object"
	localstore "glance-backend/internal/shared/storage/object/local"
	s3store "glance-backend/internal/shared/storage/object/s3"
)

// Dimensionality of text-embedding-3-small vectors.
const embeddingDim = 1536

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	DocumentsRepo    documents.Repo
	DocumentsService *documents.Service
	Indexer          *index.Indexer
	ChatService      *chat.Service
	AssistService    *assist.Service
	SearchService    *search.Service

	DocumentsHandler *documents.Handler
	ChatHandler      *chat.Handler
	AssistHandler    *assist.Handler
	SearchHandler    *search.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		ChatHandler:     app.ChatHandler,
		AssistHandler:   app.AssistHandler,
		SearchHandler:   app.SearchHandler,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and AWS_BUCKET_NAME")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildVectorStore(ctx context.Context, cfg config.Config) (index.Store, error) {
	if strings.TrimSpace(cfg.QdrantHost) == "" {
		log.Printf("bootstrap: QDRANT_HOST empty; using in-memory vector store")
		return index.NewMemoryStore(), nil
	}
	qstore, err := index.NewQdrantStore(ctx, &index.QdrantConfig{
		Host:       cfg.QdrantHost,
		Port:       cfg.QdrantPort,
		Collection: cfg.QdrantCollection,
		VectorSize: embeddingDim,
		APIKey:     cfg.QdrantAPIKey,
		UseTLS:     cfg.QdrantUseTLS,
	})
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: qdrant connect failed; using in-memory vector store: %v", err)
			return index.NewMemoryStore(), nil
		}
		return nil, err
	}
	return qstore, nil
}

func buildServices(ctx context.Context, app *App) error {
	cfg := app.Config

	var docRepo documents.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
	}

	completer := llm.Completer(llm.Placeholder{})
	embedder := llm.Embedder(llm.Placeholder{})
	if cfg.LLMProvider == "openai" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel, cfg.EmbeddingModel)
		if err != nil {
			return err
		}
		completer = client
		embedder = client
	}

	vectorStore, err := buildVectorStore(ctx, cfg)
	if err != nil {
		return err
	}
	indexer := &index.Indexer{Store: vectorStore, Embedder: embedder}

	docSvc := &documents.Service{
		Repo:    docRepo,
		Store:   app.Store,
		Vectors: indexer,
	}
	chatSvc := &chat.Service{
		Docs:  docSvc,
		Store: app.Store,
		Index: indexer,
		LLM:   completer,
	}
	assistSvc := &assist.Service{LLM: completer}
	searchSvc := &search.Service{Sources: []search.Source{
		&search.ScholarSource{Client: search.DefaultHTTPClient()},
		&search.ResearchGateSource{Client: search.DefaultHTTPClient()},
	}}

	limiter := middleware.NewUserRateLimiter(cfg.SearchRatePerMin, cfg.SearchRateBurst, nil)

	app.DocumentsRepo = docRepo
	app.DocumentsService = docSvc
	app.Indexer = indexer
	app.ChatService = chatSvc
	app.AssistService = assistSvc
	app.SearchService = searchSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.ChatHandler = chat.NewHandler(chatSvc)
	app.AssistHandler = assist.NewHandler(assistSvc)
	app.SearchHandler = search.NewHandler(searchSvc, limiter)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
