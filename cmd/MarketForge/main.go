package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ForgeLabs/MarketForge/internal/api"
	"github.com/ForgeLabs/MarketForge/internal/flow"
	"github.com/ForgeLabs/MarketForge/internal/genai"
	"github.com/ForgeLabs/MarketForge/internal/lockfile"
	"github.com/ForgeLabs/MarketForge/internal/store"
	"github.com/ForgeLabs/MarketForge/internal/util"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for MarketForge state data
	DefaultStateDir = "/var/lib/marketforge"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "marketforge.db"
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Ensure required directories exist
	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	// Acquire an exclusive lock on the state directory so two instances
	// never share the same SQLite database
	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lock.Release()

	// Build module options
	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	client, err := genai.NewClient(buildGenAIOptions(flags)...)
	if err != nil {
		slog.Error("Failed to initialize GenAI client", "error", err)
		os.Exit(1)
	}

	orch := flow.NewOrchestrator(st, client)
	server := api.NewServer(orch, buildAPIOptions(flags)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the service
	slog.Info("Bootstrapping MarketForge with configured modules")
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.dbDSN != "", "api_addr", *flags.apiAddr)
	if err := server.Run(ctx); err != nil {
		slog.Error("MarketForge failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("MarketForge exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL string
	StateDir    string
	OpenAIKey   string
	Model       string
	APIAddr     string
}

// Flags holds command line flag values
type Flags struct {
	stateDir  *string
	dbDSN     *string
	openaiKey *string
	model     *string
	apiAddr   *string
}

// initializeLogger sets up structured logging; MARKETFORGE_DEBUG enables debug level
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("MARKETFORGE_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StateDir:    os.Getenv("MARKETFORGE_STATE_DIR"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:       os.Getenv("OPENAI_MODEL"),
		APIAddr:     os.Getenv("API_ADDR"),
	}

	// Set default state directory if not specified
	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No MARKETFORGE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	} else {
		slog.Debug("MARKETFORGE_STATE_DIR found in environment", "state_dir", config.StateDir)
	}

	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"MARKETFORGE_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"OPENAI_MODEL", config.Model,
		"API_ADDR", config.APIAddr)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:  flag.String("state-dir", config.StateDir, "state directory for MarketForge data (overrides $MARKETFORGE_STATE_DIR)"),
		dbDSN:     flag.String("db-dsn", config.DatabaseURL, "database DSN for the project store (overrides $DATABASE_URL)"),
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		model:     flag.String("model", config.Model, "OpenAI chat model (overrides $OPENAI_MODEL)"),
		apiAddr:   flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"model", *flags.model,
		"apiAddr", *flags.apiAddr)

	// Update database DSN if not explicitly set but state directory is provided
	if *flags.dbDSN == config.DatabaseURL && config.DatabaseURL == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "dsn_updated", true, "old_state_dir", config.StateDir, "new_state_dir", *flags.stateDir)
	}

	return flags
}

// isPostgresDSN reports whether the DSN targets PostgreSQL rather than a
// SQLite file path.
func isPostgresDSN(dsn string) bool {
	return strings.Contains(dsn, "postgres://") || strings.Contains(dsn, "postgresql://") || strings.Contains(dsn, "host=")
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	// Ensure state directory exists if we're using a file-based DSN
	if !isPostgresDSN(*flags.dbDSN) {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
			return err
		}
		slog.Debug("State directory created successfully", "state_dir", stateDir)
	}
	return nil
}

// buildStore constructs the project store based on the database DSN
func buildStore(flags Flags) (store.Store, error) {
	if isPostgresDSN(*flags.dbDSN) {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_type", "postgresql", "dsn_set", true)
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "dsn_type", "sqlite", "db_path", *flags.dbDSN)
	return store.NewSQLiteStore(store.WithDSN(*flags.dbDSN))
}

// buildGenAIOptions constructs GenAI configuration options
func buildGenAIOptions(flags Flags) []genai.Option {
	var genaiOpts []genai.Option
	if *flags.openaiKey != "" {
		genaiOpts = append(genaiOpts, genai.WithAPIKey(*flags.openaiKey))
	}
	if *flags.model != "" {
		genaiOpts = append(genaiOpts, genai.WithModel(openai.ChatModel(*flags.model)))
	}
	return genaiOpts
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	return apiOpts
}
