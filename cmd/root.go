package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"product-gallery/pkg/config"
	"product-gallery/pkg/logging"
	"product-gallery/pkg/services"
)

// Configuration flags
var (
	envFile     string
	bucketName  string
	catalogFile string
	portNumber  string
	secretKey   string
	logLevel    string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "product-gallery",
		Short: "Product Gallery serves product image carousels",
		Long: `Product Gallery is a command line application that displays a grid of products
and opens a categorized image carousel for each one. Products come from a YAML catalog
or from images stored in Google Cloud Storage.`,
		SilenceUsage: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "Load environment variables from this file when it exists")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "catalog", "c", "", "Set the CATALOG_FILE (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&secretKey, "secret-key", "s", "", "Set the SECRET_KEY that guards the admin routes (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Set the LOG_LEVEL (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newListProductsCmd())
	rootCmd.AddCommand(newShowProductCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateThumbnailsCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	// Set environment variables from flags if provided
	if bucketName != "" {
		os.Setenv("BUCKET_NAME", bucketName)
	}

	if catalogFile != "" {
		os.Setenv("CATALOG_FILE", catalogFile)
	}

	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	if secretKey != "" {
		os.Setenv("SECRET_KEY", secretKey)
	}

	if logLevel != "" {
		os.Setenv("LOG_LEVEL", logLevel)
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}

// setup loads the configuration, builds the logger and initializes the
// catalog service shared by every command
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	services.InitService(cfg, logger)
	return cfg, logger, nil
}
