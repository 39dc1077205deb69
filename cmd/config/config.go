package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-layergroups/pkg/service"
)

var (
	cfgFile  string
	dbFile   string
	verbose  bool
	logLevel string
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "lg")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("LG")
	viper.AutomaticEnv()

	// Set defaults
	home, _ := os.UserHomeDir()
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "lg"))
	viper.SetDefault("database", "")
	viper.SetDefault("log_level", "warn")

	// A missing config file is fine; defaults and env still apply.
	_ = viper.ReadInConfig()
}

// NewLogger builds the CLI logger from log_level, raised to debug by --verbose
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		logger.Warnf("unknown log level %q, using warn", viper.GetString("log_level"))
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

// InitService opens the layer store described by the loaded configuration
func InitService() (*service.Service, error) {
	database := viper.GetString("database")
	if dbFile != "" {
		database = dbFile
	}

	return service.New(&service.Config{
		DataDir:  viper.GetString("data_dir"),
		Database: database,
		Logger:   NewLogger(),
	})
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/lg/config.yaml)")
	cmd.PersistentFlags().StringVar(&dbFile, "db", "", "layer database (default is <data_dir>/layers.db)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cobra.CheckErr(viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level")))
}
