package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "streakline",
	Short: "Track contribution activity and streaks from the command line",
	Long: `streakline fetches a user's public contribution calendar, derives
streak statistics from it and caches snapshots on disk so repeated
lookups stay off the network.

Data comes from the public contributions page; when an API token is
configured the authenticated GraphQL source is used instead.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/streakline/config.toml)")
}

func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "streakline")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	_ = viper.BindEnv("api.token", "STREAKLINE_TOKEN")

	// Set defaults
	viper.SetDefault("host", "github.com")
	viper.SetDefault("username", "")
	viper.SetDefault("api.token", "")
	viper.SetDefault("cache.dir", defaultCacheDir())
	viper.SetDefault("cache.ttl_minutes", 30)
	viper.SetDefault("network.timeout_seconds", 15)
	viper.SetDefault("refresh.interval_minutes", 30)
	viper.SetDefault("serve.addr", ":8737")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".streakline-cache"
	}
	return filepath.Join(dir, "streakline")
}
