package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

const (
	defaultConfigFile = "infra/configs/config.yaml"
	envPrefix         = "GHOSTART"

	// receives royalties when creator.wallet is not configured
	defaultCreatorWallet = "0x32f1e35291967c07ec02aa81394dbf87d1d25e52"
)

// loadConfig reads the yaml file named by --config into viper. Environment
// variables override it, e.g. GHOSTART_ADMIN_PASSWORD for admin.password.
func loadConfig(args []string) error {
	fs := pflag.NewFlagSet("api", pflag.ContinueOnError)
	configFile := fs.String("config", defaultConfigFile, "path to the yaml config file")
	if err := fs.Parse(args); err != nil {
		return xerrors.Errorf("failed to parse flags: %w", err)
	}

	viper.SetDefault("server.address", ":3001")
	viper.SetDefault("store.driver", "memory")
	viper.SetDefault("creator.wallet", defaultCreatorWallet)
	viper.SetDefault("creator.royalty", 10)
	viper.SetDefault("cache.sizeMB", 32)
	viper.SetDefault("cache.ttl", "10s")
	viper.SetDefault("app_name", "ghostart-api")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	if err := viper.ReadInConfig(); err != nil {
		return xerrors.Errorf("failed to read %s: %w", *configFile, err)
	}
	return nil
}
