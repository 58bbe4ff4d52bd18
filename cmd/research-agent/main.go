// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-agent CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/logging"
	"github.com/pdiddy/research-agent/internal/secrets"
	"github.com/pdiddy/research-agent/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// agentCfg and logger are resolved once in PersistentPreRunE.
var (
	agentCfg types.AgentConfig
	logger   = zap.NewNop()
)

// rootCmd is the base command for the research-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "research-agent",
	Short: "Answer questions by researching the web and drafting a summary",
	Long: `research-agent answers natural-language questions in two steps. The
research step searches the web (Tavily by default), summarizes the top
results with a language model, and caches the outcome under the query text.
The draft step writes a 200-300 word answer from that research.

Credentials come from TAVILY_API_KEY and GOOGLE_API_KEY, a .env file, or the
.secrets/ directory. Without them the pipeline still runs and reports the
missing provider in its answer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFiles := loadEnvFiles(".")

		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s

		agentCfg = configFromViper(viper.GetViper(), loadedSecrets)
		logger, err = logging.New(agentCfg.Log)
		if err != nil {
			return err
		}

		if len(envFiles) > 0 {
			logger.Debug("loaded env files", zap.Strings("files", envFiles))
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Info("using config file", zap.String("path", used))
		}
		if len(s) > 0 {
			logger.Info("loaded secrets", zap.Strings("names", secrets.Names(s)))
		}
		logger.Info("credentials",
			zap.Bool("search", agentCfg.Search.APIKey != ""),
			zap.Bool("model", agentCfg.Model.APIKey != ""),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-agent.yaml or ~/.config/research-agent/research-agent.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("cache", "", "cache file path (default: data/cache.json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("cache.path", rootCmd.PersistentFlags().Lookup("cache"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-agent"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
