package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"prompt-lab/config"
	"prompt-lab/internal/logger"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "prompt-lab",
		Short: "Prompt engineering lab server",
		Long: `prompt-lab serves prompt templates and relays LLM generations,
either as complete responses or as server-sent event streams.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Configuration file path")

	// 延迟到子命令执行时再加载, 让 --config 生效
	load := func() (*config.Config, *logger.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		log, err := logger.New(cfg.Log.Mode)
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
		return cfg, log, nil
	}

	rootCmd.AddCommand(newServeCmd(load))
	rootCmd.AddCommand(newMigrateCmd(load))
	rootCmd.AddCommand(newSeedCmd(load))
	rootCmd.AddCommand(newAskCmd())

	return rootCmd
}

type loader func() (*config.Config, *logger.Logger, error)
