//go:build linux

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	devPath string

	regmap RegMap
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "regmap.yaml", "register map file")
	rootCmd.PersistentFlags().StringVar(&devPath, "dev", "/dev/mem", "memory device to map the register block from")
	rootCmd.AddCommand(readCmd, writeCmd, dumpCmd)
}

var rootCmd = &cobra.Command{
	Use:          "regdump",
	Short:        "regdump reads and writes memory-mapped device registers described by a register map",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read register map: %w", err)
		}
		if err := viper.Unmarshal(&regmap); err != nil {
			return fmt.Errorf("parse register map: %w", err)
		}
		if err := regmap.validate(); err != nil {
			return err
		}
		zap.L().Debug("register map loaded",
			zap.String("device", regmap.Device),
			zap.Uint64("base", regmap.Base),
			zap.Int("registers", len(regmap.Registers)))
		return nil
	},
}

func main() {
	zapLogger := zap.Must(zap.NewDevelopment()).With(zap.String("app", "regdump"))
	defer func() { _ = zapLogger.Sync() }()
	_ = zap.ReplaceGlobals(zapLogger)

	if err := rootCmd.Execute(); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
