package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetsense/evmaint/config"
	"github.com/fleetsense/evmaint/core/model"
	"github.com/fleetsense/evmaint/infra/prediction"
)

var predictInput string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run a one-shot prediction on a telemetry JSON file",
	RunE:  predictOnce,
}

func init() {
	predictCmd.Flags().StringVarP(&predictInput, "input", "i", "", "telemetry JSON file")
	if err := predictCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(predictCmd)
}

func predictOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	pred, err := prediction.Load(cfg.Model)
	if err != nil {
		return fmt.Errorf("load models: %w", err)
	}

	raw, err := os.ReadFile(predictInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var rec model.TelemetryRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("decode telemetry: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid telemetry: %w", err)
	}
	res, err := pred.Predict(rec)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
