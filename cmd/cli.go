package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"battery_cycling/internal/chart"
	"battery_cycling/internal/config"
	"battery_cycling/internal/experiment"
	"battery_cycling/internal/simulation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for the steps command.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var configDir string

// newRootCmd builds the CLI. Without a subcommand it serves HTTP.
func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "batsim",
		Short:        "battery cycling simulation service",
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "directory holding config.yml")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP service",
		RunE:  runServe,
	}

	rootCmd.AddCommand(serveCmd, newStepsCmd(), newVariablesCmd(), newSimulateCmd())
	return rootCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	return serve(cfg)
}

func newStepsCmd() *cobra.Command {
	var (
		p      experiment.Params
		output string
	)
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "print the experiment a protocol expands to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.DischargeCRate == 0 {
				p.DischargeCRate = p.ChargeCRate
			}
			steps, err := experiment.Build(p)
			if err != nil {
				return err
			}
			return writeSteps(cmd.OutOrStdout(), steps, output)
		},
	}
	cmd.Flags().StringVar(&p.Mode, "mode", string(experiment.ModeCC), "cycling mode: CC, CV or CCCV")
	cmd.Flags().IntVar(&p.Cycles, "cycles", 1, "number of cycles")
	cmd.Flags().Float64Var(&p.ChargeCRate, "c-rate", 1, "charge C-rate")
	cmd.Flags().Float64Var(&p.DischargeCRate, "discharge-c-rate", 0, "discharge C-rate (defaults to --c-rate)")
	cmd.Flags().Float64Var(&p.VMax, "v-max", simulation.VMax, "upper cut-off voltage")
	cmd.Flags().Float64Var(&p.VMin, "v-min", simulation.VMin, "lower cut-off voltage")
	cmd.Flags().IntVar(&p.RestMinutes, "rest", simulation.RestMinutes, "rest between steps in minutes")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json or yaml")
	return cmd
}

func writeSteps(w io.Writer, steps []experiment.Step, format string) error {
	switch format {
	case outputText:
		for i, s := range steps {
			if _, err := fmt.Fprintf(w, "%3d  %s\n", i+1, s.Instruction); err != nil {
				return err
			}
		}
		return nil
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(steps); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
	}
}

func newVariablesCmd() *cobra.Command {
	var sorted bool
	cmd := &cobra.Command{
		Use:   "variables",
		Short: "list the accepted y-axis variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			vars := simulation.YVariables()
			if sorted {
				vars = simulation.SortedYVariables()
			}
			for _, v := range vars {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), v); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sorted, "sorted", false, "sort alphabetically")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	var (
		req     simulation.Request
		sei     string
		pngPath string
		height  int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "run one simulation through the configured solver and chart it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("sei") {
				req.SEIModel = &sei
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := newRunner(cfg).Run(ctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", simulation.KindOf(err), err)
			}
			return renderResult(cmd.OutOrStdout(), res, height, pngPath)
		},
	}
	cmd.Flags().Float64Var(&req.Current, "current", 1, "C-rate for charge and discharge")
	cmd.Flags().IntVar(&req.Cycles, "cycles", 1, "number of cycles")
	cmd.Flags().StringVar(&req.Mode, "mode", string(experiment.ModeCC), "cycling mode: CC, CV or CCCV")
	cmd.Flags().StringVar(&sei, "sei", "", "SEI sub-model name")
	cmd.Flags().StringVar(&req.XVariable, "x", "Time [s]", "x-axis variable")
	cmd.Flags().StringVar(&req.YVariable, "y", "Voltage [V]", "y-axis variable")
	cmd.Flags().StringVar(&pngPath, "png", "", "also write a PNG chart to this path")
	cmd.Flags().IntVar(&height, "height", chart.DefaultHeight, "terminal chart height")
	return cmd
}

func renderResult(w io.Writer, res *simulation.Result, height int, pngPath string) error {
	graph, err := chart.ASCII(res, height, chart.DefaultWidth)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n%d points\n", graph, res.Points()); err != nil {
		return err
	}
	if pngPath == "" {
		return nil
	}
	if err := chart.SavePNG(pngPath, res); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "wrote %s\n", pngPath)
	return err
}
