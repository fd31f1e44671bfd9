package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/born-ml/flatmat/internal/bridge"
	"github.com/born-ml/flatmat/internal/diag"
	"github.com/born-ml/flatmat/internal/envconfig"
	"github.com/born-ml/flatmat/internal/kernel"
	"github.com/born-ml/flatmat/internal/logutil"
)

// cli carries what every subcommand needs once flags and environment are read.
type cli struct {
	logger     *slog.Logger
	dispatcher *bridge.Dispatcher
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:          "flatmat",
		Short:        "Dense float64 matrix kernels over flat row-major buffers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := envconfig.LogLevel()
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = slog.LevelDebug
			}
			c.logger = logutil.NewLogger(cmd.ErrOrStderr(), level)

			k := kernel.NewWithConfig(envconfig.ParallelConfig())
			cfg := k.Parallel()
			c.logger.Debug("kernel config", "kernel", k.Name(), "parallel", cfg.Enabled, "workers", cfg.NumWorkers, "min_chunk", cfg.MinChunkSize)
			c.dispatcher = bridge.NewDispatcher(k, c.logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		newVersionCmd(),
		newEvalCmd(c),
		newCallCmd(c),
		newSetupCmd(c),
		newEnvCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flatmat %s\n", version)
		},
	}
}

func newEvalCmd(c *cli) *cobra.Command {
	var req bridge.Request
	var a, b []float64
	var scalar float64

	evalCmd := &cobra.Command{
		Use:   "eval OP",
		Short: "Run one kernel operation and print the JSON response",
		Long: "Run one kernel operation and print the JSON response.\n\nOperations: " +
			strings.Join(bridge.Ops(), ", "),
		Example: "  flatmat eval multiply --a 1,2,3,4 --b 5,6,7,8 --rows 2 --m 2 --n 2\n" +
			"  flatmat eval transpose --a 1,2,3,4,5,6 --rows 2 --columns 3",
		Args:      cobra.ExactArgs(1),
		ValidArgs: bridge.Ops(),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Op = args[0]
			req.A, req.B, req.Scalar = a, b, bridge.Float(scalar)

			resp, err := c.dispatcher.Dispatch(cmd.Context(), req)
			if err != nil {
				return err
			}
			return bridge.EncodeResponses(cmd.OutOrStdout(), []bridge.Response{resp})
		},
	}

	addOperandFlags(evalCmd.Flags(), &a, &b, &scalar)
	addShapeFlags(evalCmd.Flags(), &req)

	return evalCmd
}

func addOperandFlags(fs *pflag.FlagSet, a, b *[]float64, scalar *float64) {
	fs.Float64SliceVar(a, "a", nil, "First operand buffer (comma separated)")
	fs.Float64SliceVar(b, "b", nil, "Second operand buffer (comma separated)")
	fs.Float64Var(scalar, "scalar", 0, "Scalar operand")
}

func addShapeFlags(fs *pflag.FlagSet, req *bridge.Request) {
	fs.IntVar(&req.Rows, "rows", 0, "Rows of a")
	fs.IntVar(&req.Columns, "columns", 0, "Columns of a (transpose)")
	fs.IntVar(&req.M, "m", 0, "Columns of b and of the result (multiply)")
	fs.IntVar(&req.N, "n", 0, "Inner dimension: columns of a, rows of b (multiply)")
}

func newCallCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "call",
		Short: "Read JSON requests from stdin and write one JSON response per line",
		Long: "Read JSON requests from stdin and write one JSON response per line.\n\n" +
			"Input is a JSON array of requests or a stream of request objects:\n" +
			`  {"op":"multiply","a":[1,2,3,4],"b":[5,6,7,8],"rows":2,"m":2,"n":2}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := bridge.DecodeRequests(cmd.InOrStdin())
			if err != nil {
				return err
			}

			resps := c.dispatcher.DispatchAll(cmd.Context(), reqs)
			if err := bridge.EncodeResponses(cmd.OutOrStdout(), resps); err != nil {
				return err
			}

			failed := 0
			for _, resp := range resps {
				if resp.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				c.logger.Warn("requests failed", "failed", failed, "total", len(resps))
				return fmt.Errorf("%d of %d requests failed", failed, len(resps))
			}
			return nil
		},
	}
}

func newSetupCmd(c *cli) *cobra.Command {
	var states, actions int

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Log the number of states and actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := diag.Setup(c.logger, states, actions)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	setupCmd.Flags().IntVar(&states, "states", 0, "Number of states")
	setupCmd.Flags().IntVar(&actions, "actions", 0, "Number of actions")
	return setupCmd
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the effective FLATMAT_* configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := envconfig.AsMap()
			names := make([]string, 0, len(vars))
			for name := range vars {
				names = append(names, name)
			}
			slices.Sort(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				v := vars[name]
				if _, err := fmt.Fprintf(out, "%s=%v\t# %s\n", v.Name, v.Value, v.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
