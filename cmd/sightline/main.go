package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"chosenoffset.com/sightline/internal/logger"
)

// options are the flags shared by every command.
type options struct {
	configPath string
	los        string
	percent    float64
	scale      float64
	debug      bool
}

func main() {
	_ = godotenv.Load(".env")
	logger.Setup()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "sightline",
		Short:        "Visibility and cover checks for tabletop scenes",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", defaultConfigPath(), "engine config file (YAML)")
	flags.StringVar(&opts.los, "los", "", "override los.algorithm (points, area, area3d)")
	flags.Float64Var(&opts.percent, "percent", -1, "override los.percent_area")
	flags.Float64Var(&opts.scale, "scale", 0, "override footprint.boundary_scale")
	flags.BoolVar(&opts.debug, "debug", false, "log engine decisions")

	root.AddCommand(visibleCmd(opts))
	root.AddCommand(coverCmd(opts))
	root.AddCommand(footprintCmd(opts))
	root.AddCommand(shadowCmd(opts))
	root.AddCommand(matrixCmd(opts))
	root.AddCommand(listCmd())
	root.AddCommand(viewCmd(opts))
	return root
}

func defaultConfigPath() string {
	if p := os.Getenv("SIGHTLINE_CONFIG"); p != "" {
		return p
	}
	return "sightline.yaml"
}

func visibleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "visible [scene] [observer] [target]",
		Short: "Report whether one token can see another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisible(cmd.OutOrStdout(), opts, args[0], args[1], args[2])
		},
	}
}

func coverCmd(opts *options) *cobra.Command {
	var algorithm string
	var all bool

	cmd := &cobra.Command{
		Use:   "cover [scene] [observer] [target]",
		Short: "Classify the cover a target has from an observer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCover(cmd.OutOrStdout(), opts, args[0], args[1], args[2], algorithm, all)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "override cover.algorithm")
	cmd.Flags().BoolVar(&all, "all", false, "classify with every algorithm")
	return cmd
}

func footprintCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "footprint [scene] [token]",
		Short: "Show a token's footprint as cut by walls",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFootprint(cmd.OutOrStdout(), opts, args[0], args[1])
		},
	}
}

func shadowCmd(opts *options) *cobra.Command {
	var z float64

	cmd := &cobra.Command{
		Use:   "shadow [scene] [observer]",
		Short: "Show how much of an observer's line of sight survives at an elevation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShadow(cmd.OutOrStdout(), opts, args[0], args[1], z)
		},
	}

	cmd.Flags().Float64VarP(&z, "elevation", "z", 0, "plane elevation")
	return cmd
}

func matrixCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "matrix [scene]",
		Short: "Evaluate visibility and cover between every pair of tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix(cmd.OutOrStdout(), opts, args[0])
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List the scene files in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "scenes"
			if len(args) == 1 {
				dir = args[0]
			}
			return runList(cmd.OutOrStdout(), dir)
		},
	}
}

func viewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "view [scene]",
		Short: "Open the interactive debug viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runView(opts, args[0])
		},
	}
}
