package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/logging"
	"github.com/rhyrak/go-timetable/internal/parser"
	"github.com/rhyrak/go-timetable/internal/validator"
)

type flags struct {
	configFile string
	verbose    bool
	policy     string
	exportDir  string
	check      bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "timetable <problem-file>",
		Short: "Read and validate a course timetabling problem file",
		Long: `Reads a timetabling problem file (Name, Course slots, Lab slots, Courses,
Labs, Not compatible, Unwanted, Preferences, Pair, Partial assignments) and
prints the parsed sections.

Exit status is 2 when the file cannot be opened and 1 when a line is rejected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0])
		},
	}
	cmd.Flags().StringVar(&f.configFile, "config", "", "configuration file (default ./timetable.yaml)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "echo accepted lines and parsed sections")
	cmd.Flags().StringVar(&f.policy, "policy", "", `what a rejected line does: "abort" or "collect"`)
	cmd.Flags().StringVar(&f.exportDir, "export", "", "write the parsed sections as CSV files into this directory")
	cmd.Flags().BoolVar(&f.check, "check", false, "cross-check references between sections")
	return cmd
}

func run(cmd *cobra.Command, f *flags, path string) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Parser.Verbose = f.verbose
	}
	if cmd.Flags().Changed("policy") {
		cfg.Parser.Policy = f.policy
	}
	if cmd.Flags().Changed("export") {
		cfg.Export.Dir = f.exportDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := cfg.ParserOptions()
	opts.Logger = logger

	problem, err := parser.ReadFile(path, opts)
	if problem == nil {
		if err != nil {
			return err
		}
		return fmt.Errorf("no problem read from %s", path)
	}
	if err != nil {
		logger.Warn("problem is incomplete", zap.Error(err))
	}
	parseErr := err

	out := cmd.OutOrStdout()
	csvio.PrintProblem(out, problem)

	if cfg.Export.Dir != "" {
		paths, err := csvio.ExportProblem(problem, cfg.Export.Dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(out, "Exported output to: "+p)
		}
	}

	if f.check {
		valid, msg := validator.Validate(problem)
		fmt.Fprint(out, "\n"+msg)
		if !valid {
			logger.Warn("cross-section check failed", zap.String("file", path))
		}
	}
	return parseErr
}
