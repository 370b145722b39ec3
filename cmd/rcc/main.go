// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command rcc parses and checks C source files.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/pulanski/rcc/internal/config"
	"github.com/pulanski/rcc/parser"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the global flags and the configuration they produce.
type app struct {
	configPath string
	color      string
	verbosity  int
	logFile    string
	werror     bool
	maxDepth   int
	jobs       int

	cfg *config.Config
	log commonlog.Logger
}

func newRootCmd() *cobra.Command {
	a := new(app)
	rootCmd := &cobra.Command{
		Use:               "rcc",
		Short:             "A resilient C front end",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default "+config.FileName+" if present)")
	flags.StringVar(&a.color, "color", "", "colorize diagnostics: auto, always or never")
	flags.CountVarP(&a.verbosity, "verbose", "v", "log more; repeat for more detail")
	flags.StringVar(&a.logFile, "log", "", "write logs to this file instead of stderr")
	flags.BoolVar(&a.werror, "werror", false, "treat warnings as errors")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "how deeply constructs may nest before the parser gives up")
	flags.IntVarP(&a.jobs, "jobs", "j", 0, "number of files to compile in parallel")

	rootCmd.AddCommand(a.newParseCmd())
	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newTokensCmd())
	rootCmd.AddCommand(a.newASTCmd())
	rootCmd.AddCommand(a.newGrammarCmd())
	rootCmd.AddCommand(a.newLSPCmd())

	return rootCmd
}

// setup loads the configuration, lets flags override it and configures
// logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbosity = a.verbosity
	}
	if flags.Changed("log") {
		cfg.Log.File = a.logFile
	}
	if flags.Changed("werror") {
		cfg.Werror = a.werror
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("jobs") {
		cfg.Jobs = a.jobs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
	a.log = commonlog.GetLogger("rcc")
	a.log.Debugf("configuration: %+v", *cfg)
	return nil
}

func (a *app) parserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(a.cfg.MaxDepth)}
}
