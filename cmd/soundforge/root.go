package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/config"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/generate"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	dev    bool
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		outputDir  string
		sampleRate int
		workers    int
		catPath    string
		logLevel   string
	)

	root := &cobra.Command{
		Use:          "soundforge",
		Short:        "Render the interface sound set as WAV files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("sample-rate") {
				cfg.SampleRate = sampleRate
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("catalog") {
				cfg.CatalogPath = catPath
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := a.newLogger()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&outputDir, "output-dir", "o", "", "directory the WAV files are written to (env SOUNDFORGE_OUTPUT_DIR)")
	pf.IntVar(&sampleRate, "sample-rate", 0, "output sample rate in Hz (env SOUNDFORGE_SAMPLE_RATE)")
	pf.IntVarP(&workers, "workers", "j", 0, "assets rendered in parallel (env SOUNDFORGE_WORKERS)")
	pf.StringVarP(&catPath, "catalog", "c", "", "YAML catalog to render instead of the built-in set (env SOUNDFORGE_CATALOG)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env SOUNDFORGE_LOG_LEVEL)")
	pf.BoolVar(&a.dev, "dev", false, "human-readable console logs")

	root.AddCommand(
		newGenerateCmd(a),
		newListCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) newLogger() (*zap.Logger, error) {
	lvl, err := a.cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if a.dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func (a *app) loadCatalog() (*catalog.Catalog, error) {
	if a.cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(a.cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("loaded catalog", zap.String("path", a.cfg.CatalogPath), zap.Int("assets", len(cat.Assets)))
	return cat, nil
}

func (a *app) newRunner() (*generate.Runner, error) {
	cat, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}
	return generate.New(a.cfg, cat, a.logger)
}
