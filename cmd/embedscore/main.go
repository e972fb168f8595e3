package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/botirk38/embedscore"
	"github.com/botirk38/embedscore/config"
	"github.com/botirk38/embedscore/corpus"
	"github.com/botirk38/embedscore/logging"
	"github.com/botirk38/embedscore/lookup/remote"
	"github.com/botirk38/embedscore/lookup/word2vec"
	"github.com/botirk38/embedscore/metrics"
	"github.com/botirk38/embedscore/options"
	"github.com/botirk38/embedscore/report"
	"github.com/botirk38/embedscore/similarity"
	"github.com/botirk38/embedscore/types"
	"github.com/spf13/cobra"
)

var errNoMetrics = errors.New("no metrics specified: use -A, -X or -G")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "embedscore",
		Short: "Embedding-based similarity scores for generated text",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath(), "config file")

	root.AddCommand(scoreCmd(&cfgFile))
	root.AddCommand(importCmd(&cfgFile))
	root.AddCommand(initCmd(&cfgFile))
	return root
}

// loadConfig reads .env and the YAML config and builds the logger.
func loadConfig(cfgFile string, stderr io.Writer) (*config.AppConfig, *slog.Logger, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(cfg.Logging.Level, cfg.Logging.Format, stderr), nil
}

type scoreFlags struct {
	predicted       string
	groundTruth     string
	embeddings      string
	prefix          string
	lookupType      string
	tokenSimilarity string
	workers         int
	text            bool
	average         bool
	extrema         bool
	greedy          bool
}

// register binds the score flags to cmd.
func (f *scoreFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.predicted, "predicted", "", "predicted text file, one example per line")
	cmd.Flags().StringVar(&f.groundTruth, "ground-truth", "", "ground truth text file, one example per line")
	cmd.Flags().StringVarP(&f.embeddings, "embeddings", "e", "", "word2vec embeddings file")
	cmd.Flags().StringVarP(&f.prefix, "prefix", "p", "", "directory to write <metric>.json score files to")
	cmd.Flags().StringVar(&f.lookupType, "lookup", "", "embedding source: word2vec, redis, openai or gemini")
	cmd.Flags().StringVar(&f.tokenSimilarity, "token-similarity", "",
		"token similarity for greedy matching: "+strings.Join(similarity.Names(), ", ")+" (default: cosine)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "sentence pairs scored concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&f.text, "text", false, "embeddings file is in word2vec text format")
	cmd.Flags().BoolVarP(&f.average, "average", "A", false, "compute embedding average")
	cmd.Flags().BoolVarP(&f.extrema, "extrema", "X", false, "compute vector extrema")
	cmd.Flags().BoolVarP(&f.greedy, "greedy", "G", false, "compute greedy matching")
	_ = cmd.MarkFlagRequired("predicted")
	_ = cmd.MarkFlagRequired("ground-truth")
}

// apply copies the flags set on cmd over cfg, then fills the defaults of the
// resulting lookup type.
func (f *scoreFlags) apply(cmd *cobra.Command, cfg *config.AppConfig) error {
	flags := cmd.Flags()
	if flags.Changed("embeddings") {
		cfg.Lookup.Path = f.embeddings
	}
	if flags.Changed("lookup") {
		cfg.Lookup.Type = f.lookupType
	}
	if flags.Changed("text") {
		cfg.Lookup.Text = f.text
	}
	if flags.Changed("workers") {
		cfg.Scoring.Workers = f.workers
	}
	if flags.Changed("token-similarity") {
		cfg.Scoring.TokenSimilarity = f.tokenSimilarity
	}
	if flags.Changed("prefix") {
		cfg.Output.Prefix = f.prefix
	}
	cfg.ApplyDefaults()
	return cfg.Validate()
}

func scoreCmd(cfgFile *string) *cobra.Command {
	var f scoreFlags

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score predicted text against ground truth",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*cfgFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}

			names := selectMetrics(f.average, f.extrema, f.greedy, cfg.Scoring.Metrics)
			if len(names) == 0 {
				return errNoMetrics
			}

			logger.Info("loading corpora", "predicted", f.predicted, "ground_truth", f.groundTruth)
			hypothesis, reference, err := corpus.LoadPair(f.predicted, f.groundTruth)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			opts := []options.Option{
				options.WithLogger(logger),
				options.WithMetrics(names...),
				options.WithLookupSource(ctx, cfg.LookupType(), cfg.ToLookupConfig(), corpus.Vocabulary(hypothesis, reference)),
			}
			if cfg.Scoring.TokenSimilarity != "" {
				sim, err := similarity.ByName(cfg.Scoring.TokenSimilarity)
				if err != nil {
					return err
				}
				opts = append(opts, options.WithTokenSimilarity(sim))
			}
			if cfg.Scoring.Workers > 0 {
				opts = append(opts, options.WithWorkers(cfg.Scoring.Workers))
			}

			scorer, err := embedscore.New(opts...)
			if err != nil {
				return err
			}

			reports, err := scorer.ScoreAll(ctx, hypothesis, reference)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			params := map[string]string{"embedding": embeddingSource(cfg)}
			if cfg.Scoring.TokenSimilarity != "" {
				params["token_similarity"] = cfg.Scoring.TokenSimilarity
			}
			for _, r := range reports {
				fmt.Fprintf(out, "%s: mean=%.6f ci95=%.6f stddev=%.6f n=%d\n",
					r.Metric, r.Summary.Mean, r.Summary.CI95, r.Summary.StdDev, r.Summary.Count)

				if cfg.Output.Prefix == "" {
					continue
				}
				path, err := report.Write(cfg.Output.Prefix, r, params)
				if err != nil {
					return err
				}
				logger.Info("wrote scores", "metric", r.Metric, "path", path)
			}
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

// selectMetrics returns the metrics chosen on the command line, falling back
// to the configured list when no metric flag is set.
func selectMetrics(average, extrema, greedy bool, configured []string) []string {
	var names []string
	if average {
		names = append(names, metrics.NameAverage)
	}
	if extrema {
		names = append(names, metrics.NameExtrema)
	}
	if greedy {
		names = append(names, metrics.NameGreedy)
	}
	if len(names) == 0 {
		return configured
	}
	return names
}

func embeddingSource(cfg *config.AppConfig) string {
	switch cfg.LookupType() {
	case types.LookupWord2Vec:
		return cfg.Lookup.Path
	case types.LookupRedis:
		return cfg.Lookup.Redis.URL + "/" + cfg.Lookup.Redis.Prefix
	default:
		return cfg.Lookup.Type + "/" + cfg.Lookup.Provider.Model
	}
}

func importCmd(cfgFile *string) *cobra.Command {
	var (
		embeddings string
		redisURL   string
		keyPrefix  string
		text       bool
		flush      bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a word2vec file into Redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*cfgFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			cfg.Lookup.Type = string(types.LookupRedis)
			if redisURL != "" {
				cfg.Lookup.Redis.URL = redisURL
			}
			if keyPrefix != "" {
				cfg.Lookup.Redis.Prefix = keyPrefix
			}
			cfg.ApplyDefaults()
			lc := cfg.ToLookupConfig()

			table, err := word2vec.Load(embeddings, word2vec.Options{Binary: !text, Logger: logger})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := remote.NewStore(ctx, lc, logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if flush {
				if err := store.Flush(ctx); err != nil {
					return err
				}
			}

			n, err := store.Import(ctx, table)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d vectors (dim %d)\n", n, table.Dim())
			return nil
		},
	}

	cmd.Flags().StringVarP(&embeddings, "embeddings", "e", "", "word2vec embeddings file")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis address or redis:// URL")
	cmd.Flags().StringVar(&keyPrefix, "key-prefix", "", "Redis key prefix (default: embedscore:)")
	cmd.Flags().BoolVar(&text, "text", false, "embeddings file is in word2vec text format")
	cmd.Flags().BoolVar(&flush, "flush", false, "delete existing vectors under the prefix first")
	_ = cmd.MarkFlagRequired("embeddings")
	return cmd
}

func initCmd(cfgFile *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *cfgFile
			if path == "" {
				return errors.New("no config path: pass --config")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config %s already exists: use --force to overwrite", path)
			}

			cfg := config.Default()
			cfg.Scoring.Metrics = metrics.Names()
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
