package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goliatone/go-l10n"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

type rootOptions struct {
	locations []string
	locale    string
	dir       string
	envFile   string
	verbose   bool
}

// NewRootCommand creates the l10n command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "l10n",
		Short:        "Inspect localized resource bundles",
		Long:         "Resolve locale fallbacks, look up messages and typed values, and inspect plural rules.",
		Version:      Version,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringSliceVarP(&opts.locations, "location", "L", nil, "Resource location template, repeatable (overrides L10N_LOCATIONS)")
	flags.StringVarP(&opts.locale, "locale", "l", "", "Locale to resolve, e.g. it_IT (defaults to L10N_DEFAULT_LOCALE)")
	flags.StringVar(&opts.dir, "dir", "", "Base directory for classpath: and relative file: locations")
	flags.StringVar(&opts.envFile, "env-file", "", "Load L10N_* variables from a dotenv file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log resolution details to stderr")

	rootCmd.AddCommand(
		newCandidatesCommand(opts),
		newMessageCommand(opts),
		newSelectCommand(opts),
		newPluralCommand(opts),
		newGetCommand(opts),
		newKeysCommand(opts),
		newRuleCommand(),
	)

	return rootCmd
}

func (o *rootOptions) envConfig() (l10n.EnvConfig, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return l10n.EnvConfig{}, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := l10n.LoadEnvConfig()
	if err != nil {
		return l10n.EnvConfig{}, err
	}
	if len(o.locations) > 0 {
		cfg.Locations = o.locations
	}
	if o.locale != "" {
		cfg.DefaultLocale = o.locale
	}
	if o.dir != "" {
		cfg.BaseDir = o.dir
	}
	return cfg, nil
}

func (o *rootOptions) provider(cmd *cobra.Command) (*l10n.Provider, l10n.Locale, error) {
	cfg, err := o.envConfig()
	if err != nil {
		return nil, l10n.Root, err
	}

	locale, err := l10n.ParseLocale(cfg.DefaultLocale)
	if err != nil {
		return nil, l10n.Root, err
	}

	opts := cfg.Options()
	if cfg.BaseDir != "" {
		opts = append(opts, l10n.WithResourceFS(os.DirFS(cfg.BaseDir)))
	}
	if o.verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, l10n.WithLogger(logger))
	}

	p, err := l10n.New(opts...)
	if err != nil {
		return nil, l10n.Root, err
	}
	return p, locale, nil
}
