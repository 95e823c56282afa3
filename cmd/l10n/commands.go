package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-l10n"
	"github.com/spf13/cobra"
)

func newCandidatesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "candidates <template>",
		Short:   "List fallback locations probed for a template",
		Example: `  l10n candidates classpath:i18n/messages.properties -l it_IT`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.envConfig()
			if err != nil {
				return err
			}
			locale, err := l10n.ParseLocale(cfg.DefaultLocale)
			if err != nil {
				return err
			}
			candidates, err := l10n.CandidateLocations(args[0], locale)
			if err != nil {
				return err
			}
			for _, candidate := range candidates {
				fmt.Fprintln(cmd.OutOrStdout(), candidate)
			}
			return nil
		},
	}
}

func newMessageCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "message <key> [args...]",
		Short: "Format the message at key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, locale, err := opts.provider(cmd)
			if err != nil {
				return err
			}
			result, found, err := p.MessageFor(cmd.Context(), locale, args[0], anyArgs(args[1:])...)
			return printMessage(cmd, args[0], result, found, err)
		},
	}
}

func newSelectCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select <key> <selector> [args...]",
		Short: "Format the selector entry of the message map at key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, locale, err := opts.provider(cmd)
			if err != nil {
				return err
			}
			result, found, err := p.SelectedMessageFor(cmd.Context(), locale, args[0], args[1], anyArgs(args[2:])...)
			return printMessage(cmd, args[0], result, found, err)
		},
	}
}

func newPluralCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plural <key> <count> [args...]",
		Short: "Format the plural form of the message at key for count",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid count %q: %w", args[1], err)
			}
			p, locale, err := opts.provider(cmd)
			if err != nil {
				return err
			}
			result, found, err := p.PluralMessageFor(cmd.Context(), locale, args[0], count, anyArgs(args[2:])...)
			return printMessage(cmd, args[0], result, found, err)
		},
	}
}

var kindNames = map[string]l10n.Kind{
	"string":  l10n.KindString,
	"bool":    l10n.KindBool,
	"int":     l10n.KindInt,
	"int64":   l10n.KindInt64,
	"float32": l10n.KindFloat32,
	"float64": l10n.KindFloat64,
	"strings": l10n.KindStrings,
	"map":     l10n.KindStringMap,
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value at key converted to a primitive kind",
		Example: `  l10n get retries --kind int
  l10n get colors --kind strings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := kindNames[strings.ToLower(kindName)]
			if !ok {
				return fmt.Errorf("unknown kind %q", kindName)
			}
			p, locale, err := opts.provider(cmd)
			if err != nil {
				return err
			}

			value, err := p.Typed(l10n.WithLocale(cmd.Context(), locale), args[0], kind)
			if err != nil {
				return err
			}
			if value == nil {
				return fmt.Errorf("%w: %s", l10n.ErrMissingTranslation, args[0])
			}

			out := cmd.OutOrStdout()
			switch v := value.(type) {
			case []string:
				for _, item := range v {
					fmt.Fprintln(out, item)
				}
			case map[string]string:
				keys := make([]string, 0, len(v))
				for k := range v {
					keys = append(keys, k)
				}
				slices.Sort(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "%s=%s\n", k, v[k])
				}
			default:
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kindName, "kind", "k", "string", "Value kind: string, bool, int, int64, float32, float64, strings, map")
	return cmd
}

func newKeysCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the keys resolved for the locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, locale, err := opts.provider(cmd)
			if err != nil {
				return err
			}
			view, err := p.ResourcesFor(cmd.Context(), locale)
			if err != nil {
				return err
			}
			for _, key := range view.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}

func newRuleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rule <language> [count...]",
		Short: "Show the plural categories of a language, or the category of each count",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule := l10n.NewPluralRules().RuleFor(args[0])
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				categories := rule.Categories()
				names := make([]string, len(categories))
				for i, category := range categories {
					names[i] = string(category)
				}
				fmt.Fprintf(out, "%s: %s\n", args[0], strings.Join(names, " "))
				return nil
			}

			for _, raw := range args[1:] {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return fmt.Errorf("invalid count %q: %w", raw, err)
				}
				fmt.Fprintf(out, "%d\t%s\n", n, rule.Select(n))
			}
			return nil
		},
	}
}

func printMessage(cmd *cobra.Command, key, result string, found bool, err error) error {
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", l10n.ErrMissingTranslation, key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

func anyArgs(args []string) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		out[i] = arg
	}
	return out
}
