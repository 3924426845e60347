package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/glosso-dev/glosso/internal/glossary"
)

type searchLanguage glossary.Language

func (l *searchLanguage) Set(val string) error {
	lang, err := glossary.ParseLanguage(val)
	if err != nil {
		return err
	}
	*l = searchLanguage(lang)
	return nil
}

func (l searchLanguage) String() string {
	return string(l)
}

func (l *searchLanguage) Type() string {
	return "language"
}

var _ pflag.Value = (*searchLanguage)(nil)

func newListCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"search"},
		Short:   "Print glossary entries, optionally filtered by a search query",
		Args:    cobra.MaximumNArgs(1),
	}
	flags := rootCommand.PersistentFlags()

	lang := searchLanguage(glossary.LanguageAll)
	flags.Var(&lang, "lang", "language to search in (en, de or all)")

	rootCommand.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client := newAPIClient(cfg)

		var entries []glossary.Entry
		if len(args) == 1 && args[0] != "" {
			entries, err = client.Search(ctx, args[0], glossary.Language(lang))
			if err != nil {
				return fmt.Errorf("client.Search > %w", err)
			}
		} else {
			entries, err = client.GetAll(ctx)
			if err != nil {
				return fmt.Errorf("client.GetAll > %w", err)
			}
		}

		for _, entry := range entries {
			left := entry.JoinedWords(glossary.LanguageEnglish)
			right := entry.JoinedWords(glossary.LanguageGerman)
			if cfg.Table.ColumnOrder == "de-en" {
				left, right = right, left
			}
			fmt.Printf("%-40s %s\n", left, right)
		}
		fmt.Printf("%d entries\n", len(entries))
		return nil
	}
	return &rootCommand
}
