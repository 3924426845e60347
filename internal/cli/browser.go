package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/glosso-dev/glosso/internal/controller"
	"github.com/glosso-dev/glosso/internal/editor"
	"github.com/glosso-dev/glosso/internal/export"
	"github.com/glosso-dev/glosso/internal/glossary"
	"github.com/glosso-dev/glosso/internal/table"
)

// GlossaryBrowserCLI manages the interactive session for browsing and
// editing the glossary table.
type GlossaryBrowserCLI struct {
	*InteractiveCLI
	controller  *controller.Controller
	view        *table.View
	columnOrder string
	exportsDir  string
	status      string
}

// NewGlossaryBrowserCLI creates a new glossary browser CLI. It fetches the
// initial glossary before the first prompt.
func NewGlossaryBrowserCLI(
	ctx context.Context,
	ctrl *controller.Controller,
	rowsPerPage int,
	columnOrder string,
	exportsDir string,
) (*GlossaryBrowserCLI, error) {
	cli := &GlossaryBrowserCLI{
		InteractiveCLI: newInteractiveCLI(),
		controller:     ctrl,
		view:           table.NewView(rowsPerPage),
		columnOrder:    columnOrder,
		exportsDir:     exportsDir,
	}
	if err := ctrl.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("controller.Refresh() > %w", err)
	}
	cli.view.Reload(ctrl.Entries())
	return cli, nil
}

func (cli *GlossaryBrowserCLI) Session(ctx context.Context) error {
	cli.renderTable()
	if cli.status != "" {
		fmt.Fprintln(cli.stdoutWriter, cli.status)
		cli.status = ""
	}

	fmt.Fprint(cli.stdoutWriter, "> ")
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading command input: %w", err)
	}
	command, argument := splitCommand(input)

	switch command {
	case "quit", "exit", "q":
		fmt.Fprintln(cli.stdoutWriter, "Bye.")
		return errEnd
	case "help", "?":
		cli.printHelp()
	case "next", "n":
		cli.view.SetPage(cli.view.Page() + 1)
	case "prev", "p":
		cli.view.SetPage(cli.view.Page() - 1)
	case "sort":
		cli.commandSort(argument)
	case "rows":
		cli.commandRows(argument)
	case "search", "/":
		return cli.commandSearch(ctx, argument)
	case "clear":
		return cli.commandSearch(ctx, "")
	case "refresh":
		if err := cli.controller.Refresh(ctx); err != nil {
			cli.status = fmt.Sprintf("Refresh failed: %v", err)
			return nil
		}
		cli.view.Reload(cli.controller.Entries())
	case "add", "a":
		return cli.commandEdit(ctx, nil)
	case "edit", "e":
		row, ok := cli.rowFromArgument(argument)
		if !ok {
			return nil
		}
		entry := row.Entry
		return cli.commandEdit(ctx, &entry)
	case "delete", "d":
		return cli.commandDelete(ctx, argument)
	case "select", "x":
		if row, ok := cli.rowFromArgument(argument); ok {
			cli.view.ToggleSelect(row.ID)
		}
	case "delete-selected", "D":
		return cli.commandDeleteSelected(ctx)
	case "export":
		return cli.commandExport(ctx)
	case "":
	default:
		cli.status = fmt.Sprintf("Unknown command %q. Type 'help' for commands.", command)
	}
	return nil
}

func splitCommand(input string) (string, string) {
	fields := strings.SplitN(strings.TrimSpace(input), " ", 2)
	command := fields[0]
	argument := ""
	if len(fields) == 2 {
		argument = strings.TrimSpace(fields[1])
	}
	return command, argument
}

func (cli *GlossaryBrowserCLI) renderTable() {
	rows := cli.view.VisibleRows()
	query, scope := cli.controller.Query()

	fmt.Fprintln(cli.stdoutWriter)
	header := "Glossary"
	if query != "" {
		header = fmt.Sprintf("Glossary (search %q in %s)", query, scope)
	}
	cli.bold.Fprintln(cli.stdoutWriter, header)

	left, right := "English", "German"
	if cli.columnOrder == "de-en" {
		left, right = right, left
	}
	sortMarker := ""
	if cli.view.SortColumn() != "" {
		sortMarker = fmt.Sprintf("  [sorted by %s %s]", cli.view.SortColumn(), cli.view.SortDirection())
	}
	fmt.Fprintf(cli.stdoutWriter, "%4s  %-36s %-36s%s\n", "#", left, right, sortMarker)

	for i, row := range rows {
		leftWords, rightWords := row.EnWords, row.DeWords
		if cli.columnOrder == "de-en" {
			leftWords, rightWords = rightWords, leftWords
		}
		marker := " "
		if cli.view.IsSelected(row.ID) {
			marker = "*"
		}
		fmt.Fprintf(cli.stdoutWriter, "%s%3d  %-36s %-36s\n", marker, i+1, leftWords, rightWords)
	}
	if len(rows) == 0 {
		cli.italic.Fprintln(cli.stdoutWriter, "  no entries")
	}

	fmt.Fprintf(cli.stdoutWriter, "Page %d/%d, %d entries", cli.view.Page()+1, cli.view.PageCount(), cli.view.TotalRows())
	if cli.view.SelectedCount() > 0 {
		fmt.Fprintf(cli.stdoutWriter, ", %d selected", cli.view.SelectedCount())
	}
	fmt.Fprintln(cli.stdoutWriter)
}

func (cli *GlossaryBrowserCLI) printHelp() {
	fmt.Fprintln(cli.stdoutWriter, `Commands:
  next, prev (n, p)           turn pages
  sort en|de                  sort by a column (repeat to flip or reset)
  rows 5|10|25                rows per page
  search <query> [en|de] (/)  filter entries (clear to reset)
  add (a)                     add a new entry
  edit <row> (e)              edit an entry on this page
  delete <row> (d)            delete an entry on this page
  select <row> (x)            toggle row selection
  delete-selected (D)         delete all selected entries
  export                      write the glossary to the exports directory
  refresh                     reload from the server
  quit (q)                    leave`)
}

func (cli *GlossaryBrowserCLI) commandSort(argument string) {
	switch argument {
	case "en":
		cli.view.RequestSort(table.ColumnEnglish)
	case "de":
		cli.view.RequestSort(table.ColumnGerman)
	default:
		cli.status = "Usage: sort en|de"
	}
}

func (cli *GlossaryBrowserCLI) commandRows(argument string) {
	n, err := strconv.Atoi(argument)
	if err != nil {
		cli.status = "Usage: rows 5|10|25"
		return
	}
	cli.view.SetRowsPerPage(n)
}

func (cli *GlossaryBrowserCLI) commandSearch(ctx context.Context, argument string) error {
	query := argument
	scope := glossary.LanguageAll
	if idx := strings.LastIndex(argument, " "); idx >= 0 {
		if lang, err := glossary.ParseLanguage(argument[idx+1:]); err == nil {
			query = strings.TrimSpace(argument[:idx])
			scope = lang
		}
	}

	if err := cli.controller.Search(ctx, query, scope); err != nil {
		cli.status = fmt.Sprintf("Search failed: %v", err)
		return nil
	}
	cli.view.Reload(cli.controller.Entries())
	cli.view.SetPage(0)
	return nil
}

// rowFromArgument resolves a 1-based row number on the visible page.
func (cli *GlossaryBrowserCLI) rowFromArgument(argument string) (table.Row, bool) {
	rows := cli.view.VisibleRows()
	n, err := strconv.Atoi(argument)
	if err != nil || n < 1 || n > len(rows) {
		cli.status = fmt.Sprintf("Pick a row between 1 and %d.", len(rows))
		return table.Row{}, false
	}
	return rows[n-1], true
}

func (cli *GlossaryBrowserCLI) commandEdit(ctx context.Context, source *glossary.Entry) error {
	session := cli.controller.EditSession(source)

	for session.State() == editor.StateOpen {
		cli.renderDraft(session.Draft())

		if err := cli.promptWords(session, glossary.LanguageEnglish, "English"); err != nil {
			return err
		}
		if err := cli.promptWords(session, glossary.LanguageGerman, "German"); err != nil {
			return err
		}

		confirmed, err := cli.promptConfirmation(session)
		if err != nil {
			return err
		}
		if !confirmed {
			session.Cancel()
			cli.status = "Cancelled."
			return nil
		}

		saved, err := session.Save(ctx)
		if saved {
			cli.view.Reload(cli.controller.Entries())
			cli.status = "Saved."
			return nil
		}
		if errors.Is(err, editor.ErrSessionClosed) {
			return nil
		}
		// Validation and save failures keep the session open with an
		// inline message; loop back into editing.
		if errorState := session.ErrorState(); errorState.IsError {
			fmt.Fprintln(cli.stdoutWriter, errorState.Message)
		}
	}
	return nil
}

func (cli *GlossaryBrowserCLI) renderDraft(draft glossary.Entry) {
	fmt.Fprintln(cli.stdoutWriter)
	if draft.ID == "" {
		cli.bold.Fprintln(cli.stdoutWriter, "New entry")
	} else {
		cli.bold.Fprintln(cli.stdoutWriter, "Edit entry")
	}
	cli.renderDraftWords("English", draft.EN)
	cli.renderDraftWords("German", draft.DE)
}

func (cli *GlossaryBrowserCLI) renderDraftWords(label string, words []glossary.WordEntry) {
	fmt.Fprintf(cli.stdoutWriter, "  %s:", label)
	for _, w := range words {
		if w.Word == "" {
			continue
		}
		if w.Comment != "" {
			fmt.Fprintf(cli.stdoutWriter, " %s(%s)", w.Word, w.Comment)
			continue
		}
		fmt.Fprintf(cli.stdoutWriter, " %s", w.Word)
	}
	fmt.Fprintln(cli.stdoutWriter)
}

// promptWords reads a comma separated word list for one language. A bare
// newline keeps the current words. Each item may carry a comment after a
// colon, e.g. "Apfel:der".
func (cli *GlossaryBrowserCLI) promptWords(session *editor.Session, lang glossary.Language, label string) error {
	fmt.Fprintf(cli.stdoutWriter, "%s words (comma separated, word:comment, empty keeps current): ", label)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading %s words: %w", label, err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	var words []glossary.WordEntry
	for _, item := range strings.Split(input, ",") {
		word, comment, _ := strings.Cut(strings.TrimSpace(item), ":")
		words = append(words, glossary.WordEntry{
			Word:    strings.TrimSpace(word),
			Comment: strings.TrimSpace(comment),
		})
	}
	if err := session.SetWords(lang, words); err != nil {
		return fmt.Errorf("session.SetWords() > %w", err)
	}
	return nil
}

func (cli *GlossaryBrowserCLI) promptConfirmation(session *editor.Session) (bool, error) {
	confirmation := editor.NewConfirmation()
	confirmed := false
	confirmation.Open("", fmt.Sprintf("Save this entry with %d English and %d German words?",
		session.WordListFor(glossary.LanguageEnglish, "English").WordCount(),
		session.WordListFor(glossary.LanguageGerman, "German").WordCount()),
		"", "", func() error {
			confirmed = true
			return nil
		})

	cli.bold.Fprintln(cli.stdoutWriter, confirmation.Title())
	fmt.Fprintf(cli.stdoutWriter, "%s [%s/%s]: ", confirmation.Message(), confirmation.ConfirmLabel(), confirmation.CancelLabel())
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("error reading confirmation: %w", err)
	}
	if answer := strings.ToLower(strings.TrimSpace(input)); answer == "y" || answer == "yes" ||
		strings.EqualFold(answer, confirmation.ConfirmLabel()) {
		if err := confirmation.Confirm(); err != nil {
			return false, err
		}
		return confirmed, nil
	}
	confirmation.Cancel()
	return false, nil
}

func (cli *GlossaryBrowserCLI) commandDelete(ctx context.Context, argument string) error {
	row, ok := cli.rowFromArgument(argument)
	if !ok {
		return nil
	}

	fmt.Fprintf(cli.stdoutWriter, "Delete %q? [y/N]: ", row.EnWords)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading confirmation: %w", err)
	}
	if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
		return nil
	}

	if err := cli.controller.DeleteEntry(ctx, row.ID); err != nil {
		cli.status = fmt.Sprintf("Delete failed: %v", err)
		return nil
	}
	cli.view.Reload(cli.controller.Entries())
	cli.status = "Deleted."
	return nil
}

func (cli *GlossaryBrowserCLI) commandDeleteSelected(ctx context.Context) error {
	ids := cli.view.SelectedIDs()
	if len(ids) == 0 {
		cli.status = "Nothing selected."
		return nil
	}

	fmt.Fprintf(cli.stdoutWriter, "Delete %d selected entries? [y/N]: ", len(ids))
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading confirmation: %w", err)
	}
	if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
		return nil
	}

	if err := cli.controller.DeleteEntries(ctx, ids); err != nil {
		cli.status = fmt.Sprintf("Delete failed: %v", err)
		return nil
	}
	cli.view.ClearSelection()
	cli.view.Reload(cli.controller.Entries())
	cli.status = fmt.Sprintf("Deleted %d entries.", len(ids))
	return nil
}

func (cli *GlossaryBrowserCLI) commandExport(ctx context.Context) error {
	blob, err := cli.controller.ExportJSON(ctx)
	if err != nil {
		cli.status = fmt.Sprintf("Export failed: %v", err)
		return nil
	}
	path, err := export.WriteJSONBlob(cli.exportsDir, blob)
	if err != nil {
		cli.status = fmt.Sprintf("Export failed: %v", err)
		return nil
	}
	cli.status = fmt.Sprintf("Exported to %s", path)
	return nil
}
