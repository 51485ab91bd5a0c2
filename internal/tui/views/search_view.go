package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockchat/internal/index"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// SearchView is a query line above a table of full-text matches.
type SearchView struct {
	*tview.Flex
	theme   *ui.Theme
	input   *tview.InputField
	results *tview.Table
	hits    []index.Result
	onQuery func(query string)
}

// NewSearchView creates the search page.
func NewSearchView(theme *ui.Theme) *SearchView {
	sv := &SearchView{
		theme:   theme,
		results: theme.NewTable(" Results "),
	}
	sv.input = tview.NewInputField().
		SetLabel(" Поиск: ").
		SetLabelColor(theme.MenuKeyColor).
		SetFieldWidth(0).
		SetFieldTextColor(theme.FgColor).
		SetFieldBackgroundColor(theme.BgColor).
		SetDoneFunc(sv.submit)
	sv.input.SetBackgroundColor(theme.BgColor)

	sv.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(sv.input, 1, 0, true).
		AddItem(sv.results, 0, 1, false)
	return sv
}

func (sv *SearchView) submit(key tcell.Key) {
	if key != tcell.KeyEnter || sv.onQuery == nil {
		return
	}
	if q := strings.TrimSpace(sv.input.GetText()); q != "" {
		sv.onQuery(q)
	}
}

// Name implements Component.
func (sv *SearchView) Name() string { return "search" }

// Hints implements Component.
func (sv *SearchView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Search/Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// SetOnQuery registers the handler for submitted queries.
func (sv *SearchView) SetOnQuery(fn func(query string)) { sv.onQuery = fn }

// SetQuery fills the input, as when searching from the command prompt.
func (sv *SearchView) SetQuery(q string) { sv.input.SetText(q) }

// Update shows the matches for query.
func (sv *SearchView) Update(query string, results []index.Result) {
	sv.hits = results
	sv.results.Clear()
	sv.theme.SetHeader(sv.results, " CHAT", " SNIPPET", " TIME")
	sv.results.GetCell(0, 1).SetExpansion(1)

	for i, r := range results {
		sv.results.SetCell(i+1, 0, tview.NewTableCell(" "+sanitizeForTerminal(r.ContactName)).
			SetMaxWidth(25).
			SetTextColor(sv.theme.FgColor))
		sv.results.SetCell(i+1, 1, tview.NewTableCell(" "+highlight(sv.theme, r.Snippet)).
			SetExpansion(1).
			SetTextColor(sv.theme.FgColor))
		sv.results.SetCell(i+1, 2, tview.NewTableCell(" "+r.Time).
			SetTextColor(sv.theme.MutedColor))
	}

	sv.results.SetTitle(fmt.Sprintf(" %q: %d ", query, len(results)))
	if len(results) > 0 {
		sv.results.Select(1, 0)
	}
}

// highlight turns the index's << >> markers into color tags.
func highlight(theme *ui.Theme, snippet string) string {
	return strings.NewReplacer(
		"<<", ui.Tag(theme.TitleColor)+"[::b]",
		">>", "[-:-:-]",
	).Replace(display(snippet))
}

// SelectedResult returns the chat and message id under the cursor.
func (sv *SearchView) SelectedResult() (chatID, messageID int64, ok bool) {
	row, _ := sv.results.GetSelection()
	if row < 1 || row > len(sv.hits) {
		return 0, 0, false
	}
	r := sv.hits[row-1]
	return r.ChatID, r.MessageID, true
}

// Input returns the query field.
func (sv *SearchView) Input() *tview.InputField { return sv.input }

// Results returns the results table.
func (sv *SearchView) Results() *tview.Table { return sv.results }
