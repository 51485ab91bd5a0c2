package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/matheus3301/mockchat/internal/usage"
	"github.com/rivo/tview"
)

const storageBarWidth = 30

var categoryLabels = map[usage.Category]string{
	usage.Messages: "Сообщения",
	usage.Media:    "Медиа",
	usage.Files:    "Файлы",
	usage.Cache:    "Кэш",
}

// StorageView shows the storage usage report.
type StorageView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewStorageView creates the storage page.
func NewStorageView(theme *ui.Theme) *StorageView {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Данные и память ")
	tv.SetTitleColor(theme.TitleColor)
	return &StorageView{TextView: tv, theme: theme}
}

// Name implements Component.
func (sv *StorageView) Name() string { return "storage" }

// Hints implements Component.
func (sv *StorageView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "c", Description: "Clear cache"},
		{Key: "Esc", Description: "Back"},
	}
}

// Update renders r.
func (sv *StorageView) Update(r *usage.Report) {
	sv.SetText(formatReport(sv.theme, r))
}

func formatReport(theme *ui.Theme, r *usage.Report) string {
	var b strings.Builder
	bc := ui.Tag(theme.BarColor)
	ct := ui.Tag(theme.CounterColor)

	fmt.Fprintf(&b, "\n [::b]Использовано[-:-:-] %s%.1f МБ[-] из %.0f МБ  (свободно %.1f МБ)\n", ct, r.Used, r.Total, r.Free())
	fmt.Fprintf(&b, " %s%s[-] %s\n\n", bc, bar(r.UsedPercent(), storageBarWidth), percentLabel(r.UsedPercent()))

	for _, c := range usage.Categories {
		fmt.Fprintf(&b, " %-10s %s%s[-] %5.1f МБ\n", categoryLabels[c], bc, bar(r.Percent(c), storageBarWidth/2), r.Sizes[c])
	}

	fmt.Fprintf(&b, "\n [::d]Текстовых: %d  Медиа: %d  Файлов: %d  Опросов: %d[-:-:-]\n",
		r.Counts.Text, r.Counts.Media, r.Counts.Files, r.Counts.Polls)
	if r.CanClearCache() {
		b.WriteString("\n Нажмите [::b]c[-:-:-], чтобы очистить кэш\n")
	} else {
		b.WriteString("\n [::d]Кэш пуст[-:-:-]\n")
	}
	return b.String()
}
