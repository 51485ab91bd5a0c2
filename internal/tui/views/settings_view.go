package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockchat/internal/config"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/rivo/tview"
)

// Settings entries. Only storage and help lead anywhere.
const (
	SettingNotifications = "Уведомления"
	SettingPrivacy       = "Приватность"
	SettingAppearance    = "Оформление"
	SettingStorage       = "Данные и память"
	SettingHelp          = "Помощь"
)

// SettingsView lists the settings sections above the effective config.
type SettingsView struct {
	*tview.Flex
	theme    *ui.Theme
	list     *tview.List
	details  *tview.TextView
	onSelect func(entry string)
}

// NewSettingsView creates the settings page.
func NewSettingsView(theme *ui.Theme) *SettingsView {
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true)
	list.SetBorderColor(theme.BorderColor)
	list.SetBackgroundColor(theme.BgColor)
	list.SetMainTextColor(theme.FgColor)
	list.SetTitle(" Настройки ")
	list.SetTitleColor(theme.TitleColor)

	details := tview.NewTextView().SetDynamicColors(true)
	details.SetBorder(true)
	details.SetBorderColor(theme.BorderColor)
	details.SetBackgroundColor(theme.BgColor)
	details.SetTextColor(theme.FgColor)
	details.SetTitle(" config.toml ")
	details.SetTitleColor(theme.TitleColor)

	sv := &SettingsView{
		Flex:    tview.NewFlex().AddItem(list, 0, 1, true).AddItem(details, 0, 2, false),
		theme:   theme,
		list:    list,
		details: details,
	}
	for _, e := range []string{SettingNotifications, SettingPrivacy, SettingAppearance, SettingStorage, SettingHelp} {
		sv.list.AddItem(e, "", 0, nil)
	}
	list.SetSelectedFunc(func(_ int, entry, _ string, _ rune) {
		if sv.onSelect != nil {
			sv.onSelect(entry)
		}
	})
	return sv
}

// Name implements Component.
func (sv *SettingsView) Name() string { return "settings" }

// Hints implements Component.
func (sv *SettingsView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// SetOnSelect sets the callback for a chosen entry.
func (sv *SettingsView) SetOnSelect(fn func(entry string)) {
	sv.onSelect = fn
}

// List returns the entries list (for focus management).
func (sv *SettingsView) List() *tview.List {
	return sv.list
}

// Update shows the effective configuration.
func (sv *SettingsView) Update(cfg *config.Config, configPath string) {
	sv.details.SetText(formatConfig(sv.theme, cfg, configPath))
}

func formatConfig(theme *ui.Theme, cfg *config.Config, configPath string) string {
	if cfg == nil {
		return ""
	}
	orDefault := func(v string) string {
		if v == "" {
			return "[::d](default)[-:-:-]"
		}
		return tview.Escape(v)
	}
	ct := ui.Tag(theme.CounterColor)
	rows := [][2]string{
		{"file", orDefault(configPath)},
		{"default_session", orDefault(cfg.DefaultSession)},
		{"log_level", orDefault(cfg.LogLevel)},
		{"recording.audio_command", orDefault(strings.Join(cfg.Recording.AudioCommand, " "))},
		{"recording.video_command", orDefault(strings.Join(cfg.Recording.VideoCommand, " "))},
		{"recording.tick_interval", cfg.Recording.TickInterval.String()},
		{"ui.default_chat", orDefault(cfg.UI.DefaultChat)},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, " [::b]%-24s[-:-:-] %s%s[-]\n", r[0], ct, r[1])
	}
	return b.String()
}
