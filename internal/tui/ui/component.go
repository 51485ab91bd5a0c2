package ui

// MenuHint describes a keyboard shortcut for display in the menu bar.
type MenuHint struct {
	Key         string
	Description string
	Numeric     bool // digit shortcuts render in their own color
}

// Component is a page of the page stack.
type Component interface {
	// Name is the crumb label of the page.
	Name() string
	// Hints lists the page's own shortcuts for the menu.
	Hints() []MenuHint
}
