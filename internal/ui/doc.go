// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the catalog:
//  1. [LoadingView] : Initial refresh with live progress updates
//  2. [GameListView] : Paginated game browser with genre filtering
//  3. [GameDetailView] : Full detail for a selected game
//  4. [DeveloperListView] : Browse studios via charmbracelet/bubbles/list
//  5. [SearchView] : Free-text remote search via charmbracelet/bubbles/textinput
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the CatalogEngine, providing
// non-blocking status reporting during refreshes.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, esc, f, /, d, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
