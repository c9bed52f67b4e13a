// Package ui implements an interactive book browser using bubbletea's Elm architecture.
//
// The browser has two views:
//  1. [BrowseView] : Books listed under their category headings
//  2. [ConfirmDeleteView] : Confirm removal of the selected book
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// All remote work goes through a [tasks.Collection]; the model only renders its snapshots.
// Progress updates flow through an optional channel shared with the collection.
//
// Keyboard navigation uses vim-style bindings (j/k, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
