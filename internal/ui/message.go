package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgBooksLoaded MsgKind = iota
	MsgBookDeleted
	MsgCategorySuggested
	MsgProgressUpdate
)

type loadResult struct {
	err error
}

type deleteResult struct {
	id  int64
	err error
}

type suggestResult struct {
	title    string
	category string
	err      error
}

// booksLoadedMsg is the constructor for [MsgBooksLoaded]
func booksLoadedMsg(err error) Msg {
	return Msg{kind: MsgBooksLoaded, data: loadResult{err: err}}
}

// bookDeletedMsg is the constructor for [MsgBookDeleted]
func bookDeletedMsg(id int64, err error) Msg {
	return Msg{kind: MsgBookDeleted, data: deleteResult{id: id, err: err}}
}

// categorySuggestedMsg is the constructor for [MsgCategorySuggested]
func categorySuggestedMsg(title, category string, err error) Msg {
	return Msg{kind: MsgCategorySuggested, data: suggestResult{title: title, category: category, err: err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}
