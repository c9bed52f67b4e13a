// Package models defines the domain entities exchanged with the book tracking service.
//
// The package contains three categories of types:
//
// 1. Wire entities: the JSON shapes returned by the remote service
//   - [Book] : A tracked reading item with its category and optional review
//   - [Category] : A classification label shared by many books
//   - [Review] : A user's rating and notes for one book
//   - [User] : An account looked up by email at login
//   - [ReportRow] : One category/status aggregate count
//
// 2. Drafts: transient, validated form state for pending writes
//   - [NewBookDraft] : Fields for creating a book and an optional review
//   - [BookEdit] : Optional field changes applied to an existing book
//
// 3. Query state
//   - [FilterSpec] : Substring filters plus sort key and order for the filter endpoint
//
// Drafts and filters implement [Validator]; validation failures wrap shared.ErrValidation.
package models
