// Package tasks keeps a local copy of the user's books in step with the remote store.
//
// # Collection
//
// [Collection] owns the book list, its grouped view and the transient filter. Its operations:
//
//  1. [Collection.Load] : Fetch all books (or filtered books), enrich with reviews, replace
//  2. [Collection.Add] : Create a book, then its review when the draft has content and a rating
//     - A failed book creation changes nothing
//     - A failed review creation still commits the book and reports [shared.ErrPartialFailure]
//  3. [Collection.Edit] : Send the full book and replace the local entry with the answer
//  4. [Collection.Delete] : Delete remotely, then remove locally
//  5. [Collection.SuggestCategory] : Ask for a category name; advisory, never mutates
//
// Operations are serialized by a per-collection mutex. The books and grouped view are replaced
// together under a write lock, so readers never see one without the other. After
// [Collection.Close], results arriving from in-flight requests are dropped.
//
// # Review Enrichment
//
// [EnrichReviews] fans out one review lookup per book through an errgroup with a concurrency
// limit. Each lookup yields a [ReviewResult]; failures are logged and never cancel siblings.
// [MergeReviews] attaches successful reviews in input order.
//
// # Grouping
//
// [GroupByCategory] is a pure function of the book list. [CategoryNames] gives every renderer the
// same order: alphabetical with Uncategorized last.
//
// # Progress Reporting
//
// Operations optionally emit [ProgressUpdate]s. Updates use select with default so reporting
// never blocks an operation.
package tasks
