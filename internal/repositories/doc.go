// Package repositories implements SQLite persistence for the client's local state.
//
// Books, categories and reviews live on the remote service and are never cached here. The only
// local record is the signed-in session:
//   - [SessionRepository] : Saves, loads and clears the single current session row
//
// The schema comes from the embedded migrations run by shared.RunMigrations. Repositories check
// for their table first so a missing `shelf setup` produces a readable error.
package repositories
