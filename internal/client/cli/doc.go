// Package cli provides the interactive film-folio command-line client.
//
// It wires configuration, local storage, the movie catalog and the session
// service into a REPL. Typical flow: restore the previous session, browse
// or search the catalog, log in and keep a favorites list.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Popular and top rated listings with paging, search, movie details
//   - Favorites: add, remove, list and share through S3
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
