// Package feed provides the in-memory core of a social feed: identity
// registration and login, the post/reply graph with engagement counters,
// per-viewer like membership, and free-text feed filtering. It is a library
// meant to be driven by a presentation layer; it exposes no transport of its
// own.
//
// State lives in an embedded in-memory SQLite database owned by a
// RepositoryManager. Construct one per session with OpenDB + Setup and discard
// it when the session ends; nothing survives a restart.
//
// Counter invariants:
//   - A post's reply_count always equals the number of stored replies; reply
//     insertion and the counter bump share one transaction.
//   - Like toggles flip (viewer, post) membership and move like_count by
//     exactly one in the same transaction, flooring at zero. Two toggles by
//     the same viewer always cancel out.
//
// Idea suggestions:
//   - The suggest subpackage holds the contract for the external
//     text-generation collaborator, with vendor adapters under
//     suggest/providers. Results are handed back to the caller and never
//     persisted here.
package feed
