// Package memory provides in-memory repository implementations that
// mirror the storage semantics of the postgres package: unique indexes,
// all-or-nothing access batches, cascading deletes. Intended for
// application-layer tests and local development without a database.
package memory
