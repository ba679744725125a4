// Package bulkload populates the e-commerce tables from CSV source files and
// clears them again.
//
// One entity is loaded per transaction: the coerced rows of a source file are
// queued into a single pgx.Batch and either all commit or none do. LoadAll walks
// the entities in foreign-key order and stops at the first failing stage, so the
// stages before it stay committed. ClearAll truncates children before parents with
// replication-role triggers relaxed for the duration of the call.
//
// Rows move through three outcomes:
//   - inserted: every field coerced and the batch committed
//   - skipped: a required field was empty
//   - rejected: a field failed to parse or was out of range; reported as a
//     *ecomadmin.ValidationError in the result
package bulkload
