// Package export publishes catalog snapshots to Redis so other processes can
// read the catalog without loading theme files themselves.
//
// # Redis Schema
//
// All keys are namespaced by instance name so several catalogs can share one
// Redis server: fathom:{instance_name}:{entity}[:{id}]
//
// Pieces: fathom:{instance_name}:piece:{piece_id} (hash)
// Piece index: fathom:{instance_name}:pieces (set of piece IDs)
// Themes: fathom:{instance_name}:theme:{theme_name} (hash)
// Theme order: fathom:{instance_name}:themes (list)
// Snapshot: fathom:{instance_name}:snapshot (hash)
//
// After every publish the snapshot is announced as JSON on
// fathom:{instance_name}:snapshot_events.
//
// Publishing replaces the previous snapshot of the same instance in a single
// MULTI/EXEC transaction, so readers never see a mix of two snapshots.
package export
