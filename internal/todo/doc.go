// Package todo holds the task list, its persisted snapshot and the view
// helpers used to display it.
//
// The snapshot is stored under a single session key ("tasks") as a JSON
// array, fully overwritten after every store operation:
//
//	[
//	  {"id": 1718000000000, "text": "Buy milk", "isDone": false},
//	  {"id": 1718000000001, "text": "Call mum", "isDone": true}
//	]
//
// # Validation
//
// Snapshots are checked in two stages when they are read back:
//
// 1. JSON Schema validation against an embedded draft-2020-12 schema
//   - array of objects with required "id" (integer), "text" (string)
//     and "isDone" (boolean)
//
// 2. Structural checks
//   - duplicate ids keep the first occurrence
//   - tasks whose text is empty after trimming or longer than the store's
//     maximum are dropped with a warning
//
// A snapshot that fails to parse or validate is discarded and the store
// starts empty; it never fails startup.
//
// Task text is validated on the way in: it is trimmed, must not be empty
// and must not exceed the configured maximum (100 characters by default,
// counted in runes).
//
// # Display order
//
// Stored order is insertion order. Visible applies a filter and a stable
// pending-first sort; that ordering is never written back.
package todo
