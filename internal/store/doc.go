// Package store implements a flat-file record store: a fixed-schema table
// of string-keyed records persisted as one CSV file.
//
// A Store binds a validated schema to a file path and exposes four
// operations (Create, Retrieve, Query, Update) as its entire contract.
//
// # File layout
//
//   - One header line listing the field names in the order fixed when the
//     file was first created.
//   - Zero or more data lines, one record each, in creation order.
//
// The file does not exist until the first successful Create, which writes
// the header and the first row together. The header's field order is
// authoritative forever after: a store opened with a set-equal but
// differently-ordered schema still reads and writes by the file's own
// order, never the caller's.
//
// # Critical patterns
//
// CP-1: Open-per-operation
//   - Every operation opens the file, performs one pass (or one full
//     rewrite), and closes it. No handle or header is cached between calls.
//
// CP-2: First match wins
//   - Retrieve and Update match the earliest record in file order. No
//     uniqueness is assumed or enforced; callers using non-unique fields
//     get the earliest-inserted match.
//
// CP-3: Fail before mutating
//   - Create and Update validate everything they can before touching the
//     file. Update's full rewrite is the one non-atomic window: a crash
//     mid-rewrite can leave the file truncated.
//
// The store assumes a single logical caller per file path; concurrent
// external writers are undefined behavior. Row encoding and decoding,
// including quoting of embedded delimiters, is delegated to encoding/csv.
package store
