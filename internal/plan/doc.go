// Package plan turns classified files into an ordered move plan.
//
// The builder computes canonical destination paths, demotes entries whose
// destination is already claimed (by an earlier entry or by an identical file
// on disk) to skip-duplicate, and routes unresolved identities to quarantine.
// Collisions are resolved deterministically: the first source in scan order
// wins, later ones are skipped with a structured reason, never renamed with
// auto-incrementing suffixes.
//
// Entries are executed in the order produced; nothing in the builder touches
// storage beyond read-only existence and size checks.
package plan
