// Package classify maps a candidate media file to a destination identity:
// series name, season, episode number, or an extras/special/movie variant.
//
// Classification is rule-first and deterministic: ordered filename patterns
// (S01E02, 1x02, " - 02", glued two-digit numbers), explicit extras and
// specials keywords, and per-series alias overrides. When the rules are
// inconclusive an optional injected Strategy (an external AI classifier) is
// consulted; its result is cached per input for the duration of a run so a
// fixed filename plus a fixed config always yields the same identity.
//
// Identities that cannot be resolved are marked unresolved and are routed to
// quarantine by the planner rather than to a computed library path.
package classify
