// Package main hosts the mediashelf CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into pipeline
// runs: previewing a move plan, applying it with a journal, rolling a journal
// back, and inspecting run history. It centralizes configuration resolution
// and logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
