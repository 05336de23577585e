// Package testsupport provides shared helpers for package tests: temp-dir
// backed configs and fixture file creation.
package testsupport
