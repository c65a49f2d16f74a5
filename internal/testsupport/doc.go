// Package testsupport provides fixtures shared by package tests: a config
// rooted in per-test temp directories, stub ffmpeg binaries on PATH, and a
// history store that closes itself.
package testsupport
