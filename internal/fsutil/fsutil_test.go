package fsutil

// Tests are split by file:
//
// - atomic_test.go: AtomicWriteFrom, OpenDestination, SafeRename, syncDir
// - safe_test.go: EnsureDir, FileExists, FileSize, RemoveIfExists
// - tempfile_test.go: CreateTemp
