package logfmt

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
)

// FmtRecord returns the source location of r as `<file>:<line>`, or the empty
// string if r carries no program counter.
func FmtRecord(r slog.Record, trim bool) string {
	return FmtLocation(r.PC, trim)
}

// FmtLocation resolves pc to `<file>:<line>`. If trim is set, only the base
// name of the file is kept.
func FmtLocation(pc uintptr, trim bool) string {
	if pc == 0 {
		return ""
	}
	fs := runtime.CallersFrames([]uintptr{pc})
	f, _ := fs.Next()
	if f.Line <= 0 {
		return ""
	}
	if trim {
		f.File = filepath.Base(f.File)
	}
	return f.File + `:` + strconv.Itoa(f.Line)
}
