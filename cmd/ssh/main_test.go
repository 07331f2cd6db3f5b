package main

import (
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"
)

func TestSizeTracker(t *testing.T) {
	st := newSizeTracker(80, 24)
	st.update(120, 40)
	w, h, err := st.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("getSize() = %d,%d,%v, want 120,40,nil", w, h, err)
	}
}

// The server plays no sound, so it must not link the speaker backend.
func TestServerDoesNotImportAudio(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "main.go", nil, parser.ImportsOnly)
	if err != nil {
		t.Fatalf("parse main.go: %v", err)
	}
	for _, imp := range f.Imports {
		path, _ := strconv.Unquote(imp.Path.Value)
		if strings.HasSuffix(path, "/internal/audio") || strings.HasPrefix(path, "github.com/gopxl/beep") {
			t.Errorf("cmd/ssh imports %s", path)
		}
	}
}
