package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	var got []string
	restore := SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("loaded %d rows", 5)
	restore()

	if len(got) != 1 || got[0] != "loaded 5 rows" {
		t.Errorf("captured %q, want one formatted line", got)
	}
	if Logf == nil {
		t.Fatal("restore left Logf nil")
	}
}

func TestSetLoggerNil(t *testing.T) {
	called := false
	restore := SetLogger(func(string, ...interface{}) { called = true })
	defer restore()

	inner := SetLogger(nil)
	Logf("dropped")
	if called {
		t.Error("nil logger should be a no-op")
	}
	inner()

	Logf("kept")
	if !called {
		t.Error("restore should reinstate the previous logger")
	}
}
