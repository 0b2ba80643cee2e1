package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	defer SetOutput(io.Discard)
	logger := GetLogger("[test] ")
	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Print("hello")
	if !strings.Contains(buf.String(), "[test] hello") {
		t.Errorf("got %q, want it to contain %q", buf.String(), "[test] hello")
	}

	buf.Reset()
	SetOutput(io.Discard)
	logger.Print("hello")
	if buf.Len() != 0 {
		t.Errorf("got %q after discarding, want empty", buf.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	defer SetOutput(io.Discard)
	logger := GetLogger("[test] ")
	fname := filepath.Join(t.TempDir(), "log")
	err := SetOutputFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	logger.Print("to file")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[test] to file") {
		t.Errorf("got %q, want it to contain %q", content, "[test] to file")
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "nonexistent", "log"))
	if err == nil {
		t.Errorf("got nil error, want non-nil")
	}
}

func TestGetLogger_PrefixPrecedesMessage(t *testing.T) {
	defer SetOutput(io.Discard)
	logger := GetLogger("[test] ")
	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Print("hello")
	line := buf.String()
	if strings.HasPrefix(line, "[test] ") || !strings.HasSuffix(line, " [test] hello\n") {
		t.Errorf("got %q, want timestamp followed by %q", line, "[test] hello")
	}
}
