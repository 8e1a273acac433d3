package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.pid")

	pf, err := writePIDFile(path, true)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != strconv.Itoa(os.Getpid()) {
		t.Errorf("pid file holds %q", got)
	}

	// Our own PID is alive, so a locked second start is refused
	if _, err := writePIDFile(path, true); err == nil {
		t.Error("second locked start succeeded")
	}

	pf.Remove()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("pid file not removed: %v", err)
	}
}

func TestCorruptedPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.pid")
	if err := os.WriteFile(path, []byte("not-a-pid\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := writePIDFile(path, true); err == nil || !strings.Contains(err.Error(), "corrupted") {
		t.Errorf("err = %v", err)
	}

	// Without locking the file is simply overwritten
	pf, err := writePIDFile(path, false)
	if err != nil {
		t.Fatal(err)
	}
	pf.Remove()
}
