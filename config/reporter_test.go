package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "app.css")
	if err := os.WriteFile(stored, []byte(".a{}"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("css/app.css", stored)
	r.StoreText("records/button", "module /src/button.js")
	r.StoreText("records/button", "second")

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["css/app.css"] != ".a{}" {
		t.Errorf("stored file content = %q", files["css/app.css"])
	}
	if files["records/button"] != "module /src/button.js" {
		t.Errorf("stored data content = %q", files["records/button"])
	}
	versioned := 0
	for name := range files {
		if strings.HasPrefix(name, "records/button-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected one versioned entry, got %d", versioned)
	}
	if !strings.Contains(files["MANIFEST"], "css/app.css") {
		t.Errorf("manifest does not list stored file:\n%s", files["MANIFEST"])
	}
}

func TestReport_StoreCopyRemovesTemporaryCopies(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(dir, "out")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "a.css"), []byte(".x{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("output", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// changes after the copy are not reported
	if err := os.WriteFile(filepath.Join(src, "nested", "a.css"), []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}
	copies := append([]string(nil), r.copies...)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["output/nested/a.css"] != ".x{}" {
		t.Errorf("copied content = %q", files["output/nested/a.css"])
	}
	for _, c := range copies {
		if _, err := os.Stat(c); !os.IsNotExist(err) {
			t.Errorf("temporary copy %s was not removed", c)
		}
	}
	// original is untouched
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source directory removed: %v", err)
	}
}

func TestReport_Concurrent(t *testing.T) {
	conf := ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			r.StoreText("same", "data")
		})
	}
	wg.Wait()

	if len(r.entries) != 16 {
		t.Errorf("expected 16 entries, got %d", len(r.entries))
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreText("a", "b")
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReport_StoreOverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("log", "/tmp/a.log")
	r.Store("log", "/tmp/a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on overwrite")
		}
	}()
	r.Store("log", "/tmp/b.log")
}
