// SPDX-License-Identifier: GPL-3.0-only

package scaffold

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestIsAllowed(t *testing.T) {
	for _, template := range AllowedTemplates {
		if !IsAllowed(template) {
			t.Errorf("Expected template %q to be allowed", template)
		}
	}
	if IsAllowed("django") {
		t.Error("Expected template django to be rejected")
	}
}

func TestRenderFlask(t *testing.T) {
	files, err := Render("myproject", "flask")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	app, ok := files["myproject/app.py"]
	if !ok {
		t.Fatal("Expected myproject/app.py in the rendered tree")
	}
	if !strings.Contains(string(app), "from flask import Flask") {
		t.Error("Expected a flask app module")
	}
	if string(files["requirements.txt"]) != "flask" {
		t.Errorf("Unexpected requirements.txt: %q", files["requirements.txt"])
	}
}

func TestRenderBasicPython(t *testing.T) {
	files, err := Render("demo", "basic-python")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, ok := files["demo/__init__.py"]; !ok {
		t.Error("Expected the package __init__.py")
	}
	if !strings.Contains(string(files["README.md"]), "# demo") {
		t.Errorf("Unexpected README: %q", files["README.md"])
	}
	if _, ok := files["main.py"]; !ok {
		t.Error("Expected main.py")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render("demo", "django"); err == nil {
		t.Fatal("Expected an error for an unknown template")
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	files, err := Render("demo", "fastapi")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	data, err := Archive(files)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Archive is not a readable zip: %v", err)
	}
	if len(zr.File) != len(files) {
		t.Fatalf("Expected %d entries, got %d", len(files), len(zr.File))
	}
	for _, entry := range zr.File {
		want, ok := files[entry.Name]
		if !ok {
			t.Errorf("Unexpected entry %q", entry.Name)
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			t.Fatalf("Failed to open entry %q: %v", entry.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("Failed to read entry %q: %v", entry.Name, err)
		}
		rc.Close()
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("Entry %q content mismatch", entry.Name)
		}
	}
}
