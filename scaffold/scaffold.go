// SPDX-License-Identifier: GPL-3.0-only

// Package scaffold renders the fixed free-tier project templates into small
// in-memory file trees and packages them as zip archives.
package scaffold

import (
	"fmt"
	"slices"
)

// AllowedTemplates is the template allow-set of the free tier.
var AllowedTemplates = []string{"basic-python", "fastapi", "flask"}

func IsAllowed(template string) bool {
	return slices.Contains(AllowedTemplates, template)
}

// Render builds the file tree for a project scaffolded from the given
// template. Paths are slash-separated and relative to the project root.
func Render(project, template string) (map[string][]byte, error) {
	files := map[string][]byte{}
	switch template {
	case "basic-python":
		files[project+"/__init__.py"] = []byte("")
		files["README.md"] = []byte(fmt.Sprintf("# %s\nGenerated by bootstrapper\n", project))
		files["main.py"] = []byte(`print("Hello from generated project")`)
	case "flask":
		files[project+"/app.py"] = []byte("from flask import Flask\napp = Flask(__name__)\n\n@app.route(\"/\")\ndef home():\n    return \"Hello, Flask!\"\n")
		files["requirements.txt"] = []byte("flask")
	case "fastapi":
		files["app/main.py"] = []byte("from fastapi import FastAPI\napp=FastAPI()\n@app.get(\"/\")\ndef root():\n    return {\"msg\":\"Hello FastAPI\"}")
		files["requirements.txt"] = []byte("fastapi\nuvicorn")
	default:
		return nil, fmt.Errorf("unknown template: %s", template)
	}
	return files, nil
}
