package main

import (
	"encoding/json"
	"html/template"
	"net/http"
	"os"

	"chantier-planning/internal/middleware"
)

func resolveUIPath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Tests run from cmd/api; try the repo root.
		p2 := "../../" + path
		if _, err := os.Stat(p2); err == nil {
			return p2
		}
	}
	return path
}

func toJSON(v interface{}) template.HTML {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.HTML(b)
}

func render(w http.ResponseWriter, r *http.Request, data interface{}, files ...string) {
	allFiles := []string{resolveUIPath("ui/templates/layout.html")}
	for _, f := range files {
		allFiles = append(allFiles, resolveUIPath(f))
	}

	tmpl := template.New("layout").Funcs(template.FuncMap{
		"json": toJSON,
	})

	tmpl, err := tmpl.ParseFiles(allFiles...)
	if err != nil {
		http.Error(w, "Template Parse Error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	wrapper := struct {
		Data      interface{}
		CSRFToken string
	}{
		Data:      data,
		CSRFToken: middleware.TokenFromContext(r.Context()),
	}

	if err := tmpl.ExecuteTemplate(w, "layout", wrapper); err != nil {
		http.Error(w, "Template Execute Error: "+err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
