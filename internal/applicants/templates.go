package applicants

import (
	"embed"
	"html/template"
	"path"
	"strings"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Templates parses the embedded HTML pages.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"base": resumeBase,
	}).ParseFS(templateFiles, "templates/*.html"))
}

// resumeBase returns the file name part of a stored resume path, which may be
// a filesystem path or an s3:// URI.
func resumeBase(p string) string {
	return path.Base(strings.ReplaceAll(p, `\`, "/"))
}
