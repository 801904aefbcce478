package server

import (
	"embed"
	"html/template"

	"github.com/status-im/arcadia/common"
)

// addressKeep is how many characters of an address stay on each side of the
// ellipsis.
const addressKeep = 6

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"shorten": func(addr string) string { return common.ShortenAddress(addr, addressKeep) },
}).ParseFS(templateFS, "templates/index.html"))
