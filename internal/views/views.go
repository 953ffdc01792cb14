package views

import "embed"

//go:embed *.html
var FS embed.FS

// Static tiene los assets que se sirven en /static/.
//
//go:embed static
var Static embed.FS
