// Package web holds the embedded single-page dashboard UI.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
