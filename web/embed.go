// Package web embeds the static page assets into the binary.
// Placing the embed here (next to the asset files) avoids the
// Go toolchain restriction that //go:embed paths cannot use "..".
package web

import (
	_ "embed"
	"strings"
)

//go:embed fallback.html
var fallbackHTML string

// FallbackTemplate is the page served when the guide template cannot be
// read. It carries a {{MISSING_REASON}} placeholder.
var FallbackTemplate = strings.TrimSpace(fallbackHTML)
