// Package templates embeds the HTML email templates shipped with the
// service. Custom template directories can be mounted over these at
// deploy time by constructing the renderer with an os.DirFS instead.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
