package render

import "strings"

var slugReplacer = strings.NewReplacer(
	"++", "plusplus",
	"+", "plus",
	"#", "sharp",
	".", "",
	" ", "",
)

// Slugify maps a language or topic name to its simple icons identifier.
// Characters outside the replaced set are kept, the icon just won't render for them.
func Slugify(name string) string {
	return slugReplacer.Replace(strings.ToLower(name))
}

func IconURL(baseURL string, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + Slugify(name)
}
