package export

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const (
	ContentType     = "text/csv; charset=utf-8"
	DefaultFileName = "myreport.csv"
)

// ContentTypeFor labels CSV written in enc with its WHATWG charset name.
// Encodings without a registered name fall back to utf-8.
func ContentTypeFor(enc encoding.Encoding) string {
	name, err := htmlindex.Name(enc)
	if err != nil || name == "" {
		return ContentType
	}
	return "text/csv; charset=" + name
}

// Disposition returns the Content-Disposition value offering fileName as a
// download.
func Disposition(fileName string) string {
	name := strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(fileName)
	return fmt.Sprintf(`attachment; filename="%s"`, name)
}
