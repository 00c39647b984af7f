package finance

import (
	"strings"
	"testing"

	"yahoofs/document"
)

func parse(t *testing.T, markup string) *document.Document {
	t.Helper()
	doc, err := document.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}
