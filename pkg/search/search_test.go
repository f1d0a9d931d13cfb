package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type doc struct {
	Title    string
	Body     string
	Category string
	Phone    string
}

var docs = []doc{
	{Title: "Patient Consent Form", Body: "Standard consent", Category: "Consent", Phone: "(555) 123-4567"},
	{Title: "Treatment Agreement", Body: "Detailed plan", Category: "Treatment"},
	{Title: "X-Ray Consent", Body: "", Category: "Consent"},
	{Title: "Payment Agreement", Body: "Monthly payment plan", Category: "Financial"},
}

func title(d doc) string { return d.Title }
func body(d doc) string  { return d.Body }
func cat(d doc) string   { return d.Category }

func TestFilter_EmptyQueryReturnsInput(t *testing.T) {
	got := Filter(docs, Text("", title, body))
	assert.Equal(t, docs, got)
}

func TestFilter_WhitespaceIsLiteral(t *testing.T) {
	names := []string{"John Doe", "Madonna"}
	id := func(s string) string { return s }

	assert.Empty(t, Filter(names, Text("doe ", id)))
	assert.Equal(t, []string{"John Doe"}, Filter(names, Text(" ", id)))
	assert.Equal(t, []string{"John Doe"}, Filter(names, Text("n d", id)))
	assert.Empty(t, Filter(docs, Text("   ", title, body)))
}

func TestFilter_TextMatchesAnyField(t *testing.T) {
	got := Filter(docs, Text("PLAN", title, body))
	assert.Equal(t, []doc{docs[1], docs[3]}, got)

	for _, d := range got {
		matched := strings.Contains(strings.ToLower(d.Title), "plan") ||
			strings.Contains(strings.ToLower(d.Body), "plan")
		assert.True(t, matched)
	}
}

func TestFilter_AndAcrossPredicates(t *testing.T) {
	got := Filter(docs, Text("consent", title, body), Equal(cat, "Consent"))
	assert.Len(t, got, 2)

	got = Filter(docs, Text("agreement", title), Equal(cat, "Financial"))
	assert.Equal(t, []doc{docs[3]}, got)

	got = Filter(docs, Text("agreement", title), Equal(cat, ""))
	assert.Len(t, got, 2)
}

func TestFilter_NilFieldAndMissingValues(t *testing.T) {
	got := Filter(docs, Text("x-ray", nil, body, title))
	assert.Equal(t, []doc{docs[2]}, got)
}

func TestContainsExact(t *testing.T) {
	phone := func(d doc) string { return d.Phone }
	assert.Len(t, Filter(docs, ContainsExact("123", phone)), 1)
	assert.Len(t, Filter(docs, ContainsExact("", phone)), len(docs))
}

func TestAny(t *testing.T) {
	p := Any(Equal(cat, "Treatment"), Equal(cat, "Financial"))
	assert.Len(t, Filter(docs, p), 2)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := append([]doc(nil), docs...)
	_ = Filter(in, Equal(cat, "Consent"))
	assert.Equal(t, docs, in)
}
