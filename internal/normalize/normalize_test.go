package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "Python Intern", "Python Intern"},
		{"collapses runs", "Python \t Intern", "Python Intern"},
		{"newlines and tabs", "Senior\nGo\tEngineer", "Senior Go Engineer"},
		{"trims ends", "  Backend Developer  ", "Backend Developer"},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	for _, s := range []string{"", "  a \n b ", "plain", "\tx\ty\t"} {
		once := Text(s)
		assert.Equal(t, once, Text(once))
	}
}

func TestHash(t *testing.T) {
	a := Hash("https://example.com/jobs/1")
	b := Hash("https://example.com/jobs/1")
	c := Hash("https://example.com/jobs/2")

	assert.Equal(t, a, b, "same input must hash identically")
	assert.NotEqual(t, a, c, "different input must hash differently")
	assert.Len(t, a, 40)

	// Known digest, pins the algorithm across refactors.
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", Hash(""))
}
