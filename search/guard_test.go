package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manhaj/coursesearch/textnorm"
)

func TestIsOpinionWithoutSubject(t *testing.T) {
	tests := []struct {
		query   string
		blocked bool
	}{
		{"is this a good course", true},
		{"do you recommend this", true},
		{"is it worth taking", true},
		{"what do you think", true},
		{"should i start", true},
		{"هل الكورس ده كويس", true},
		{"هل تنصح", true},
		// An opinion pattern with a named subject routes normally.
		{"do you recommend the sql course", false},
		{"should i learn python", false},
		{"هل كورس بايثون كويس", false},
		// No opinion pattern at all.
		{"python", false},
		{"machine learning", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			normalized := textnorm.Normalize(tt.query)
			assert.Equal(t, tt.blocked, IsOpinionWithoutSubject(normalized))
		})
	}
}
