package service_test

import (
	"testing"
	"unicode/utf8"

	"github.com/dangerclosesec/atrium/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips leading filler and title-cases",
			input: "Can you help me plan a trip to Japan?",
			want:  "Plan A Trip To Japan",
		},
		{
			name:  "plain request",
			input: "write a haiku about autumn",
			want:  "Write A Haiku About Autumn",
		},
		{
			name:  "filler stripped and punctuation removed",
			input: "What is a monad?!",
			want:  "A Monad",
		},
		{
			name:  "filler only falls back to default",
			input: "can you help me",
			want:  "New Conversation",
		},
		{
			name:  "empty input falls back to default",
			input: "   ",
			want:  "New Conversation",
		},
		{
			name:  "filler needs a word boundary",
			input: "i needed this yesterday",
			want:  "I Needed This Yesterday",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.DeriveTitle(tc.input))
		})
	}
}

func TestDeriveTitleTruncatesLongInput(t *testing.T) {
	input := "summarize the quarterly financial report for the board meeting next week please"
	got := service.DeriveTitle(input)

	assert.True(t, utf8.RuneCountInString(got) <= 43, "got %q (%d runes)", got, utf8.RuneCountInString(got))
	assert.Contains(t, got, "...")
}

func TestDeriveTitleDeterministic(t *testing.T) {
	input := "Could you please explain how garbage collection works in Go?"
	first := service.DeriveTitle(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, service.DeriveTitle(input))
	}
}
