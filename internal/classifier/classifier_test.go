package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier(t *testing.T) {
	clf := NewKeywordClassifier()

	tests := []struct {
		name      string
		utterance string
		want      Topic
	}{
		{"budget keyword", "What's my budget looking like?", TopicBudget},
		{"cost keyword", "how much does it cost", TopicBudget},
		{"price keyword", "PRICE of catering", TopicBudget},
		{"venue keyword", "suggest a venue please", TopicVenue},
		{"location keyword", "best location in Goa", TopicVenue},
		{"vendor keyword", "find me a photographer", TopicVendor},
		{"caterer keyword", "need a caterer", TopicVendor},
		{"timeline keyword", "when should I book?", TopicTimeline},
		{"how long phrase", "how long does planning take", TopicTimeline},
		{"tradition keyword", "tell me about the haldi ritual", TopicTradition},
		{"sangeet keyword", "planning the sangeet night", TopicTradition},
		{"decor keyword", "decoration ideas", TopicDecor},
		{"flowers keyword", "which flowers work best", TopicDecor},
		{"no match", "hello there", TopicNone},
		{"empty string", "", TopicNone},
		{"case insensitive", "BUDGET PLEASE", TopicBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clf.Classify(tt.utterance))
		})
	}
}

func TestKeywordClassifierPriorityOrder(t *testing.T) {
	clf := NewKeywordClassifier()

	// budget outranks venue even though both keywords are present
	assert.Equal(t, TopicBudget, clf.Classify("what is the cost of a venue"))

	// venue outranks decor
	assert.Equal(t, TopicVenue, clf.Classify("venue with nice flowers"))

	// vendor mentions do not outrank an earlier budget match
	assert.Equal(t, TopicBudget, clf.Classify("photographer price list"))
}
