package classifier

import (
	"strings"
)

type Topic string

const (
	TopicBudget    Topic = "budget"
	TopicVenue     Topic = "venue"
	TopicVendor    Topic = "vendor"
	TopicTimeline  Topic = "timeline"
	TopicTradition Topic = "tradition"
	TopicDecor     Topic = "decor"
	TopicNone      Topic = "none"
)

// Classifier maps a raw utterance to a topic category.
type Classifier interface {
	Classify(utterance string) Topic
}

type rule struct {
	topic    Topic
	keywords []string
}

// KeywordClassifier matches utterances against an ordered list of keyword
// sets. The first topic with any keyword present as a substring wins;
// earlier rules take priority over later ones.
type KeywordClassifier struct {
	rules []rule
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		rules: []rule{
			{TopicBudget, []string{"budget", "cost", "price"}},
			{TopicVenue, []string{"venue", "location", "place"}},
			{TopicVendor, []string{"vendor", "photographer", "caterer", "decorator"}},
			{TopicTimeline, []string{"timeline", "when", "how long"}},
			{TopicTradition, []string{"tradition", "ceremony", "ritual", "mehndi", "haldi", "sangeet"}},
			{TopicDecor, []string{"decor", "decoration", "theme", "flowers"}},
		},
	}
}

func (c *KeywordClassifier) Classify(utterance string) Topic {
	lower := strings.ToLower(utterance)

	for _, r := range c.rules {
		for _, keyword := range r.keywords {
			if strings.Contains(lower, keyword) {
				return r.topic
			}
		}
	}

	return TopicNone
}
