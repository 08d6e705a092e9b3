package responder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/vivaha-bot/internal/classifier"
	"github.com/xaenox/vivaha-bot/internal/models"
)

func newGenerator() *Generator {
	return NewGenerator(classifier.NewKeywordClassifier())
}

func destinationQuiz() *models.QuizProfile {
	return &models.QuizProfile{
		Style:      models.StyleDestination,
		Budget:     models.Budget15To25L,
		GuestCount: models.Guests100To300,
	}
}

func traditionalQuiz() *models.QuizProfile {
	return &models.QuizProfile{
		Style:      models.StyleTraditional,
		Budget:     models.Budget15To25L,
		GuestCount: models.Guests100To300,
	}
}

func TestGenerateBudgetResponse(t *testing.T) {
	gen := newGenerator()

	got := gen.Generate("What's the average budget?", nil)
	assert.Contains(t, got, "₹20-25 lakhs")
}

func TestGenerateMultilineFormatting(t *testing.T) {
	gen := newGenerator()

	// Bullet lines and blank separator lines are part of the contract.
	got := gen.Generate("how much does a wedding cost", nil)
	assert.Contains(t, got, "\n• Catering: 40% (₹8-10L)")
	assert.Contains(t, got, "\n\nWould you like a detailed breakdown for your budget range?")

	got = gen.Generate("which vendors do you recommend", nil)
	assert.Contains(t, got, "• Photographers & Videographers\n")
	assert.Contains(t, got, "• Mehndi artists\n")
}

func TestGenerateVenueStyleBranch(t *testing.T) {
	gen := newGenerator()
	utterance := "suggest a venue"

	destination := gen.Generate(utterance, destinationQuiz())
	traditional := gen.Generate(utterance, traditionalQuiz())
	neutral := gen.Generate(utterance, nil)

	assert.NotEqual(t, destination, traditional)
	assert.Equal(t, traditional, neutral)
	assert.Contains(t, destination, "destination weddings")
}

func TestGenerateDecorStyleBranch(t *testing.T) {
	gen := newGenerator()
	utterance := "decor ideas"

	fusion := gen.Generate(utterance, &models.QuizProfile{
		Style:      models.StyleFusion,
		Budget:     models.BudgetUnder15L,
		GuestCount: models.GuestsUnder100,
	})
	neutral := gen.Generate(utterance, nil)

	assert.NotEqual(t, fusion, neutral)
	assert.Contains(t, fusion, "fusion weddings")
	assert.Equal(t, neutral, gen.Generate(utterance, traditionalQuiz()))
}

func TestGenerateFallback(t *testing.T) {
	gen := newGenerator()

	got := gen.Generate("hello", nil)
	for _, area := range []string{"venue", "vendor", "budget", "timeline", "decor"} {
		assert.True(t, strings.Contains(got, area), "fallback should mention %s", area)
	}

	// Deterministic for the same input
	assert.Equal(t, got, gen.Generate("hello", nil))
}

func TestGenerateNeverEmpty(t *testing.T) {
	gen := newGenerator()

	for _, utterance := range []string{"", "venue", "???", "mehndi", "theme", "when"} {
		require.NotEmpty(t, gen.Generate(utterance, nil))
		require.NotEmpty(t, gen.Generate(utterance, destinationQuiz()))
	}
}

func TestWelcome(t *testing.T) {
	gen := newGenerator()

	assert.Contains(t, gen.Welcome(nil), "Welcome to Vivaha Chat Bot!")
	assert.Contains(t, gen.Welcome(traditionalQuiz()), "traditional ceremonies")
	assert.Contains(t, gen.Welcome(destinationQuiz()), "destination wedding at an exotic location")
	assert.Contains(t, gen.Welcome(&models.QuizProfile{Style: models.StyleFusion}), "fusion wedding with modern elements")
}
