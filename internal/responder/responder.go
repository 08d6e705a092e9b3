package responder

import (
	"github.com/xaenox/vivaha-bot/internal/classifier"
	"github.com/xaenox/vivaha-bot/internal/models"
)

const (
	budgetResponse = "The average Indian wedding costs around ₹20-25 lakhs. This typically breaks down as:\n• Catering: 40% (₹8-10L)\n• Decor & Venue: 20% (₹4-5L)\n• Photography: 15% (₹3L)\n• Outfits & Jewelry: 15% (₹3L)\n• Other: 10% (₹2L)\n\nWould you like a detailed breakdown for your budget range?"

	venueResponse = "Great venues for 200-500 guests include heritage hotels, banquet halls, farmhouses, and temple gardens. I can help you find venues in your preferred city. Which location are you considering?"

	venueDestinationResponse = "For destination weddings, popular choices include Jaipur palaces, Goa beaches, Udaipur lake resorts, and Kerala backwaters. Each offers unique cultural experiences and can accommodate 200-500+ guests. Need specific venue recommendations?"

	vendorResponse = "We have a curated network of trusted wedding vendors:\n• Photographers & Videographers\n• Caterers (North/South Indian cuisine specialists)\n• Decorators (traditional & modern themes)\n• Mehndi artists\n• DJs & Live bands\n• Makeup artists\n\nWhich vendors would you like recommendations for?"

	timelineResponse = "The ideal wedding planning timeline is 6-8 months:\n• 6-8 months: Book venue & vendors\n• 4-5 months: Send invitations, finalize decor\n• 2-3 months: Menu tasting, outfit fittings\n• 1 month: Final confirmations & rehearsals\n• 1 week: Last-minute coordination\n\nWhere are you in this timeline?"

	traditionResponse = "Traditional Indian wedding ceremonies include:\n• Mehndi: Henna application with music & dancing\n• Haldi: Turmeric paste ceremony for blessing\n• Sangeet: Musical evening with performances\n• Wedding Day: Baraat, Varmala, Pheras, Vidaai\n\nWould you like detailed planning guidance for any ceremony?"

	decorResponse = "Popular decor elements include marigold garlands, floral mandaps, traditional rangoli, fairy lights, and hanging jasmine. Colors range from vibrant reds and golds to elegant pastels. What style resonates with you?"

	decorFusionResponse = "For fusion weddings, trending themes blend traditional marigold garlands with modern LED installations, pastel color palettes with gold accents, and floral walls mixed with contemporary art. What's your color preference?"

	fallbackResponse = "That's a great question! I'm here to help with venue selection, vendor recommendations, budget planning, ceremony timelines, decor themes, and all aspects of Indian wedding planning. What specific area would you like guidance on?"

	welcomeNoQuiz = "Welcome to Vivaha Chat Bot! I'm here to help you plan your dream Indian wedding. How can I assist you today?"
)

// Generator produces a canned assistant reply for a classified utterance,
// personalized by the user's quiz profile where a style-specific template
// exists. Pure and deterministic.
type Generator struct {
	classifier classifier.Classifier
}

func NewGenerator(clf classifier.Classifier) *Generator {
	return &Generator{classifier: clf}
}

// Generate returns exactly one non-empty response string for the utterance.
// A nil quiz is valid and selects the style-neutral templates.
func (g *Generator) Generate(utterance string, quiz *models.QuizProfile) string {
	switch g.classifier.Classify(utterance) {
	case classifier.TopicBudget:
		return budgetResponse
	case classifier.TopicVenue:
		if quiz != nil && quiz.Style == models.StyleDestination {
			return venueDestinationResponse
		}
		return venueResponse
	case classifier.TopicVendor:
		return vendorResponse
	case classifier.TopicTimeline:
		return timelineResponse
	case classifier.TopicTradition:
		return traditionResponse
	case classifier.TopicDecor:
		if quiz != nil && quiz.Style == models.StyleFusion {
			return decorFusionResponse
		}
		return decorResponse
	default:
		return fallbackResponse
	}
}

// Welcome returns the greeting used to seed an empty conversation.
func (g *Generator) Welcome(quiz *models.QuizProfile) string {
	if quiz == nil {
		return welcomeNoQuiz
	}
	return "Welcome! I see you're planning a " + styleText(quiz.Style) +
		" wedding. I'm excited to help you create your perfect celebration! What would you like to know?"
}

func styleText(style models.WeddingStyle) string {
	switch style {
	case models.StyleTraditional:
		return "traditional ceremonies"
	case models.StyleFusion:
		return "fusion wedding with modern elements"
	case models.StyleDestination:
		return "destination wedding at an exotic location"
	default:
		return "special"
	}
}
