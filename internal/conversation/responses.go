// internal/conversation/responses.go
package conversation

import (
	"fmt"
	"strings"

	"finhealth-assistant/internal/models"
)

// Message templates. Callers branch on Response.Kind, never on this text.

func greetingMessage(location string) string {
	if location != "" {
		return fmt.Sprintf("Hello! Great to see you again! I remember you're in %s. "+
			"How can I help you save money on healthcare today?", location)
	}
	return "Hello! I'm your FinHealth assistant. I can help you save money on healthcare " +
		"costs across all 50 US states. What city are you in, and what can I help you with?"
}

func directAnalysisMessage(procedures []string, location string, quotes []models.ProviderQuote, insurance string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Price Comparison for %s in %s**\n\n", strings.Join(procedures, ", "), location)

	cheapest := quotes[0]
	priciest := quotes[len(quotes)-1]
	fmt.Fprintf(&b, "**Best Deal:** %s\n", cheapest.Provider.Name)
	fmt.Fprintf(&b, "- Cash Price: $%.0f\n", cheapest.TotalCashCost)
	fmt.Fprintf(&b, "- You Save: $%.0f\n", cheapest.TotalSavingsCash)
	fmt.Fprintf(&b, "- Rating: %.1f/5\n", cheapest.Provider.Rating)
	fmt.Fprintf(&b, "- Wait Time: %d minutes\n\n", cheapest.Provider.AverageWaitMinutes)

	if insurance != "" {
		fmt.Fprintf(&b, "**With %s Insurance:**\n", insurance)
		b.WriteString("- Your estimated cost could be lower with insurance coverage\n")
		b.WriteString("- Insurance typically covers 70-90% of procedure costs\n\n")
	}

	fmt.Fprintf(&b, "**Price Range in %s:**\n", location)
	fmt.Fprintf(&b, "- Cheapest: $%.0f\n", cheapest.TotalCashCost)
	fmt.Fprintf(&b, "- Most Expensive: $%.0f\n", priciest.TotalCashCost)
	fmt.Fprintf(&b, "- You could save up to $%.0f by choosing the right hospital!\n\n",
		priciest.TotalCashCost-cheapest.TotalCashCost)
	b.WriteString("Would you like to see the full comparison table or get directions to the best hospital?")
	return b.String()
}

func nearbyOptionsMessage(city, original string, quotes []models.ProviderQuote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I couldn't find data for %s, but here are options in nearby %s, Texas:\n\n", original, city)
	cheapest := quotes[0]
	fmt.Fprintf(&b, "**Best Option:** %s\n", cheapest.Provider.Name)
	fmt.Fprintf(&b, "- Cash Price: $%.0f\n", cheapest.TotalCashCost)
	fmt.Fprintf(&b, "- You Save: $%.0f\n", cheapest.TotalSavingsCash)
	fmt.Fprintf(&b, "- Rating: %.1f/5\n\n", cheapest.Provider.Rating)
	fmt.Fprintf(&b, "Would you like to see more options in %s or try another city?", city)
	return b.String()
}

func noDataAvailableMessage(procedures []string, location string) string {
	return fmt.Sprintf("I couldn't find specific pricing data for %s in %s. "+
		"Let me try a nearby major city, or you can ask about a different procedure.",
		strings.Join(procedures, ", "), location)
}

func noDataMessage(location string) string {
	return fmt.Sprintf("I couldn't find pricing data for %s. "+
		"Let me know a nearby major city, and I'll help you find the best deals!", location)
}

func completeAnalysisMessage(procedures []string, location string, quotes []models.ProviderQuote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Perfect! Here's the pricing for %s in %s:\n\n", strings.Join(procedures, ", "), location)
	cheapest := quotes[0]
	fmt.Fprintf(&b, "**Best Deal:** %s\n", cheapest.Provider.Name)
	fmt.Fprintf(&b, "- Cash Price: $%.0f\n", cheapest.TotalCashCost)
	fmt.Fprintf(&b, "- Rating: %.1f/5\n\n", cheapest.Provider.Rating)
	b.WriteString("Would you like to see the full comparison or information about insurance coverage?")
	return b.String()
}

func locationConfirmedMessage(location string) string {
	return fmt.Sprintf("Great! I've noted that you're in %s. What medical procedure or service "+
		"would you like pricing information for? I can help with MRI, X-rays, blood tests, "+
		"and many other procedures.", location)
}

func locationLimitedDataMessage(location string) string {
	return fmt.Sprintf("I've noted that you're in %s. I have limited pricing data for that area, "+
		"but tell me what procedure you need and I'll check nearby options too.", location)
}

const locationUnclearMessage = "I didn't catch your location clearly. Could you tell me your " +
	"city and state? For example: 'Dallas, Texas' or 'Chicago, Illinois'"

func needLocationMessage(procedures []string) string {
	return fmt.Sprintf("I can help you find the best prices for %s! What city are you in "+
		"so I can find the most affordable options near you?", strings.Join(procedures, ", "))
}

const procedureUnclearMessage = "What medical procedure do you need? I can help with MRI, " +
	"X-rays, blood tests, CT scans, ultrasounds, and many other medical services."

const incompleteInfoMessage = "I need both your location and the medical procedure to help you. " +
	"Could you provide the missing information?"

func missingInfoMessage(location string, procedures []string) string {
	var missing []string
	if location == "" {
		missing = append(missing, "your city")
	}
	if len(procedures) == 0 {
		missing = append(missing, "the medical procedure you need")
	}
	return fmt.Sprintf("To find the best prices, I need to know %s. "+
		"Can you provide that information?", strings.Join(missing, " and "))
}

func symptomAnalysisMessage(condition string, procedures []string, location string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your symptoms, you might be experiencing **%s**.\n\n", condition)
	b.WriteString("**Recommended procedures:**\n")
	for _, p := range procedures {
		fmt.Fprintf(&b, "- **%s** - Typically costs $200-$800\n", p)
	}
	if location != "" {
		fmt.Fprintf(&b, "\nI can find the best prices for these procedures in %s. "+
			"Would you like me to compare hospitals?", location)
	} else {
		b.WriteString("\nWhat city are you in? I'll find the most affordable options " +
			"for these procedures near you.")
	}
	return b.String()
}

func hospitalListMessage(location string, quotes []models.ProviderQuote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the top hospitals in %s:\n\n", location)
	for i, q := range quotes {
		emergency := "No"
		if q.Provider.Emergency {
			emergency = "Yes"
		}
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, q.Provider.Name)
		fmt.Fprintf(&b, "- Rating: %.1f/5\n", q.Provider.Rating)
		fmt.Fprintf(&b, "- Emergency Services: %s\n", emergency)
		fmt.Fprintf(&b, "- Average Wait: %d minutes\n\n", q.Provider.AverageWaitMinutes)
	}
	b.WriteString("Would you like pricing information for a specific procedure?")
	return b.String()
}

func noHospitalsMessage(location string) string {
	return fmt.Sprintf("I couldn't find hospital data for %s. Let me know a nearby major city "+
		"and I'll help you find great healthcare options!", location)
}

const needLocationHospitalMessage = "I'd be happy to help you find hospitals! What city are you looking in?"

func emergencyMessage(location string) string {
	var b strings.Builder
	b.WriteString("**EMERGENCY ASSISTANCE**\n\n")
	b.WriteString("**If this is a life-threatening emergency, call 911 immediately!**\n\n")
	if location != "" {
		fmt.Fprintf(&b, "For urgent care in %s:\n", location)
		b.WriteString("- Call 911 for ambulance\n")
		b.WriteString("- Go to nearest emergency room\n")
		b.WriteString("- Call urgent care centers\n\n")
		b.WriteString("Would you like me to find emergency hospitals near you?")
	} else {
		b.WriteString("- Call 911 for immediate help\n")
		b.WriteString("- Go to your nearest emergency room\n")
		b.WriteString("- Tell me your location and I can find emergency hospitals\n")
	}
	return b.String()
}

func emergencyWithProvidersMessage(city string, names []string) string {
	var b strings.Builder
	b.WriteString("**EMERGENCY ASSISTANCE**\n\n")
	b.WriteString("**If this is a life-threatening emergency, call 911 immediately!**\n\n")
	fmt.Fprintf(&b, "Emergency rooms in %s:\n", city)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("\nCall 911 for ambulance transport.")
	return b.String()
}

func contextualHelpMessage(location string, procedures []string) string {
	return fmt.Sprintf("I remember you're in %s and interested in %s. "+
		"Would you like me to find the best prices for you?", location, strings.Join(procedures, ", "))
}

func locationKnownMessage(location string) string {
	return fmt.Sprintf("I know you're in %s. What medical procedure would you like "+
		"pricing information for?", location)
}

const generalHelpMessage = "I can help you save money on healthcare! I can compare hospital prices, " +
	"analyze insurance coverage, and find the best medical care in your area. " +
	"What city are you in and what do you need help with?"

const generalMessage = "I'm here to help you save money on healthcare costs! I can:\n\n" +
	"- Compare hospital prices across all 50 states\n" +
	"- Analyze insurance coverage\n" +
	"- Find the cheapest medical procedures near you\n" +
	"- Help with emergency hospital locations\n\n" +
	"What city are you in and how can I help you today?"

const emptyMessageClarification = "I didn't catch that. Tell me your city and the procedure " +
	"you need, and I'll find the best prices for you."

func insuranceAcceptedMessage(carrier, location string, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the hospitals in %s that accept %s:\n\n", location, carrier)
	for i, name := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	b.WriteString("\nWould you like a price comparison for a specific procedure?")
	return b.String()
}

func insuranceNoMatchMessage(carrier, location string) string {
	return fmt.Sprintf("I couldn't find hospitals in %s that list %s. "+
		"You can still compare cash prices, which are often lower than billed rates.", location, carrier)
}

func insuranceNoPlanMessage(carrier string, known []string) string {
	return fmt.Sprintf("I don't have plan details for %s. I can estimate coverage for: %s.",
		carrier, strings.Join(known, ", "))
}

func insuranceNeedLocationMessage(carrier string) string {
	return fmt.Sprintf("I can check which hospitals accept %s and estimate your coverage. "+
		"What city are you in?", carrier)
}

var greetingSuggestions = []string{
	"Compare hospital prices",
	"Analyze insurance coverage",
	"Find emergency hospitals",
}

var newUserSuggestions = []string{
	"I'm in [city name] and need medical help",
	"Compare insurance plans",
	"Find cheapest hospitals near me",
}

var needLocationSuggestions = []string{
	"I'm in Houston, Texas",
	"Dallas, Texas",
	"Austin, Texas",
	"San Antonio, Texas",
}

var locationConfirmedSuggestions = []string{
	"MRI pricing",
	"X-ray costs",
	"Blood test prices",
	"Physical exam costs",
}

var generalSuggestions = []string{
	"Find cheap hospitals near me",
	"Compare procedure prices",
	"Analyze my insurance",
	"Emergency hospitals",
}
