package booking

import "strings"

// viewingPhrases mark questions about existing appointments. They win over booking keywords.
var viewingPhrases = []string{
	"show my",
	"what is my",
	"what's my",
	"when is my",
	"when's my",
	"my current",
	"my existing",
	"my upcoming",
	"remind me",
	"check my",
	"view my",
	"see my",
	"list my",
	"details of my",
}

var bookingKeywords = []string{
	"book",
	"appointment",
	"schedule",
	"visit",
	"checkup",
	"check-up",
	"booking",
	"reserve",
	"slot",
	"meet the vet",
	"see the vet",
	"vet visit",
}

// IsBookingIntent reports whether text asks to book a new appointment.
// Matching is case-insensitive substring search.
func IsBookingIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range viewingPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, keyword := range bookingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
