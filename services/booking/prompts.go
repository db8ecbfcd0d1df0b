package booking

import (
	"fmt"
	"time"

	"vetassist/models"
)

const (
	promptOwnerName = "Great! Let's book your appointment. What is the pet owner's name?"
	promptPetName   = "Thank you! And what is your pet's name?"
	promptPhone     = "Perfect! What phone number can we reach you at?"
	promptDateTime  = "Almost done! When would you prefer to schedule the appointment? (Please provide date and time, e.g., 'January 20, 2026 at 3:00 PM')"

	msgInvalidOwnerName = "Please provide a valid name (at least 2 characters)."
	msgInvalidPetName   = "Please provide your pet's name."
	msgInvalidPhone     = "Please provide a valid phone number (at least 10 digits)."
	msgUnparsableDate   = "I couldn't understand that date/time. Please try again (e.g., 'January 20, 2026 at 3:00 PM')."
	msgDateInPast       = "That date seems to be in the past. Please provide a future date and time."
	msgConfirmOrCancel  = `Please type **"confirm"** to book the appointment or **"cancel"** to start over.`
	msgCancelled        = "No problem! I've cancelled the booking process. Feel free to ask me any veterinary questions or start a new appointment booking whenever you're ready."
	msgUnknownStep      = "Something went wrong. Let's start over. Would you like to book an appointment?"
)

// displayLayout renders appointment times for people.
const displayLayout = "Monday, January 2, 2006 at 3:04 PM"

// FormatDisplayTime renders t for chat replies.
func FormatDisplayTime(t time.Time) string {
	return t.Format(displayLayout)
}

func summaryMessage(data models.CollectedData, at time.Time) string {
	return fmt.Sprintf(`Great! Here's a summary of your appointment request:

📋 **Appointment Details**
• Pet Owner: %s
• Pet Name: %s
• Phone: %s
• Preferred Time: %s

Please type **"confirm"** to book this appointment or **"cancel"** to start over.`,
		deref(data.OwnerName), deref(data.PetName), deref(data.PhoneNumber), FormatDisplayTime(at))
}

func bookedMessage(appointmentID string, data models.CollectedData, at time.Time) string {
	return fmt.Sprintf(`🎉 **Appointment Booked Successfully!**

Your appointment has been scheduled. Here are your details:
• Appointment ID: %s
• Pet Owner: %s
• Pet Name: %s
• Date/Time: %s

We'll contact you at %s to confirm. Is there anything else I can help you with?`,
		appointmentID, deref(data.OwnerName), deref(data.PetName), FormatDisplayTime(at), deref(data.PhoneNumber))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
