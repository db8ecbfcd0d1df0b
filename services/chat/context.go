package chat

import (
	"fmt"
	"strings"
	"time"

	"vetassist/models"
	"vetassist/services/booking"
)

// maxContextAppointments bounds how many appointments are shown to the model.
const maxContextAppointments = 10

// appointmentContext renders appts as the block prepended to a question for
// the model. It returns "" when there is nothing to show.
func appointmentContext(appts []models.Appointment, loc *time.Location) string {
	if len(appts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(appts))
	for i, appt := range appts {
		at := appt.PreferredDateTime
		if loc != nil {
			at = at.In(loc)
		}
		lines = append(lines, fmt.Sprintf("  %d. Pet: %s, Owner: %s, Date/Time: %s, Status: %s",
			i+1, appt.PetName, appt.OwnerName, booking.FormatDisplayTime(at), appt.Status))
	}

	return "\n\n[SYSTEM CONTEXT - User's booked appointments for this session:\n" +
		strings.Join(lines, "\n") +
		"\nUse this information to answer questions about the user's appointments.]"
}

// enrichMessage prefixes message with the appointment context, if any.
func enrichMessage(message string, appts []models.Appointment, loc *time.Location) string {
	block := appointmentContext(appts, loc)
	if block == "" {
		return message
	}
	return block + "\n\nUser question: " + message
}
