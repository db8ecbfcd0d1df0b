package booking

import (
	"testing"
	"time"

	"vetassist/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatDisplayTime(t *testing.T) {
	at := time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Tuesday, January 20, 2026 at 3:00 PM", FormatDisplayTime(at))
}

func TestSummaryMessage(t *testing.T) {
	owner, pet, phone := "Jane Doe", "Rex", "555-123-4567"
	data := models.CollectedData{OwnerName: &owner, PetName: &pet, PhoneNumber: &phone}

	msg := summaryMessage(data, time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC))
	assert.Contains(t, msg, "• Pet Owner: Jane Doe")
	assert.Contains(t, msg, "• Pet Name: Rex")
	assert.Contains(t, msg, "• Phone: 555-123-4567")
	assert.Contains(t, msg, "• Preferred Time: Tuesday, January 20, 2026 at 3:00 PM")
}

func TestBookedMessage_MissingFieldsRenderEmpty(t *testing.T) {
	msg := bookedMessage("appt-1", models.CollectedData{}, time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC))
	assert.Contains(t, msg, "• Appointment ID: appt-1")
	assert.Contains(t, msg, "• Pet Owner: \n")
}
