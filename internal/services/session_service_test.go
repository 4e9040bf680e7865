// internal/services/session_service_test.go
package services

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/slabdesk/slabdesk-backend/internal/models"
)

// parseSessionSuffix mirrors the SQL suffix extraction in
// nextSessionNumber, so the format and the parser stay in sync.
func parseSessionSuffix(number string) int {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0
	}
	suffix, err := strconv.Atoi(number[idx+1:])
	if err != nil {
		return 0
	}
	return suffix
}

func TestFormatSessionNumber(t *testing.T) {
	assert.Equal(t, "BD-2026-0001", formatSessionNumber(2026, 1))
	assert.Equal(t, "BD-2026-0042", formatSessionNumber(2026, 42))
	assert.Equal(t, "BD-2025-9999", formatSessionNumber(2025, 9999))

	// The sequence keeps going past four digits rather than wrapping.
	assert.Equal(t, "BD-2026-10000", formatSessionNumber(2026, 10000))
}

func TestParseSessionSuffix(t *testing.T) {
	assert.Equal(t, 1, parseSessionSuffix("BD-2026-0001"))
	assert.Equal(t, 42, parseSessionSuffix("BD-2026-0042"))
	assert.Equal(t, 10000, parseSessionSuffix("BD-2026-10000"))

	assert.Equal(t, 0, parseSessionSuffix(""))
	assert.Equal(t, 0, parseSessionSuffix("BD-2026-"))
	assert.Equal(t, 0, parseSessionSuffix("no-dash-here-x"))
	assert.Equal(t, 0, parseSessionSuffix("BD-2026-abcd"))
}

func TestSessionNumbersAreMonotonic(t *testing.T) {
	// The next number is always the max suffix plus one, so a sequence
	// of generated numbers is strictly increasing within a year.
	prev := 0
	for seq := 1; seq <= 50; seq++ {
		number := formatSessionNumber(2026, seq)
		suffix := parseSessionSuffix(number)
		assert.Greater(t, suffix, prev)
		prev = suffix
	}
}

func TestBuildSessionUpdatesEmptyRequest(t *testing.T) {
	req := &UpdateSessionRequest{}
	assert.True(t, req.Empty())
	assert.Empty(t, buildSessionUpdates(req))
}

func TestBuildSessionUpdatesClosedArchives(t *testing.T) {
	status := "closed"
	updates := buildSessionUpdates(&UpdateSessionRequest{Status: &status})

	assert.Equal(t, models.SessionStatusClosed, updates["status"])
	assert.Equal(t, true, updates["archived"])
}

func TestBuildSessionUpdatesOtherStatusesDoNotArchive(t *testing.T) {
	for _, status := range []string{"active", "in_progress", "completed"} {
		s := status
		updates := buildSessionUpdates(&UpdateSessionRequest{Status: &s})

		assert.Equal(t, models.SessionStatus(status), updates["status"])
		assert.NotContains(t, updates, "archived")
	}
}

func TestBuildSessionUpdatesEmptyStringClearsFields(t *testing.T) {
	empty := ""
	updates := buildSessionUpdates(&UpdateSessionRequest{
		Notes:    &empty,
		SellerID: &empty,
		EventID:  &empty,
	})

	assert.Nil(t, updates["notes"])
	assert.Nil(t, updates["seller_id"])
	assert.Nil(t, updates["event_id"])
}

func TestBuildSessionUpdatesSetValues(t *testing.T) {
	notes := "bought at the Dallas show"
	sellerID := uuid.New().String()
	updates := buildSessionUpdates(&UpdateSessionRequest{
		Notes:    &notes,
		SellerID: &sellerID,
	})

	assert.Equal(t, notes, updates["notes"])
	assert.Equal(t, uuid.MustParse(sellerID), updates["seller_id"])
	assert.NotContains(t, updates, "event_id")
}

func TestMapSessionSummaryFallbackNames(t *testing.T) {
	session := models.Session{
		SessionNumber: "BD-2026-0007",
		Status:        models.SessionStatusActive,
	}

	summary := mapSessionSummary(session, 0, cartAggregate{})

	assert.Equal(t, "Unknown Event", summary.EventName)
	assert.Equal(t, "—", summary.SellerName)
	assert.Zero(t, summary.AssetCount)
	assert.Zero(t, summary.TotalValue)
}

func TestMapSessionSummaryJoinsRelationsAndAggregates(t *testing.T) {
	eventID := uuid.New()
	sellerID := uuid.New()
	sentAt := time.Now()

	session := models.Session{
		SessionNumber: "BD-2026-0007",
		Status:        models.SessionStatusCompleted,
		EventID:       &eventID,
		SellerID:      &sellerID,
		SentAt:        &sentAt,
		Event:         &models.Event{Name: "National Card Show"},
		Seller: &models.Seller{
			Contact: models.Contact{Name: "Jordan Hayes"},
		},
	}

	summary := mapSessionSummary(session, 3, cartAggregate{
		Count:          2,
		TotalValue:     450.00,
		ExpectedProfit: 120.50,
	})

	assert.Equal(t, "National Card Show", summary.EventName)
	assert.Equal(t, "Jordan Hayes", summary.SellerName)
	assert.Equal(t, int64(3), summary.EvaluationCount)
	assert.Equal(t, int64(2), summary.CartCount)
	assert.Equal(t, int64(5), summary.AssetCount)
	assert.Equal(t, 450.00, summary.TotalValue)
	assert.Equal(t, 120.50, summary.ExpectedProfit)
	assert.Equal(t, &sentAt, summary.SentAt)
}

func TestSessionRefsSurfacesAttachedIDs(t *testing.T) {
	sellerID := uuid.New().String()
	eventID := uuid.New().String()
	updates := buildSessionUpdates(&UpdateSessionRequest{
		SellerID: &sellerID,
		EventID:  &eventID,
	})

	sellerRef, eventRef := sessionRefs(updates)
	assert.Equal(t, uuid.MustParse(sellerID), *sellerRef)
	assert.Equal(t, uuid.MustParse(eventID), *eventRef)
}

func TestSessionRefsIgnoresClearedAndAbsentIDs(t *testing.T) {
	// Clearing a reference stores NULL; nothing to verify ownership of.
	empty := ""
	updates := buildSessionUpdates(&UpdateSessionRequest{
		SellerID: &empty,
	})

	sellerRef, eventRef := sessionRefs(updates)
	assert.Nil(t, sellerRef)
	assert.Nil(t, eventRef)

	sellerRef, eventRef = sessionRefs(map[string]interface{}{})
	assert.Nil(t, sellerRef)
	assert.Nil(t, eventRef)
}

func TestUpdateSessionRequestEmpty(t *testing.T) {
	notes := "n"
	assert.True(t, (&UpdateSessionRequest{}).Empty())
	assert.False(t, (&UpdateSessionRequest{Notes: &notes}).Empty())
}
