package notify

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/volunteerhub/volunteerhub/internal/db/models"
)

// notificationNamespace is the UUIDv5 namespace for deterministic dedup IDs.
var notificationNamespace = uuid.MustParse("8f3c1a52-4c7e-4c0b-9a33-5d1f2b9e6c41")

// EventRequestDecided notifies the requester that a coordinator approved or
// declined their event request. The dedup key binds one message to one
// (request, status) pair, so re-approving after a decline sends again but
// repeating the same decision does not.
func (s *Service) EventRequestDecided(request *models.EventRequest) {
	if request.ContactEmail == "" {
		return
	}

	var subject, verdict string

	switch request.Status {
	case models.EventRequestApproved:
		subject = fmt.Sprintf("Your event request for %s was approved", request.EventDate.Format("2006-01-02"))
		verdict = "approved"
	case models.EventRequestDeclined:
		subject = fmt.Sprintf("Your event request for %s was declined", request.EventDate.Format("2006-01-02"))
		verdict = "declined"
	default:
		return
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nyour event request for %s (%d sandwiches) was %s.\n\n"+
			"You can check the details in the volunteer portal.\n",
		request.ContactName,
		request.EventDate.Format("2006-01-02"),
		request.SandwichCount,
		verdict,
	)

	dedupID := uuid.NewSHA1(notificationNamespace,
		[]byte(fmt.Sprintf("event-request-%d-%s", request.ID, request.Status))).String()

	s.QueueAndSend(request.ContactEmail, subject, body, dedupID)
}
