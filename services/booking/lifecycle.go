package booking

import "carrental/models"

// transitions lists the statuses reachable from each status.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:  {models.StatusApproved, models.StatusRejected, models.StatusCancelled},
	models.StatusApproved: {models.StatusCompleted, models.StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// cancellableBy returns the statuses from which role may cancel.
// Renters may only withdraw a pending request; managers may also cancel an approved booking.
func cancellableBy(role models.Role) []models.BookingStatus {
	switch role {
	case models.RoleRenter:
		return []models.BookingStatus{models.StatusPending}
	case models.RoleManager:
		return []models.BookingStatus{models.StatusPending, models.StatusApproved}
	}
	return nil
}

// managerTargets are the statuses a manager may set through a status update.
var managerTargets = map[models.BookingStatus]bool{
	models.StatusApproved:  true,
	models.StatusRejected:  true,
	models.StatusCompleted: true,
}
