package booking

import "carrental/utils"

var (
	ErrBookingNotFound   = utils.NewAppError(utils.CodeNotFound, "booking not found")
	ErrCarNotFound       = utils.NewAppError(utils.CodeNotFound, "car not found")
	ErrCarUnavailable    = utils.NewAppError(utils.CodeConflict, "car is not available for booking")
	ErrInvalidTransition = utils.NewAppError(utils.CodeInvalidTransition, "status change not allowed from the current status")
	ErrInvalidType       = utils.NewAppError(utils.CodeInvalidInput, "bookingType must be car-only, car-with-driver or driver-only")
	ErrMissingCar        = utils.NewAppError(utils.CodeInvalidInput, "carId is required")
	ErrEmptyIssue        = utils.NewAppError(utils.CodeInvalidInput, "issue description is required")
	ErrMissingLocation   = utils.NewAppError(utils.CodeInvalidInput, "pickup and dropoff locations need at least 2 characters")
)
