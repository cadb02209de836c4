package booking

import (
	"context"

	"carrental/models"
	"carrental/utils"
)

// Action is something the dashboard lets a role do to a booking.
type Action string

const (
	ActionCancel      Action = "cancel"
	ActionReportIssue Action = "report-issue"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionComplete    Action = "complete"
)

// Dashboard partitions names.
const (
	PartitionActive    = "active"
	PartitionPending   = "pending"
	PartitionCompleted = "completed"
	PartitionCancelled = "cancelled"
)

var roleActions = map[models.Role]map[string][]Action{
	models.RoleRenter: {
		PartitionPending: {ActionCancel},
		PartitionActive:  {ActionReportIssue},
	},
	models.RoleManager: {
		PartitionPending: {ActionApprove, ActionReject},
		PartitionActive:  {ActionComplete, ActionCancel},
	},
	models.RoleDriver: {
		PartitionActive: {ActionReportIssue},
	},
}

// DashboardCounts feeds the KPI cards.
type DashboardCounts struct {
	Total     int     `json:"total"`
	Active    int     `json:"active"`
	Pending   int     `json:"pending"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}

// Dashboard is the single booking view shared by renters, managers and drivers.
type Dashboard struct {
	Role      models.Role         `json:"role"`
	Active    []models.Booking    `json:"active"`
	Pending   []models.Booking    `json:"pending"`
	Completed []models.Booking    `json:"completed"`
	Cancelled []models.Booking    `json:"cancelled"`
	Counts    DashboardCounts     `json:"counts"`
	Actions   map[string][]Action `json:"actions"`
}

// Dashboard loads the actor's bookings and partitions them.
func (s *DefaultBookingService) Dashboard(ctx context.Context, actor models.Actor) (*Dashboard, error) {
	var (
		bookings []models.Booking
		err      error
	)
	switch actor.Role {
	case models.RoleRenter:
		bookings, err = s.Bookings.ListByCustomer(ctx, actor.ID)
	case models.RoleManager:
		bookings, err = s.Bookings.ListAll(ctx, "")
	case models.RoleDriver:
		bookings, err = s.ListForDriver(ctx, actor)
	default:
		return nil, utils.Forbidden(string(models.RoleRenter), string(models.RoleManager), string(models.RoleDriver))
	}
	if err != nil {
		return nil, err
	}
	return BuildDashboard(actor.Role, bookings), nil
}

// BuildDashboard partitions bookings by status. Rejected bookings are grouped with cancelled ones.
func BuildDashboard(role models.Role, bookings []models.Booking) *Dashboard {
	d := &Dashboard{
		Role:      role,
		Active:    []models.Booking{},
		Pending:   []models.Booking{},
		Completed: []models.Booking{},
		Cancelled: []models.Booking{},
		Actions:   map[string][]Action{},
	}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusApproved:
			d.Active = append(d.Active, b)
		case models.StatusPending:
			d.Pending = append(d.Pending, b)
		case models.StatusCompleted:
			d.Completed = append(d.Completed, b)
			d.Counts.Revenue += b.TotalPrice
		case models.StatusCancelled, models.StatusRejected:
			d.Cancelled = append(d.Cancelled, b)
		}
	}
	d.Counts.Total = len(bookings)
	d.Counts.Active = len(d.Active)
	d.Counts.Pending = len(d.Pending)
	d.Counts.Completed = len(d.Completed)
	d.Counts.Cancelled = len(d.Cancelled)
	d.Counts.Revenue = roundCents(d.Counts.Revenue)

	for partition, actions := range roleActions[role] {
		d.Actions[partition] = actions
	}
	return d
}
