package models

// Timesheet record statuses. Free-form strings in the sheet, but these are
// the only values this system ever writes.
const (
	StatusClockedIn       = "CLOCKED IN"
	StatusPendingApproval = "PENDING APPROVAL"
	StatusApproved        = "APPROVED"
	StatusRejected        = "REJECTED"
)

// TimesheetRecord is the condensed (client-facing) timesheet record. It is
// a sealed variant: OpenTimesheetRecord when the user is clocked in,
// ClosedTimesheetRecord once clocked out. Consumers switch exhaustively on
// the concrete type instead of probing optional fields.
type TimesheetRecord interface {
	GetID() string
	GetUsername() string
	GetStartDatetime() string
	GetStatus() string

	timesheetRecord()
}

// OpenTimesheetRecord is a record with no end datetime or total time.
// The user is currently clocked in.
type OpenTimesheetRecord struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	StartDatetime string `json:"startDatetime"`
	Status        string `json:"status"`
	Comments      string `json:"comments"`
}

func (r OpenTimesheetRecord) GetID() string            { return r.ID }
func (r OpenTimesheetRecord) GetUsername() string      { return r.Username }
func (r OpenTimesheetRecord) GetStartDatetime() string { return r.StartDatetime }
func (r OpenTimesheetRecord) GetStatus() string        { return r.Status }
func (r OpenTimesheetRecord) timesheetRecord()         {}

// ClosedTimesheetRecord has both an end datetime and a total time.
type ClosedTimesheetRecord struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	StartDatetime string `json:"startDatetime"`
	EndDatetime   string `json:"endDatetime"`
	TotalTime     string `json:"totalTime"`
	Status        string `json:"status"`
	Comments      string `json:"comments"`
}

func (r ClosedTimesheetRecord) GetID() string            { return r.ID }
func (r ClosedTimesheetRecord) GetUsername() string      { return r.Username }
func (r ClosedTimesheetRecord) GetStartDatetime() string { return r.StartDatetime }
func (r ClosedTimesheetRecord) GetStatus() string        { return r.Status }
func (r ClosedTimesheetRecord) timesheetRecord()         {}
