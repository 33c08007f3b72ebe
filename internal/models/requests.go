package models

// Request bodies carry no gin binding tags on purpose: the clock-in and
// clock-out conflict checks must run before field validation, so the
// service validates the struct itself once the user's clock state allows
// the operation at all.

// ClockInRequest is the body of POST /user/clock-in
type ClockInRequest struct {
	StartDatetime string `json:"startDatetime" validate:"required"`
}

// ClockOutRequest is the body of POST /user/clock-out
type ClockOutRequest struct {
	ID          string `json:"id" validate:"required"`
	EndDatetime string `json:"endDatetime" validate:"required"`
	TotalTime   string `json:"totalTime" validate:"required"`
	Comments    string `json:"comments"`
}

// MessageResponse is a bare acknowledgement body
type MessageResponse struct {
	Message string `json:"message"`
}
