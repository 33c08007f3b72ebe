// Package converters maps between storage rows (fixed-width string
// slices from the spreadsheet) and the condensed record shapes the rest
// of the system works with.
package converters

import (
	"fmt"
	"strings"

	"github.com/timeey-api/internal/models"
	"github.com/timeey-api/internal/timeutil"
)

// Timesheet sheet column layout: [id, username, date, startTime, endTime,
// totalTime, status, comments]
const timesheetColumns = 8

// RowToUserCredentials converts a [username, password] row. Both cells are
// required non-empty after trimming.
func RowToUserCredentials(row []string) (*models.UserCredentials, error) {
	username := strings.TrimSpace(cell(row, 0))
	password := strings.TrimSpace(cell(row, 1))

	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	return &models.UserCredentials{Username: username, Password: password}, nil
}

// UserCredentialsToRow is the inverse of RowToUserCredentials
func UserCredentialsToRow(creds *models.UserCredentials) []string {
	return []string{creds.Username, creds.Password}
}

// RowToTimesheetRecord converts a timesheet sheet row into the condensed
// record variant it represents. A row with exactly one of endTime and
// totalTime is a data-integrity failure, not an open or closed record.
func RowToTimesheetRecord(row []string) (models.TimesheetRecord, error) {
	id := strings.TrimSpace(cell(row, 0))
	username := strings.TrimSpace(cell(row, 1))
	date := strings.TrimSpace(cell(row, 2))
	startTime := strings.TrimSpace(cell(row, 3))
	endTime := strings.TrimSpace(cell(row, 4))
	totalTime := strings.TrimSpace(cell(row, 5))
	status := strings.TrimSpace(cell(row, 6))
	comments := strings.TrimSpace(cell(row, 7))

	switch {
	case id == "":
		return nil, fmt.Errorf("id is required")
	case username == "":
		return nil, fmt.Errorf("username is required")
	case date == "":
		return nil, fmt.Errorf("date is required")
	case startTime == "":
		return nil, fmt.Errorf("start time is required")
	case status == "":
		return nil, fmt.Errorf("status is required")
	}

	if (endTime == "") != (totalTime == "") {
		return nil, fmt.Errorf(
			"end time and total time must both be present or both be absent, got endTime=%q totalTime=%q",
			endTime, totalTime,
		)
	}

	startDatetime, derr := timeutil.CombineDateAndTime(date, startTime)
	if derr != nil {
		return nil, fmt.Errorf("invalid start: %s", derr.Message)
	}

	if endTime == "" {
		return models.OpenTimesheetRecord{
			ID:            id,
			Username:      username,
			StartDatetime: startDatetime,
			Status:        status,
			Comments:      comments,
		}, nil
	}

	endDatetime, derr := timeutil.CombineDateAndTime(date, endTime)
	if derr != nil {
		return nil, fmt.Errorf("invalid end: %s", derr.Message)
	}

	return models.ClosedTimesheetRecord{
		ID:            id,
		Username:      username,
		StartDatetime: startDatetime,
		EndDatetime:   endDatetime,
		TotalTime:     totalTime,
		Status:        status,
		Comments:      comments,
	}, nil
}

// TimesheetRecordToRow flattens a condensed record back into its storage
// row, splitting each datetime into date and time components. Absent
// optional fields become empty strings.
func TimesheetRecordToRow(record models.TimesheetRecord) ([]string, error) {
	switch r := record.(type) {
	case models.OpenTimesheetRecord:
		date, startTime, derr := timeutil.SeparateDateAndTime(r.StartDatetime)
		if derr != nil {
			return nil, fmt.Errorf("invalid start datetime: %s", derr.Message)
		}
		return []string{r.ID, r.Username, date, startTime, "", "", r.Status, r.Comments}, nil

	case models.ClosedTimesheetRecord:
		date, startTime, derr := timeutil.SeparateDateAndTime(r.StartDatetime)
		if derr != nil {
			return nil, fmt.Errorf("invalid start datetime: %s", derr.Message)
		}
		_, endTime, derr := timeutil.SeparateDateAndTime(r.EndDatetime)
		if derr != nil {
			return nil, fmt.Errorf("invalid end datetime: %s", derr.Message)
		}
		return []string{r.ID, r.Username, date, startTime, endTime, r.TotalTime, r.Status, r.Comments}, nil

	default:
		return nil, fmt.Errorf("unknown timesheet record variant %T", record)
	}
}

// cell tolerates short rows: the sheets API omits trailing empty cells
func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}
