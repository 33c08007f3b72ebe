package mocks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/timeey-api/internal/models"
)

// MockCredentialsRepository is a mock implementation of CredentialsRepository
type MockCredentialsRepository struct {
	Credentials []models.UserCredentials
	GetErr      error
}

func NewMockCredentialsRepository() *MockCredentialsRepository {
	return &MockCredentialsRepository{}
}

func (m *MockCredentialsRepository) GetAllUserCredentials(ctx context.Context) ([]models.UserCredentials, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Credentials, nil
}

// MockTimesheetRepository is a mock implementation of TimesheetRepository
type MockTimesheetRepository struct {
	Records []models.TimesheetRecord

	AppendErr error
	UpdateErr error
	GetErr    error

	AppendCalls int
	UpdateCalls int
}

func NewMockTimesheetRepository() *MockTimesheetRepository {
	return &MockTimesheetRepository{}
}

func (m *MockTimesheetRepository) GetTimesheet(ctx context.Context) ([]models.TimesheetRecord, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Records, nil
}

func (m *MockTimesheetRepository) GetTimesheetRecordByID(ctx context.Context, id string) (models.TimesheetRecord, int, error) {
	if m.GetErr != nil {
		return nil, 0, m.GetErr
	}
	for position, record := range m.Records {
		if record.GetID() == id {
			return record, position, nil
		}
	}
	return nil, 0, models.NewError(
		models.ErrRecordNotFound,
		fmt.Sprintf("timesheet record with id: '%s' not found", id),
		http.StatusNotFound,
	)
}

func (m *MockTimesheetRepository) GetClockInRecord(ctx context.Context, username string) (*models.OpenTimesheetRecord, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, record := range m.Records {
		if open, ok := record.(models.OpenTimesheetRecord); ok && open.Username == username {
			return &open, nil
		}
	}
	return nil, nil
}

func (m *MockTimesheetRepository) AppendTimesheet(ctx context.Context, record models.TimesheetRecord) error {
	m.AppendCalls++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Records = append(m.Records, record)
	return nil
}

func (m *MockTimesheetRepository) UpdateTimesheet(ctx context.Context, record models.TimesheetRecord) error {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, existing := range m.Records {
		if existing.GetID() == record.GetID() {
			m.Records[i] = record
			return nil
		}
	}
	return models.NewError(
		models.ErrRecordNotFound,
		fmt.Sprintf("timesheet record with id: '%s' not found", record.GetID()),
		http.StatusNotFound,
	)
}
