package mocks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/timeey-api/internal/database"
	"github.com/timeey-api/internal/models"
)

// MockRangeStore is an in-memory RangeStore. Sheets maps a sheet label to
// its rows, header included. GetCalls counts backend reads so cache tests
// can tell hits from fetches.
type MockRangeStore struct {
	Sheets    map[string][][]string
	Connected bool

	GetCalls    int
	SetCalls    int
	AppendCalls int

	// LastSetRange records the range spec of the most recent SetRange
	LastSetRange string

	GetErr    error
	SetErr    error
	AppendErr error
}

func NewMockRangeStore() *MockRangeStore {
	return &MockRangeStore{
		Sheets:    make(map[string][][]string),
		Connected: true,
	}
}

func (m *MockRangeStore) Connect(ctx context.Context) error {
	m.Connected = true
	return nil
}

func (m *MockRangeStore) GetRange(ctx context.Context, rangeSpec string) ([][]string, error) {
	if !m.Connected {
		return nil, models.NewError(models.ErrServerError, "not connected", http.StatusInternalServerError)
	}
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	rows := m.Sheets[database.SheetLabel(rangeSpec)]
	copied := make([][]string, len(rows))
	copy(copied, rows)
	return copied, nil
}

func (m *MockRangeStore) SetRange(ctx context.Context, rangeSpec string, values [][]string) error {
	if !m.Connected {
		return models.NewError(models.ErrServerError, "not connected", http.StatusInternalServerError)
	}
	m.SetCalls++
	m.LastSetRange = rangeSpec
	if m.SetErr != nil {
		return m.SetErr
	}

	label := database.SheetLabel(rangeSpec)
	var startRow int
	if _, err := fmt.Sscanf(rangeSpec, label+"!A%d", &startRow); err != nil {
		return fmt.Errorf("mock range store: cannot address range %q", rangeSpec)
	}

	rows := m.Sheets[label]
	for i, row := range values {
		index := startRow - 1 + i
		if index < 0 || index >= len(rows) {
			return fmt.Errorf("mock range store: row %d out of range for sheet %q", startRow+i, label)
		}
		rows[index] = row
	}
	return nil
}

func (m *MockRangeStore) AppendRange(ctx context.Context, rangeSpec string, values [][]string) error {
	if !m.Connected {
		return models.NewError(models.ErrServerError, "not connected", http.StatusInternalServerError)
	}
	m.AppendCalls++
	if m.AppendErr != nil {
		return m.AppendErr
	}

	label := database.SheetLabel(rangeSpec)
	m.Sheets[label] = append(m.Sheets[label], values...)
	return nil
}
