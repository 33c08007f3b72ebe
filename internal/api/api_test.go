package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/api"
	"github.com/timeey-api/internal/config"
	"github.com/timeey-api/internal/mocks"
	"github.com/timeey-api/internal/models"
	"github.com/timeey-api/internal/repository"
	"github.com/timeey-api/internal/service"
)

// errorResponse mirrors the uniform error body
type errorResponse struct {
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"errors"`
}

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockRangeStore) {
	t.Helper()

	store := mocks.NewMockRangeStore()
	store.Sheets["Login Info"] = [][]string{
		{"username", "password"},
		{"user-a", "password-a"},
		{"user-b", "password-b"},
	}
	store.Sheets["Timesheet"] = [][]string{
		{"id", "username", "date", "startTime", "endTime", "totalTime", "status", "comments"},
		{"id-1", "user-a", "2023-10-04", "09:00:00", "17:00:00", "08:00", "APPROVED", ""},
		{"id-2", "user-b", "2023-10-05", "09:00:00", "17:00:00", "08:00", "APPROVED", ""},
		{"id-3", "user-a", "2023-10-05", "10:00:00", "12:00:00", "02:00", "REJECTED", "left early"},
	}

	log := zerolog.Nop()
	repos := repository.New(store, log)
	services := service.NewServices(repos, &config.Config{}, log)
	return api.NewRouter(services, &config.Config{}, log), store
}

func doRequest(router *gin.Engine, method, path, body string, authorize func(*http.Request)) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorize != nil {
		authorize(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUserA(req *http.Request) {
	req.SetBasicAuth("user-a", "password-a")
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", w.Body.String(), err)
	}
	if len(resp.Errors) == 0 {
		t.Fatalf("Expected at least one error in body %q", w.Body.String())
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", resp["status"])
	}
}

func TestListUsers(t *testing.T) {
	router, _ := setupRouter(t)

	// No credentials required for the username list
	w := doRequest(router, "GET", "/api/v1/users", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var usernames []string
	if err := json.Unmarshal(w.Body.Bytes(), &usernames); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	want := []string{"user-a", "user-b"}
	if len(usernames) != len(want) {
		t.Fatalf("Expected %d usernames, got %d", len(want), len(usernames))
	}
	for i := range want {
		if usernames[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], usernames[i])
		}
	}
}

func TestVerifyCredentials(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "POST", "/api/v1/verify-credentials", "", asUserA)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp.Message != "Login successful" {
		t.Errorf("Unexpected message: %q", resp.Message)
	}
}

func TestVerifyCredentials_WrongPassword(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "POST", "/api/v1/verify-credentials", "", func(req *http.Request) {
		req.SetBasicAuth("user-a", "wrong")
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeErrors(t, w)
	if resp.Errors[0].Type != "INVALID_CREDENTIALS" {
		t.Errorf("Expected INVALID_CREDENTIALS, got %s", resp.Errors[0].Type)
	}
}

func TestVerifyCredentials_MissingHeader(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "POST", "/api/v1/verify-credentials", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeErrors(t, w)
	if resp.Errors[0].Type != "MISSING_AUTHORIZATION_HEADER" {
		t.Errorf("Expected MISSING_AUTHORIZATION_HEADER, got %s", resp.Errors[0].Type)
	}
}

func TestClockInEndpoint(t *testing.T) {
	router, store := setupRouter(t)

	w := doRequest(router, "POST", "/api/v1/user/clock-in",
		`{"startDatetime":"2023-10-06T15:56:07-06:00"}`, asUserA)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var record models.OpenTimesheetRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if record.ID == "" {
		t.Error("Expected a generated record id")
	}
	if record.Username != "user-a" {
		t.Errorf("Expected username user-a, got %s", record.Username)
	}
	if record.Status != models.StatusClockedIn {
		t.Errorf("Expected status CLOCKED IN, got %s", record.Status)
	}

	rows := store.Sheets["Timesheet"]
	last := rows[len(rows)-1]
	if last[0] != record.ID {
		t.Errorf("Expected appended row for %s, got %v", record.ID, last)
	}
	if last[2] != "2023-10-06" || last[3] != "15:56:07" {
		t.Errorf("Unexpected stored date and time: %v", last)
	}
}

func TestClockInEndpoint_AlreadyClockedIn(t *testing.T) {
	router, store := setupRouter(t)
	store.Sheets["Timesheet"] = append(store.Sheets["Timesheet"],
		[]string{"id-9", "user-a", "2023-10-06", "09:00:00", "", "", "CLOCKED IN", ""})

	// The body is empty on purpose: the conflict wins over validation
	w := doRequest(router, "POST", "/api/v1/user/clock-in", `{}`, asUserA)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeErrors(t, w)
	if resp.Errors[0].Type != "ALREADY_CLOCKED_IN" {
		t.Errorf("Expected ALREADY_CLOCKED_IN, got %s", resp.Errors[0].Type)
	}
}

func TestClockInEndpoint_MissingStartDatetime(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "POST", "/api/v1/user/clock-in", `{}`, asUserA)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeErrors(t, w)
	if resp.Errors[0].Type != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %s", resp.Errors[0].Type)
	}
	if resp.Errors[0].Message != "StartDatetime is required" {
		t.Errorf("Unexpected message: %q", resp.Errors[0].Message)
	}
}

func TestClockInEndpoint_MalformedBody(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "POST", "/api/v1/user/clock-in", `{not json`, asUserA)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeErrors(t, w)
	if resp.Errors[0].Type != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %s", resp.Errors[0].Type)
	}
}

func TestClockOutEndpoint_NotClockedIn(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "POST", "/api/v1/user/clock-out", `{}`, asUserA)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeErrors(t, w)
	if resp.Errors[0].Type != "NOT_CLOCKED_IN" {
		t.Errorf("Expected NOT_CLOCKED_IN, got %s", resp.Errors[0].Type)
	}
}

func TestClockOutEndpoint_RecordMismatch(t *testing.T) {
	router, store := setupRouter(t)
	store.Sheets["Timesheet"] = append(store.Sheets["Timesheet"],
		[]string{"id-9", "user-a", "2023-10-06", "15:56:07", "", "", "CLOCKED IN", ""})

	w := doRequest(router, "POST", "/api/v1/user/clock-out",
		`{"id":"other-id","endDatetime":"2023-10-06T19:18:51-06:00","totalTime":"03:30"}`, asUserA)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeErrors(t, w)
	if resp.Errors[0].Type != "TIMESHEET_RECORD_MISMATCH" {
		t.Errorf("Expected TIMESHEET_RECORD_MISMATCH, got %s", resp.Errors[0].Type)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "GET", "/api/v1/user/history", "", asUserA)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var records []models.ClosedTimesheetRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	// Only user-a's records, newest start first
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != "id-3" || records[1].ID != "id-1" {
		t.Errorf("Unexpected order: %s, %s", records[0].ID, records[1].ID)
	}
	for _, record := range records {
		if record.Username != "user-a" {
			t.Errorf("Expected only user-a records, got %s", record.Username)
		}
	}
}

func TestHistoryEndpoint_MissingHeader(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "GET", "/api/v1/user/history", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestClockInThenClockOut(t *testing.T) {
	router, store := setupRouter(t)

	w := doRequest(router, "POST", "/api/v1/user/clock-in",
		`{"startDatetime":"2023-10-06T15:56:07-06:00"}`, asUserA)
	if w.Code != http.StatusOK {
		t.Fatalf("Clock-in failed with %d: %s", w.Code, w.Body.String())
	}

	var open models.OpenTimesheetRecord
	if err := json.Unmarshal(w.Body.Bytes(), &open); err != nil {
		t.Fatalf("Failed to decode clock-in body: %v", err)
	}

	body, _ := json.Marshal(models.ClockOutRequest{
		ID:          open.ID,
		EndDatetime: "2023-10-06T19:18:51-06:00",
		TotalTime:   "03:30",
		Comments:    "done for the day",
	})
	w = doRequest(router, "POST", "/api/v1/user/clock-out", string(body), asUserA)
	if w.Code != http.StatusOK {
		t.Fatalf("Clock-out failed with %d: %s", w.Code, w.Body.String())
	}

	var closed models.ClosedTimesheetRecord
	if err := json.Unmarshal(w.Body.Bytes(), &closed); err != nil {
		t.Fatalf("Failed to decode clock-out body: %v", err)
	}
	if closed.ID != open.ID {
		t.Errorf("Expected record %s, got %s", open.ID, closed.ID)
	}
	if closed.Status != models.StatusPendingApproval {
		t.Errorf("Expected status PENDING APPROVAL, got %s", closed.Status)
	}
	if closed.TotalTime != "03:30" {
		t.Errorf("Expected total time 03:30, got %s", closed.TotalTime)
	}

	rows := store.Sheets["Timesheet"]
	updated := rows[len(rows)-1]
	if updated[0] != open.ID || updated[6] != models.StatusPendingApproval {
		t.Errorf("Expected the stored row to be closed, got %v", updated)
	}
	if updated[4] != "19:18:51" || updated[5] != "03:30" {
		t.Errorf("Unexpected stored end time and total: %v", updated)
	}
}
