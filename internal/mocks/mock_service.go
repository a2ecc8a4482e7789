package mocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ledgerviz/internal/models"
)

// AuditTotals is the received/done pair behind the dual-bar chart
type AuditTotals struct {
	Received json.Number `json:"received"`
	Done     json.Number `json:"done"`
}

// MockService handles loading mock data for testing
type MockService struct {
	mocksDir string
}

// NewMockService creates a new mock service
func NewMockService(mocksDir string) *MockService {
	return &MockService{
		mocksDir: filepath.Join(mocksDir, "data"),
	}
}

// LoadRecords loads the raw transaction records
func (m *MockService) LoadRecords() ([]models.RawRecord, error) {
	var raw []models.RawRecord
	if err := m.loadTypedJSONFile("records.json", &raw); err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return raw, nil
}

// LoadSkills loads the typed records feeding the radar chart
func (m *MockService) LoadSkills() ([]models.Record, error) {
	var raw []models.RawRecord
	if err := m.loadTypedJSONFile("skills.json", &raw); err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	records, skipped := models.NormalizeAll(raw)
	if skipped > 0 {
		return nil, fmt.Errorf("failed to normalize %d skill records", skipped)
	}
	return records, nil
}

// LoadAudit loads the audit totals
func (m *MockService) LoadAudit() (*AuditTotals, error) {
	var totals AuditTotals
	if err := m.loadTypedJSONFile("audit.json", &totals); err != nil {
		return nil, fmt.Errorf("failed to load audit totals: %w", err)
	}
	return &totals, nil
}

// loadTypedJSONFile loads a JSON file and unmarshals it into the provided type
func (m *MockService) loadTypedJSONFile(filename string, target interface{}) error {
	filePath := filepath.Join(m.mocksDir, filename)
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("failed to unmarshal file %s: %w", filename, err)
	}
	return nil
}
