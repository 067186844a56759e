package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON-backed column types. Stored as serialized text so the same models
// run on mysql, postgres and the sqlite test driver.

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dest any, value any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}

// StringList is a JSON array of strings (skills, tags).
type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *StringList) Scan(value any) error        { return jsonScan(l, value) }

// Example is a worked input/output pair shown to candidates.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

type ExampleList []Example

func (l ExampleList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *ExampleList) Scan(value any) error        { return jsonScan(l, value) }

// TestCase is a single input/expected-output check; hidden cases are not
// exposed to candidates.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
}

type TestCaseList []TestCase

func (l TestCaseList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *TestCaseList) Scan(value any) error        { return jsonScan(l, value) }

// TestResult is the verdict for one test case of a submission.
type TestResult struct {
	TestCaseID string `json:"test_case_id"`
	Passed     bool   `json:"passed"`
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
}

type TestResultList []TestResult

func (l TestResultList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *TestResultList) Scan(value any) error        { return jsonScan(l, value) }
