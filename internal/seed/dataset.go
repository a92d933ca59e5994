package seed

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cardio/cardio/internal/domain/heartrate"
	"github.com/cardio/cardio/internal/domain/patient"
)

// Dataset is the seed document: {"patients": [...], "heartRateReadings": [...]}.
// Either array may be absent.
type Dataset struct {
	Patients          []patient.Patient   `json:"patients"`
	HeartRateReadings []heartrate.Reading `json:"heartRateReadings"`
}

// Decode reads one dataset document.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// Problem is one record-level defect found by Validate. Path points at the
// offending field, e.g. "patients[2].gender".
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// Validate reports records the stores would accept but the API would serve
// oddly. The stores never reject data, so this is advisory.
func (d *Dataset) Validate() []Problem {
	var problems []Problem
	add := func(path, format string, args ...any) {
		problems = append(problems, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	known := make(map[string]int, len(d.Patients))
	for i, p := range d.Patients {
		path := fmt.Sprintf("patients[%d]", i)
		if p.ID == "" {
			add(path+".id", "id is empty")
		} else if first, dup := known[p.ID]; dup {
			add(path+".id", "duplicate id %q, first seen at patients[%d]", p.ID, first)
		} else {
			known[p.ID] = i
		}
		if p.Age < 0 {
			add(path+".age", "age %d is negative", p.Age)
		}
		if !p.Gender.Valid() {
			add(path+".gender", "unknown gender %q", p.Gender)
		}
	}

	for i, r := range d.HeartRateReadings {
		path := fmt.Sprintf("heartRateReadings[%d]", i)
		if _, ok := known[r.PatientID]; !ok {
			add(path+".patientId", "unknown patient %q", r.PatientID)
		}
		if _, ok := heartrate.ParseTimestamp(r.Timestamp); !ok {
			add(path+".timestamp", "malformed timestamp %q", r.Timestamp)
		}
	}

	return problems
}
