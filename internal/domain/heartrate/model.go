package heartrate

// DefaultThreshold is the heart rate above which a reading counts as a high
// event when the caller gives no threshold.
const DefaultThreshold = 100.0

// Reading is one timestamped heart-rate measurement. Timestamp is kept as
// the raw ISO-8601 string from the dataset and may be malformed.
type Reading struct {
	PatientID string  `db:"patient_id" json:"patientId"`
	Timestamp string  `db:"timestamp" json:"timestamp"`
	HeartRate float64 `db:"heart_rate" json:"heartRate"`
}

type Event struct {
	Timestamp string  `json:"timestamp"`
	HeartRate float64 `json:"heartRate"`
}

// EventsResult lists the readings of a patient above a threshold.
type EventsResult struct {
	PatientID string  `json:"patientId"`
	Count     int     `json:"count"`
	Events    []Event `json:"events"`
}

// AnalyticsResult summarises the readings of a patient inside a window.
// Avg, Min and Max are nil when the window holds no readings.
type AnalyticsResult struct {
	PatientID string   `json:"patientId"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Count     int      `json:"count"`
	Avg       *float64 `json:"avg"`
	Min       *float64 `json:"min"`
	Max       *float64 `json:"max"`
}
