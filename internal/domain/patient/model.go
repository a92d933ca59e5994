package patient

// Gender is the administrative gender of a patient.
type Gender string

const (
	GenderFemale Gender = "FEMALE"
	GenderMale   Gender = "MALE"
	GenderOther  Gender = "OTHER"
)

// Valid reports whether g is one of the known variants.
func (g Gender) Valid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderOther:
		return true
	}
	return false
}

// Patient is a patient profile as loaded from the dataset.
type Patient struct {
	ID     string `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Age    int    `db:"age" json:"age"`
	Gender Gender `db:"gender" json:"gender"`
}

// RequestsCount is the number of tracked patient-data reads for a patient.
type RequestsCount struct {
	PatientID     string `json:"patientId"`
	RequestsCount int    `json:"requestsCount"`
}
