package models

// AdmissionStatus defines where a student sits in the admission pipeline.
// Arrears only accrue once admission is completed.
type AdmissionStatus string

const (
	AdmissionPending    AdmissionStatus = "PENDING"
	AdmissionInProgress AdmissionStatus = "IN_PROGRESS"
	AdmissionCompleted  AdmissionStatus = "COMPLETED"
)

// PaymentType defines the kind of a fee payment entry.
type PaymentType string

const (
	PaymentAdmission PaymentType = "ADMISSION"
	PaymentMonthly   PaymentType = "MONTHLY"
	PaymentDonation  PaymentType = "DONATION"
)

// ResultStatus defines the outcome recorded on a student enrollment
// when an academic year is closed out.
type ResultStatus string

const (
	ResultPending ResultStatus = "PENDING"
	ResultPassed  ResultStatus = "PASSED"
	ResultFailed  ResultStatus = "FAILED"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)
