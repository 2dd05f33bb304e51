package records

type PatientStatus string

const (
	PatientAdmitted   PatientStatus = "Admitted"
	PatientOutpatient PatientStatus = "Outpatient"
)

type BillStatus string

const (
	BillPaid                  BillStatus = "Paid"
	BillUnpaid                BillStatus = "Unpaid"
	BillPendingInsuranceClaim BillStatus = "PendingInsuranceClaim"
)

type Patient struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	NIK       string        `json:"nik"`
	DOB       string        `json:"dob"`
	Status    PatientStatus `json:"status"`
	Diagnosis string        `json:"diagnosis"`
	LastVisit string        `json:"lastVisit"`
}

// PatientInput is a patient without its generated id.
type PatientInput struct {
	Name      string        `json:"name" validate:"required"`
	NIK       string        `json:"nik"`
	DOB       string        `json:"dob"`
	Status    PatientStatus `json:"status" validate:"required,oneof=Admitted Outpatient"`
	Diagnosis string        `json:"diagnosis"`
	LastVisit string        `json:"lastVisit"`
}

type Doctor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	AvailableSlots []string `json:"availableSlots"`
}

type DoctorInput struct {
	Name           string   `json:"name" validate:"required"`
	Specialty      string   `json:"specialty" validate:"required"`
	AvailableSlots []string `json:"availableSlots"`
}

type Bill struct {
	ID        string     `json:"id"`
	PatientID string     `json:"patientId"`
	Amount    int64      `json:"amount"`
	Status    BillStatus `json:"status"`
	Items     []string   `json:"items"`
	Period    string     `json:"period"`
}

// Seed is the initial content of a Store.
type Seed struct {
	Patients []Patient
	Doctors  []Doctor
	Bills    []Bill
}

func (d Doctor) clone() Doctor {
	d.AvailableSlots = append([]string(nil), d.AvailableSlots...)
	return d
}

func (b Bill) clone() Bill {
	b.Items = append([]string(nil), b.Items...)
	return b
}
