package records

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidStatus   = errors.New("invalid patient status")
)

var validate = validator.New()

// Store is the in-memory hospital record repository. A single instance is
// shared by the tool executor and the manual entry API.
type Store struct {
	mu sync.RWMutex

	patients     map[string]*Patient
	patientOrder []string
	doctors      []*Doctor
	bills        map[string]*Bill
}

func New(seed Seed) *Store {
	s := &Store{
		patients: make(map[string]*Patient, len(seed.Patients)),
		bills:    make(map[string]*Bill, len(seed.Bills)),
	}
	for _, p := range seed.Patients {
		p := p
		if _, exists := s.patients[p.ID]; exists {
			continue
		}
		s.patients[p.ID] = &p
		s.patientOrder = append(s.patientOrder, p.ID)
	}
	for _, d := range seed.Doctors {
		d := d.clone()
		s.doctors = append(s.doctors, &d)
	}
	for _, b := range seed.Bills {
		b := b.clone()
		s.bills[b.PatientID] = &b
	}
	return s
}

/* ------------------------------- Patients ------------------------------- */

// GetPatient resolves an exact id first, then the first patient (in
// registration order) whose name contains identifier, case-insensitively.
func (s *Store) GetPatient(identifier string) (Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Patient{}, false
	}
	if p, ok := s.patients[identifier]; ok {
		return *p, true
	}

	q := strings.ToLower(identifier)
	for _, id := range s.patientOrder {
		p := s.patients[id]
		if strings.Contains(strings.ToLower(p.Name), q) {
			return *p, true
		}
	}
	return Patient{}, false
}

func (s *Store) ListPatients() []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Patient, 0, len(s.patientOrder))
	for _, id := range s.patientOrder {
		out = append(out, *s.patients[id])
	}
	return out
}

func (s *Store) AddPatient(in PatientInput) (Patient, error) {
	if err := validate.Struct(in); err != nil {
		return Patient{}, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := len(s.patients) + 1
	id := formatID("P", next)
	for {
		if _, taken := s.patients[id]; !taken {
			break
		}
		next++
		id = formatID("P", next)
	}

	p := Patient{
		ID:        id,
		Name:      in.Name,
		NIK:       in.NIK,
		DOB:       in.DOB,
		Status:    in.Status,
		Diagnosis: in.Diagnosis,
		LastVisit: in.LastVisit,
	}
	s.patients[id] = &p
	s.patientOrder = append(s.patientOrder, id)

	log.Info().Str("patient_id", id).Str("name", p.Name).Msg("patient added")
	return p, nil
}

// UpdatePatientStatus sets the status of an existing patient and, when
// diagnosis is non-empty, its diagnosis.
func (s *Store) UpdatePatientStatus(id string, status PatientStatus, diagnosis string) (Patient, error) {
	if status != PatientAdmitted && status != PatientOutpatient {
		return Patient{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patients[id]
	if !ok {
		return Patient{}, fmt.Errorf("%w: id=%s", ErrPatientNotFound, id)
	}
	p.Status = status
	if d := strings.TrimSpace(diagnosis); d != "" {
		p.Diagnosis = d
	}
	return *p, nil
}

/* -------------------------------- Doctors ------------------------------- */

// GetDoctors returns every doctor when query is blank, otherwise the doctors
// whose name or specialty contains query, case-insensitively.
func (s *Store) GetDoctors(query string) []Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		if q == "" ||
			strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Specialty), q) {
			out = append(out, d.clone())
		}
	}
	return out
}

func (s *Store) GetDoctor(id string) (Doctor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.doctors {
		if d.ID == id {
			return d.clone(), true
		}
	}
	return Doctor{}, false
}

func (s *Store) AddDoctor(in DoctorInput) (Doctor, error) {
	if err := validate.Struct(in); err != nil {
		return Doctor{}, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := Doctor{
		ID:             formatID("D", len(s.doctors)+1),
		Name:           in.Name,
		Specialty:      in.Specialty,
		AvailableSlots: append([]string(nil), in.AvailableSlots...),
	}
	stored := d.clone()
	s.doctors = append(s.doctors, &stored)

	log.Info().Str("doctor_id", d.ID).Str("name", d.Name).Msg("doctor added")
	return d, nil
}

/* --------------------------------- Bills -------------------------------- */

func (s *Store) GetBill(patientID string) (Bill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bills[patientID]
	if !ok {
		return Bill{}, false
	}
	return b.clone(), true
}

func (s *Store) BillByInvoice(invoiceID string) (Bill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return Bill{}, false
	}
	for _, b := range s.bills {
		if strings.EqualFold(b.ID, invoiceID) {
			return b.clone(), true
		}
	}
	return Bill{}, false
}

func formatID(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
