package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
)

const (
	defaultManualDOB       = "2000-01-01"
	defaultManualDiagnosis = "General Checkup"
)

var (
	defaultDoctorSlots = []string{"09:00", "13:00"}

	validate = validator.New()
)

type patientForm struct {
	Name      string                 `json:"name" validate:"required"`
	NIK       string                 `json:"nik" validate:"required"`
	DOB       string                 `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Diagnosis string                 `json:"diagnosis"`
	Status    recordsx.PatientStatus `json:"status" validate:"omitempty,oneof=Admitted Outpatient"`
}

type doctorForm struct {
	Name           string   `json:"name" validate:"required"`
	Specialty      string   `json:"specialty" validate:"required"`
	AvailableSlots []string `json:"availableSlots"`
}

func decodeForm(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", contractx.ErrValidation, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}
	return nil
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.store.ListPatients())
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.store.GetPatient(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, ResponseDTO{
			Success: false,
			Error:   "not_found",
			Message: fmt.Sprintf("Patient with ID/name %q was not found in the medical records.", id),
		})
		return
	}
	writeSuccess(w, http.StatusOK, "", p)
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var form patientForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, err)
		return
	}

	in := recordsx.PatientInput{
		Name:      trimmed(form.Name),
		NIK:       trimmed(form.NIK),
		DOB:       trimmed(form.DOB),
		Status:    form.Status,
		Diagnosis: trimmed(form.Diagnosis),
		LastVisit: h.today(),
	}
	if in.DOB == "" {
		in.DOB = defaultManualDOB
	}
	if in.Diagnosis == "" {
		in.Diagnosis = defaultManualDiagnosis
	}
	if in.Status == "" {
		in.Status = recordsx.PatientOutpatient
	}

	p, err := h.store.AddPatient(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, fmt.Sprintf("Patient registered with ID: %s", p.ID), p)
}

func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.store.GetDoctors(r.URL.Query().Get("q")))
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var form doctorForm
	if err := decodeForm(r, &form); err != nil {
		writeError(w, err)
		return
	}

	slots := form.AvailableSlots
	if len(slots) == 0 {
		slots = defaultDoctorSlots
	}

	d, err := h.store.AddDoctor(recordsx.DoctorInput{
		Name:           trimmed(form.Name),
		Specialty:      trimmed(form.Specialty),
		AvailableSlots: slots,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, fmt.Sprintf("Doctor registered with ID: %s", d.ID), d)
}
