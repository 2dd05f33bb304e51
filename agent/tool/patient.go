package tool

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
)

const (
	defaultPatientName = "Unnamed Patient"
	defaultNIK         = "NOT_PROVIDED"
	defaultDiagnosis   = "General Checkup"
)

func (e *Executor) managePatientData(ctx context.Context, args map[string]any) contractx.Envelope {
	action := stringArg(args, "action")
	patientID := stringArg(args, "patient_id")

	switch action {
	case ActionCheckStatus:
		return e.checkPatientStatus(patientID)
	case ActionRegister:
		return e.registerPatient(patientID, ParseDetails(args["details"]))
	case ActionUpdate:
		return e.admitPatient(patientID, ParseDetails(args["details"]))
	default:
		return infoEnvelope(fmt.Sprintf("Action %q has been recorded in the system audit log.", action))
	}
}

func (e *Executor) checkPatientStatus(patientID string) contractx.Envelope {
	if patientID == "" {
		patientID = e.defaultPatientID
	}
	p, ok := e.store.GetPatient(patientID)
	if !ok {
		return errorEnvelope(fmt.Sprintf("Patient with ID/name %q was not found in the medical records.", patientID))
	}
	return successEnvelope("", p)
}

func (e *Executor) registerPatient(patientID string, details Details) contractx.Envelope {
	in := registrationInput(details.Fields, patientID, e.today())

	p, err := e.store.AddPatient(in)
	if err != nil {
		return errorEnvelope(fmt.Sprintf("Registration failed: %v", err))
	}
	return successEnvelope(fmt.Sprintf("Registration successful. Patient registered with ID: %s", p.ID), p)
}

// registrationInput applies the registration defaults. Status always starts
// as Outpatient and the visit date is today.
func registrationInput(f RegistrationFields, patientID, today string) recordsx.PatientInput {
	in := recordsx.PatientInput{
		Name:      f.Name,
		NIK:       f.NIK,
		DOB:       f.DOB,
		Status:    recordsx.PatientOutpatient,
		Diagnosis: f.Diagnosis,
		LastVisit: today,
	}
	if in.Name == "" {
		in.Name = patientID
	}
	if in.Name == "" {
		in.Name = defaultPatientName
	}
	if in.NIK == "" {
		in.NIK = defaultNIK
	}
	if in.DOB == "" {
		in.DOB = today
	}
	if in.Diagnosis == "" {
		in.Diagnosis = defaultDiagnosis
	}
	return in
}

func (e *Executor) admitPatient(patientID string, details Details) contractx.Envelope {
	target := patientID
	if p, ok := e.store.GetPatient(patientID); ok {
		target = p.ID
	}

	p, err := e.store.UpdatePatientStatus(target, recordsx.PatientAdmitted, details.Fields.Diagnosis)
	if errors.Is(err, recordsx.ErrPatientNotFound) {
		return errorEnvelope(fmt.Sprintf("Patient %q was not found.", patientID))
	}
	if err != nil {
		return errorEnvelope(fmt.Sprintf("Status update failed: %v", err))
	}
	return successEnvelope(fmt.Sprintf("Patient %s status was updated to %s.", p.ID, p.Status), p)
}
