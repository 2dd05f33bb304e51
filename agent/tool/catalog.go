package tool

import (
	"github.com/cloudwego/eino/schema"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
)

const (
	ToolManagePatientData      = "manage_patient_data"
	ToolScheduleMedicalService = "schedule_medical_service"
	ToolManageHospitalAdmin    = "manage_hospital_admin"
	ToolProvideMedicalInfo     = "provide_medical_info"
)

const (
	ActionRegister    = "register"
	ActionUpdate      = "update"
	ActionCheckStatus = "check_status"

	ServiceAppointment   = "appointment"
	ServiceDoctorCheck   = "doctor_check"
	ServiceFacilityCheck = "facility_check"
	AdminBillingInquiry  = "billing_inquiry"
	AdminInventoryStatus = "inventory_status"
	AdminCheckProcedure  = "check_procedure"
)

// Build returns the advertised tool catalog together with an executor bound to store.
func Build(store *recordsx.Store, cfg Config, opts ...Option) ([]*schema.ToolInfo, *Executor) {
	return Catalog(), NewExecutor(store, cfg, opts...)
}

type toolSpec struct {
	name   string
	desc   string
	params map[string]*schema.ParameterInfo
}

var specs = []toolSpec{
	{
		name: ToolManagePatientData,
		desc: `Handles patient records. Use action="register" to register a new patient, "check_status" to view a patient record and "update" to change a patient's status.`,
		params: map[string]*schema.ParameterInfo{
			"action": {
				Type:     schema.String,
				Desc:     "Action to perform",
				Enum:     []string{ActionRegister, ActionUpdate, ActionCheckStatus},
				Required: true,
			},
			"patient_id": {
				Type: schema.String,
				Desc: "Patient ID (e.g. P001) or patient name used for lookup",
			},
			"details": {
				Type: schema.String,
				Desc: "JSON string with name, nik, dob, diagnosis (required for register)",
			},
		},
	},
	{
		name: ToolScheduleMedicalService,
		desc: "Manages doctor schedules and facility allocation (clinics, operating rooms).",
		params: map[string]*schema.ParameterInfo{
			"service_type": {
				Type:     schema.String,
				Desc:     "Kind of scheduling request",
				Enum:     []string{ServiceAppointment, ServiceDoctorCheck, ServiceFacilityCheck},
				Required: true,
			},
			"resource_name": {
				Type:     schema.String,
				Desc:     "Doctor name, specialty or facility name",
				Required: true,
			},
			"datetime": {
				Type: schema.String,
				Desc: "Preferred time (optional)",
			},
		},
	},
	{
		name: ToolManageHospitalAdmin,
		desc: "Manages billing, insurance (BPJS) claim status, inventory and administrative procedures.",
		params: map[string]*schema.ParameterInfo{
			"admin_task": {
				Type:     schema.String,
				Desc:     "Administrative task",
				Enum:     []string{AdminBillingInquiry, AdminInventoryStatus, AdminCheckProcedure},
				Required: true,
			},
			"reference_number": {
				Type: schema.String,
				Desc: "Reference number, patient ID or time context (e.g. last month)",
			},
		},
	},
	{
		name: ToolProvideMedicalInfo,
		desc: "Provides general health information from the clinical SOP and guideline knowledge base.",
		params: map[string]*schema.ParameterInfo{
			"topic": {
				Type:     schema.String,
				Desc:     "Medical topic",
				Required: true,
			},
			"context": {
				Type: schema.String,
				Desc: "Additional context",
			},
		},
	},
}

// Catalog is the fixed set of tools offered to the parent agent.
func Catalog() []*schema.ToolInfo {
	out := make([]*schema.ToolInfo, 0, len(specs))
	for _, s := range specs {
		out = append(out, &schema.ToolInfo{
			Name:        s.name,
			Desc:        s.desc,
			ParamsOneOf: schema.NewParamsOneOfByParams(s.params),
		})
	}
	return out
}

// Parameters returns a copy of the parameter table of a catalog tool, or nil.
func Parameters(name string) map[string]*schema.ParameterInfo {
	for _, s := range specs {
		if s.name != name {
			continue
		}
		out := make(map[string]*schema.ParameterInfo, len(s.params))
		for key, info := range s.params {
			cp := *info
			cp.Enum = append([]string(nil), info.Enum...)
			out[key] = &cp
		}
		return out
	}
	return nil
}
