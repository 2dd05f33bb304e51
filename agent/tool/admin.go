package tool

import (
	"context"

	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
)

const billingNote = "Data retrieved in real time from the accounting module."

func (e *Executor) manageHospitalAdmin(ctx context.Context, args map[string]any) contractx.Envelope {
	task := stringArg(args, "admin_task")
	if task != AdminBillingInquiry {
		return successEnvelope("The administrative procedure has been validated by the internal system.", nil)
	}

	bill, ok := e.resolveBill(stringArg(args, "reference_number"))
	if !ok {
		return infoEnvelope("There is no outstanding bill for this patient yet.")
	}
	env := successEnvelope("", bill)
	env.Note = billingNote
	return env
}

// resolveBill looks the reference up as an invoice number, then as a patient
// id or name. Anything else falls back to the configured default patient.
func (e *Executor) resolveBill(reference string) (recordsx.Bill, bool) {
	if reference != "" {
		if b, ok := e.store.BillByInvoice(reference); ok {
			return b, true
		}
		if p, ok := e.store.GetPatient(reference); ok {
			return e.store.GetBill(p.ID)
		}
	}
	return e.store.GetBill(e.defaultPatientID)
}
