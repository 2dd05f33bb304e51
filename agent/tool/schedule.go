package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

func (e *Executor) scheduleMedicalService(ctx context.Context, args map[string]any) contractx.Envelope {
	serviceType := stringArg(args, "service_type")
	resource := stringArg(args, "resource_name")

	if serviceType == ServiceDoctorCheck {
		return e.checkDoctors(resource)
	}

	msg := fmt.Sprintf("Scheduling request for %s has been received. Booking code: %s", resource, e.bookingCode())
	if when := stringArg(args, "datetime"); when != "" {
		msg += fmt.Sprintf(" (requested time: %s)", when)
	}
	return successEnvelope(msg, nil)
}

func (e *Executor) checkDoctors(query string) contractx.Envelope {
	doctors := e.store.GetDoctors(query)
	if len(doctors) > 0 {
		return successEnvelope("", doctors)
	}

	all := e.store.GetDoctors("")
	names := make([]string, 0, len(all))
	for _, d := range all {
		names = append(names, d.Name)
	}
	return contractx.Envelope{
		Status:  contractx.StatusNotFound,
		Message: fmt.Sprintf("No doctor matches %q. Available doctors: %s.", query, strings.Join(names, ", ")),
	}
}

// bookingCode is "B-" followed by the last four digits of the current unix
// time in milliseconds.
func (e *Executor) bookingCode() string {
	return fmt.Sprintf("B-%04d", e.now().UnixMilli()%10000)
}
