package state

import (
	"math"
	"sort"
	"strings"

	"clinic-console-api/internal/model"
)

// FilterAppointments keeps the items matching every non-empty filter.
// Status, doctor and date compare exactly; the search term is a
// case-insensitive substring of the patient name, service or email.
func FilterAppointments(items []model.Appointment, f model.AppointmentFilters) []model.Appointment {
	term := strings.ToLower(f.SearchTerm)
	out := []model.Appointment{}
	for _, a := range items {
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if f.Doctor != "" && a.Doctor != f.Doctor {
			continue
		}
		if f.Date != "" && a.AppointmentDate != f.Date {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(a.PatientName), term) &&
			!strings.Contains(strings.ToLower(a.Service), term) &&
			!strings.Contains(strings.ToLower(a.PatientEmail), term) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Doctors lists each doctor once, sorted.
func Doctors(items []model.Appointment) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, a := range items {
		if _, ok := seen[a.Doctor]; ok {
			continue
		}
		seen[a.Doctor] = struct{}{}
		out = append(out, a.Doctor)
	}
	sort.Strings(out)
	return out
}

type AppointmentStats struct {
	Total     int                             `json:"total"`
	ByStatus  map[model.AppointmentStatus]int `json:"byStatus"`
	Completed int                             `json:"completed"`
	Remaining int                             `json:"remaining"`
}

// Stats counts appointments per status. Remaining is everything not yet
// completed or cancelled.
func Stats(items []model.Appointment) AppointmentStats {
	st := AppointmentStats{Total: len(items), ByStatus: make(map[model.AppointmentStatus]int, len(model.AppointmentStatuses))}
	for _, s := range model.AppointmentStatuses {
		st.ByStatus[s] = 0
	}
	for _, a := range items {
		st.ByStatus[a.Status]++
	}
	st.Completed = st.ByStatus[model.StatusCompleted]
	st.Remaining = st.ByStatus[model.StatusConfirmed] + st.ByStatus[model.StatusPending]
	return st
}

type BillingSummary struct {
	Count       int     `json:"count"`
	Total       float64 `json:"totalAmount"`
	Paid        float64 `json:"paidAmount"`
	Outstanding float64 `json:"outstandingAmount"`
	Overdue     float64 `json:"overdueAmount"`
}

// Summarize adds up invoice grand totals. Draft and sent invoices count
// as outstanding.
func Summarize(invoices []model.Invoice) BillingSummary {
	var sum BillingSummary
	sum.Count = len(invoices)
	for _, inv := range invoices {
		sum.Total += inv.GrandTotal
		switch inv.Status {
		case model.InvoicePaid:
			sum.Paid += inv.GrandTotal
		case model.InvoiceOverdue:
			sum.Overdue += inv.GrandTotal
		case model.InvoiceDraft, model.InvoiceSent:
			sum.Outstanding += inv.GrandTotal
		}
	}
	sum.Total = round2(sum.Total)
	sum.Paid = round2(sum.Paid)
	sum.Overdue = round2(sum.Overdue)
	sum.Outstanding = round2(sum.Outstanding)
	return sum
}

// Dashboard is the overview screen's data.
type Dashboard struct {
	Stats    AppointmentStats    `json:"appointments"`
	Doctors  []string            `json:"doctors"`
	Billing  BillingSummary      `json:"billing"`
	Filtered []model.Appointment `json:"filteredAppointments"`
}

func BuildDashboard(s State) Dashboard {
	return Dashboard{
		Stats:    Stats(s.Appointments.Items),
		Doctors:  Doctors(s.Appointments.Items),
		Billing:  Summarize(s.Billing.Invoices),
		Filtered: FilterAppointments(s.Appointments.Items, s.Appointments.Filters),
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
