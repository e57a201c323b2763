package state

import (
	"fmt"
	"slices"

	"clinic-console-api/internal/action"
	"clinic-console-api/internal/model"
)

// Reduce applies a to s and returns the next state. s is not modified.
func Reduce(s State, a action.Action) State {
	next := s.Clone()
	switch a := a.(type) {
	// auth
	case action.LoginRequest:
		next.Auth.IsLoading = true
		next.Auth.Error = ""
	case action.LoginSuccess:
		u := a.Session.User
		next.Auth = Auth{User: &u, Token: a.Session.Token, IsAuthenticated: true}
	case action.LoginFailure:
		next.Auth = Auth{Error: a.Err}
	case action.LogoutRequest:
		next.Auth.IsLoading = true
	case action.LogoutSuccess:
		next.Auth = Auth{}
	case action.ValidateTokenRequest:
		next.Auth.IsLoading = true
	case action.ValidateTokenSuccess:
		u := a.User
		next.Auth.User = &u
		next.Auth.IsAuthenticated = true
		next.Auth.IsLoading = false
		next.Auth.Error = ""
	case action.ValidateTokenFailure:
		// the session is dropped without surfacing an error
		next.Auth.User = nil
		next.Auth.Token = ""
		next.Auth.IsAuthenticated = false
		next.Auth.IsLoading = false
	case action.SessionRestored:
		u := a.Session.User
		next.Auth.User = &u
		next.Auth.Token = a.Session.Token
		next.Auth.IsAuthenticated = true
	case action.SetToken:
		next.Auth.Token = a.Token
	case action.ClearAuthError:
		next.Auth.Error = ""

	// appointments
	case action.FetchAppointmentsRequest, action.FetchAppointmentRequest,
		action.CreateAppointmentRequest, action.UpdateAppointmentRequest,
		action.DeleteAppointmentRequest:
		next.Appointments.IsLoading = true
		next.Appointments.Error = ""
	case action.FetchAppointmentsSuccess:
		next.Appointments.Items = slices.Clone(a.Appointments)
		if next.Appointments.Items == nil {
			next.Appointments.Items = []model.Appointment{}
		}
		appointmentsDone(&next)
	case action.FetchAppointmentSuccess:
		sel := a.Appointment
		next.Appointments.Selected = &sel
		appointmentsDone(&next)
	case action.CreateAppointmentSuccess:
		next.Appointments.Items = append(next.Appointments.Items, a.Appointment)
		appointmentsDone(&next)
	case action.UpdateAppointmentSuccess:
		for i := range next.Appointments.Items {
			if next.Appointments.Items[i].ID == a.Appointment.ID {
				next.Appointments.Items[i] = a.Appointment
				break
			}
		}
		if sel := next.Appointments.Selected; sel != nil && sel.ID == a.Appointment.ID {
			updated := a.Appointment
			next.Appointments.Selected = &updated
		}
		appointmentsDone(&next)
	case action.DeleteAppointmentSuccess:
		kept := next.Appointments.Items[:0]
		for _, item := range next.Appointments.Items {
			if item.ID != a.ID {
				kept = append(kept, item)
			}
		}
		next.Appointments.Items = kept
		if sel := next.Appointments.Selected; sel != nil && sel.ID == a.ID {
			next.Appointments.Selected = nil
		}
		appointmentsDone(&next)
	case action.FetchAppointmentsFailure:
		appointmentsFailed(&next, a.Err)
	case action.FetchAppointmentFailure:
		appointmentsFailed(&next, a.Err)
	case action.CreateAppointmentFailure:
		appointmentsFailed(&next, a.Err)
	case action.UpdateAppointmentFailure:
		appointmentsFailed(&next, a.Err)
	case action.DeleteAppointmentFailure:
		appointmentsFailed(&next, a.Err)
	case action.SetFilters:
		next.Appointments.Filters = a.Filters
	case action.ClearFilters:
		next.Appointments.Filters = model.AppointmentFilters{}
	case action.ClearAppointmentsError:
		next.Appointments.Error = ""
	case action.ClearSelectedAppointment:
		next.Appointments.Selected = nil

	// billing
	case action.GenerateInvoiceRequest, action.GetServiceCostRequest:
		next.Billing.IsLoading = true
		next.Billing.Error = ""
	case action.GenerateInvoiceSuccess:
		inv := cloneInvoice(a.Invoice)
		next.Billing.CurrentInvoice = &inv
		next.Billing.Invoices = append(next.Billing.Invoices, cloneInvoice(a.Invoice))
		next.Billing.IsLoading = false
		next.Billing.Error = ""
	case action.GetServiceCostSuccess:
		next.Billing.IsLoading = false
		next.Billing.Error = ""
	case action.GenerateInvoiceFailure:
		next.Billing.IsLoading = false
		next.Billing.Error = a.Err
	case action.GetServiceCostFailure:
		next.Billing.IsLoading = false
		next.Billing.Error = a.Err
	case action.UpdateInvoiceStatus:
		for i := range next.Billing.Invoices {
			if next.Billing.Invoices[i].ID == a.InvoiceID {
				next.Billing.Invoices[i].Status = a.Status
				break
			}
		}
		if cur := next.Billing.CurrentInvoice; cur != nil && cur.ID == a.InvoiceID {
			cur.Status = a.Status
		}
	case action.ClearCurrentInvoice:
		next.Billing.CurrentInvoice = nil
	case action.ClearBillingError:
		next.Billing.Error = ""

	default:
		panic(fmt.Sprintf("state: unhandled action %T", a))
	}
	return next
}

func appointmentsDone(s *State) {
	s.Appointments.IsLoading = false
	s.Appointments.Error = ""
}

func appointmentsFailed(s *State, msg string) {
	s.Appointments.IsLoading = false
	s.Appointments.Error = msg
}
