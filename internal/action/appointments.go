package action

import "clinic-console-api/internal/model"

type FetchAppointmentsRequest struct{ intent }

type FetchAppointmentsSuccess struct {
	success
	Meta
	Appointments []model.Appointment
}

type FetchAppointmentsFailure struct {
	failure
	Meta
	Err string
}

type FetchAppointmentRequest struct {
	intent
	ID int
}

type FetchAppointmentSuccess struct {
	success
	Meta
	Appointment model.Appointment
}

type FetchAppointmentFailure struct {
	failure
	Meta
	Err string
}

type CreateAppointmentRequest struct {
	intent
	Fields model.AppointmentFields
}

type CreateAppointmentSuccess struct {
	success
	Meta
	Appointment model.Appointment
}

type CreateAppointmentFailure struct {
	failure
	Meta
	Err string
}

type UpdateAppointmentRequest struct {
	intent
	ID    int
	Patch model.AppointmentPatch
}

type UpdateAppointmentSuccess struct {
	success
	Meta
	Appointment model.Appointment
}

type UpdateAppointmentFailure struct {
	failure
	Meta
	Err string
}

type DeleteAppointmentRequest struct {
	intent
	ID int
}

type DeleteAppointmentSuccess struct {
	success
	Meta
	ID int
}

type DeleteAppointmentFailure struct {
	failure
	Meta
	Err string
}

type SetFilters struct {
	plain
	Filters model.AppointmentFilters
}

type ClearFilters struct{ plain }

type ClearAppointmentsError struct{ plain }

type ClearSelectedAppointment struct{ plain }

func (FetchAppointmentsRequest) Type() string { return "appointments/fetchAppointmentsRequest" }
func (FetchAppointmentsSuccess) Type() string { return "appointments/fetchAppointmentsSuccess" }
func (FetchAppointmentsFailure) Type() string { return "appointments/fetchAppointmentsFailure" }
func (FetchAppointmentRequest) Type() string  { return "appointments/fetchAppointmentRequest" }
func (FetchAppointmentSuccess) Type() string  { return "appointments/fetchAppointmentSuccess" }
func (FetchAppointmentFailure) Type() string  { return "appointments/fetchAppointmentFailure" }
func (CreateAppointmentRequest) Type() string { return "appointments/createAppointmentRequest" }
func (CreateAppointmentSuccess) Type() string { return "appointments/createAppointmentSuccess" }
func (CreateAppointmentFailure) Type() string { return "appointments/createAppointmentFailure" }
func (UpdateAppointmentRequest) Type() string { return "appointments/updateAppointmentRequest" }
func (UpdateAppointmentSuccess) Type() string { return "appointments/updateAppointmentSuccess" }
func (UpdateAppointmentFailure) Type() string { return "appointments/updateAppointmentFailure" }
func (DeleteAppointmentRequest) Type() string { return "appointments/deleteAppointmentRequest" }
func (DeleteAppointmentSuccess) Type() string { return "appointments/deleteAppointmentSuccess" }
func (DeleteAppointmentFailure) Type() string { return "appointments/deleteAppointmentFailure" }
func (SetFilters) Type() string               { return "appointments/setFilters" }
func (ClearFilters) Type() string             { return "appointments/clearFilters" }
func (ClearAppointmentsError) Type() string   { return "appointments/clearError" }
func (ClearSelectedAppointment) Type() string { return "appointments/clearSelectedAppointment" }

func (a FetchAppointmentsFailure) Message() string { return a.Err }
func (a FetchAppointmentFailure) Message() string  { return a.Err }
func (a CreateAppointmentFailure) Message() string { return a.Err }
func (a UpdateAppointmentFailure) Message() string { return a.Err }
func (a DeleteAppointmentFailure) Message() string { return a.Err }
