package model

type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusPending   AppointmentStatus = "Pending"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

var AppointmentStatuses = []AppointmentStatus{StatusConfirmed, StatusPending, StatusCompleted, StatusCancelled}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID              int               `json:"id"`
	PatientName     string            `json:"patientName"`
	PatientPhone    string            `json:"patientPhone"`
	PatientEmail    string            `json:"patientEmail"`
	AppointmentDate string            `json:"appointmentDate"`
	AppointmentTime string            `json:"appointmentTime"`
	Service         string            `json:"service"`
	Doctor          string            `json:"doctor"`
	Status          AppointmentStatus `json:"status"`
	Duration        int               `json:"duration"`
	Notes           string            `json:"notes"`
}

// AppointmentFields is everything a new appointment carries except its id.
type AppointmentFields struct {
	PatientName     string            `json:"patientName" validate:"required"`
	PatientPhone    string            `json:"patientPhone" validate:"required"`
	PatientEmail    string            `json:"patientEmail" validate:"required,email"`
	AppointmentDate string            `json:"appointmentDate" validate:"required"`
	AppointmentTime string            `json:"appointmentTime" validate:"required"`
	Service         string            `json:"service" validate:"required"`
	Doctor          string            `json:"doctor" validate:"required"`
	Status          AppointmentStatus `json:"status" validate:"required,appointment_status"`
	Duration        int               `json:"duration" validate:"gt=0"`
	Notes           string            `json:"notes"`
}

func (f AppointmentFields) WithID(id int) Appointment {
	return Appointment{
		ID:              id,
		PatientName:     f.PatientName,
		PatientPhone:    f.PatientPhone,
		PatientEmail:    f.PatientEmail,
		AppointmentDate: f.AppointmentDate,
		AppointmentTime: f.AppointmentTime,
		Service:         f.Service,
		Doctor:          f.Doctor,
		Status:          f.Status,
		Duration:        f.Duration,
		Notes:           f.Notes,
	}
}

// AppointmentPatch is a partial update. Nil fields are left untouched.
type AppointmentPatch struct {
	PatientName     *string            `json:"patientName,omitempty" validate:"omitnil,min=1"`
	PatientPhone    *string            `json:"patientPhone,omitempty" validate:"omitnil,min=1"`
	PatientEmail    *string            `json:"patientEmail,omitempty" validate:"omitnil,email"`
	AppointmentDate *string            `json:"appointmentDate,omitempty" validate:"omitnil,min=1"`
	AppointmentTime *string            `json:"appointmentTime,omitempty" validate:"omitnil,min=1"`
	Service         *string            `json:"service,omitempty" validate:"omitnil,min=1"`
	Doctor          *string            `json:"doctor,omitempty" validate:"omitnil,min=1"`
	Status          *AppointmentStatus `json:"status,omitempty" validate:"omitnil,appointment_status"`
	Duration        *int               `json:"duration,omitempty" validate:"omitnil,gt=0"`
	Notes           *string            `json:"notes,omitempty"`
}

// Apply merges the set fields of p into a and returns the result.
func (p AppointmentPatch) Apply(a Appointment) Appointment {
	if p.PatientName != nil {
		a.PatientName = *p.PatientName
	}
	if p.PatientPhone != nil {
		a.PatientPhone = *p.PatientPhone
	}
	if p.PatientEmail != nil {
		a.PatientEmail = *p.PatientEmail
	}
	if p.AppointmentDate != nil {
		a.AppointmentDate = *p.AppointmentDate
	}
	if p.AppointmentTime != nil {
		a.AppointmentTime = *p.AppointmentTime
	}
	if p.Service != nil {
		a.Service = *p.Service
	}
	if p.Doctor != nil {
		a.Doctor = *p.Doctor
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	return a
}

type ServiceCost struct {
	ID          int     `json:"id"`
	ServiceName string  `json:"serviceName"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description"`
}

type ClinicInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	TaxID   string `json:"taxId"`
}

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// InvoiceAppointment is the appointment copy frozen into an invoice.
// Notes are not carried over.
type InvoiceAppointment struct {
	ID              int               `json:"id"`
	PatientName     string            `json:"patientName"`
	PatientEmail    string            `json:"patientEmail"`
	PatientPhone    string            `json:"patientPhone"`
	AppointmentDate string            `json:"appointmentDate"`
	AppointmentTime string            `json:"appointmentTime"`
	Service         string            `json:"service"`
	Doctor          string            `json:"doctor"`
	Status          AppointmentStatus `json:"status"`
	Duration        int               `json:"duration"`
}

func SnapshotAppointment(a Appointment) InvoiceAppointment {
	return InvoiceAppointment{
		ID:              a.ID,
		PatientName:     a.PatientName,
		PatientEmail:    a.PatientEmail,
		PatientPhone:    a.PatientPhone,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		Service:         a.Service,
		Doctor:          a.Doctor,
		Status:          a.Status,
		Duration:        a.Duration,
	}
}

type Invoice struct {
	ID              string             `json:"id"`
	AppointmentID   int                `json:"appointmentId"`
	AppointmentData InvoiceAppointment `json:"appointmentData"`
	ServicesCosts   []ServiceCost      `json:"servicesCosts"`
	ClinicInfo      ClinicInfo         `json:"clinicInfo"`
	TotalAmount     float64            `json:"totalAmount"`
	TaxAmount       float64            `json:"taxAmount"`
	GrandTotal      float64            `json:"grandTotal"`
	CreatedAt       string             `json:"createdAt"`
	Status          InvoiceStatus      `json:"status"`
}

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Credentials are checked by the backend, not validated up front, so an
// empty pair is an ordinary failed login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AppointmentFilters narrows the appointment list. Empty fields match all.
type AppointmentFilters struct {
	Status     string `json:"status"`
	Doctor     string `json:"doctor"`
	Date       string `json:"date"`
	SearchTerm string `json:"searchTerm"`
}

type InvoiceStatusChange struct {
	InvoiceID string        `json:"invoiceId" validate:"required"`
	Status    InvoiceStatus `json:"status" validate:"required,invoice_status"`
}
