package store

import "clinic-console-api/internal/model"

// DemoAppointments is the collection a fresh console starts with.
func DemoAppointments() []model.Appointment {
	return []model.Appointment{
		{
			ID: 1, PatientName: "John Smith", PatientPhone: "+1 (555) 123-4567", PatientEmail: "john.smith@email.com",
			AppointmentDate: "2024-01-15", AppointmentTime: "10:00 AM", Service: "General Consultation",
			Doctor: "Dr. Sarah Johnson", Status: model.StatusConfirmed, Duration: 30,
			Notes: "Follow-up appointment for blood pressure monitoring",
		},
		{
			ID: 2, PatientName: "Maria Garcia", PatientPhone: "+1 (555) 234-5678", PatientEmail: "maria.garcia@email.com",
			AppointmentDate: "2024-01-15", AppointmentTime: "11:30 AM", Service: "Cardiology Consultation",
			Doctor: "Dr. Michael Chen", Status: model.StatusPending, Duration: 45,
			Notes: "Initial consultation for chest pain symptoms",
		},
		{
			ID: 3, PatientName: "Robert Johnson", PatientPhone: "+1 (555) 345-6789", PatientEmail: "robert.johnson@email.com",
			AppointmentDate: "2024-01-16", AppointmentTime: "2:00 PM", Service: "Dermatology Check-up",
			Doctor: "Dr. Emily Davis", Status: model.StatusCompleted, Duration: 25,
			Notes: "Annual skin cancer screening",
		},
		{
			ID: 4, PatientName: "Lisa Wang", PatientPhone: "+1 (555) 456-7890", PatientEmail: "lisa.wang@email.com",
			AppointmentDate: "2024-01-16", AppointmentTime: "3:30 PM", Service: "Orthopedic Consultation",
			Doctor: "Dr. James Wilson", Status: model.StatusCancelled, Duration: 40,
			Notes: "Knee pain evaluation - rescheduled by patient",
		},
		{
			ID: 5, PatientName: "David Brown", PatientPhone: "+1 (555) 567-8901", PatientEmail: "david.brown@email.com",
			AppointmentDate: "2024-01-17", AppointmentTime: "9:00 AM", Service: "Physical Therapy",
			Doctor: "Dr. Amanda Rodriguez", Status: model.StatusConfirmed, Duration: 60,
			Notes: "Post-surgery rehabilitation session",
		},
	}
}

func DemoServiceCosts() []model.ServiceCost {
	return []model.ServiceCost{
		{ID: 1, ServiceName: "General Consultation", Cost: 150, Description: "Standard consultation with physician"},
		{ID: 2, ServiceName: "Cardiology Consultation", Cost: 300, Description: "Specialized cardiology consultation"},
		{ID: 3, ServiceName: "Dental Cleaning", Cost: 120, Description: "Professional dental cleaning service"},
		{ID: 4, ServiceName: "X-Ray", Cost: 80, Description: "Digital X-ray imaging"},
		{ID: 5, ServiceName: "Blood Test", Cost: 60, Description: "Complete blood panel analysis"},
		{ID: 6, ServiceName: "Physical Therapy", Cost: 90, Description: "Physical therapy session"},
		{ID: 7, ServiceName: "Dermatology Consultation", Cost: 200, Description: "Dermatological examination and consultation"},
		{ID: 8, ServiceName: "Ultrasound", Cost: 250, Description: "Ultrasound imaging and diagnosis"},
	}
}

func DemoClinicInfo() model.ClinicInfo {
	return model.ClinicInfo{
		Name:    "Advanced Medical Specialty Clinic",
		Address: "123 Health Avenue, Medical District, City, State 12345",
		Phone:   "+1 (555) 123-4567",
		Email:   "billing@amsc.com",
		TaxID:   "TX-123456789",
	}
}
