package appointment

type BookedSlotsInput struct {
	DoctorID string
	Date     string
}

type ListFilter struct {
	Status string
	Date   string
}

type PatientSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Appointments    int    `json:"appointments"`
	LastAppointment string `json:"lastAppointment"`
}
