// Package seed holds the clinic's sample records. Every call returns fresh
// slices, so stores built from them never share state.
package seed

import (
	"time"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func Patients() []model.Patient {
	return []model.Patient{
		{ID: "P001", Name: "Sarah Johnson", Age: 14, Gender: "Female", Email: "sjohnson@example.com", Phone: "(555) 123-4567", TreatmentProgress: 65, NextAppointment: at(2023, time.June, 15, 9, 30), TreatmentType: "Braces"},
		{ID: "P002", Name: "Michael Chen", Age: 12, Gender: "Male", Email: "mchen@example.com", Phone: "(555) 234-5678", TreatmentProgress: 30, NextAppointment: at(2023, time.June, 16, 14, 0), TreatmentType: "Invisalign"},
		{ID: "P003", Name: "Emma Wilson", Age: 16, Gender: "Female", Email: "ewilson@example.com", Phone: "(555) 345-6789", TreatmentProgress: 85, NextAppointment: at(2023, time.June, 17, 11, 15), TreatmentType: "Braces"},
		{ID: "P004", Name: "Jason Rodriguez", Age: 15, Gender: "Male", Email: "jrodriguez@example.com", Phone: "(555) 456-7890", TreatmentProgress: 10, NextAppointment: at(2023, time.June, 15, 16, 30), TreatmentType: "Invisalign"},
		{ID: "P005", Name: "Olivia Smith", Age: 13, Gender: "Female", Email: "osmith@example.com", Phone: "(555) 567-8901", TreatmentProgress: 50, NextAppointment: at(2023, time.June, 18, 10, 0), TreatmentType: "Braces"},
	}
}

// Appointments returns the sample appointments with times in canonical
// 24-hour form.
func Appointments() []model.Appointment {
	appts := []model.Appointment{
		{ID: "A001", PatientID: "P001", PatientName: "Sarah Johnson", Date: "2023-06-15", Time: "09:30 AM", DurationMinutes: 30, Type: "Adjustment", Notes: "Monthly braces adjustment"},
		{ID: "A002", PatientID: "P002", PatientName: "Michael Chen", Date: "2023-06-16", Time: "02:00 PM", DurationMinutes: 45, Type: "Check-up", Notes: "Invisalign progress check"},
		{ID: "A003", PatientID: "P003", PatientName: "Emma Wilson", Date: "2023-06-17", Time: "11:15 AM", DurationMinutes: 30, Type: "Adjustment", Notes: "Final adjustment before removal"},
		{ID: "A004", PatientID: "P004", PatientName: "Jason Rodriguez", Date: "2023-06-15", Time: "04:30 PM", DurationMinutes: 60, Type: "Initial fitting", Notes: "First Invisalign tray fitting"},
		{ID: "A005", PatientID: "P005", PatientName: "Olivia Smith", Date: "2023-06-18", Time: "10:00 AM", DurationMinutes: 30, Type: "Adjustment", Notes: "Mid-treatment progress check"},
		{ID: "A006", PatientID: "P001", PatientName: "Sarah Johnson", Date: "2023-07-15", Time: "09:30 AM", DurationMinutes: 30, Type: "Adjustment", Notes: "Follow-up adjustment"},
	}
	for i := range appts {
		appts[i].Time = datekey.Canonical(appts[i].Time)
	}
	return appts
}

func day(s string) *datekey.Day {
	d := datekey.MustParseDay(s)
	return &d
}

func Treatments() []model.TreatmentPlan {
	return []model.TreatmentPlan{
		{
			ID: "T001", PatientID: "P001", PatientName: "Sarah Johnson", Type: "Braces", Status: model.TreatmentStatusInProgress,
			StartDate: *day("Feb 15, 2023"), EstimatedEndDate: *day("Aug 15, 2024"), Progress: 65, DurationMonths: 18,
			NextAppointment: *day("Jun 15, 2023"),
			Notes:           "Patient is responding well to treatment. Elastic bands to be worn at night for better results.",
			Milestones: []model.Milestone{
				{Title: "Initial Fitting", Description: "Installation of braces and adjustments", Completed: true, Date: day("Feb 15, 2023")},
				{Title: "First Adjustment", Description: "Tightening of braces and progress check", Completed: true, Date: day("Mar 15, 2023")},
				{Title: "Mid Treatment Evaluation", Description: "X-rays and comprehensive progress assessment", Date: day("Aug 15, 2023")},
				{Title: "Final Adjustments", Description: "Last adjustments before removal", Date: day("Jul 15, 2024")},
			},
		},
		{
			ID: "T002", PatientID: "P002", PatientName: "Michael Chen", Type: "Invisalign", Status: model.TreatmentStatusInProgress,
			StartDate: *day("Mar 10, 2023"), EstimatedEndDate: *day("Sep 10, 2024"), Progress: 30, DurationMonths: 18,
			NextAppointment: *day("Jun 16, 2023"),
			Notes:           "Patient is maintaining good hygiene and wearing aligners for recommended 22 hours daily.",
			Milestones: []model.Milestone{
				{Title: "Initial Scan and Fitting", Description: "Digital scan and first set of aligners", Completed: true, Date: day("Mar 10, 2023")},
				{Title: "Set 2-5 Check", Description: "Progress evaluation with first few sets", Completed: true, Date: day("May 1, 2023")},
				{Title: "Mid Treatment Scan", Description: "New scan for refinements if needed", Date: day("Sep 10, 2023")},
			},
		},
		{
			ID: "T003", PatientID: "P003", PatientName: "Emma Wilson", Type: "Braces", Status: model.TreatmentStatusNearCompletion,
			StartDate: *day("Sep 5, 2022"), EstimatedEndDate: *day("Jul 5, 2023"), Progress: 85, DurationMonths: 10,
			NextAppointment: *day("Jun 17, 2023"),
			Notes:           "Treatment progressing faster than expected. May be ready for removal earlier than estimated.",
			Milestones: []model.Milestone{
				{Title: "Initial Fitting", Description: "Installation of braces and adjustments", Completed: true, Date: day("Sep 5, 2022")},
				{Title: "Quarterly Adjustment", Description: "Regular tightening and progress check", Completed: true, Date: day("Dec 5, 2022")},
				{Title: "Mid Treatment X-rays", Description: "Comprehensive progress assessment", Completed: true, Date: day("Mar 5, 2023")},
				{Title: "Preparation for Removal", Description: "Final adjustments before removal", Date: day("Jun 17, 2023")},
			},
		},
		{
			ID: "T004", PatientID: "P004", PatientName: "Jason Rodriguez", Type: "Invisalign", Status: model.TreatmentStatusJustStarted,
			StartDate: *day("May 20, 2023"), EstimatedEndDate: *day("Nov 20, 2024"), Progress: 10, DurationMonths: 18,
			NextAppointment: *day("Jun 15, 2023"),
			Notes:           "Patient adjusting well to first set of aligners. Advised on proper cleaning techniques.",
			Milestones: []model.Milestone{
				{Title: "Initial Scan and Fitting", Description: "Digital scan and first set of aligners", Completed: true, Date: day("May 20, 2023")},
				{Title: "First Follow-up", Description: "Check fit and address any initial issues", Date: day("Jun 15, 2023")},
			},
		},
		{
			ID: "T005", PatientID: "P005", PatientName: "Olivia Smith", Type: "Palatal Expander", Status: model.TreatmentStatusInProgress,
			StartDate: *day("Jan 12, 2023"), EstimatedEndDate: *day("Jul 12, 2023"), Progress: 50, DurationMonths: 6,
			NextAppointment: *day("Jun 18, 2023"),
			Notes:           "Expansion progressing as planned. Patient experiencing minimal discomfort.",
			Milestones: []model.Milestone{
				{Title: "Installation", Description: "Fitting of the palatal expander", Completed: true, Date: day("Jan 12, 2023")},
				{Title: "Adjustment Period Check", Description: "Evaluation after initial adjustment period", Completed: true, Date: day("Feb 12, 2023")},
				{Title: "Mid-Treatment Assessment", Description: "Checking width expansion progress", Completed: true, Date: day("Apr 12, 2023")},
				{Title: "Final Assessment", Description: "Evaluation before removal", Date: day("Jun 18, 2023")},
			},
		},
	}
}

func Documents() []model.Document {
	doc := func(id, title string, cat model.DocumentCategory, desc string, created, updated time.Time) model.Document {
		return model.Document{ID: id, Title: title, Category: cat, Description: desc, CreatedAt: created, UpdatedAt: updated}
	}
	return []model.Document{
		doc("doc-1", "Patient Consent Form", model.DocumentCategoryConsent, "Standard patient consent for orthodontic treatment", at(2023, time.October, 15, 9, 30), at(2023, time.October, 15, 9, 30)),
		doc("doc-2", "Treatment Agreement", model.DocumentCategoryTreatment, "Detailed treatment plan and agreement", at(2023, time.October, 12, 14, 20), at(2023, time.October, 14, 16, 45)),
		doc("doc-3", "Medical History Form", model.DocumentCategoryMedical, "Patient medical history and current medications", at(2023, time.October, 5, 11, 15), at(2023, time.October, 5, 11, 15)),
		doc("doc-4", "Insurance Claim Form", model.DocumentCategoryFinancial, "Form for insurance reimbursement", at(2023, time.September, 28, 10, 0), at(2023, time.October, 10, 9, 20)),
		doc("doc-5", "Payment Agreement", model.DocumentCategoryFinancial, "Monthly payment plan agreement", at(2023, time.September, 20, 13, 40), at(2023, time.September, 20, 13, 40)),
		doc("doc-6", "Post-Treatment Care", model.DocumentCategoryTreatment, "Instructions for care after treatment", at(2023, time.September, 15, 15, 30), at(2023, time.September, 18, 11, 20)),
		doc("doc-7", "X-Ray Consent", model.DocumentCategoryConsent, "Consent for taking X-ray images", at(2023, time.September, 10, 10, 15), at(2023, time.September, 10, 10, 15)),
		doc("doc-8", "HIPAA Privacy Form", model.DocumentCategoryConsent, "Patient privacy agreement", at(2023, time.September, 5, 9, 0), at(2023, time.September, 5, 9, 0)),
	}
}

func Contacts() []model.Contact {
	return []model.Contact{
		{ID: "1", Name: "Dr. Smith", Email: "dr.smith@example.com", Phone: "123-456-7890", Type: model.ContactTypeDoctor},
		{ID: "2", Name: "Jane Doe", Email: "jane.doe@example.com", Phone: "234-567-8901", Type: model.ContactTypeStaff},
		{ID: "3", Name: "Dental Supplies Co", Email: "orders@dentalsupplies.com", Phone: "345-678-9012", Type: model.ContactTypeSupplier},
	}
}

// Radiographies references patients by legacy numeric ids, which do not
// resolve against Patients and render as unknown.
func Radiographies() []model.Radiography {
	return []model.Radiography{
		{ID: "1", PatientID: "1", Date: "2023-06-15", Type: "panoramic", ImageURL: "/placeholder.svg", Notes: "Full mouth panoramic view showing excellent alignment after treatment."},
		{ID: "2", PatientID: "2", Date: "2023-07-20", Type: "cephalometric", ImageURL: "/placeholder.svg", Notes: "Lateral cephalometric radiograph for orthodontic evaluation."},
		{ID: "3", PatientID: "3", Date: "2023-08-05", Type: "periapical", ImageURL: "/placeholder.svg", Notes: "Periapical radiograph of tooth #30 showing complete root canal filling."},
		{ID: "4", PatientID: "1", Date: "2023-09-12", Type: "bitewing", ImageURL: "/placeholder.svg", Notes: "Bitewing radiographs showing no interproximal caries."},
		{ID: "5", PatientID: "4", Date: "2023-10-18", Type: "cbct", ImageURL: "/placeholder.svg", Notes: "Cone beam CT for implant planning in the upper right quadrant."},
	}
}
