package records

// DefaultSeed returns the demo data the assistant starts with.
func DefaultSeed() Seed {
	return Seed{
		Patients: []Patient{
			{
				ID:        "P001",
				Name:      "Budi Santoso",
				NIK:       "3201123456780001",
				DOB:       "1980-05-12",
				Status:    PatientAdmitted,
				Diagnosis: "Demam Berdarah Dengue (Grade 1)",
				LastVisit: "2024-05-20",
			},
			{
				ID:        "P002",
				Name:      "Siti Aminah",
				NIK:       "3201123456780002",
				DOB:       "1992-08-22",
				Status:    PatientOutpatient,
				Diagnosis: "Kontrol Pasca Operasi Appendicitis",
				LastVisit: "2024-05-25",
			},
		},
		Doctors: []Doctor{
			{
				ID:             "D001",
				Name:           "Dr. Sofia Subartini, Sp.A",
				Specialty:      "Spesialis Anak",
				AvailableSlots: []string{"2024-06-25 10:00", "2024-06-25 13:00", "2024-06-26 09:00"},
			},
			{
				ID:             "D002",
				Name:           "Dr. Hendra Wijaya, Sp.PD",
				Specialty:      "Penyakit Dalam",
				AvailableSlots: []string{"2024-06-25 15:00", "2024-06-27 11:00"},
			},
		},
		Bills: []Bill{
			{
				ID:        "INV-2024-001",
				PatientID: "P001",
				Amount:    15327500,
				Status:    BillPendingInsuranceClaim,
				Items:     []string{"Kamar VIP (5 Hari)", "Obat-obatan", "Visite Dokter", "Lab Hematologi"},
				Period:    "Mei 2024",
			},
		},
	}
}
