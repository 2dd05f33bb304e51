package records

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

var patientIDPattern = regexp.MustCompile(`^P\d{3,}$`)

func newPatientInput(name string) PatientInput {
	return PatientInput{
		Name:      name,
		NIK:       "3201000000000000",
		DOB:       "1990-01-01",
		Status:    PatientOutpatient,
		Diagnosis: "Demam",
		LastVisit: "2026-10-19",
	}
}

func TestGetPatientExactIDWinsOverNameMatch(t *testing.T) {
	t.Parallel()

	store := New(Seed{Patients: []Patient{
		{ID: "P001", Name: "P002 Alias", Status: PatientOutpatient},
		{ID: "P002", Name: "Siti Aminah", Status: PatientOutpatient},
	}})

	got, ok := store.GetPatient("P002")
	require.True(t, ok)
	assert.Equal(t, "Siti Aminah", got.Name)
}

func TestGetPatientByNameSubstringCaseInsensitive(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	got, ok := store.GetPatient("aMiNaH")
	require.True(t, ok)
	assert.Equal(t, "P002", got.ID)
}

func TestGetPatientAmbiguousNameReturnsFirstRegistered(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())
	added, err := store.AddPatient(newPatientInput("Budi Hartono"))
	require.NoError(t, err)

	got, ok := store.GetPatient("budi")
	require.True(t, ok)
	assert.Equal(t, "P001", got.ID)
	assert.NotEqual(t, added.ID, got.ID)
}

func TestGetPatientMisses(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	for _, identifier := range []string{"NoSuchName", "P999", "", "   "} {
		_, ok := store.GetPatient(identifier)
		assert.False(t, ok, "identifier %q", identifier)
	}
}

func TestGetPatientIsIdempotent(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	first, ok := store.GetPatient("Budi")
	require.True(t, ok)
	second, ok := store.GetPatient("Budi")
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestAddPatientAfterSeedYieldsP003(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	p, err := store.AddPatient(newPatientInput("Budi Santoso"))
	require.NoError(t, err)
	assert.Equal(t, "P003", p.ID)
	assert.Equal(t, PatientOutpatient, p.Status)
}

func TestAddPatientSkipsOccupiedIDs(t *testing.T) {
	t.Parallel()

	store := New(Seed{Patients: []Patient{
		{ID: "P001", Name: "A", Status: PatientOutpatient},
		{ID: "P002", Name: "B", Status: PatientOutpatient},
		{ID: "P003", Name: "C", Status: PatientOutpatient},
		{ID: "P005", Name: "E", Status: PatientOutpatient},
	}})

	p, err := store.AddPatient(newPatientInput("F"))
	require.NoError(t, err)
	assert.Equal(t, "P006", p.ID)
}

func TestAddPatientIssuesUniqueWellFormedIDs(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())
	seen := map[string]bool{"P001": true, "P002": true}

	for i := 0; i < 50; i++ {
		p, err := store.AddPatient(newPatientInput(fmt.Sprintf("Patient %d", i)))
		require.NoError(t, err)
		assert.Regexp(t, patientIDPattern, p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestAddPatientRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	_, err := store.AddPatient(PatientInput{Status: PatientOutpatient})
	assert.True(t, errors.Is(err, contractx.ErrValidation), "got %v", err)

	in := newPatientInput("X")
	in.Status = "Discharged"
	_, err = store.AddPatient(in)
	assert.True(t, errors.Is(err, contractx.ErrValidation), "got %v", err)

	assert.Len(t, store.ListPatients(), 2)
}

func TestAddedRecordsAreRetrievableByID(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	p, err := store.AddPatient(newPatientInput("Rina Kusuma"))
	require.NoError(t, err)
	got, ok := store.GetPatient(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, got)

	d, err := store.AddDoctor(DoctorInput{Name: "Dr. Agus, Sp.JP", Specialty: "Jantung", AvailableSlots: []string{"09:00"}})
	require.NoError(t, err)
	assert.Equal(t, "D003", d.ID)

	gotDoctor, ok := store.GetDoctor(d.ID)
	require.True(t, ok)
	assert.Equal(t, d, gotDoctor)

	all := store.GetDoctors("")
	require.Len(t, all, 3)
	assert.Equal(t, d, all[2])
}

func TestUpdatePatientStatus(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	p, err := store.UpdatePatientStatus("P002", PatientAdmitted, "Observasi")
	require.NoError(t, err)
	assert.Equal(t, PatientAdmitted, p.Status)
	assert.Equal(t, "Observasi", p.Diagnosis)

	p, err = store.UpdatePatientStatus("P002", PatientOutpatient, "")
	require.NoError(t, err)
	assert.Equal(t, "Observasi", p.Diagnosis)
}

func TestUpdatePatientStatusUnknownIDLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())
	before := store.ListPatients()

	_, err := store.UpdatePatientStatus("P404", PatientAdmitted, "x")
	assert.True(t, errors.Is(err, ErrPatientNotFound), "got %v", err)
	assert.Equal(t, before, store.ListPatients())
}

func TestGetDoctorsMatchesNameOrSpecialty(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	byNameOrSpecialty := store.GetDoctors("Anak")
	require.Len(t, byNameOrSpecialty, 1)
	assert.Equal(t, "D001", byNameOrSpecialty[0].ID)

	byName := store.GetDoctors("hendra")
	require.Len(t, byName, 1)
	assert.Equal(t, "D002", byName[0].ID)

	assert.Empty(t, store.GetDoctors("Bedah"))
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	t.Parallel()

	store := New(DefaultSeed())

	docs := store.GetDoctors("Anak")
	docs[0].AvailableSlots[0] = "mutated"
	assert.NotEqual(t, "mutated", store.GetDoctors("Anak")[0].AvailableSlots[0])

	bill, ok := store.GetBill("P001")
	require.True(t, ok)
	bill.Items[0] = "mutated"
	again, _ := store.GetBill("P001")
	assert.NotEqual(t, "mutated", again.Items[0])
}

func TestGetBill(t *testing.T) {
	t.Parallel()

	store := New(Seed{Bills: []Bill{{ID: "INV-9", PatientID: "P404", Amount: 10, Status: BillUnpaid}}})

	b, ok := store.GetBill("P404")
	require.True(t, ok, "dangling patient references are allowed")
	assert.Equal(t, "INV-9", b.ID)

	_, ok = store.GetBill("P001")
	assert.False(t, ok)

	b, ok = store.BillByInvoice("inv-9")
	require.True(t, ok)
	assert.Equal(t, "P404", b.PatientID)
}
