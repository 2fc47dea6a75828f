package medications

// StatusFilter filtra el listado de medicamentos.
// @Enum active, archived, all
type StatusFilter string

const (
	StatusActive   StatusFilter = "active"
	StatusArchived StatusFilter = "archived"
	StatusAll      StatusFilter = "all"
)

// ArchiveReason define los motivos de archivo sugeridos.
// El store acepta texto libre; estos son los que ofrece la UI.
type ArchiveReason string

const (
	ReasonCourseCompleted   ArchiveReason = "Course completed"
	ReasonMedicationChanged ArchiveReason = "Medication changed"
	ReasonSideEffects       ArchiveReason = "Side effects"
	ReasonDoctorInstruction ArchiveReason = "Doctor's instruction"
	ReasonOther             ArchiveReason = "Other"
)
