package sideeffects

// Severity es la severidad reportada, entero en [1,5].
// @Enum 1, 2, 3, 4, 5
type Severity int

const (
	SeverityMild        Severity = 1
	SeverityModerate    Severity = 2
	SeveritySignificant Severity = 3
	SeveritySevere      Severity = 4
	SeverityVerySevere  Severity = 5
)

func (s Severity) Valid() bool {
	return s >= SeverityMild && s <= SeverityVerySevere
}

func (s Severity) Label() string {
	switch s {
	case SeverityMild:
		return "Mild"
	case SeverityModerate:
		return "Moderate"
	case SeveritySignificant:
		return "Significant"
	case SeveritySevere:
		return "Severe"
	case SeverityVerySevere:
		return "Very Severe"
	default:
		return "Unknown"
	}
}
