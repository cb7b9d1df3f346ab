package enums

// ActivityKind labels one block inside a decomposed shift.
type ActivityKind string

const (
	ActivityWork  ActivityKind = "WORK"
	ActivityBreak ActivityKind = "BREAK"
	ActivityLunch ActivityKind = "LUNCH"
)

var validActivityKinds = []ActivityKind{
	ActivityWork,
	ActivityBreak,
	ActivityLunch,
}

// String implements fmt.Stringer.
func (a ActivityKind) String() string {
	return string(a)
}

// IsValid reports whether the value is known.
func (a ActivityKind) IsValid() bool {
	for _, candidate := range validActivityKinds {
		if candidate == a {
			return true
		}
	}
	return false
}
