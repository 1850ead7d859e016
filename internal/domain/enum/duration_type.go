package enum

// DurationType is the billing mode of a pricing package and of the
// sessions started with it
type DurationType string

const (
	DurationTypeHourly    DurationType = "hourly"
	DurationTypePerMinute DurationType = "per_minute"
)

func (d DurationType) String() string {
	return string(d)
}

// IsValid reports whether d is hourly or per_minute
func (d DurationType) IsValid() bool {
	return d == DurationTypeHourly || d == DurationTypePerMinute
}
