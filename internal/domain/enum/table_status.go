package enum

// TableStatus represents the occupancy state of a billiard table
type TableStatus string

const (
	TableStatusAvailable   TableStatus = "available"
	TableStatusOccupied    TableStatus = "occupied"
	TableStatusMaintenance TableStatus = "maintenance"
	TableStatusReserved    TableStatus = "reserved"
)

var tableTransitions = transitionTable[TableStatus]{
	TableStatusAvailable:   {TableStatusOccupied, TableStatusMaintenance, TableStatusReserved},
	TableStatusOccupied:    {TableStatusAvailable},
	TableStatusMaintenance: {TableStatusAvailable, TableStatusReserved},
	TableStatusReserved:    {TableStatusAvailable, TableStatusMaintenance},
}

func (s TableStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known table status
func (s TableStatus) IsValid() bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusMaintenance, TableStatusReserved:
		return true
	}
	return false
}

// CanTransitionTo reports whether a table may move from s to next
func (s TableStatus) CanTransitionTo(next TableStatus) bool {
	return tableTransitions.allows(s, next)
}

// IsManual reports whether staff may set the status directly. Occupied is
// owned by the session lifecycle.
func (s TableStatus) IsManual() bool {
	return s.IsValid() && s != TableStatusOccupied
}
