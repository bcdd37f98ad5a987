package domain

// Capability is something an actor may be allowed to do. Every read-scope
// and write decision in the services goes through the single table below,
// so policy logic lives in one place rather than scattered role checks.
type Capability int

const (
	// CapViewOwnRecords allows reading records the actor owns.
	CapViewOwnRecords Capability = iota
	// CapViewAllRecords allows reading any user's records.
	CapViewAllRecords
	// CapWriteOwnRecords allows creating and deleting the actor's own records.
	CapWriteOwnRecords
	// CapWriteAnyRecords allows creating and deleting records for any owner.
	CapWriteAnyRecords
	// CapManageUsers allows creating/deleting accounts, changing roles and
	// running the bulk import.
	CapManageUsers
)

// rolePolicy is the full capability table. Coaches are deliberately
// view-only: they see everyone's history but cannot log or delete records,
// not even their own.
var rolePolicy = map[Role]map[Capability]bool{
	RoleUser: {
		CapViewOwnRecords:  true,
		CapWriteOwnRecords: true,
	},
	RoleCoach: {
		CapViewOwnRecords: true,
		CapViewAllRecords: true,
	},
	RoleAdmin: {
		CapViewOwnRecords:  true,
		CapViewAllRecords:  true,
		CapWriteOwnRecords: true,
		CapWriteAnyRecords: true,
		CapManageUsers:     true,
	},
}

// Can reports whether the role grants the capability. Unknown roles grant
// nothing.
func (r Role) Can(c Capability) bool {
	return rolePolicy[r][c]
}

// CanViewRecordsOf reports whether the actor may read records owned by
// ownerID.
func (a Actor) CanViewRecordsOf(ownerID int64) bool {
	if a.UserID == ownerID {
		return a.Role.Can(CapViewOwnRecords)
	}
	return a.Role.Can(CapViewAllRecords)
}

// CanWriteRecordsOf reports whether the actor may create or delete records
// owned by ownerID.
func (a Actor) CanWriteRecordsOf(ownerID int64) bool {
	if a.UserID == ownerID {
		return a.Role.Can(CapWriteOwnRecords)
	}
	return a.Role.Can(CapWriteAnyRecords)
}
