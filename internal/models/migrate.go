package models

// All lists the tables in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Court{},
		&CourtPrice{},
		&Payment{},
		&Reservation{},
		&AuditLog{},
	}
}
