package models

// All returns every model managed by AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Classroom{},
		&ClassroomMember{},
		&Post{},
		&Comment{},
		&Like{},
		&Read{},
		&AuditEntry{},
		&RefreshToken{},
		&SystemSetting{},
		&SystemLog{},
	}
}
