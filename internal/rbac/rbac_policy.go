package rbac

// Role hierarchy: admin inherits supervisor, supervisor inherits employee.
var roleInheritance = [][2]string{
	{"admin", "supervisor"},
	{"supervisor", "employee"},
}

// Ownership checks (own leave, pending only) live in the leave service;
// these rules only gate which endpoints a role can reach.
var defaultPolicies = [][3]string{
	{"employee", "leave", "create"},
	{"employee", "leave", "read"},
	{"employee", "leave", "update"},
	{"employee", "leave", "delete"},
	{"employee", "notification", "read"},

	{"supervisor", "leave", "read_all"},
	{"supervisor", "leave", "approve"},
	{"supervisor", "leave", "stats"},
	{"supervisor", "sla", "read"},
	{"supervisor", "user", "read"},

	{"admin", "user", "create"},
	{"admin", "user", "update"},
}
