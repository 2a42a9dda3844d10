package user

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Tasks
	PermissionTaskViewOwn Permission = "task.view_own"
	PermissionTaskSubmit  Permission = "task.submit"
	PermissionTaskViewAll Permission = "task.view_all"
	PermissionTaskAssign  Permission = "task.assign"
	PermissionTaskReview  Permission = "task.review"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		// Owner has all permissions
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionTaskViewOwn,
		PermissionTaskSubmit,
		PermissionTaskViewAll,
		PermissionTaskAssign,
		PermissionTaskReview,
	},
	RoleManager: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionTaskViewOwn,
		PermissionTaskSubmit,
		PermissionTaskViewAll,
		PermissionTaskAssign,
		PermissionTaskReview,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionTaskViewOwn,
		PermissionTaskSubmit,
	},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
