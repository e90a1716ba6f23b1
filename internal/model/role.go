package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN, SALES, VIEWER
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleAdmin  = "ADMIN"
	RoleSales  = "SALES"
	RoleViewer = "VIEWER"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Full system access with all privileges",
	},
	{
		Code:        RoleSales,
		Name:        "Sales Personnel",
		Description: "Records sales, registers buyers and views products",
	},
	{
		Code:        RoleViewer,
		Name:        "Viewer",
		Description: "Read-only access to products and the dashboard",
	},
}

// DefaultRolePrivileges lists the privilege codes each non-admin role is seeded with.
// ADMIN receives every privilege.
var DefaultRolePrivileges = map[string][]string{
	RoleSales: {
		PrivProductView,
		PrivBuyerView, PrivBuyerCreate, PrivBuyerUpdate,
		PrivTransactionView, PrivTransactionCreate,
		PrivDashboardView,
	},
	RoleViewer: {
		PrivProductView,
		PrivBuyerView,
		PrivTransactionView, PrivTransactionViewAll,
		PrivDashboardView,
	},
}
