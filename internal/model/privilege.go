package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Privilege codes checked by the router.
const (
	PrivUserView            = "user:view"
	PrivUserCreate          = "user:create"
	PrivUserUpdate          = "user:update"
	PrivUserDelete          = "user:delete"
	PrivUserUpdatePrivilege = "user:update_privilege"

	PrivProductView   = "product:view"
	PrivProductCreate = "product:create"
	PrivProductUpdate = "product:update"
	PrivProductDelete = "product:delete"
	PrivProductAdjust = "product:adjust_stock"

	PrivBuyerView   = "buyer:view"
	PrivBuyerCreate = "buyer:create"
	PrivBuyerUpdate = "buyer:update"
	PrivBuyerDelete = "buyer:delete"

	PrivTransactionView    = "transaction:view"
	PrivTransactionViewAll = "transaction:view_all"
	PrivTransactionCreate  = "transaction:create"

	PrivDashboardView = "dashboard:view"
	PrivAuditView     = "audit:view"
	PrivSettingsView  = "settings:view"
	PrivSettingsEdit  = "settings:update"
	PrivTokenGenerate = "token:generate"
)

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: PrivUserView, Name: "View User"},
	{Code: PrivUserCreate, Name: "Create User"},
	{Code: PrivUserUpdate, Name: "Update User"},
	{Code: PrivUserDelete, Name: "Delete User"},
	{Code: PrivUserUpdatePrivilege, Name: "Update User Privileges"},
	// Product management
	{Code: PrivProductView, Name: "View Product"},
	{Code: PrivProductCreate, Name: "Create Product"},
	{Code: PrivProductUpdate, Name: "Update Product"},
	{Code: PrivProductDelete, Name: "Delete Product"},
	{Code: PrivProductAdjust, Name: "Adjust Product Stock"},
	// Buyers
	{Code: PrivBuyerView, Name: "View Buyer"},
	{Code: PrivBuyerCreate, Name: "Create Buyer"},
	{Code: PrivBuyerUpdate, Name: "Update Buyer"},
	{Code: PrivBuyerDelete, Name: "Delete Buyer"},
	// Transaction management
	{Code: PrivTransactionView, Name: "View Own Transactions"},
	{Code: PrivTransactionViewAll, Name: "View All Transactions"},
	{Code: PrivTransactionCreate, Name: "Create Transaction"},
	// Reporting and administration
	{Code: PrivDashboardView, Name: "View Dashboard"},
	{Code: PrivAuditView, Name: "View Audit Log"},
	{Code: PrivSettingsView, Name: "View Settings"},
	{Code: PrivSettingsEdit, Name: "Update Settings"},
	{Code: PrivTokenGenerate, Name: "Generate Access Token"},
}
