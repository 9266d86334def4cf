package model

import "time"

// LogEntry is one immutable audit record.
type LogEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Module    string    `json:"module"`
	Timestamp time.Time `json:"timestamp"`
}

// Audit action tags
const (
	ActionSystemInit        = "SYSTEM_INIT"
	ActionCreateProduct     = "CREATE_PRODUCT"
	ActionUpdateProduct     = "UPDATE_PRODUCT"
	ActionDeleteProduct     = "DELETE_PRODUCT"
	ActionBulkUpdate        = "BULK_UPDATE"
	ActionInwardBatch       = "INWARD_STOCK_BATCH"
	ActionOutwardBatch      = "OUTWARD_STOCK_BATCH"
	ActionUpdateTransaction = "UPDATE_TRANSACTION"
	ActionDeleteTransaction = "DELETE_TRANSACTION"
	ActionImportData        = "IMPORT_DATA"
	ActionAISmartUpdate     = "AI_SMART_UPDATE"
	ActionSystemRestore     = "SYSTEM_RESTORE"
	ActionSystemReset       = "SYSTEM_RESET"
	ActionUserCreate        = "USER_CREATE"
	ActionUserUpdate        = "USER_UPDATE"
	ActionUserDelete        = "USER_DELETE"
	ActionUserSwitch        = "USER_SWITCH"
	ActionRoleCreate        = "ROLE_CREATE"
	ActionRoleUpdate        = "ROLE_UPDATE"
	ActionRoleDelete        = "ROLE_DELETE"
	ActionDesignationAdd    = "DESIGNATION_ADD"
	ActionDesignationUpdate = "DESIGNATION_UPDATE"
	ActionDesignationDelete = "DESIGNATION_DELETE"
)

// Audit module tags
const (
	ModuleSystem      = "SYSTEM"
	ModuleInventory   = "INVENTORY"
	ModuleOperations  = "OPERATIONS"
	ModuleReports     = "REPORTS"
	ModuleAIAssistant = "AI_ASSISTANT"
	ModuleSettings    = "SETTINGS"
	ModuleAuth        = "AUTH"
)
