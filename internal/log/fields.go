package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldExpenseID    = "expense_id"
	FieldExpenseName  = "expense_name"
	FieldAmountCents  = "amount_cents"
	FieldCategoryID   = "category_id"
	FieldCategoryName = "category_name"
	FieldItemID       = "item_id"
	FieldItemName     = "item_name"
	FieldQuantity     = "quantity"
	FieldTaskID       = "task_id"
	FieldTaskTitle    = "task_title"
	FieldPriority     = "priority"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentBudget  = "budget"
	ComponentKitchen = "kitchen"
	ComponentTasks   = "tasks"
	ComponentStorage = "storage"
	ComponentTrace   = "trace"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpToggle   = "toggle"
	OpAdjust   = "adjust"
	OpSeed     = "seed"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
