package authz

// --- СПИСОК ПЕРМИШЕНОВ ПАНЕЛИ ---

const (
	// Глобальные
	Superuser = "superuser"

	// Рестораны и точки
	RestaurantsView   = "restaurants:view"
	RestaurantsManage = "restaurants:manage"

	// Заказы
	OrdersView   = "orders:view"
	OrdersManage = "orders:manage"

	// Касса
	BillingView   = "billing:view"
	BillingManage = "billing:manage"

	// Персонал, смены и табель
	StaffView       = "staff:view"
	StaffManage     = "staff:manage"
	ShiftsManage    = "shifts:manage"
	AttendanceClock = "attendance:clock"
	AttendanceAdmin = "attendance:approve"

	// Зарплата
	PayrollView   = "payroll:view"
	PayrollManage = "payroll:manage"

	// Фичефлаги проверяются как "feature:<имя>".
	FeaturePrefix = "feature:"
	FeatureQRPay  = FeaturePrefix + "qr_payments"
)
