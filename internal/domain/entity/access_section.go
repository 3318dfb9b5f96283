package entity

// Slugs de secciones de acceso.
const (
	SectionCategories = "categories"
	SectionProducts   = "products"
	SectionWarehouses = "warehouses"
	SectionEmployees  = "employees"
	SectionStocks     = "stocks"
	SectionOperations = "operations"
	SectionReports    = "reports"
	SectionIncoming   = "incoming"
	SectionMovements  = "movements"
	SectionSales      = "sales"
	SectionOrders     = "orders"
	SectionLogs       = "logs"
)

// AccessSection sección de la aplicación que se habilita por empleado.
type AccessSection struct {
	Slug string
	Name string
}

// DefaultSections catálogo completo de secciones (lo siembra `manage setup-sections`).
var DefaultSections = []AccessSection{
	{Slug: SectionCategories, Name: "Категории"},
	{Slug: SectionProducts, Name: "Товары"},
	{Slug: SectionWarehouses, Name: "Склады"},
	{Slug: SectionEmployees, Name: "Сотрудники"},
	{Slug: SectionStocks, Name: "Остатки"},
	{Slug: SectionOperations, Name: "Операции"},
	{Slug: SectionReports, Name: "Отчеты"},
	{Slug: SectionIncoming, Name: "Поступления"},
	{Slug: SectionMovements, Name: "Перемещения"},
	{Slug: SectionSales, Name: "Продажи"},
	{Slug: SectionOrders, Name: "Заказы"},
	{Slug: SectionLogs, Name: "Логи"},
}

// ValidSection indica si el slug pertenece al catálogo.
func ValidSection(slug string) bool {
	for _, s := range DefaultSections {
		if s.Slug == slug {
			return true
		}
	}
	return false
}
