package repository

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Stocks     StockRepository
	Incoming   IncomingRepository
	Movements  MovementRepository
	Sales      SaleRepository
	Products   ProductRepository
	Warehouses WarehouseRepository
	Users      UserRepository
	Employees  EmployeeRepository
	Activity   ActivityLogRepository
}
