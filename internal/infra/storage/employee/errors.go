package employee

import "errors"

var (
	// ErrEmployeeNotFound is returned when the employee does not exist
	ErrEmployeeNotFound = errors.New("employee.repository: employee not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("employee.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("employee.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("employee.repository: failed to scan row")
)
