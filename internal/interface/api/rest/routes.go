package rest

const (
	// auth
	RouteAuth     = "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"
	RouteMe       = RouteAuth + "/me"

	// students
	RouteStudents       = "/students"
	RouteStudent        = RouteStudents + "/:id"
	RouteStudentHistory = RouteStudent + "/history"

	// users
	RouteUsers        = "/users"
	RouteUser         = RouteUsers + "/:id"
	RouteUserPassword = RouteUser + "/password"
	RouteUserRole     = RouteUser + "/role"

	// ops
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
