package webapi

// Init registers every API route on the web server created by webserver.Init
func Init() {
	registerAuthRoutes()
	registerProfileRoutes()
	registerBillingRoutes()
	registerPropertyRoutes()
	registerSearchRoutes()
	registerBookingRoutes()
}
