package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Rate    RateSvcFacade
	Pricing PricingSvcFacade
	Cart    CartSvcFacade
	Order   OrderSvcFacade
	Cargo   CargoSvcFacade
	User    UserSvcFacade
	Token   TokenSvcFacade

	// Collaborators exposed to handlers directly.
	Products ProductProvider
	Activity ActivityRecorder
}
