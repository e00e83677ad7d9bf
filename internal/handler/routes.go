package handler

// Paths shared by the router, the resource handlers and their tests.
const (
	APIV1Prefix = "/api/v1"

	LivePath    = "/live"
	ReadyPath   = "/ready"
	MetricsPath = "/metrics"
	DocsPath    = "/docs"
	OpenAPIPath = "/openapi.yaml"

	BrandsPath     = "/brands"
	CategoriesPath = "/categories"
	ProductsPath   = "/products"

	AuthSchemesPath = "/auth/schemes"
	AuthLoginPath   = "/auth/:scheme/login"
)
