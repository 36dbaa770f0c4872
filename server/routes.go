package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	for _, prefix := range []string{"", RouteAPIPrefix} {
		// LOGIN
		s.RegisterRouteHandler("POST "+prefix+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))

		// PRODUCTS (bearer credential required)
		s.RegisterRouteHandler("GET "+prefix+RouteProducts, ChainMiddleware(s.ListProductsHandler(), s.APIMiddleware(s.RequireBearer())...))
		s.RegisterRouteHandler("POST "+prefix+RouteProducts, ChainMiddleware(s.CreateProductHandler(), s.APIMiddleware(s.RequireBearer())...))
		s.RegisterRouteHandler("PUT "+prefix+RouteProduct, ChainMiddleware(s.UpdateProductHandler(), s.APIMiddleware(s.RequireBearer())...))
		s.RegisterRouteHandler("DELETE "+prefix+RouteProduct, ChainMiddleware(s.DeleteProductHandler(), s.APIMiddleware(s.RequireBearer())...))
	}
}
