package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cpr-api/internal/application/auth"
	"github.com/jhoicas/cpr-api/internal/application/closure"
	"github.com/jhoicas/cpr-api/internal/application/production"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LifecycleUC  *production.LifecycleUseCase
	ProduccionUC *production.ProduccionUseCase
	CierreUC     *closure.UseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas del CPR (requieren Bearer Token)
	cpr := api.Group("/cpr", AuthMiddleware(deps.JWTSecret))

	// Órdenes de fabricación
	ordenes := cpr.Group("/ordenes")
	productionHandler := NewProductionHandler(deps.LifecycleUC)
	ordenes.Post("/", productionHandler.Create)
	ordenes.Get("/", productionHandler.List)
	ordenes.Get("/:id", productionHandler.GetByID)
	ordenes.Post("/:id/asignar", productionHandler.Asignar)
	ordenes.Post("/:id/finalizar", productionHandler.Finalizar)

	// Calidad: validar y marcar incidencia solo para calidad o admin
	calidadOnly := RequireRole(entity.RolCalidad, entity.RolAdmin)
	ordenes.Post("/:id/validar", calidadOnly, productionHandler.ValidarCalidad)
	ordenes.Post("/:id/incidencia", calidadOnly, productionHandler.Incidencia)
	cpr.Get("/calidad/cola", productionHandler.ColaCalidad)

	// Producciones y rendimiento
	produccionHandler := NewProduccionHandler(deps.ProduccionUC)
	producciones := cpr.Group("/producciones")
	producciones.Post("/", produccionHandler.Registrar)
	producciones.Put("/:id", produccionHandler.Actualizar)
	producciones.Delete("/:id", produccionHandler.Eliminar)

	elaboraciones := cpr.Group("/elaboraciones")
	elaboraciones.Get("/:elaboracionId/producciones", produccionHandler.Historial)
	elaboraciones.Get("/:elaboracionId/estadisticas", produccionHandler.Estadisticas)
	elaboraciones.Post("/:elaboracionId/ajustes", produccionHandler.AceptarAjustes)

	// Cierres mensuales y libro de almacén (solo admin cierra el mes)
	cierreHandler := NewCierreHandler(deps.CierreUC)
	cierres := cpr.Group("/cierres")
	cierres.Post("/", RequireRole(entity.RolAdmin), cierreHandler.Realizar)
	cierres.Get("/", cierreHandler.Historial)
	cierres.Get("/:mes", cierreHandler.Obtener)
	cierres.Get("/:mes/informe", cierreHandler.InformePDF)

	almacen := cpr.Group("/almacen")
	almacen.Post("/movimientos", cierreHandler.RegistrarMovimiento)
	almacen.Get("/movimientos", cierreHandler.ListarMovimientos)
}
