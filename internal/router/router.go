package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gestion-empresas-backend/config"
	"github.com/ikkim/gestion-empresas-backend/internal/app/controller"
	apperrors "github.com/ikkim/gestion-empresas-backend/internal/errors"
	"github.com/ikkim/gestion-empresas-backend/internal/middleware"
)

type Router struct {
	empresaController *controller.EmpresaController
	sedeController    *controller.SedeController
	config            *config.Config
}

func NewRouter(
	empresaController *controller.EmpresaController,
	sedeController *controller.SedeController,
	cfg *config.Config,
) *Router {
	return &Router{
		empresaController: empresaController,
		sedeController:    sedeController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)
	apperrors.RegisterJSONFieldNames()

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Gestión de empresas API is running",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Ruta no encontrada")
	})

	api := router.Group("/api")
	{
		empresas := api.Group("/empresas")
		{
			empresas.GET("", r.empresaController.ListEmpresas)
			empresas.POST("", r.empresaController.CreateEmpresa)
			empresas.GET("/activas", r.empresaController.ListActivas)
			empresas.GET("/buscar", r.empresaController.SearchEmpresas)
			empresas.GET("/facturacion", r.empresaController.ListByFacturacion)
			empresas.GET("/estadisticas/activas", r.empresaController.CountActivas)
			empresas.GET("/cif/:cif", r.empresaController.GetEmpresaByCIF)
			empresas.GET("/sector/:sector", r.empresaController.ListBySector)
			empresas.GET("/sector/:sector/activas", r.empresaController.ListActivasBySector)
			empresas.GET("/:id", r.empresaController.GetEmpresa)
			empresas.PUT("/:id", r.empresaController.UpdateEmpresa)
			empresas.DELETE("/:id", r.empresaController.DeleteEmpresa)
			empresas.PATCH("/:id/activar", r.empresaController.ActivateEmpresa)
			empresas.PATCH("/:id/desactivar", r.empresaController.DeactivateEmpresa)
		}

		sedes := api.Group("/sedes")
		{
			sedes.GET("", r.sedeController.ListSedes)
			sedes.POST("", r.sedeController.CreateSede)
			sedes.GET("/buscar", r.sedeController.SearchSedes)
			sedes.GET("/capacidad", r.sedeController.ListByCapacidad)
			sedes.GET("/ciudad/:ciudad", r.sedeController.ListByCiudad)
			sedes.GET("/provincia/:provincia", r.sedeController.ListByProvincia)
			sedes.GET("/empresa/:empresaId", r.sedeController.ListByEmpresa)
			sedes.GET("/empresa/:empresaId/principal", r.sedeController.GetPrincipal)
			sedes.GET("/empresa/:empresaId/count", r.sedeController.CountByEmpresa)
			sedes.GET("/empresa/:empresaId/ciudad/:ciudad", r.sedeController.ListByEmpresaAndCiudad)
			sedes.GET("/:id", r.sedeController.GetSede)
			sedes.PUT("/:id", r.sedeController.UpdateSede)
			sedes.DELETE("/:id", r.sedeController.DeleteSede)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
