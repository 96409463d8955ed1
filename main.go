package main

import (
	"fmt"
	"log"
	"net/http"

	middlewares "github.com/CarlosMtz98/logica_pospizzeria/Middleware"
	"github.com/CarlosMtz98/logica_pospizzeria/config"
	"github.com/CarlosMtz98/logica_pospizzeria/db"
	"github.com/CarlosMtz98/logica_pospizzeria/rutas"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	dbConn, err := db.GetDBConnection()
	if err != nil {
		log.Fatalf("Error al conectar a la base de datos: %v", err)
	}

	if err := dbConn.CheckConnections(); err != nil {
		log.Fatalf("Error verificando la conexión: %v", err)
	}
	fmt.Println("Conexión a la base de datos establecida correctamente")

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Error cargando la configuración: %v", err)
	}

	r := mux.NewRouter()
	setupRoutes(r, dbConn)

	handler := cors.AllowAll().Handler(r)

	fmt.Printf("Servidor corriendo en http://0.0.0.0:%s\n", config.Config.Puerto)
	log.Fatal(http.ListenAndServe(":"+config.Config.Puerto, handler))
}

// conPermiso envuelve un handler con la verificación de una bandera de permisos
func conPermiso(permiso string, h http.HandlerFunc) http.Handler {
	return middlewares.RequirePermiso(permiso)(h)
}

func setupRoutes(r *mux.Router, dbConn *db.DBConnection) {
	// Rutas públicas
	r.HandleFunc("/api/login", rutas.LoginUsuario(dbConn)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/refresh", rutas.RefreshTokenEndpoint(dbConn)).Methods("POST", "OPTIONS")

	// Punto de venta
	pos := r.PathPrefix("/pos").Subrouter()
	pos.Use(middlewares.JWTAuthMiddleware, middlewares.RequirePermiso("pos"))
	pos.HandleFunc("", rutas.CreateVenta(dbConn)).Methods("POST", "OPTIONS")
	pos.HandleFunc("/", rutas.CreateVenta(dbConn)).Methods("POST", "OPTIONS")
	pos.HandleFunc("/pagar", rutas.RegistrarPago(dbConn)).Methods("POST", "OPTIONS")
	pos.HandleFunc("/pedidos-resumen", rutas.GetPedidosResumen(dbConn)).Methods("GET", "OPTIONS")
	pos.HandleFunc("/pedidos-cocina", rutas.GetPedidosCocina(dbConn)).Methods("GET", "OPTIONS")
	pos.HandleFunc("/recrea-ticket/{id:[0-9]+}", rutas.RecreaTicket(dbConn)).Methods("GET", "OPTIONS")
	pos.HandleFunc("/especial/{id:[0-9]+}/completar", rutas.CompletarEspecial(dbConn)).Methods("PATCH", "OPTIONS")
	pos.HandleFunc("/{id:[0-9]+}", rutas.GetVenta(dbConn)).Methods("GET", "OPTIONS")
	pos.HandleFunc("/{id:[0-9]+}", rutas.UpdateVenta(dbConn)).Methods("PUT", "OPTIONS")
	pos.HandleFunc("/{id:[0-9]+}", rutas.DeleteVenta(dbConn)).Methods("DELETE", "OPTIONS")
	pos.HandleFunc("/{id:[0-9]+}/toggle-preparacion", rutas.TogglePreparacionVenta(dbConn)).Methods("PATCH", "OPTIONS")
	pos.HandleFunc("/{id:[0-9]+}/completar", rutas.CompletarVenta(dbConn)).Methods("PATCH", "OPTIONS")
	pos.HandleFunc("/{id:[0-9]+}/cancelar", rutas.CancelarVenta(dbConn)).Methods("PATCH", "OPTIONS")

	// Caja
	caja := r.PathPrefix("/caja").Subrouter()
	caja.Use(middlewares.JWTAuthMiddleware, middlewares.RequirePermiso("caja"))
	caja.HandleFunc("/abrir", rutas.AbrirCaja(dbConn)).Methods("POST", "OPTIONS")
	caja.HandleFunc("/abierta", rutas.GetCajaAbierta(dbConn)).Methods("GET", "OPTIONS")
	caja.HandleFunc("/{id:[0-9]+}", rutas.GetCaja(dbConn)).Methods("GET", "OPTIONS")
	caja.HandleFunc("/{id:[0-9]+}/movimiento", rutas.RegistrarMovimientoCaja(dbConn)).Methods("POST", "OPTIONS")
	caja.HandleFunc("/{id:[0-9]+}/cerrar", rutas.CerrarCaja(dbConn)).Methods("PATCH", "OPTIONS")

	// Catálogos de productos: mismo juego de rutas por categoría
	for _, def := range rutas.Catalogos {
		cat := r.PathPrefix(def.Prefijo).Subrouter()
		cat.Use(middlewares.JWTAuthMiddleware)
		cat.HandleFunc("", rutas.ListarCatalogo(dbConn, def)).Methods("GET", "OPTIONS")
		cat.HandleFunc("/", rutas.ListarCatalogo(dbConn, def)).Methods("GET", "OPTIONS")
		cat.HandleFunc("/{id:[0-9]+}", rutas.ObtenerProductoCatalogo(dbConn, def)).Methods("GET", "OPTIONS")
		cat.Handle("", conPermiso("catalogo", rutas.CrearProductoCatalogo(dbConn, def))).Methods("POST", "OPTIONS")
		cat.Handle("/", conPermiso("catalogo", rutas.CrearProductoCatalogo(dbConn, def))).Methods("POST", "OPTIONS")
		cat.Handle("/{id:[0-9]+}", conPermiso("catalogo", rutas.ActualizarProductoCatalogo(dbConn, def))).Methods("PUT", "OPTIONS")
		cat.Handle("/{id:[0-9]+}", conPermiso("catalogo", rutas.EliminarProductoCatalogo(dbConn, def))).Methods("DELETE", "OPTIONS")
	}

	// Clientes y direcciones
	clientes := r.PathPrefix("/clientes").Subrouter()
	clientes.Use(middlewares.JWTAuthMiddleware)
	clientes.HandleFunc("", rutas.GetAllClientes(dbConn)).Methods("GET", "OPTIONS")
	clientes.HandleFunc("/", rutas.GetAllClientes(dbConn)).Methods("GET", "OPTIONS")
	clientes.HandleFunc("/{id:[0-9]+}", rutas.GetCliente(dbConn)).Methods("GET", "OPTIONS")
	clientes.HandleFunc("/{id:[0-9]+}/direcciones", rutas.GetDireccionesCliente(dbConn)).Methods("GET", "OPTIONS")
	clientes.Handle("", conPermiso("clientes", rutas.CreateCliente(dbConn))).Methods("POST", "OPTIONS")
	clientes.Handle("/", conPermiso("clientes", rutas.CreateCliente(dbConn))).Methods("POST", "OPTIONS")
	clientes.Handle("/{id:[0-9]+}", conPermiso("clientes", rutas.UpdateCliente(dbConn))).Methods("PUT", "OPTIONS")
	clientes.Handle("/{id:[0-9]+}", conPermiso("clientes", rutas.DeleteCliente(dbConn))).Methods("DELETE", "OPTIONS")
	clientes.Handle("/{id:[0-9]+}/direcciones", conPermiso("clientes", rutas.CreateDireccion(dbConn))).Methods("POST", "OPTIONS")
	clientes.Handle("/direcciones/{id_direccion:[0-9]+}", conPermiso("clientes", rutas.DeleteDireccion(dbConn))).Methods("DELETE", "OPTIONS")

	// Sucursales
	sucursales := r.PathPrefix("/sucursales").Subrouter()
	sucursales.Use(middlewares.JWTAuthMiddleware)
	sucursales.HandleFunc("", rutas.GetSucursalALL(dbConn)).Methods("GET", "OPTIONS")
	sucursales.HandleFunc("/", rutas.GetSucursalALL(dbConn)).Methods("GET", "OPTIONS")
	sucursales.HandleFunc("/{id:[0-9]+}", rutas.GetSucursal(dbConn)).Methods("GET", "OPTIONS")
	sucursales.Handle("", conPermiso("sucursales", rutas.CreateSucursal(dbConn))).Methods("POST", "OPTIONS")
	sucursales.Handle("/{id:[0-9]+}", conPermiso("sucursales", rutas.UpdateSucursal(dbConn))).Methods("PUT", "OPTIONS")
	sucursales.Handle("/{id:[0-9]+}", conPermiso("sucursales", rutas.DeleteSucursal(dbConn))).Methods("DELETE", "OPTIONS")

	// Reportes
	reportes := r.PathPrefix("/reportes").Subrouter()
	reportes.Use(middlewares.JWTAuthMiddleware, middlewares.RequirePermiso("reportes"))
	reportes.HandleFunc("/ventas-dia", rutas.GetVentasDia(dbConn)).Methods("GET", "OPTIONS")
	reportes.HandleFunc("/ventas-mes", rutas.GetVentasMes(dbConn)).Methods("GET", "OPTIONS")
}
