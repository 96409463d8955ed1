package rutas

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/CarlosMtz98/logica_pospizzeria/db"

	"github.com/gorilla/mux"
)

// ---------------------------
// RESOLUCIÓN DE PRODUCTOS POR CATEGORÍA
// ---------------------------

// infoCategoria liga cada discriminante con su tabla de catálogo y la
// etiqueta que se muestra cuando el producto ya no existe.
type infoCategoria struct {
	Tabla    string
	Etiqueta string
}

var categoriasProducto = map[string]infoCategoria{
	CategoriaPizza:       {"pizzas", "Pizza"},
	CategoriaHamburguesa: {"hamburguesas", "Hamburguesa"},
	CategoriaCostilla:    {"costillas", "Costilla"},
	CategoriaAlita:       {"alitas", "Alitas"},
	CategoriaEspagueti:   {"espaguetis", "Espagueti"},
	CategoriaPapas:       {"papas", "Papas"},
	CategoriaMarisco:     {"mariscos", "Marisco"},
	CategoriaBebida:      {"bebidas", "Bebida"},
	CategoriaMagno:       {"magnos", "Magno"},
	CategoriaRebanada:    {"rebanadas", "Rebanada"},
	CategoriaBotana:      {"botanas", "Botana"},
	CategoriaPaquete:     {"paquetes", "Paquete"},
}

// CatalogoResolver resuelve el nombre de un producto de catálogo por tabla e id.
type CatalogoResolver interface {
	NombreProducto(tabla string, id int64) (string, error)
}

type catalogoDB struct {
	dbc *db.DBConnection
}

func (c catalogoDB) NombreProducto(tabla string, id int64) (string, error) {
	// tabla sale del mapa fijo de categorías, nunca de la petición
	var nombre string
	err := c.dbc.Local.QueryRow(fmt.Sprintf("SELECT nombre FROM %s WHERE id = ?", tabla), id).Scan(&nombre)
	if err != nil {
		return "", err
	}
	return nombre, nil
}

// EntradaVista es un producto ya resuelto para mostrarse en cocina o ticket.
// Las categorías por porciones acumulan varios nombres en una sola entrada.
type EntradaVista struct {
	Categoria string   `json:"categoria"`
	Nombres   []string `json:"nombres"`
}

// ProductoVista es un renglón de venta con sus productos resueltos.
type ProductoVista struct {
	IDDetalle      int64          `json:"id_detalle"`
	Categoria      string         `json:"categoria"`
	Entradas       []EntradaVista `json:"entradas"`
	Cantidad       float64        `json:"cantidad"`
	PrecioUnitario float64        `json:"precio_unitario"`
	ExtraQueso     float64        `json:"extra_queso,omitempty"`
	Estatus        int            `json:"estatus"`
	Comentarios    string         `json:"comentarios,omitempty"`
}

// nombreOEtiqueta busca el nombre en el catálogo y degrada a "<Etiqueta> #<id>"
// cuando el producto ya no se puede resolver.
func nombreOEtiqueta(res CatalogoResolver, categoria string, id int64) string {
	info := categoriasProducto[categoria]
	nombre, err := res.NombreProducto(info.Tabla, id)
	if err != nil {
		return fmt.Sprintf("%s #%d", info.Etiqueta, id)
	}
	return nombre
}

// resuelveReferencia convierte el payload de un renglón en sus entradas de
// vista. La pizza por ingredientes corta de inmediato con su representación
// propia; los paquetes se expanden en sus constituyentes.
func resuelveReferencia(categoria string, ref ReferenciaProducto, res CatalogoResolver) []EntradaVista {
	if categoria == CategoriaIngredientes {
		nombres := []string{fmt.Sprintf("Pizza armada %s", ref.Tamano)}
		for _, id := range ref.IDs {
			nombre, err := res.NombreProducto("ingredientes", id)
			if err != nil {
				nombre = fmt.Sprintf("Ingrediente #%d", id)
			}
			nombres = append(nombres, nombre)
		}
		return []EntradaVista{{Categoria: CategoriaIngredientes, Nombres: nombres}}
	}

	if categoriasUnitarias[categoria] {
		return []EntradaVista{{
			Categoria: categoria,
			Nombres:   []string{nombreOEtiqueta(res, categoria, ref.ID)},
		}}
	}

	if categoriasPorciones[categoria] {
		var nombres []string
		for _, id := range ref.IDs {
			nombres = append(nombres, nombreOEtiqueta(res, categoria, id))
		}
		return []EntradaVista{{Categoria: categoria, Nombres: nombres}}
	}

	if categoria == CategoriaPaquete {
		entradas := []EntradaVista{{
			Categoria: CategoriaPaquete,
			Nombres:   []string{nombreOEtiqueta(res, CategoriaPaquete, ref.IDPaquete)},
		}}
		for _, id := range ref.Pizzas {
			entradas = append(entradas, EntradaVista{
				Categoria: CategoriaPizza,
				Nombres:   []string{nombreOEtiqueta(res, CategoriaPizza, id)},
			})
		}
		if ref.IDAlitas > 0 {
			entradas = append(entradas, EntradaVista{
				Categoria: CategoriaAlita,
				Nombres:   []string{nombreOEtiqueta(res, CategoriaAlita, ref.IDAlitas)},
			})
		}
		if ref.IDHamburguesa > 0 {
			entradas = append(entradas, EntradaVista{
				Categoria: CategoriaHamburguesa,
				Nombres:   []string{nombreOEtiqueta(res, CategoriaHamburguesa, ref.IDHamburguesa)},
			})
		}
		if ref.IDBebida > 0 {
			entradas = append(entradas, EntradaVista{
				Categoria: CategoriaBebida,
				Nombres:   []string{nombreOEtiqueta(res, CategoriaBebida, ref.IDBebida)},
			})
		}
		return entradas
	}

	// categoría desconocida almacenada: degradar en lugar de tirar la vista
	return []EntradaVista{{Categoria: categoria, Nombres: []string{fmt.Sprintf("%s #%d", categoria, ref.ID)}}}
}

// cargaProductosVista lee los renglones de una venta y los resuelve.
func cargaProductosVista(dbc *db.DBConnection, res CatalogoResolver, idVenta int64) ([]ProductoVista, error) {
	rows, err := dbc.Local.Query(`
		SELECT id_detalle, categoria, referencia, cantidad, precio_unitario,
			   extra_queso, estatus, comentarios
		FROM detalle_ventas WHERE id_venta = ?
	`, idVenta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var productos []ProductoVista
	for rows.Next() {
		var det db.DetalleVenta
		if err := rows.Scan(
			&det.IDDetalle, &det.Categoria, &det.Referencia, &det.Cantidad,
			&det.PrecioUnitario, &det.ExtraQueso, &det.Estatus, &det.Comentarios,
		); err != nil {
			return nil, err
		}
		var ref ReferenciaProducto
		if err := json.Unmarshal(det.Referencia, &ref); err != nil {
			// payload ilegible: se muestra la categoría sola
			ref = ReferenciaProducto{}
		}
		productos = append(productos, ProductoVista{
			IDDetalle:      det.IDDetalle,
			Categoria:      det.Categoria,
			Entradas:       resuelveReferencia(det.Categoria, ref, res),
			Cantidad:       det.Cantidad,
			PrecioUnitario: det.PrecioUnitario,
			ExtraQueso:     det.ExtraQueso,
			Estatus:        det.Estatus,
			Comentarios:    db.NullToStr(det.Comentarios),
		})
	}
	return productos, rows.Err()
}

func escaneaVenta(row *sql.Row) (db.Venta, error) {
	var v db.Venta
	err := row.Scan(
		&v.IDVenta, &v.ClaveUnica, &v.IDSucursal, &v.Mesa, &v.Fecha, &v.Total,
		&v.Comentarios, &v.TipoServicio, &v.NombreCliente, &v.IDCaja,
		&v.Estatus, &v.Detalles,
	)
	return v, err
}

const columnasVenta = `id_venta, clave_unica, id_sucursal, mesa, fecha, total,
	comentarios, tipo_servicio, nombre_cliente, id_caja, estatus, detalles`

func ventaAMapa(v db.Venta) map[string]interface{} {
	return map[string]interface{}{
		"id_venta":       v.IDVenta,
		"clave_unica":    v.ClaveUnica,
		"id_sucursal":    v.IDSucursal,
		"mesa":           db.NullToIntOrNil(v.Mesa),
		"fecha":          v.Fecha,
		"total":          v.Total,
		"comentarios":    db.NullToStr(v.Comentarios),
		"tipo_servicio":  v.TipoServicio,
		"nombre_cliente": db.NullToStr(v.NombreCliente),
		"id_caja":        v.IDCaja,
		"estatus":        v.Estatus,
		"detalles":       db.NullToStr(v.Detalles),
	}
}

// ---------------------------
// ENDPOINT: Obtener una venta con productos resueltos
// ---------------------------
func GetVenta(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idVenta, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de venta inválido", err.Error())
			return
		}

		v, err := escaneaVenta(dbc.Local.QueryRow(
			"SELECT "+columnasVenta+" FROM ventas WHERE id_venta = ?", idVenta))
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Venta no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la venta", err.Error())
			return
		}

		productos, err := cargaProductosVista(dbc, catalogoDB{dbc}, idVenta)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los productos de la venta", err.Error())
			return
		}

		data := ventaAMapa(v)
		data["productos"] = productos
		data["num_productos"] = len(productos)
		writeSuccessResponse(w, "Venta obtenida correctamente", data)
	}
}

// ---------------------------
// ENDPOINT: Resumen de pedidos del día
// ---------------------------
func GetPedidosResumen(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hoy := time.Now().Format("2006-01-02")
		rows, err := dbc.Local.Query(
			"SELECT "+columnasVenta+" FROM ventas WHERE DATE(fecha) = ? ORDER BY fecha DESC", hoy)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al obtener los pedidos", err.Error())
			return
		}
		defer rows.Close()

		resolver := catalogoDB{dbc}
		var pedidos []map[string]interface{}
		for rows.Next() {
			var v db.Venta
			if err := rows.Scan(
				&v.IDVenta, &v.ClaveUnica, &v.IDSucursal, &v.Mesa, &v.Fecha, &v.Total,
				&v.Comentarios, &v.TipoServicio, &v.NombreCliente, &v.IDCaja,
				&v.Estatus, &v.Detalles,
			); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer pedidos", err.Error())
				return
			}
			productos, err := cargaProductosVista(dbc, resolver, v.IDVenta)
			if err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los productos del pedido", err.Error())
				return
			}
			data := ventaAMapa(v)
			data["productos"] = productos
			pedidos = append(pedidos, data)
		}
		if err := rows.Err(); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer pedidos", err.Error())
			return
		}
		writeSuccessResponse(w, "Pedidos del día obtenidos correctamente", pedidos)
	}
}

// ---------------------------
// ENDPOINT: Tablero de cocina (ventas en espera o preparación)
// ---------------------------
func GetPedidosCocina(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := dbc.Local.Query(
			"SELECT "+columnasVenta+" FROM ventas WHERE estatus IN (?, ?) ORDER BY fecha ASC",
			EstatusEspera, EstatusPreparacion)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al obtener los pedidos de cocina", err.Error())
			return
		}
		defer rows.Close()

		resolver := catalogoDB{dbc}
		var pedidos []map[string]interface{}
		for rows.Next() {
			var v db.Venta
			if err := rows.Scan(
				&v.IDVenta, &v.ClaveUnica, &v.IDSucursal, &v.Mesa, &v.Fecha, &v.Total,
				&v.Comentarios, &v.TipoServicio, &v.NombreCliente, &v.IDCaja,
				&v.Estatus, &v.Detalles,
			); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer pedidos de cocina", err.Error())
				return
			}
			productos, err := cargaProductosVista(dbc, resolver, v.IDVenta)
			if err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los productos del pedido", err.Error())
				return
			}
			pedidos = append(pedidos, map[string]interface{}{
				"id_venta":       v.IDVenta,
				"clave_unica":    v.ClaveUnica,
				"mesa":           db.NullToIntOrNil(v.Mesa),
				"fecha":          v.Fecha,
				"tipo_servicio":  v.TipoServicio,
				"nombre_cliente": db.NullToStr(v.NombreCliente),
				"estatus":        v.Estatus,
				"productos":      productos,
			})
		}
		if err := rows.Err(); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer pedidos de cocina", err.Error())
			return
		}
		writeSuccessResponse(w, "Pedidos de cocina obtenidos correctamente", pedidos)
	}
}

// ---------------------------
// ENDPOINT: Recrear ticket
// ---------------------------
func RecreaTicket(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idVenta, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de venta inválido", err.Error())
			return
		}

		v, err := escaneaVenta(dbc.Local.QueryRow(
			"SELECT "+columnasVenta+" FROM ventas WHERE id_venta = ?", idVenta))
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Venta no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la venta", err.Error())
			return
		}

		productos, err := cargaProductosVista(dbc, catalogoDB{dbc}, idVenta)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los productos de la venta", err.Error())
			return
		}

		pagosRows, err := dbc.Local.Query(`
			SELECT id_pago, id_metpago, monto, referencia, fecha
			FROM pagos WHERE id_venta = ?
		`, idVenta)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los pagos", err.Error())
			return
		}
		defer pagosRows.Close()

		var pagos []map[string]interface{}
		var totalPagado float64
		for pagosRows.Next() {
			var p db.Pago
			if err := pagosRows.Scan(&p.IDPago, &p.IDMetPago, &p.Monto, &p.Referencia, &p.Fecha); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer pago", err.Error())
				return
			}
			totalPagado += p.Monto
			pagos = append(pagos, map[string]interface{}{
				"id_pago":    p.IDPago,
				"id_metpago": p.IDMetPago,
				"monto":      p.Monto,
				"referencia": db.NullToStr(p.Referencia),
				"fecha":      p.Fecha,
			})
		}
		if err := pagosRows.Err(); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los pagos", err.Error())
			return
		}

		data := ventaAMapa(v)
		data["productos"] = productos
		data["pagos"] = pagos
		data["total_pagado"] = round(totalPagado)
		data["restante"] = round(v.Total - totalPagado)
		writeSuccessResponse(w, "Ticket recreado correctamente", data)
	}
}
