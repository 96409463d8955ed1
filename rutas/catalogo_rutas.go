package rutas

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/CarlosMtz98/logica_pospizzeria/db"

	"github.com/gorilla/mux"
)

// ---------------------------
// CATÁLOGOS DE PRODUCTOS
// ---------------------------
// Todas las tablas de catálogo comparten el mismo renglón (id, nombre,
// descripcion, precio, estatus) y el mismo juego de endpoints, así que un
// solo juego de handlers parametrizado por tabla sirve para las trece.

type CatalogoDef struct {
	Prefijo string // prefijo de ruta, p. ej. "/pizzas"
	Tabla   string
}

// Catalogos enumera los catálogos del sistema; el orden define el orden de
// registro de rutas.
var Catalogos = []CatalogoDef{
	{"/pizzas", "pizzas"},
	{"/hamburguesas", "hamburguesas"},
	{"/costillas", "costillas"},
	{"/alitas", "alitas"},
	{"/espaguetis", "espaguetis"},
	{"/papas", "papas"},
	{"/mariscos", "mariscos"},
	{"/bebidas", "bebidas"},
	{"/magnos", "magnos"},
	{"/rebanadas", "rebanadas"},
	{"/botanas", "botanas"},
	{"/paquetes", "paquetes"},
	{"/ingredientes", "ingredientes"},
}

type ProductoCatalogoRequest struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
}

func ListarCatalogo(dbc *db.DBConnection, def CatalogoDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := dbc.Local.Query(fmt.Sprintf(
			"SELECT id, nombre, descripcion, precio, estatus FROM %s WHERE estatus = 'S' ORDER BY nombre", def.Tabla))
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al obtener el catálogo", err.Error())
			return
		}
		defer rows.Close()

		var productos []map[string]interface{}
		for rows.Next() {
			var p db.ProductoCatalogo
			if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Estatus); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el catálogo", err.Error())
				return
			}
			productos = append(productos, map[string]interface{}{
				"id":          p.ID,
				"nombre":      p.Nombre,
				"descripcion": db.NullToStr(p.Descripcion),
				"precio":      p.Precio,
				"estatus":     p.Estatus,
			})
		}
		writeSuccessResponse(w, "Catálogo obtenido correctamente", productos)
	}
}

func ObtenerProductoCatalogo(dbc *db.DBConnection, def CatalogoDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID inválido", err.Error())
			return
		}
		var p db.ProductoCatalogo
		err = dbc.Local.QueryRow(fmt.Sprintf(
			"SELECT id, nombre, descripcion, precio, estatus FROM %s WHERE id = ?", def.Tabla), id).
			Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Estatus)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Producto no encontrado", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el producto", err.Error())
			return
		}
		writeSuccessResponse(w, "Producto obtenido correctamente", map[string]interface{}{
			"id":          p.ID,
			"nombre":      p.Nombre,
			"descripcion": db.NullToStr(p.Descripcion),
			"precio":      p.Precio,
			"estatus":     p.Estatus,
		})
	}
}

func validarProductoCatalogo(req ProductoCatalogoRequest) error {
	if req.Nombre == "" {
		return fmt.Errorf("el nombre es obligatorio")
	}
	if req.Precio <= 0 {
		return fmt.Errorf("el precio debe ser mayor a 0")
	}
	return nil
}

func CrearProductoCatalogo(dbc *db.DBConnection, def CatalogoDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProductoCatalogoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "JSON inválido", err.Error())
			return
		}
		if err := validarProductoCatalogo(req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Producto inválido", err.Error())
			return
		}

		res, err := dbc.Local.Exec(fmt.Sprintf(
			"INSERT INTO %s (nombre, descripcion, precio, estatus) VALUES (?, ?, ?, 'S')", def.Tabla),
			req.Nombre, db.StrToNull(req.Descripcion), req.Precio)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al crear el producto", err.Error())
			return
		}
		id, _ := res.LastInsertId()
		writeSuccessResponse(w, "Producto creado correctamente", map[string]interface{}{
			"id":     id,
			"nombre": req.Nombre,
			"precio": req.Precio,
		})
	}
}

func ActualizarProductoCatalogo(dbc *db.DBConnection, def CatalogoDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID inválido", err.Error())
			return
		}
		var req ProductoCatalogoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "JSON inválido", err.Error())
			return
		}
		if err := validarProductoCatalogo(req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Producto inválido", err.Error())
			return
		}

		res, err := dbc.Local.Exec(fmt.Sprintf(
			"UPDATE %s SET nombre = ?, descripcion = ?, precio = ? WHERE id = ?", def.Tabla),
			req.Nombre, db.StrToNull(req.Descripcion), req.Precio, id)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al actualizar el producto", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			var uno int
			if err := dbc.Local.QueryRow(fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", def.Tabla), id).Scan(&uno); err == sql.ErrNoRows {
				writeErrorResponse(w, http.StatusNotFound, "Producto no encontrado", "")
				return
			}
		}
		writeSuccessResponse(w, "Producto actualizado correctamente", nil)
	}
}

// EliminarProductoCatalogo es una baja lógica: el producto deja de listarse
// pero las ventas históricas lo siguen resolviendo por id.
func EliminarProductoCatalogo(dbc *db.DBConnection, def CatalogoDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID inválido", err.Error())
			return
		}
		res, err := dbc.Local.Exec(fmt.Sprintf(
			"UPDATE %s SET estatus = 'N' WHERE id = ?", def.Tabla), id)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al eliminar el producto", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			writeErrorResponse(w, http.StatusNotFound, "Producto no encontrado", "")
			return
		}
		writeSuccessResponse(w, "Producto eliminado correctamente", nil)
	}
}
