package rutas

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CarlosMtz98/logica_pospizzeria/db"

	"github.com/gorilla/mux"
)

// ---------------------------
// CLIENTES Y DIRECCIONES
// ---------------------------

type ClienteRequest struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Correo   string `json:"correo,omitempty"`
}

type DireccionRequest struct {
	Direccion   string `json:"direccion"`
	Colonia     string `json:"colonia"`
	CP          string `json:"cp"`
	Ciudad      string `json:"ciudad"`
	Referencias string `json:"referencias,omitempty"`
}

func clienteAMapa(c db.Cliente) map[string]interface{} {
	return map[string]interface{}{
		"id_cliente": c.IDCliente,
		"nombre":     c.Nombre,
		"telefono":   c.Telefono,
		"correo":     db.NullToStr(c.Correo),
		"estatus":    c.Estatus,
	}
}

// ---------------------------
// ENDPOINT: Listar clientes
// ---------------------------
func GetAllClientes(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := dbc.Local.Query(`
			SELECT id_cliente, nombre, telefono, correo, estatus
			FROM clientes WHERE estatus = 'activo' ORDER BY nombre
		`)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al obtener los clientes", err.Error())
			return
		}
		defer rows.Close()

		var clientes []map[string]interface{}
		for rows.Next() {
			var c db.Cliente
			if err := rows.Scan(&c.IDCliente, &c.Nombre, &c.Telefono, &c.Correo, &c.Estatus); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer cliente", err.Error())
				return
			}
			clientes = append(clientes, clienteAMapa(c))
		}
		writeSuccessResponse(w, "Clientes obtenidos correctamente", clientes)
	}
}

// ---------------------------
// ENDPOINT: Obtener cliente con direcciones
// ---------------------------
func GetCliente(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de cliente inválido", err.Error())
			return
		}

		var c db.Cliente
		err = dbc.Local.QueryRow(`
			SELECT id_cliente, nombre, telefono, correo, estatus
			FROM clientes WHERE id_cliente = ?
		`, id).Scan(&c.IDCliente, &c.Nombre, &c.Telefono, &c.Correo, &c.Estatus)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Cliente no encontrado", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el cliente", err.Error())
			return
		}

		direcciones, err := cargaDirecciones(dbc, id)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer las direcciones", err.Error())
			return
		}

		data := clienteAMapa(c)
		data["direcciones"] = direcciones
		writeSuccessResponse(w, "Cliente obtenido correctamente", data)
	}
}

// ---------------------------
// ENDPOINT: Crear cliente
// ---------------------------
func CreateCliente(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClienteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.Nombre == "" || req.Telefono == "" {
			writeErrorResponse(w, http.StatusBadRequest, "Campos requeridos faltan", "nombre y telefono son obligatorios")
			return
		}

		res, err := dbc.Local.Exec(`
			INSERT INTO clientes (nombre, telefono, correo, estatus)
			VALUES (?, ?, ?, 'activo')
		`, req.Nombre, req.Telefono, db.StrToNull(req.Correo))
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al crear el cliente", err.Error())
			return
		}
		id, _ := res.LastInsertId()
		writeSuccessResponse(w, "Cliente creado correctamente", map[string]interface{}{
			"id_cliente": id,
			"nombre":     req.Nombre,
		})
	}
}

// ---------------------------
// ENDPOINT: Actualizar cliente
// ---------------------------
func UpdateCliente(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de cliente inválido", err.Error())
			return
		}
		var req ClienteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.Nombre == "" || req.Telefono == "" {
			writeErrorResponse(w, http.StatusBadRequest, "Campos requeridos faltan", "nombre y telefono son obligatorios")
			return
		}

		res, err := dbc.Local.Exec(`
			UPDATE clientes SET nombre = ?, telefono = ?, correo = ? WHERE id_cliente = ?
		`, req.Nombre, req.Telefono, db.StrToNull(req.Correo), id)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al actualizar el cliente", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			var uno int
			if err := dbc.Local.QueryRow("SELECT 1 FROM clientes WHERE id_cliente = ?", id).Scan(&uno); err == sql.ErrNoRows {
				writeErrorResponse(w, http.StatusNotFound, "Cliente no encontrado", "")
				return
			}
		}
		writeSuccessResponse(w, "Cliente actualizado correctamente", nil)
	}
}

// ---------------------------
// ENDPOINT: Eliminar cliente (baja lógica)
// ---------------------------
func DeleteCliente(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de cliente inválido", err.Error())
			return
		}
		res, err := dbc.Local.Exec("UPDATE clientes SET estatus = 'inactivo' WHERE id_cliente = ?", id)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al eliminar el cliente", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			writeErrorResponse(w, http.StatusNotFound, "Cliente no encontrado", "")
			return
		}
		writeSuccessResponse(w, "Cliente eliminado correctamente", nil)
	}
}

func cargaDirecciones(dbc *db.DBConnection, idCliente int64) ([]map[string]interface{}, error) {
	rows, err := dbc.Local.Query(`
		SELECT id_direccion, id_cliente, direccion, colonia, cp, ciudad, referencias, estatus
		FROM direcciones WHERE id_cliente = ? AND estatus = 'activo'
	`, idCliente)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var direcciones []map[string]interface{}
	for rows.Next() {
		var d db.Direccion
		if err := rows.Scan(&d.IDDireccion, &d.IDCliente, &d.Direccion, &d.Colonia,
			&d.CP, &d.Ciudad, &d.Referencias, &d.Estatus); err != nil {
			return nil, err
		}
		direcciones = append(direcciones, map[string]interface{}{
			"id_direccion": d.IDDireccion,
			"id_cliente":   d.IDCliente,
			"direccion":    d.Direccion,
			"colonia":      d.Colonia,
			"cp":           d.CP,
			"ciudad":       d.Ciudad,
			"referencias":  db.NullToStr(d.Referencias),
			"estatus":      d.Estatus,
		})
	}
	return direcciones, rows.Err()
}

// ---------------------------
// ENDPOINT: Listar direcciones de un cliente
// ---------------------------
func GetDireccionesCliente(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idCliente, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de cliente inválido", err.Error())
			return
		}
		direcciones, err := cargaDirecciones(dbc, idCliente)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer las direcciones", err.Error())
			return
		}
		writeSuccessResponse(w, "Direcciones obtenidas correctamente", direcciones)
	}
}

// ---------------------------
// ENDPOINT: Agregar dirección a un cliente
// ---------------------------
func CreateDireccion(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idCliente, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de cliente inválido", err.Error())
			return
		}

		ok, err := existeCliente(dbc, idCliente)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al verificar el cliente", err.Error())
			return
		}
		if !ok {
			writeErrorResponse(w, http.StatusNotFound, "Cliente no encontrado", "")
			return
		}

		var req DireccionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.Direccion == "" || req.Colonia == "" {
			writeErrorResponse(w, http.StatusBadRequest, "Campos requeridos faltan", "direccion y colonia son obligatorios")
			return
		}

		res, err := dbc.Local.Exec(`
			INSERT INTO direcciones (id_cliente, direccion, colonia, cp, ciudad, referencias, estatus)
			VALUES (?, ?, ?, ?, ?, ?, 'activo')
		`, idCliente, req.Direccion, req.Colonia, req.CP, req.Ciudad, db.StrToNull(req.Referencias))
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al crear la dirección", err.Error())
			return
		}
		id, _ := res.LastInsertId()
		writeSuccessResponse(w, "Dirección creada correctamente", map[string]interface{}{
			"id_direccion": id,
			"id_cliente":   idCliente,
		})
	}
}

// ---------------------------
// ENDPOINT: Eliminar dirección (baja lógica)
// ---------------------------
func DeleteDireccion(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idDireccion, err := strconv.ParseInt(mux.Vars(r)["id_direccion"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de dirección inválido", err.Error())
			return
		}
		res, err := dbc.Local.Exec("UPDATE direcciones SET estatus = 'inactivo' WHERE id_direccion = ?", idDireccion)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al eliminar la dirección", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			writeErrorResponse(w, http.StatusNotFound, "Dirección no encontrada", "")
			return
		}
		writeSuccessResponse(w, "Dirección eliminada correctamente", nil)
	}
}
