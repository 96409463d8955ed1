package rutas

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CarlosMtz98/logica_pospizzeria/db"

	"github.com/gorilla/mux"
)

type SucursalRequest struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
}

func GetSucursalALL(dbConn *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := dbConn.Local.Query(`
			SELECT id_sucursal, nombre, direccion, telefono, estatus
			FROM sucursales WHERE estatus = 'S'
		`)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al obtener las sucursales", err.Error())
			return
		}
		defer rows.Close()

		var sucursales []db.Sucursal
		for rows.Next() {
			var s db.Sucursal
			if err := rows.Scan(&s.IDSucursal, &s.Nombre, &s.Direccion, &s.Telefono, &s.Estatus); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error leyendo sucursales", err.Error())
				return
			}
			sucursales = append(sucursales, s)
		}
		if err := rows.Err(); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error finalizando la consulta", err.Error())
			return
		}
		writeSuccessResponse(w, "Sucursales obtenidas correctamente", sucursales)
	}
}

func GetSucursal(dbConn *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de sucursal inválido", err.Error())
			return
		}
		var s db.Sucursal
		err = dbConn.Local.QueryRow(`
			SELECT id_sucursal, nombre, direccion, telefono, estatus
			FROM sucursales WHERE id_sucursal = ?
		`, id).Scan(&s.IDSucursal, &s.Nombre, &s.Direccion, &s.Telefono, &s.Estatus)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Sucursal no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la sucursal", err.Error())
			return
		}
		writeSuccessResponse(w, "Sucursal obtenida correctamente", s)
	}
}

func CreateSucursal(dbConn *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SucursalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.Nombre == "" {
			writeErrorResponse(w, http.StatusBadRequest, "El nombre es obligatorio", "")
			return
		}

		res, err := dbConn.Local.Exec(`
			INSERT INTO sucursales (nombre, direccion, telefono, estatus)
			VALUES (?, ?, ?, 'S')
		`, req.Nombre, req.Direccion, req.Telefono)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al crear la sucursal", err.Error())
			return
		}
		id, _ := res.LastInsertId()
		writeSuccessResponse(w, "Sucursal creada correctamente", map[string]interface{}{
			"id_sucursal": id,
			"nombre":      req.Nombre,
		})
	}
}

func UpdateSucursal(dbConn *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de sucursal inválido", err.Error())
			return
		}
		var req SucursalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.Nombre == "" {
			writeErrorResponse(w, http.StatusBadRequest, "El nombre es obligatorio", "")
			return
		}

		res, err := dbConn.Local.Exec(`
			UPDATE sucursales SET nombre = ?, direccion = ?, telefono = ? WHERE id_sucursal = ?
		`, req.Nombre, req.Direccion, req.Telefono, id)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al actualizar la sucursal", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			var uno int
			if err := dbConn.Local.QueryRow("SELECT 1 FROM sucursales WHERE id_sucursal = ?", id).Scan(&uno); err == sql.ErrNoRows {
				writeErrorResponse(w, http.StatusNotFound, "Sucursal no encontrada", "")
				return
			}
		}
		writeSuccessResponse(w, "Sucursal actualizada correctamente", nil)
	}
}

func DeleteSucursal(dbConn *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de sucursal inválido", err.Error())
			return
		}
		res, err := dbConn.Local.Exec("UPDATE sucursales SET estatus = 'N' WHERE id_sucursal = ?", id)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al eliminar la sucursal", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			writeErrorResponse(w, http.StatusNotFound, "Sucursal no encontrada", "")
			return
		}
		writeSuccessResponse(w, "Sucursal eliminada correctamente", nil)
	}
}
