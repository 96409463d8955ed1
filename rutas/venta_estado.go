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
// MÁQUINA DE ESTADOS DE LA VENTA
// ---------------------------
// 0 En espera, 1 En preparación, 2 Completada, 5 Cancelada.
// No hay regreso desde Cancelada.

// togglePreparacion alterna espera<->preparación; cualquier otro estado se rechaza
func togglePreparacion(estatus int) (int, bool) {
	switch estatus {
	case EstatusEspera:
		return EstatusPreparacion, true
	case EstatusPreparacion:
		return EstatusEspera, true
	default:
		return estatus, false
	}
}

// puedeCompletar sólo permite completar desde preparación
func puedeCompletar(estatus int) bool {
	return estatus == EstatusPreparacion
}

func leeEstatusVenta(dbc *db.DBConnection, idVenta int64) (int, error) {
	var estatus int
	err := dbc.Local.QueryRow("SELECT estatus FROM ventas WHERE id_venta = ?", idVenta).Scan(&estatus)
	return estatus, err
}

// ---------------------------
// ENDPOINT: Alternar preparación
// ---------------------------
func TogglePreparacionVenta(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idVenta, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de venta inválido", err.Error())
			return
		}

		estatus, err := leeEstatusVenta(dbc, idVenta)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Venta no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la venta", err.Error())
			return
		}

		nuevo, ok := togglePreparacion(estatus)
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, "La venta no está en espera ni en preparación", "")
			return
		}

		if _, err := dbc.Local.Exec("UPDATE ventas SET estatus = ? WHERE id_venta = ?", nuevo, idVenta); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo actualizar el estatus", err.Error())
			return
		}

		writeSuccessResponse(w, "Estatus actualizado correctamente", map[string]interface{}{
			"id_venta": idVenta,
			"estatus":  nuevo,
		})
	}
}

// completarVenta marca la venta como completada y arrastra sus renglones
func completarVenta(tx *sql.Tx, idVenta int64) error {
	if _, err := tx.Exec("UPDATE ventas SET estatus = ? WHERE id_venta = ?", EstatusCompletada, idVenta); err != nil {
		return err
	}
	_, err := tx.Exec("UPDATE detalle_ventas SET estatus = ? WHERE id_venta = ?", EstatusCompletada, idVenta)
	return err
}

// ---------------------------
// ENDPOINT: Completar venta
// ---------------------------
func CompletarVenta(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idVenta, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de venta inválido", err.Error())
			return
		}

		estatus, err := leeEstatusVenta(dbc, idVenta)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Venta no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la venta", err.Error())
			return
		}

		if !puedeCompletar(estatus) {
			writeErrorResponse(w, http.StatusBadRequest, "Sólo se puede completar una venta en preparación", "")
			return
		}

		tx, err := dbc.Local.Begin()
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo iniciar la transacción", err.Error())
			return
		}
		if err := completarVenta(tx, idVenta); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo completar la venta", err.Error())
			return
		}
		if err := tx.Commit(); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al confirmar el cambio", err.Error())
			return
		}

		writeSuccessResponse(w, "Venta completada", map[string]interface{}{
			"id_venta": idVenta,
			"estatus":  EstatusCompletada,
		})
	}
}

type CancelarRequest struct {
	Motivo string `json:"motivo"`
}

// ---------------------------
// ENDPOINT: Cancelar venta
// ---------------------------
func CancelarVenta(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idVenta, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de venta inválido", err.Error())
			return
		}

		var req CancelarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "JSON inválido", err.Error())
			return
		}
		if req.Motivo == "" {
			writeErrorResponse(w, http.StatusBadRequest, "Debe indicar el motivo de cancelación", "")
			return
		}

		tx, err := dbc.Local.Begin()
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo iniciar la transacción", err.Error())
			return
		}

		res, err := tx.Exec("UPDATE ventas SET estatus = ?, detalles = ? WHERE id_venta = ?", EstatusCancelada, req.Motivo, idVenta)
		if err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo cancelar la venta", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			// puede ser venta inexistente o estatus/motivo sin cambio
			var uno int
			if err := dbc.Local.QueryRow("SELECT 1 FROM ventas WHERE id_venta = ?", idVenta).Scan(&uno); err == sql.ErrNoRows {
				tx.Rollback()
				writeErrorResponse(w, http.StatusNotFound, "Venta no encontrada", "")
				return
			}
		}

		// cascada: renglones, entregas a domicilio y pedidos especiales a 0
		for _, tabla := range []string{"detalle_ventas", "pdireccion", "pespecial"} {
			if _, err := tx.Exec("UPDATE "+tabla+" SET estatus = 0 WHERE id_venta = ?", idVenta); err != nil {
				tx.Rollback()
				writeErrorResponse(w, http.StatusInternalServerError, "No se pudo cancelar los registros asociados", err.Error())
				return
			}
		}

		if err := tx.Commit(); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al confirmar la cancelación", err.Error())
			return
		}

		writeSuccessResponse(w, "Venta cancelada", map[string]interface{}{
			"id_venta": idVenta,
			"estatus":  EstatusCancelada,
			"motivo":   req.Motivo,
		})
	}
}

// ---------------------------
// ENDPOINT: Completar pedido especial
// ---------------------------
// Recibe el id del registro pespecial, resuelve la venta ligada, la completa
// (con cascada a renglones) y marca también el pespecial como completado.
func CompletarEspecial(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idEspecial, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de pedido especial inválido", err.Error())
			return
		}

		var idVenta int64
		err = dbc.Local.QueryRow("SELECT id_venta FROM pespecial WHERE id_pespecial = ?", idEspecial).Scan(&idVenta)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Pedido especial no encontrado", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el pedido especial", err.Error())
			return
		}

		estatus, err := leeEstatusVenta(dbc, idVenta)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la venta ligada", err.Error())
			return
		}
		if !puedeCompletar(estatus) {
			writeErrorResponse(w, http.StatusBadRequest, "Sólo se puede completar una venta en preparación", "")
			return
		}

		tx, err := dbc.Local.Begin()
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo iniciar la transacción", err.Error())
			return
		}
		if err := completarVenta(tx, idVenta); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo completar la venta", err.Error())
			return
		}
		if _, err := tx.Exec("UPDATE pespecial SET estatus = ? WHERE id_pespecial = ?", EstatusCompletada, idEspecial); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo completar el pedido especial", err.Error())
			return
		}
		if err := tx.Commit(); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al confirmar el cambio", err.Error())
			return
		}

		writeSuccessResponse(w, "Pedido especial completado", map[string]interface{}{
			"id_pespecial": idEspecial,
			"id_venta":     idVenta,
			"estatus":      EstatusCompletada,
		})
	}
}
