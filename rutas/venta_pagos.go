package rutas

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/CarlosMtz98/logica_pospizzeria/db"
)

type RegistrarPagoRequest struct {
	IDVenta int64         `json:"id_venta"`
	Pagos   []PagoRequest `json:"pagos"`
}

// validarAcumulado aplica la regla de saldo por tipo de servicio: comedor y
// domicilio liquidan en un solo evento (el acumulado debe igualar el total);
// los pedidos especiales aceptan abonos parciales sin rebasar el total.
func validarAcumulado(tipoServicio int, total, acumulado float64) error {
	restante := total - acumulado
	switch tipoServicio {
	case ServicioComedor, ServicioDomicilio:
		if math.Abs(restante) > toleranciaMonto {
			return fmt.Errorf("el pago debe cubrir el total exacto; restante: %.2f", math.Max(restante, 0))
		}
	case ServicioEspecial:
		if restante < -toleranciaMonto {
			return fmt.Errorf("el pago excede el total; restante: %.2f", math.Max(restante, 0))
		}
	}
	return nil
}

// ---------------------------
// ENDPOINT: Registrar pagos sobre una venta existente
// ---------------------------
func RegistrarPago(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegistrarPagoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.IDVenta <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "Falta id_venta", "")
			return
		}
		if len(req.Pagos) == 0 {
			writeErrorResponse(w, http.StatusBadRequest, "Debe incluir al menos un pago", "")
			return
		}
		for i, p := range req.Pagos {
			if p.Monto <= 0 {
				writeErrorResponse(w, http.StatusBadRequest, "Monto de pago inválido", fmt.Sprintf("pago %d: el monto debe ser mayor a 0", i))
				return
			}
		}

		var total float64
		var tipoServicio, estatus int
		err := dbc.Local.QueryRow(`
			SELECT total, tipo_servicio, estatus FROM ventas WHERE id_venta = ?
		`, req.IDVenta).Scan(&total, &tipoServicio, &estatus)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Venta no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la venta", err.Error())
			return
		}

		if tipoServicio == ServicioLlevar {
			writeErrorResponse(w, http.StatusBadRequest, "Las ventas para llevar se pagan al crearse", "")
			return
		}
		if estatus == EstatusCancelada {
			writeErrorResponse(w, http.StatusBadRequest, "No se pueden registrar pagos de una venta cancelada", "")
			return
		}

		var pagado float64
		err = dbc.Local.QueryRow(`
			SELECT IFNULL(SUM(monto), 0) FROM pagos WHERE id_venta = ?
		`, req.IDVenta).Scan(&pagado)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los pagos previos", err.Error())
			return
		}

		acumulado := pagado + sumaPagos(req.Pagos)
		if err := validarAcumulado(tipoServicio, total, acumulado); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Pago rechazado", err.Error())
			return
		}

		tx, err := dbc.Local.Begin()
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo iniciar la transacción", err.Error())
			return
		}

		fechaStr := ahoraStr()
		for _, p := range req.Pagos {
			if _, err := insertaPago(tx, req.IDVenta, p, fechaStr); err != nil {
				tx.Rollback()
				writeErrorResponse(w, http.StatusInternalServerError, "Error al registrar el pago", err.Error())
				return
			}
		}

		nuevoEstatus := estatus
		if acumulado >= total-toleranciaMonto {
			nuevoEstatus = EstatusCompletada
			if _, err := tx.Exec("UPDATE ventas SET estatus = ? WHERE id_venta = ?", EstatusCompletada, req.IDVenta); err != nil {
				tx.Rollback()
				writeErrorResponse(w, http.StatusInternalServerError, "Error al completar la venta", err.Error())
				return
			}
		}

		if err := tx.Commit(); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al confirmar los pagos", err.Error())
			return
		}

		writeSuccessResponse(w, "Pagos registrados correctamente", map[string]interface{}{
			"id_venta":     req.IDVenta,
			"total_pagado": round(acumulado),
			"restante":     round(math.Max(total-acumulado, 0)),
			"estatus":      nuevoEstatus,
		})
	}
}
