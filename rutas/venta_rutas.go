package rutas

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/CarlosMtz98/logica_pospizzeria/db"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ---------------------------
// AUXILIARES DE EXISTENCIA
// ---------------------------

func existeCliente(dbc *db.DBConnection, id int64) (bool, error) {
	var uno int
	err := dbc.Local.QueryRow("SELECT 1 FROM clientes WHERE id_cliente = ?", id).Scan(&uno)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func existeDireccion(dbc *db.DBConnection, id int64, idCliente int64) (bool, error) {
	var uno int
	err := dbc.Local.QueryRow("SELECT 1 FROM direcciones WHERE id_direccion = ? AND id_cliente = ?", id, idCliente).Scan(&uno)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func existeSucursal(dbc *db.DBConnection, id int) (bool, error) {
	var uno int
	err := dbc.Local.QueryRow("SELECT 1 FROM sucursales WHERE id_sucursal = ?", id).Scan(&uno)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// verificaReferencias resuelve cliente/dirección/sucursal contra la base.
// Regresa el estatus HTTP y el mensaje cuando alguna referencia no existe.
func verificaReferencias(dbc *db.DBConnection, req VentaRequest) (int, string, error) {
	if req.TipoServicio == ServicioDomicilio || req.TipoServicio == ServicioEspecial {
		ok, err := existeCliente(dbc, req.IDCliente)
		if err != nil {
			return http.StatusInternalServerError, "Error al verificar el cliente", err
		}
		if !ok {
			return http.StatusNotFound, "El cliente no existe", nil
		}
		ok, err = existeDireccion(dbc, req.IDDireccion, req.IDCliente)
		if err != nil {
			return http.StatusInternalServerError, "Error al verificar la dirección", err
		}
		if !ok {
			return http.StatusNotFound, "La dirección no existe o no pertenece al cliente", nil
		}
	}
	ok, err := existeSucursal(dbc, req.IDSucursal)
	if err != nil {
		return http.StatusInternalServerError, "Error al verificar la sucursal", err
	}
	if !ok {
		return http.StatusNotFound, "La sucursal no existe", nil
	}
	return 0, "", nil
}

// insertaDetalles inserta los renglones de la venta serializando el payload
// de cada categoría a la columna JSON referencia.
func insertaDetalles(tx *sql.Tx, idVenta int64, detalles []DetalleVentaRequest) error {
	stmt, err := tx.Prepare(`
		INSERT INTO detalle_ventas (
			id_venta, categoria, referencia, cantidad, precio_unitario,
			extra_queso, estatus, comentarios
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range detalles {
		refJSON, err := json.Marshal(d.Referencia)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(
			idVenta,
			d.Categoria,
			refJSON,
			d.Cantidad,
			d.PrecioUnitario,
			d.ExtraQueso,
			0,
			d.Comentarios,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertaPago(tx *sql.Tx, idVenta int64, p PagoRequest, fecha string) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO pagos (id_venta, id_metpago, monto, referencia, fecha)
		VALUES (?, ?, ?, ?, ?)
	`, idVenta, p.IDMetPago, p.Monto, db.StrToNull(p.Referencia), fecha)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ---------------------------
// ENDPOINT: Crear Venta
// ---------------------------
func CreateVenta(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VentaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}

		resultado, err := validarVentaRequest(req)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Venta inválida", err.Error())
			return
		}

		if status, msg, err := verificaReferencias(dbc, req); status != 0 {
			detalle := ""
			if err != nil {
				detalle = err.Error()
			}
			writeErrorResponse(w, status, msg, detalle)
			return
		}

		tx, err := dbc.Local.Begin()
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo iniciar la transacción", err.Error())
			return
		}
		defer func() {
			if rec := recover(); rec != nil {
				tx.Rollback()
				writeErrorResponse(w, http.StatusInternalServerError, "Error inesperado en el servidor", fmt.Sprintf("%v", rec))
			}
		}()

		now := time.Now()
		fechaStr := now.Format(formatoFecha)
		clave := "VTA-" + uuid.NewString()[:13]

		var mesa sql.NullInt64
		if req.TipoServicio == ServicioComedor {
			mesa = db.IntPtrToNull(req.Mesa)
		}
		// la narrativa viene vacía fuera de domicilio y se guarda como NULL
		narrativa := db.StrToNull(resultado.NarrativaDomicilio)

		res, err := tx.Exec(`
			INSERT INTO ventas (
				clave_unica, id_sucursal, mesa, fecha, total, comentarios,
				tipo_servicio, nombre_cliente, id_caja, estatus, detalles
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			clave,
			req.IDSucursal,
			mesa,
			fechaStr,
			req.Total,
			db.StrToNull(req.Comentarios),
			req.TipoServicio,
			db.StrToNull(req.NombreCliente),
			req.IDCaja,
			req.Estatus,
			narrativa,
		)
		if err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al crear la venta", err.Error())
			return
		}
		idVenta, _ := res.LastInsertId()

		var pagosCreados []map[string]interface{}

		switch req.TipoServicio {
		case ServicioDomicilio:
			_, err = tx.Exec(`
				INSERT INTO pdireccion (id_venta, id_cliente, id_direccion, estatus)
				VALUES (?, ?, ?, ?)
			`, idVenta, req.IDCliente, req.IDDireccion, EstatusPreparacion)
			if err != nil {
				tx.Rollback()
				writeErrorResponse(w, http.StatusInternalServerError, "Error al registrar la entrega a domicilio", err.Error())
				return
			}
			// La transferencia queda pagada desde la creación; efectivo y
			// tarjeta se cobran al entregar.
			if req.Pagos[0].IDMetPago == MetodoTransferencia {
				idPago, err := insertaPago(tx, idVenta, req.Pagos[0], fechaStr)
				if err != nil {
					tx.Rollback()
					writeErrorResponse(w, http.StatusInternalServerError, "Error al registrar el pago", err.Error())
					return
				}
				pagosCreados = append(pagosCreados, map[string]interface{}{
					"id_pago": idPago, "id_metpago": req.Pagos[0].IDMetPago, "monto": req.Pagos[0].Monto,
				})
			}
		case ServicioEspecial:
			_, err = tx.Exec(`
				INSERT INTO pespecial (id_venta, id_cliente, id_direccion, fecha_creacion, fecha_entrega, estatus)
				VALUES (?, ?, ?, ?, ?, ?)
			`, idVenta, req.IDCliente, req.IDDireccion, fechaStr, req.FechaEntrega, EstatusEspera)
			if err != nil {
				tx.Rollback()
				writeErrorResponse(w, http.StatusInternalServerError, "Error al registrar el pedido especial", err.Error())
				return
			}
		}

		if req.TipoServicio == ServicioLlevar || req.TipoServicio == ServicioEspecial {
			for _, p := range req.Pagos {
				idPago, err := insertaPago(tx, idVenta, p, fechaStr)
				if err != nil {
					tx.Rollback()
					writeErrorResponse(w, http.StatusInternalServerError, "Error al registrar el pago", err.Error())
					return
				}
				pagosCreados = append(pagosCreados, map[string]interface{}{
					"id_pago": idPago, "id_metpago": p.IDMetPago, "monto": p.Monto,
				})
			}
		}

		if err := insertaDetalles(tx, idVenta, req.Detalles); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al insertar los productos de la venta", err.Error())
			return
		}

		if err := AcumulaIndicadores(tx, req.Total, fechaStr); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al actualizar indicadores de venta", err.Error())
			return
		}

		if err := tx.Commit(); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al confirmar la venta", err.Error())
			return
		}

		data := map[string]interface{}{
			"id_venta":      idVenta,
			"clave_unica":   clave,
			"total":         round(req.Total),
			"tipo_servicio": req.TipoServicio,
		}
		switch req.TipoServicio {
		case ServicioComedor:
			data["mesa"] = *req.Mesa
		case ServicioLlevar:
			data["pagos"] = pagosCreados
			data["num_pagos"] = len(pagosCreados)
		case ServicioDomicilio:
			data["id_cliente"] = req.IDCliente
			data["id_direccion"] = req.IDDireccion
			data["detalles"] = resultado.NarrativaDomicilio
		case ServicioEspecial:
			data["id_cliente"] = req.IDCliente
			data["id_direccion"] = req.IDDireccion
			data["fecha_entrega"] = req.FechaEntrega
			data["pagos"] = pagosCreados
		}
		writeSuccessResponse(w, "Venta creada exitosamente", data)
	}
}

// ---------------------------
// ENDPOINT: Editar Venta (reemplaza los productos)
// ---------------------------
func UpdateVenta(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idVenta, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de venta inválido", err.Error())
			return
		}

		var req VentaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}

		resultado, err := validarVentaRequest(req)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Venta inválida", err.Error())
			return
		}

		if status, msg, err := verificaReferencias(dbc, req); status != 0 {
			detalle := ""
			if err != nil {
				detalle = err.Error()
			}
			writeErrorResponse(w, status, msg, detalle)
			return
		}

		var estatusActual, tipoActual int
		err = dbc.Local.QueryRow("SELECT estatus, tipo_servicio FROM ventas WHERE id_venta = ?", idVenta).Scan(&estatusActual, &tipoActual)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Venta no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la venta", err.Error())
			return
		}

		if err := validarTipoServicioEdicion(tipoActual, req.TipoServicio); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "El tipo de servicio no se puede cambiar", err.Error())
			return
		}

		// editar una venta completada la regresa a espera
		nuevoEstatus := estatusActual
		if estatusActual == EstatusCompletada {
			nuevoEstatus = EstatusEspera
		}

		tx, err := dbc.Local.Begin()
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo iniciar la transacción", err.Error())
			return
		}

		var mesa sql.NullInt64
		if req.TipoServicio == ServicioComedor {
			mesa = db.IntPtrToNull(req.Mesa)
		}
		// la narrativa viene vacía fuera de domicilio y se guarda como NULL
		narrativa := db.StrToNull(resultado.NarrativaDomicilio)

		_, err = tx.Exec(`
			UPDATE ventas SET
				id_sucursal = ?, mesa = ?, total = ?, comentarios = ?,
				nombre_cliente = ?, id_caja = ?, estatus = ?, detalles = ?
			WHERE id_venta = ?
		`,
			req.IDSucursal,
			mesa,
			req.Total,
			db.StrToNull(req.Comentarios),
			db.StrToNull(req.NombreCliente),
			req.IDCaja,
			nuevoEstatus,
			narrativa,
			idVenta,
		)
		if err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al actualizar la venta", err.Error())
			return
		}

		if _, err := tx.Exec("DELETE FROM detalle_ventas WHERE id_venta = ?", idVenta); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al reemplazar los productos", err.Error())
			return
		}
		if err := insertaDetalles(tx, idVenta, req.Detalles); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al insertar los productos de la venta", err.Error())
			return
		}

		if err := tx.Commit(); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al confirmar la edición", err.Error())
			return
		}

		writeSuccessResponse(w, "Venta actualizada exitosamente", map[string]interface{}{
			"id_venta":      idVenta,
			"total":         round(req.Total),
			"estatus":       nuevoEstatus,
			"num_productos": len(req.Detalles),
		})
	}
}

// ---------------------------
// ENDPOINT: Eliminar Venta (borrado duro con cascada)
// ---------------------------
func DeleteVenta(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idVenta, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de venta inválido", err.Error())
			return
		}

		tx, err := dbc.Local.Begin()
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "No se pudo iniciar la transacción", err.Error())
			return
		}

		for _, tabla := range []string{"detalle_ventas", "pagos", "pdireccion", "pespecial"} {
			if _, err := tx.Exec("DELETE FROM "+tabla+" WHERE id_venta = ?", idVenta); err != nil {
				tx.Rollback()
				writeErrorResponse(w, http.StatusInternalServerError, "Error al eliminar registros de la venta", err.Error())
				return
			}
		}

		res, err := tx.Exec("DELETE FROM ventas WHERE id_venta = ?", idVenta)
		if err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al eliminar la venta", err.Error())
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			tx.Rollback()
			writeErrorResponse(w, http.StatusNotFound, "Venta no encontrada", "")
			return
		}

		if err := tx.Commit(); err != nil {
			tx.Rollback()
			writeErrorResponse(w, http.StatusInternalServerError, "Error al confirmar la eliminación", err.Error())
			return
		}

		writeSuccessResponse(w, "Venta eliminada correctamente", nil)
	}
}
