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
// ESTRUCTURAS DE PETICIÓN
// ---------------------------

type AbrirCajaRequest struct {
	IDSucursal   int     `json:"id_sucursal"`
	IDUsuario    int     `json:"id_usuario"`
	FondoInicial float64 `json:"fondo_inicial"`
}

type MovimientoRequest struct {
	Tipo     string  `json:"tipo"` // 'entrada' / 'salida'
	Concepto string  `json:"concepto"`
	Monto    float64 `json:"monto"`
}

// ---------------------------
// ENDPOINT: Abrir caja
// ---------------------------
func AbrirCaja(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AbrirCajaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.IDSucursal <= 0 || req.IDUsuario <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "Campos requeridos faltan", "id_sucursal e id_usuario son obligatorios")
			return
		}
		if req.FondoInicial < 0 {
			writeErrorResponse(w, http.StatusBadRequest, "El fondo inicial no puede ser negativo", "")
			return
		}

		ok, err := existeSucursal(dbc, req.IDSucursal)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al verificar la sucursal", err.Error())
			return
		}
		if !ok {
			writeErrorResponse(w, http.StatusNotFound, "La sucursal no existe", "")
			return
		}

		// un usuario no puede tener dos cajas abiertas
		var idAbierta int64
		err = dbc.Local.QueryRow(`
			SELECT id_caja FROM cajas WHERE id_usuario = ? AND estatus = 'abierta' LIMIT 1
		`, req.IDUsuario).Scan(&idAbierta)
		if err == nil {
			writeErrorResponse(w, http.StatusBadRequest, "El usuario ya tiene una caja abierta", strconv.FormatInt(idAbierta, 10))
			return
		} else if err != sql.ErrNoRows {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al verificar cajas abiertas", err.Error())
			return
		}

		fechaStr := ahoraStr()
		res, err := dbc.Local.Exec(`
			INSERT INTO cajas (id_sucursal, id_usuario, fecha_apertura, fondo_inicial, estatus)
			VALUES (?, ?, ?, ?, 'abierta')
		`, req.IDSucursal, req.IDUsuario, fechaStr, req.FondoInicial)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al abrir la caja", err.Error())
			return
		}
		idCaja, _ := res.LastInsertId()

		writeSuccessResponse(w, "Caja abierta correctamente", map[string]interface{}{
			"id_caja":        idCaja,
			"id_sucursal":    req.IDSucursal,
			"id_usuario":     req.IDUsuario,
			"fecha_apertura": fechaStr,
			"fondo_inicial":  req.FondoInicial,
		})
	}
}

// ---------------------------
// ENDPOINT: Registrar movimiento de caja
// ---------------------------
func RegistrarMovimientoCaja(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idCaja, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de caja inválido", err.Error())
			return
		}

		var req MovimientoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.Tipo != "entrada" && req.Tipo != "salida" {
			writeErrorResponse(w, http.StatusBadRequest, "El tipo debe ser 'entrada' o 'salida'", "")
			return
		}
		if req.Monto <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "El monto debe ser mayor a 0", "")
			return
		}
		if req.Concepto == "" {
			writeErrorResponse(w, http.StatusBadRequest, "Debe indicar el concepto del movimiento", "")
			return
		}

		var estatus string
		err = dbc.Local.QueryRow("SELECT estatus FROM cajas WHERE id_caja = ?", idCaja).Scan(&estatus)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Caja no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la caja", err.Error())
			return
		}
		if estatus != "abierta" {
			writeErrorResponse(w, http.StatusBadRequest, "La caja ya está cerrada", "")
			return
		}

		fechaStr := ahoraStr()
		res, err := dbc.Local.Exec(`
			INSERT INTO movimientos_caja (id_caja, tipo, concepto, monto, fecha)
			VALUES (?, ?, ?, ?, ?)
		`, idCaja, req.Tipo, req.Concepto, req.Monto, fechaStr)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al registrar el movimiento", err.Error())
			return
		}
		idMovimiento, _ := res.LastInsertId()

		writeSuccessResponse(w, "Movimiento registrado correctamente", map[string]interface{}{
			"id_movimiento": idMovimiento,
			"id_caja":       idCaja,
			"tipo":          req.Tipo,
			"monto":         req.Monto,
			"fecha":         fechaStr,
		})
	}
}

// ---------------------------
// ENDPOINT: Cerrar caja
// ---------------------------
func CerrarCaja(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idCaja, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de caja inválido", err.Error())
			return
		}

		var c db.Caja
		err = dbc.Local.QueryRow(`
			SELECT id_caja, id_sucursal, id_usuario, fecha_apertura, fondo_inicial, estatus
			FROM cajas WHERE id_caja = ?
		`, idCaja).Scan(&c.IDCaja, &c.IDSucursal, &c.IDUsuario, &c.FechaApertura, &c.FondoInicial, &c.Estatus)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Caja no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la caja", err.Error())
			return
		}
		if c.Estatus != "abierta" {
			writeErrorResponse(w, http.StatusBadRequest, "La caja ya está cerrada", "")
			return
		}

		// ventas de la sesión (las canceladas no cuentan)
		var totalVentas float64
		err = dbc.Local.QueryRow(`
			SELECT IFNULL(SUM(total), 0) FROM ventas WHERE id_caja = ? AND estatus != ?
		`, idCaja, EstatusCancelada).Scan(&totalVentas)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al sumar las ventas de la sesión", err.Error())
			return
		}

		var entradas, salidas float64
		err = dbc.Local.QueryRow(`
			SELECT
				IFNULL(SUM(CASE WHEN tipo = 'entrada' THEN monto ELSE 0 END), 0),
				IFNULL(SUM(CASE WHEN tipo = 'salida' THEN monto ELSE 0 END), 0)
			FROM movimientos_caja WHERE id_caja = ?
		`, idCaja).Scan(&entradas, &salidas)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al sumar los movimientos", err.Error())
			return
		}

		totalCierre := c.FondoInicial + totalVentas + entradas - salidas
		fechaStr := ahoraStr()

		_, err = dbc.Local.Exec(`
			UPDATE cajas SET estatus = 'cerrada', fecha_cierre = ?, total_cierre = ?
			WHERE id_caja = ?
		`, fechaStr, totalCierre, idCaja)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al cerrar la caja", err.Error())
			return
		}

		writeSuccessResponse(w, "Caja cerrada correctamente", map[string]interface{}{
			"id_caja":       idCaja,
			"fecha_cierre":  fechaStr,
			"fondo_inicial": c.FondoInicial,
			"total_ventas":  round(totalVentas),
			"entradas":      round(entradas),
			"salidas":       round(salidas),
			"total_cierre":  round(totalCierre),
		})
	}
}

func cajaAMapa(c db.Caja) map[string]interface{} {
	return map[string]interface{}{
		"id_caja":        c.IDCaja,
		"id_sucursal":    c.IDSucursal,
		"id_usuario":     c.IDUsuario,
		"fecha_apertura": c.FechaApertura,
		"fecha_cierre":   db.NullToStrOrNil(c.FechaCierre),
		"fondo_inicial":  c.FondoInicial,
		"total_cierre":   db.NullToFloatOrNil(c.TotalCierre),
		"estatus":        c.Estatus,
	}
}

func cargaMovimientos(dbc *db.DBConnection, idCaja int64) ([]db.MovimientoCaja, error) {
	rows, err := dbc.Local.Query(`
		SELECT id_movimiento, id_caja, tipo, concepto, monto, fecha
		FROM movimientos_caja WHERE id_caja = ? ORDER BY fecha ASC
	`, idCaja)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movimientos []db.MovimientoCaja
	for rows.Next() {
		var m db.MovimientoCaja
		if err := rows.Scan(&m.IDMovimiento, &m.IDCaja, &m.Tipo, &m.Concepto, &m.Monto, &m.Fecha); err != nil {
			return nil, err
		}
		movimientos = append(movimientos, m)
	}
	return movimientos, rows.Err()
}

// ---------------------------
// ENDPOINT: Estado de una caja
// ---------------------------
func GetCaja(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idCaja, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "ID de caja inválido", err.Error())
			return
		}

		var c db.Caja
		err = dbc.Local.QueryRow(`
			SELECT id_caja, id_sucursal, id_usuario, fecha_apertura, fecha_cierre,
				   fondo_inicial, total_cierre, estatus
			FROM cajas WHERE id_caja = ?
		`, idCaja).Scan(&c.IDCaja, &c.IDSucursal, &c.IDUsuario, &c.FechaApertura,
			&c.FechaCierre, &c.FondoInicial, &c.TotalCierre, &c.Estatus)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "Caja no encontrada", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la caja", err.Error())
			return
		}

		movimientos, err := cargaMovimientos(dbc, idCaja)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los movimientos", err.Error())
			return
		}

		data := cajaAMapa(c)
		data["movimientos"] = movimientos
		writeSuccessResponse(w, "Caja obtenida correctamente", data)
	}
}

// ---------------------------
// ENDPOINT: Caja abierta de un usuario
// ---------------------------
func GetCajaAbierta(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idUsuarioStr := r.URL.Query().Get("id_usuario")
		idUsuario, err := strconv.Atoi(idUsuarioStr)
		if err != nil || idUsuario <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "Falta el parámetro id_usuario", "")
			return
		}

		var c db.Caja
		err = dbc.Local.QueryRow(`
			SELECT id_caja, id_sucursal, id_usuario, fecha_apertura, fecha_cierre,
				   fondo_inicial, total_cierre, estatus
			FROM cajas WHERE id_usuario = ? AND estatus = 'abierta' LIMIT 1
		`, idUsuario).Scan(&c.IDCaja, &c.IDSucursal, &c.IDUsuario, &c.FechaApertura,
			&c.FechaCierre, &c.FondoInicial, &c.TotalCierre, &c.Estatus)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusNotFound, "El usuario no tiene caja abierta", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer la caja", err.Error())
			return
		}

		movimientos, err := cargaMovimientos(dbc, c.IDCaja)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer los movimientos", err.Error())
			return
		}

		data := cajaAMapa(c)
		data["movimientos"] = movimientos
		writeSuccessResponse(w, "Caja abierta obtenida correctamente", data)
	}
}
