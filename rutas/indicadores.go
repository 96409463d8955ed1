package rutas

import (
	"database/sql"
	"net/http"

	"github.com/CarlosMtz98/logica_pospizzeria/db"
)

// ---------------------------
// ACUMULACIÓN DE INDICADORES
// ---------------------------

// AcumulaIndicadores suma la venta a los acumulados diario y mensual dentro
// de la misma transacción que la creó.
func AcumulaIndicadores(tx *sql.Tx, total float64, fecha string) error {
	dia := fecha[:10]          // YYYY-MM-DD
	mes := fecha[:7] + "-01"   // primer día del mes

	_, err := tx.Exec(`
		INSERT INTO ind_diario (fecha, num_ventas, tot_ventas)
		VALUES (?, 1, ?)
		ON DUPLICATE KEY UPDATE num_ventas = num_ventas + 1, tot_ventas = tot_ventas + ?
	`, dia, total, total)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO ind_mensual (fecha, num_ventas, tot_ventas)
		VALUES (?, 1, ?)
		ON DUPLICATE KEY UPDATE num_ventas = num_ventas + 1, tot_ventas = tot_ventas + ?
	`, mes, total, total)
	return err
}

// ---------------------------
// ESTRUCTURA DE RESPUESTA INDICADORES
// ---------------------------
type IndicadorResponse struct {
	ID        int     `json:"id"`
	Fecha     string  `json:"fecha"`
	NumVentas int     `json:"num_ventas"`
	TotVentas float64 `json:"tot_ventas"`
}

// ---------------------------
// ENDPOINT: VENTAS POR DÍA (todas o por fecha)
// ---------------------------
func GetVentasDia(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fecha := r.URL.Query().Get("fecha")
		if fecha != "" {
			var i IndicadorResponse
			row := dbc.Local.QueryRow(`
				SELECT id, fecha, num_ventas, tot_ventas
				FROM ind_diario
				WHERE fecha = ?
				LIMIT 1
			`, fecha)
			err := row.Scan(&i.ID, &i.Fecha, &i.NumVentas, &i.TotVentas)
			if err != nil {
				if err == sql.ErrNoRows {
					writeErrorResponse(w, http.StatusNotFound, "No hay ventas registradas para la fecha", "")
				} else {
					writeErrorResponse(w, http.StatusInternalServerError, "Error al buscar el resumen diario", err.Error())
				}
				return
			}
			writeSuccessResponse(w, "Resumen diario obtenido correctamente", i)
			return
		}

		rows, err := dbc.Local.Query(`
			SELECT id, fecha, num_ventas, tot_ventas
			FROM ind_diario
			ORDER BY fecha DESC
		`)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al obtener el resumen diario", err.Error())
			return
		}
		defer rows.Close()

		var datos []IndicadorResponse
		for rows.Next() {
			var i IndicadorResponse
			if err := rows.Scan(&i.ID, &i.Fecha, &i.NumVentas, &i.TotVentas); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el resumen diario", err.Error())
				return
			}
			datos = append(datos, i)
		}
		if err := rows.Err(); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el resumen diario", err.Error())
			return
		}
		writeSuccessResponse(w, "Resumen diario obtenido correctamente", datos)
	}
}

// ---------------------------
// ENDPOINT: VENTAS POR MES
// ---------------------------
func GetVentasMes(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := dbc.Local.Query(`
			SELECT id, fecha, num_ventas, tot_ventas
			FROM ind_mensual
			ORDER BY fecha DESC
		`)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al obtener el resumen mensual", err.Error())
			return
		}
		defer rows.Close()

		var datos []IndicadorResponse
		for rows.Next() {
			var i IndicadorResponse
			if err := rows.Scan(&i.ID, &i.Fecha, &i.NumVentas, &i.TotVentas); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el resumen mensual", err.Error())
				return
			}
			datos = append(datos, i)
		}
		if err := rows.Err(); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el resumen mensual", err.Error())
			return
		}
		writeSuccessResponse(w, "Resumen mensual obtenido correctamente", datos)
	}
}
