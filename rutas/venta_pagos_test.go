package rutas

import "testing"

func TestValidarAcumulado(t *testing.T) {
	tests := []struct {
		nombre       string
		tipoServicio int
		total        float64
		acumulado    float64
		wantErr      bool
	}{
		{"comedor liquida exacto", ServicioComedor, 250, 250, false},
		{"comedor dentro de tolerancia", ServicioComedor, 250, 249.995, false},
		{"comedor parcial se rechaza", ServicioComedor, 250, 100, true},
		{"comedor excedido se rechaza", ServicioComedor, 250, 300, true},
		{"domicilio liquida exacto", ServicioDomicilio, 180, 180, false},
		{"domicilio parcial se rechaza", ServicioDomicilio, 180, 90, true},
		{"especial acepta abono parcial", ServicioEspecial, 800, 400, false},
		{"especial liquida exacto", ServicioEspecial, 800, 800, false},
		{"especial no puede exceder", ServicioEspecial, 800, 850, true},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			err := validarAcumulado(tt.tipoServicio, tt.total, tt.acumulado)
			if (err != nil) != tt.wantErr {
				t.Errorf("validarAcumulado(%d, %v, %v) error = %v, wantErr %v",
					tt.tipoServicio, tt.total, tt.acumulado, err, tt.wantErr)
			}
		})
	}
}
