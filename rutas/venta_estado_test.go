package rutas

import "testing"

func TestTogglePreparacion(t *testing.T) {
	tests := []struct {
		nombre  string
		estatus int
		want    int
		wantOK  bool
	}{
		{"espera pasa a preparacion", EstatusEspera, EstatusPreparacion, true},
		{"preparacion regresa a espera", EstatusPreparacion, EstatusEspera, true},
		{"completada se rechaza", EstatusCompletada, EstatusCompletada, false},
		{"cancelada se rechaza", EstatusCancelada, EstatusCancelada, false},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			got, ok := togglePreparacion(tt.estatus)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("togglePreparacion(%d) = (%d, %v), se esperaba (%d, %v)",
					tt.estatus, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPuedeCompletar(t *testing.T) {
	tests := []struct {
		estatus int
		want    bool
	}{
		{EstatusEspera, false},
		{EstatusPreparacion, true},
		{EstatusCompletada, false},
		{EstatusCancelada, false},
	}

	for _, tt := range tests {
		if got := puedeCompletar(tt.estatus); got != tt.want {
			t.Errorf("puedeCompletar(%d) = %v, se esperaba %v", tt.estatus, got, tt.want)
		}
	}
}
