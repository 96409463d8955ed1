package rutas

import (
	"strings"
	"testing"
)

func detallePizza(id int64) DetalleVentaRequest {
	return DetalleVentaRequest{
		Categoria:      CategoriaPizza,
		Referencia:     ReferenciaProducto{ID: id},
		Cantidad:       1,
		PrecioUnitario: 120,
	}
}

func TestValidarDetalle(t *testing.T) {
	tests := []struct {
		nombre  string
		detalle DetalleVentaRequest
		wantErr string
	}{
		{
			nombre:  "pizza valida",
			detalle: detallePizza(3),
		},
		{
			nombre: "cantidad cero",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaPizza,
				Referencia:     ReferenciaProducto{ID: 3},
				Cantidad:       0,
				PrecioUnitario: 120,
			},
			wantErr: "cantidad",
		},
		{
			nombre: "precio unitario cero",
			detalle: DetalleVentaRequest{
				Categoria:  CategoriaPizza,
				Referencia: ReferenciaProducto{ID: 3},
				Cantidad:   1,
			},
			wantErr: "precio unitario",
		},
		{
			nombre: "extra queso negativo",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaPizza,
				Referencia:     ReferenciaProducto{ID: 3},
				Cantidad:       1,
				PrecioUnitario: 120,
				ExtraQueso:     -5,
			},
			wantErr: "queso",
		},
		{
			nombre: "unitaria sin id",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaHamburguesa,
				Cantidad:       1,
				PrecioUnitario: 85,
			},
			wantErr: "requiere un id",
		},
		{
			nombre: "rebanadas con ids",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaRebanada,
				Referencia:     ReferenciaProducto{IDs: []int64{1, 2, 2}},
				Cantidad:       3,
				PrecioUnitario: 25,
			},
		},
		{
			nombre: "magno sin ids",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaMagno,
				Cantidad:       1,
				PrecioUnitario: 240,
			},
			wantErr: "al menos un id",
		},
		{
			nombre: "ingredientes sin tamano",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaIngredientes,
				Referencia:     ReferenciaProducto{IDs: []int64{4, 7}},
				Cantidad:       1,
				PrecioUnitario: 150,
			},
			wantErr: "tamaño",
		},
		{
			nombre: "ingredientes sin ingredientes",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaIngredientes,
				Referencia:     ReferenciaProducto{Tamano: "grande"},
				Cantidad:       1,
				PrecioUnitario: 150,
			},
			wantErr: "ingrediente",
		},
		{
			// el contenido del paquete es libre, solo la referencia es obligatoria
			nombre: "paquete solo con id_paquete",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaPaquete,
				Referencia:     ReferenciaProducto{IDPaquete: 2},
				Cantidad:       1,
				PrecioUnitario: 350,
			},
		},
		{
			nombre: "paquete sin id_paquete",
			detalle: DetalleVentaRequest{
				Categoria:      CategoriaPaquete,
				Referencia:     ReferenciaProducto{Pizzas: []int64{1, 2}},
				Cantidad:       1,
				PrecioUnitario: 350,
			},
			wantErr: "id_paquete",
		},
		{
			nombre: "categoria desconocida",
			detalle: DetalleVentaRequest{
				Categoria:      "sushi",
				Referencia:     ReferenciaProducto{ID: 1},
				Cantidad:       1,
				PrecioUnitario: 99,
			},
			wantErr: "desconocida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			err := validarDetalle(0, tt.detalle)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("error inesperado: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("se esperaba error con %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, debía contener %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestReglaPagoDomicilio(t *testing.T) {
	tests := []struct {
		nombre        string
		pago          PagoRequest
		total         float64
		wantNarrativa string
		wantErr       string
	}{
		{
			nombre:        "transferencia con referencia y monto exacto",
			pago:          PagoRequest{IDMetPago: MetodoTransferencia, Monto: 120, Referencia: "SPEI-9921"},
			total:         120,
			wantNarrativa: "pago por transferencia, referencia SPEI-9921",
		},
		{
			nombre:  "transferencia sin referencia",
			pago:    PagoRequest{IDMetPago: MetodoTransferencia, Monto: 120},
			total:   120,
			wantErr: "referencia",
		},
		{
			nombre:  "transferencia con monto distinto",
			pago:    PagoRequest{IDMetPago: MetodoTransferencia, Monto: 100, Referencia: "SPEI-9921"},
			total:   120,
			wantErr: "no coincide",
		},
		{
			nombre:        "tarjeta no valida nada mas",
			pago:          PagoRequest{IDMetPago: MetodoTarjeta, Monto: 0},
			total:         120,
			wantNarrativa: "pago con tarjeta, terminal con el repartidor",
		},
		{
			nombre:        "efectivo con cambio",
			pago:          PagoRequest{IDMetPago: MetodoEfectivo, Monto: 120, Referencia: "150"},
			total:         120,
			wantNarrativa: "efectivo: paga $150.00, cambio $30.00",
		},
		{
			nombre:        "efectivo exacto",
			pago:          PagoRequest{IDMetPago: MetodoEfectivo, Monto: 120, Referencia: "120"},
			total:         120,
			wantNarrativa: "efectivo: paga $120.00, cambio $0.00",
		},
		{
			nombre:  "efectivo insuficiente",
			pago:    PagoRequest{IDMetPago: MetodoEfectivo, Monto: 120, Referencia: "100"},
			total:   120,
			wantErr: "menor al total",
		},
		{
			nombre:  "efectivo con referencia no numerica",
			pago:    PagoRequest{IDMetPago: MetodoEfectivo, Monto: 120, Referencia: "paga con billete"},
			total:   120,
			wantErr: "monto con el que paga",
		},
		{
			nombre:  "metodo desconocido",
			pago:    PagoRequest{IDMetPago: 9, Monto: 120},
			total:   120,
			wantErr: "no válido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			narrativa, err := reglaPagoDomicilio(tt.pago, tt.total)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("se esperaba error con %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, debía contener %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error inesperado: %v", err)
			}
			if narrativa != tt.wantNarrativa {
				t.Errorf("narrativa = %q, se esperaba %q", narrativa, tt.wantNarrativa)
			}
		})
	}
}

func TestValidarVentaRequest(t *testing.T) {
	mesa := 4

	tests := []struct {
		nombre  string
		req     VentaRequest
		wantErr string
	}{
		{
			nombre: "comedor con mesa",
			req: VentaRequest{
				IDSucursal:   1,
				Mesa:         &mesa,
				Total:        120,
				TipoServicio: ServicioComedor,
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
		},
		{
			nombre: "comedor sin mesa",
			req: VentaRequest{
				IDSucursal:   1,
				Total:        120,
				TipoServicio: ServicioComedor,
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
			wantErr: "mesa",
		},
		{
			nombre: "sin detalles",
			req: VentaRequest{
				IDSucursal:   1,
				Mesa:         &mesa,
				Total:        120,
				TipoServicio: ServicioComedor,
			},
			wantErr: "al menos un producto",
		},
		{
			nombre: "total cero",
			req: VentaRequest{
				IDSucursal:   1,
				Mesa:         &mesa,
				TipoServicio: ServicioComedor,
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
			wantErr: "total",
		},
		{
			nombre: "llevar con pagos que cubren el total",
			req: VentaRequest{
				IDSucursal:   1,
				Total:        200,
				TipoServicio: ServicioLlevar,
				Pagos: []PagoRequest{
					{IDMetPago: MetodoEfectivo, Monto: 150},
					{IDMetPago: MetodoTarjeta, Monto: 50},
				},
				Detalles: []DetalleVentaRequest{detallePizza(3)},
			},
		},
		{
			nombre: "llevar sin pagos",
			req: VentaRequest{
				IDSucursal:   1,
				Total:        200,
				TipoServicio: ServicioLlevar,
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
			wantErr: "al menos un pago",
		},
		{
			nombre: "llevar con pagos que no cuadran",
			req: VentaRequest{
				IDSucursal:   1,
				Total:        200,
				TipoServicio: ServicioLlevar,
				Pagos:        []PagoRequest{{IDMetPago: MetodoEfectivo, Monto: 150}},
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
			wantErr: "no coincide",
		},
		{
			nombre: "domicilio completo",
			req: VentaRequest{
				IDSucursal:   1,
				IDCliente:    7,
				IDDireccion:  12,
				Total:        120,
				TipoServicio: ServicioDomicilio,
				Pagos:        []PagoRequest{{IDMetPago: MetodoEfectivo, Monto: 120, Referencia: "150"}},
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
		},
		{
			nombre: "domicilio sin cliente",
			req: VentaRequest{
				IDSucursal:   1,
				IDDireccion:  12,
				Total:        120,
				TipoServicio: ServicioDomicilio,
				Pagos:        []PagoRequest{{IDMetPago: MetodoTarjeta, Monto: 120}},
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
			wantErr: "cliente y dirección",
		},
		{
			nombre: "domicilio con dos pagos",
			req: VentaRequest{
				IDSucursal:   1,
				IDCliente:    7,
				IDDireccion:  12,
				Total:        120,
				TipoServicio: ServicioDomicilio,
				Pagos: []PagoRequest{
					{IDMetPago: MetodoTarjeta, Monto: 60},
					{IDMetPago: MetodoEfectivo, Monto: 60, Referencia: "60"},
				},
				Detalles: []DetalleVentaRequest{detallePizza(3)},
			},
			wantErr: "exactamente un pago",
		},
		{
			nombre: "especial completo",
			req: VentaRequest{
				IDSucursal:   1,
				IDCliente:    7,
				IDDireccion:  12,
				Total:        800,
				TipoServicio: ServicioEspecial,
				FechaEntrega: "2026-09-15 13:00:00",
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
		},
		{
			nombre: "especial sin fecha de entrega",
			req: VentaRequest{
				IDSucursal:   1,
				IDCliente:    7,
				IDDireccion:  12,
				Total:        800,
				TipoServicio: ServicioEspecial,
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
			wantErr: "fecha de entrega",
		},
		{
			nombre: "tipo de servicio desconocido",
			req: VentaRequest{
				IDSucursal:   1,
				Total:        120,
				TipoServicio: 9,
				Detalles:     []DetalleVentaRequest{detallePizza(3)},
			},
			wantErr: "tipo de servicio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			_, err := validarVentaRequest(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("error inesperado: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("se esperaba error con %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, debía contener %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// El total lo manda el cliente y se guarda tal cual: la validación no lo
// recalcula contra los renglones.
func TestValidarVentaRequest_TotalNoRecalculado(t *testing.T) {
	mesa := 1
	req := VentaRequest{
		IDSucursal:   1,
		Mesa:         &mesa,
		Total:        999, // no corresponde a 1 x $120
		TipoServicio: ServicioComedor,
		Detalles:     []DetalleVentaRequest{detallePizza(3)},
	}
	if _, err := validarVentaRequest(req); err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
}

func TestValidarVentaRequest_NarrativaDomicilio(t *testing.T) {
	req := VentaRequest{
		IDSucursal:   1,
		IDCliente:    7,
		IDDireccion:  12,
		Total:        120,
		TipoServicio: ServicioDomicilio,
		Pagos:        []PagoRequest{{IDMetPago: MetodoEfectivo, Monto: 120, Referencia: "200"}},
		Detalles:     []DetalleVentaRequest{detallePizza(3)},
	}
	res, err := validarVentaRequest(req)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	want := "efectivo: paga $200.00, cambio $80.00"
	if res.NarrativaDomicilio != want {
		t.Errorf("narrativa = %q, se esperaba %q", res.NarrativaDomicilio, want)
	}
}

// El tipo de servicio determina qué registros satélite existen, así que una
// edición no puede moverlo: comedor no se vuelve domicilio ni al revés.
func TestValidarTipoServicioEdicion(t *testing.T) {
	tests := []struct {
		nombre     string
		actual     int
		solicitado int
		wantErr    bool
	}{
		{"mismo tipo comedor", ServicioComedor, ServicioComedor, false},
		{"mismo tipo especial", ServicioEspecial, ServicioEspecial, false},
		{"comedor a domicilio se rechaza", ServicioComedor, ServicioDomicilio, true},
		{"domicilio a comedor se rechaza", ServicioDomicilio, ServicioComedor, true},
		{"llevar a especial se rechaza", ServicioLlevar, ServicioEspecial, true},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			err := validarTipoServicioEdicion(tt.actual, tt.solicitado)
			if (err != nil) != tt.wantErr {
				t.Errorf("validarTipoServicioEdicion(%d, %d) error = %v, wantErr %v",
					tt.actual, tt.solicitado, err, tt.wantErr)
			}
		})
	}
}

func TestSumaPagos(t *testing.T) {
	pagos := []PagoRequest{
		{Monto: 100.50},
		{Monto: 49.50},
		{Monto: 0},
	}
	if got := sumaPagos(pagos); got != 150 {
		t.Errorf("sumaPagos = %v, se esperaba 150", got)
	}
	if got := sumaPagos(nil); got != 0 {
		t.Errorf("sumaPagos(nil) = %v, se esperaba 0", got)
	}
}
