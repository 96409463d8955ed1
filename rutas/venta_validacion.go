package rutas

import (
	"fmt"
	"math"
	"strconv"
)

// ---------------------------
// TIPOS DE SERVICIO Y ESTATUS
// ---------------------------
const (
	ServicioComedor   = 0
	ServicioLlevar    = 1
	ServicioDomicilio = 2
	ServicioEspecial  = 3
)

const (
	EstatusEspera      = 0
	EstatusPreparacion = 1
	EstatusCompletada  = 2
	EstatusCancelada   = 5
)

const (
	MetodoTransferencia = 1
	MetodoTarjeta       = 2
	MetodoEfectivo      = 3
)

// Tolerancia absoluta al comparar montos contra el total
const toleranciaMonto = 0.01

// ---------------------------
// CATEGORÍAS DE PRODUCTO
// ---------------------------
const (
	CategoriaPizza        = "pizza"
	CategoriaHamburguesa  = "hamburguesa"
	CategoriaCostilla     = "costilla"
	CategoriaAlita        = "alita"
	CategoriaEspagueti    = "espagueti"
	CategoriaPapas        = "papas"
	CategoriaMarisco      = "marisco"
	CategoriaBebida       = "bebida"
	CategoriaMagno        = "magno"
	CategoriaRebanada     = "rebanada"
	CategoriaBotana       = "botana"
	CategoriaPaquete      = "paquete"
	CategoriaIngredientes = "ingredientes"
)

// categoriasUnitarias referencian un solo producto de catálogo
var categoriasUnitarias = map[string]bool{
	CategoriaPizza:       true,
	CategoriaHamburguesa: true,
	CategoriaCostilla:    true,
	CategoriaAlita:       true,
	CategoriaEspagueti:   true,
	CategoriaPapas:       true,
	CategoriaMarisco:     true,
	CategoriaBebida:      true,
}

// categoriasPorciones venden por porciones múltiples (lista de ids)
var categoriasPorciones = map[string]bool{
	CategoriaMagno:    true,
	CategoriaRebanada: true,
	CategoriaBotana:   true,
}

// ---------------------------
// ESTRUCTURAS DE PETICIÓN
// ---------------------------

// ReferenciaProducto es el payload que acompaña al discriminante categoria
// de cada renglón; sólo los campos de la categoría elegida deben venir.
type ReferenciaProducto struct {
	ID     int64   `json:"id,omitempty"`     // categorías unitarias
	IDs    []int64 `json:"ids,omitempty"`    // magno/rebanada/botana e ingredientes
	Tamano string  `json:"tamano,omitempty"` // pizza armada por ingredientes

	// paquete: la referencia al paquete es obligatoria, el contenido es libre
	IDPaquete     int64   `json:"id_paquete,omitempty"`
	Pizzas        []int64 `json:"pizzas,omitempty"`
	IDAlitas      int64   `json:"id_alitas,omitempty"`
	IDHamburguesa int64   `json:"id_hamburguesa,omitempty"`
	IDBebida      int64   `json:"id_bebida,omitempty"`
}

type DetalleVentaRequest struct {
	Categoria      string             `json:"categoria"`
	Referencia     ReferenciaProducto `json:"referencia"`
	Cantidad       float64            `json:"cantidad"`
	PrecioUnitario float64            `json:"precio_unitario"`
	ExtraQueso     float64            `json:"extra_queso"`
	Comentarios    string             `json:"comentarios,omitempty"`
}

type PagoRequest struct {
	IDMetPago  int     `json:"id_metpago"`
	Monto      float64 `json:"monto"`
	Referencia string  `json:"referencia,omitempty"`
}

type VentaRequest struct {
	IDSucursal    int                   `json:"id_sucursal"`
	IDCliente     int64                 `json:"id_cliente,omitempty"`
	IDDireccion   int64                 `json:"id_direccion,omitempty"`
	Mesa          *int                  `json:"mesa,omitempty"`
	Total         float64               `json:"total"`
	Comentarios   string                `json:"comentarios,omitempty"`
	TipoServicio  int                   `json:"tipo_servicio"`
	NombreCliente string                `json:"nombre_cliente,omitempty"`
	IDCaja        int64                 `json:"id_caja"`
	Estatus       int                   `json:"estatus"`
	Pagos         []PagoRequest         `json:"pagos,omitempty"`
	Detalles      []DetalleVentaRequest `json:"detalles"`
	FechaEntrega  string                `json:"fecha_entrega,omitempty"`
}

// ---------------------------
// REGLAS DE VALIDACIÓN POR TIPO DE SERVICIO
// ---------------------------

func sumaPagos(pagos []PagoRequest) float64 {
	var suma float64
	for _, p := range pagos {
		suma += p.Monto
	}
	return suma
}

// reglaPagoDomicilio valida el único pago de una venta a domicilio según su
// método y regresa la narrativa que se guarda en el campo detalles.
func reglaPagoDomicilio(p PagoRequest, total float64) (string, error) {
	switch p.IDMetPago {
	case MetodoTransferencia:
		if p.Referencia == "" {
			return "", fmt.Errorf("transferencia requiere referencia")
		}
		if math.Abs(p.Monto-total) > toleranciaMonto {
			return "", fmt.Errorf("el monto de la transferencia (%.2f) no coincide con el total (%.2f)", p.Monto, total)
		}
		return fmt.Sprintf("pago por transferencia, referencia %s", p.Referencia), nil
	case MetodoTarjeta:
		// la terminal va con el repartidor, no se valida nada más
		return "pago con tarjeta, terminal con el repartidor", nil
	case MetodoEfectivo:
		paga, err := strconv.ParseFloat(p.Referencia, 64)
		if err != nil {
			return "", fmt.Errorf("efectivo requiere en referencia el monto con el que paga el cliente")
		}
		if paga < total-toleranciaMonto {
			return "", fmt.Errorf("el efectivo (%.2f) es menor al total (%.2f)", paga, total)
		}
		return fmt.Sprintf("efectivo: paga $%.2f, cambio $%.2f", paga, paga-total), nil
	default:
		return "", fmt.Errorf("método de pago %d no válido para domicilio", p.IDMetPago)
	}
}

// validarDetalle verifica que el renglón traiga exactamente el payload de su
// categoría. Los paquetes sólo exigen la referencia al paquete; su contenido
// (pizzas, alitas, hamburguesa, bebida) puede o no venir.
func validarDetalle(idx int, d DetalleVentaRequest) error {
	if d.Cantidad <= 0 {
		return fmt.Errorf("detalle %d: la cantidad debe ser mayor a 0", idx)
	}
	if d.PrecioUnitario <= 0 {
		return fmt.Errorf("detalle %d: el precio unitario debe ser mayor a 0", idx)
	}
	if d.ExtraQueso < 0 {
		return fmt.Errorf("detalle %d: el extra de queso no puede ser negativo", idx)
	}

	switch {
	case d.Categoria == CategoriaIngredientes:
		if d.Referencia.Tamano == "" {
			return fmt.Errorf("detalle %d: pizza por ingredientes requiere tamaño", idx)
		}
		if len(d.Referencia.IDs) == 0 {
			return fmt.Errorf("detalle %d: pizza por ingredientes requiere al menos un ingrediente", idx)
		}
	case d.Categoria == CategoriaPaquete:
		if d.Referencia.IDPaquete <= 0 {
			return fmt.Errorf("detalle %d: paquete requiere id_paquete", idx)
		}
	case categoriasUnitarias[d.Categoria]:
		if d.Referencia.ID <= 0 {
			return fmt.Errorf("detalle %d: la categoría %s requiere un id de producto", idx, d.Categoria)
		}
	case categoriasPorciones[d.Categoria]:
		if len(d.Referencia.IDs) == 0 {
			return fmt.Errorf("detalle %d: la categoría %s requiere al menos un id", idx, d.Categoria)
		}
	default:
		return fmt.Errorf("detalle %d: categoría desconocida %q", idx, d.Categoria)
	}
	return nil
}

// validarTipoServicioEdicion rechaza ediciones que muevan el tipo de
// servicio: queda fijo desde la creación porque determina qué registros
// satélite (pdireccion, pespecial, pagos) existen para la venta.
func validarTipoServicioEdicion(actual, solicitado int) error {
	if actual != solicitado {
		return fmt.Errorf("la venta es de tipo %d y no puede cambiar a %d", actual, solicitado)
	}
	return nil
}

// ResultadoValidacion acarrea lo que la validación produce de paso: la
// narrativa de pago para ventas a domicilio.
type ResultadoValidacion struct {
	NarrativaDomicilio string
}

// validarVentaRequest aplica las reglas por tipo de servicio en orden fijo y
// se detiene en la primera violada. No toca la base de datos: la existencia
// de cliente, dirección y sucursal la verifica el handler.
func validarVentaRequest(req VentaRequest) (ResultadoValidacion, error) {
	var res ResultadoValidacion

	if len(req.Detalles) == 0 {
		return res, fmt.Errorf("la venta debe incluir al menos un producto")
	}
	if req.Total <= 0 {
		return res, fmt.Errorf("el total debe ser mayor a 0")
	}

	switch req.TipoServicio {
	case ServicioComedor:
		if req.Mesa == nil {
			return res, fmt.Errorf("venta en comedor requiere número de mesa")
		}
	case ServicioLlevar:
		if len(req.Pagos) == 0 {
			return res, fmt.Errorf("venta para llevar requiere al menos un pago")
		}
		if math.Abs(sumaPagos(req.Pagos)-req.Total) > toleranciaMonto {
			return res, fmt.Errorf("la suma de pagos (%.2f) no coincide con el total (%.2f)", sumaPagos(req.Pagos), req.Total)
		}
	case ServicioDomicilio:
		if req.IDCliente <= 0 || req.IDDireccion <= 0 {
			return res, fmt.Errorf("venta a domicilio requiere cliente y dirección")
		}
		if len(req.Pagos) != 1 {
			return res, fmt.Errorf("venta a domicilio requiere exactamente un pago")
		}
		narrativa, err := reglaPagoDomicilio(req.Pagos[0], req.Total)
		if err != nil {
			return res, err
		}
		res.NarrativaDomicilio = narrativa
	case ServicioEspecial:
		if req.IDCliente <= 0 || req.IDDireccion <= 0 {
			return res, fmt.Errorf("pedido especial requiere cliente y dirección")
		}
		if req.FechaEntrega == "" {
			return res, fmt.Errorf("pedido especial requiere fecha de entrega")
		}
	default:
		return res, fmt.Errorf("tipo de servicio desconocido: %d", req.TipoServicio)
	}

	for i, d := range req.Detalles {
		if err := validarDetalle(i, d); err != nil {
			return res, err
		}
	}

	return res, nil
}
