package db

import (
	"database/sql"
)

// Estructura Venta para el punto de venta (una por transacción de cliente)
type Venta struct {
	IDVenta       int64          `json:"id_venta"`
	ClaveUnica    string         `json:"clave_unica"`
	IDSucursal    int            `json:"id_sucursal"`
	Mesa          sql.NullInt64  `json:"mesa"`
	Fecha         string         `json:"fecha"` // "2006-01-02 15:04:05"
	Total         float64        `json:"total"`
	Comentarios   sql.NullString `json:"comentarios"`
	TipoServicio  int            `json:"tipo_servicio"`
	NombreCliente sql.NullString `json:"nombre_cliente"`
	IDCaja        int64          `json:"id_caja"`
	Estatus       int            `json:"estatus"`
	Detalles      sql.NullString `json:"detalles"` // narrativa de pago a domicilio o motivo de cancelación
}

// DetalleVenta es un renglón de la venta: categoria es el discriminante y
// referencia guarda el payload JSON correspondiente a esa categoría.
type DetalleVenta struct {
	IDDetalle      int64          `json:"id_detalle"`
	IDVenta        int64          `json:"id_venta"`
	Categoria      string         `json:"categoria"`
	Referencia     []byte         `json:"-"` // columna JSON
	Cantidad       float64        `json:"cantidad"`
	PrecioUnitario float64        `json:"precio_unitario"`
	ExtraQueso     float64        `json:"extra_queso"`
	Estatus        int            `json:"estatus"`
	Comentarios    sql.NullString `json:"comentarios"`
}

// PDireccion liga una venta a domicilio con el cliente y su dirección
type PDireccion struct {
	IDPDireccion int64 `json:"id_pdireccion"`
	IDVenta      int64 `json:"id_venta"`
	IDCliente    int64 `json:"id_cliente"`
	IDDireccion  int64 `json:"id_direccion"`
	Estatus      int   `json:"estatus"`
}

// PEspecial es un pedido especial (anticipado) con fecha de entrega programada
type PEspecial struct {
	IDPEspecial   int64  `json:"id_pespecial"`
	IDVenta       int64  `json:"id_venta"`
	IDCliente     int64  `json:"id_cliente"`
	IDDireccion   int64  `json:"id_direccion"`
	FechaCreacion string `json:"fecha_creacion"`
	FechaEntrega  string `json:"fecha_entrega"`
	Estatus       int    `json:"estatus"`
}

type Pago struct {
	IDPago     int64          `json:"id_pago"`
	IDVenta    int64          `json:"id_venta"`
	IDMetPago  int            `json:"id_metpago"`
	Monto      float64        `json:"monto"`
	Referencia sql.NullString `json:"referencia"`
	Fecha      string         `json:"fecha"`
}

type Cliente struct {
	IDCliente int64          `json:"id_cliente"`
	Nombre    string         `json:"nombre"`
	Telefono  string         `json:"telefono"`
	Correo    sql.NullString `json:"correo"`
	Estatus   string         `json:"estatus"`
}

type Direccion struct {
	IDDireccion int64          `json:"id_direccion"`
	IDCliente   int64          `json:"id_cliente"`
	Direccion   string         `json:"direccion"`
	Colonia     string         `json:"colonia"`
	CP          string         `json:"cp"`
	Ciudad      string         `json:"ciudad"`
	Referencias sql.NullString `json:"referencias"`
	Estatus     string         `json:"estatus"`
}

// Caja es una sesión de caja (apertura/cierre) de una sucursal
type Caja struct {
	IDCaja        int64           `json:"id_caja"`
	IDSucursal    int             `json:"id_sucursal"`
	IDUsuario     int             `json:"id_usuario"`
	FechaApertura string          `json:"fecha_apertura"`
	FechaCierre   sql.NullString  `json:"fecha_cierre"`
	FondoInicial  float64         `json:"fondo_inicial"`
	TotalCierre   sql.NullFloat64 `json:"total_cierre"`
	Estatus       string          `json:"estatus"` // 'abierta' / 'cerrada'
}

type MovimientoCaja struct {
	IDMovimiento int64   `json:"id_movimiento"`
	IDCaja       int64   `json:"id_caja"`
	Tipo         string  `json:"tipo"` // 'entrada' / 'salida'
	Concepto     string  `json:"concepto"`
	Monto        float64 `json:"monto"`
	Fecha        string  `json:"fecha"`
}

type Sucursal struct {
	IDSucursal int    `json:"id_sucursal"`
	Nombre     string `json:"nombre"`
	Direccion  string `json:"direccion"`
	Telefono   string `json:"telefono"`
	Estatus    string `json:"estatus"`
}

type Usuario struct {
	IDUsuario      int            `json:"id_usuario"`
	IDPerfil       int            `json:"id_perfil"`
	NombreCompleto string         `json:"nombre_completo"`
	Correo         string         `json:"correo"`
	Clave          string         `json:"-"`
	Permisos       []byte         `json:"permisos"` // columna JSON de banderas
	Estatus        string         `json:"estatus"`
	UltimoAcceso   sql.NullTime   `json:"ultimo_acceso"`
}

// ProductoCatalogo es el renglón común de todas las tablas de catálogo
// (pizzas, alitas, costillas, bebidas, etc.)
type ProductoCatalogo struct {
	ID          int64          `json:"id"`
	Nombre      string         `json:"nombre"`
	Descripcion sql.NullString `json:"descripcion"`
	Precio      float64        `json:"precio"`
	Estatus     string         `json:"estatus"`
}
