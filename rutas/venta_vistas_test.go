package rutas

import (
	"fmt"
	"reflect"
	"testing"
)

// resolverFijo resuelve nombres desde un mapa tabla/id; lo que no está
// registrado regresa error, igual que un producto dado de baja.
type resolverFijo struct {
	nombres map[string]string
}

func (r resolverFijo) NombreProducto(tabla string, id int64) (string, error) {
	nombre, ok := r.nombres[fmt.Sprintf("%s/%d", tabla, id)]
	if !ok {
		return "", fmt.Errorf("producto %d no existe en %s", id, tabla)
	}
	return nombre, nil
}

func TestResuelveReferencia(t *testing.T) {
	res := resolverFijo{nombres: map[string]string{
		"pizzas/1":        "Hawaiana",
		"pizzas/2":        "Pepperoni",
		"hamburguesas/5":  "Doble con tocino",
		"rebanadas/1":     "Rebanada Hawaiana",
		"rebanadas/3":     "Rebanada Mexicana",
		"paquetes/2":      "Paquete Familiar",
		"alitas/4":        "Alitas BBQ",
		"bebidas/9":       "Refresco 2L",
		"ingredientes/10": "Champiñones",
		"ingredientes/11": "Chorizo",
	}}

	tests := []struct {
		nombre    string
		categoria string
		ref       ReferenciaProducto
		want      []EntradaVista
	}{
		{
			nombre:    "unitaria resuelta",
			categoria: CategoriaPizza,
			ref:       ReferenciaProducto{ID: 1},
			want: []EntradaVista{
				{Categoria: CategoriaPizza, Nombres: []string{"Hawaiana"}},
			},
		},
		{
			nombre:    "unitaria dada de baja degrada a etiqueta",
			categoria: CategoriaHamburguesa,
			ref:       ReferenciaProducto{ID: 99},
			want: []EntradaVista{
				{Categoria: CategoriaHamburguesa, Nombres: []string{"Hamburguesa #99"}},
			},
		},
		{
			nombre:    "porciones acumulan nombres en una entrada",
			categoria: CategoriaRebanada,
			ref:       ReferenciaProducto{IDs: []int64{1, 3, 1}},
			want: []EntradaVista{
				{Categoria: CategoriaRebanada, Nombres: []string{
					"Rebanada Hawaiana", "Rebanada Mexicana", "Rebanada Hawaiana",
				}},
			},
		},
		{
			nombre:    "paquete se expande en constituyentes",
			categoria: CategoriaPaquete,
			ref: ReferenciaProducto{
				IDPaquete: 2,
				Pizzas:    []int64{1, 2},
				IDAlitas:  4,
				IDBebida:  9,
			},
			want: []EntradaVista{
				{Categoria: CategoriaPaquete, Nombres: []string{"Paquete Familiar"}},
				{Categoria: CategoriaPizza, Nombres: []string{"Hawaiana"}},
				{Categoria: CategoriaPizza, Nombres: []string{"Pepperoni"}},
				{Categoria: CategoriaAlita, Nombres: []string{"Alitas BBQ"}},
				{Categoria: CategoriaBebida, Nombres: []string{"Refresco 2L"}},
			},
		},
		{
			nombre:    "paquete sin contenido solo trae el paquete",
			categoria: CategoriaPaquete,
			ref:       ReferenciaProducto{IDPaquete: 2},
			want: []EntradaVista{
				{Categoria: CategoriaPaquete, Nombres: []string{"Paquete Familiar"}},
			},
		},
		{
			nombre:    "hamburguesa del paquete degrada si no existe",
			categoria: CategoriaPaquete,
			ref:       ReferenciaProducto{IDPaquete: 2, IDHamburguesa: 77},
			want: []EntradaVista{
				{Categoria: CategoriaPaquete, Nombres: []string{"Paquete Familiar"}},
				{Categoria: CategoriaHamburguesa, Nombres: []string{"Hamburguesa #77"}},
			},
		},
		{
			nombre:    "pizza por ingredientes corta con su representacion",
			categoria: CategoriaIngredientes,
			ref:       ReferenciaProducto{Tamano: "grande", IDs: []int64{10, 11}},
			want: []EntradaVista{
				{Categoria: CategoriaIngredientes, Nombres: []string{
					"Pizza armada grande", "Champiñones", "Chorizo",
				}},
			},
		},
		{
			nombre:    "ingrediente faltante degrada dentro de la lista",
			categoria: CategoriaIngredientes,
			ref:       ReferenciaProducto{Tamano: "chica", IDs: []int64{10, 55}},
			want: []EntradaVista{
				{Categoria: CategoriaIngredientes, Nombres: []string{
					"Pizza armada chica", "Champiñones", "Ingrediente #55",
				}},
			},
		},
		{
			nombre:    "categoria desconocida almacenada no tira la vista",
			categoria: "sushi",
			ref:       ReferenciaProducto{ID: 8},
			want: []EntradaVista{
				{Categoria: "sushi", Nombres: []string{"sushi #8"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			got := resuelveReferencia(tt.categoria, tt.ref, res)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resuelveReferencia = %+v, se esperaba %+v", got, tt.want)
			}
		})
	}
}

func TestCategoriasProductoCubreCatalogos(t *testing.T) {
	// toda categoría de renglón (salvo ingredientes, que se resuelve aparte)
	// debe tener tabla y etiqueta para la vista
	for cat := range categoriasUnitarias {
		if _, ok := categoriasProducto[cat]; !ok {
			t.Errorf("categoría unitaria %q sin info de vista", cat)
		}
	}
	for cat := range categoriasPorciones {
		if _, ok := categoriasProducto[cat]; !ok {
			t.Errorf("categoría por porciones %q sin info de vista", cat)
		}
	}
	if _, ok := categoriasProducto[CategoriaPaquete]; !ok {
		t.Error("la categoría paquete no tiene info de vista")
	}
}
