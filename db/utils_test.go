package db

import (
	"database/sql"
	"testing"
)

func TestNullToStr(t *testing.T) {
	if got := NullToStr(sql.NullString{String: "hola", Valid: true}); got != "hola" {
		t.Errorf(`NullToStr(valida) = %q, se esperaba "hola"`, got)
	}
	if got := NullToStr(sql.NullString{}); got != "" {
		t.Errorf(`NullToStr(nula) = %q, se esperaba ""`, got)
	}
}

func TestNullToStrOrNil(t *testing.T) {
	if got := NullToStrOrNil(sql.NullString{String: "hola", Valid: true}); got != "hola" {
		t.Errorf(`NullToStrOrNil(valida) = %v, se esperaba "hola"`, got)
	}
	if got := NullToStrOrNil(sql.NullString{}); got != nil {
		t.Errorf("NullToStrOrNil(nula) = %v, se esperaba nil", got)
	}
}

func TestNullToIntOrNil(t *testing.T) {
	if got := NullToIntOrNil(sql.NullInt64{Int64: 4, Valid: true}); got != int64(4) {
		t.Errorf("NullToIntOrNil(valida) = %v, se esperaba 4", got)
	}
	if got := NullToIntOrNil(sql.NullInt64{}); got != nil {
		t.Errorf("NullToIntOrNil(nula) = %v, se esperaba nil", got)
	}
}

func TestNullToFloatOrNil(t *testing.T) {
	if got := NullToFloatOrNil(sql.NullFloat64{Float64: 1250.5, Valid: true}); got != 1250.5 {
		t.Errorf("NullToFloatOrNil(valida) = %v, se esperaba 1250.5", got)
	}
	if got := NullToFloatOrNil(sql.NullFloat64{}); got != nil {
		t.Errorf("NullToFloatOrNil(nula) = %v, se esperaba nil", got)
	}
}

func TestStrToNull(t *testing.T) {
	if got := StrToNull("algo"); !got.Valid || got.String != "algo" {
		t.Errorf(`StrToNull("algo") = %+v, se esperaba válida`, got)
	}
	if got := StrToNull(""); got.Valid {
		t.Errorf(`StrToNull("") = %+v, se esperaba NULL`, got)
	}
}

func TestIntPtrToNull(t *testing.T) {
	mesa := 4
	if got := IntPtrToNull(&mesa); !got.Valid || got.Int64 != 4 {
		t.Errorf("IntPtrToNull(&4) = %+v, se esperaba válida con 4", got)
	}
	if got := IntPtrToNull(nil); got.Valid {
		t.Errorf("IntPtrToNull(nil) = %+v, se esperaba NULL", got)
	}
}
