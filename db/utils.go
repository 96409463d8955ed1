package db

import (
	"database/sql"
)

// NullToStr convierte sql.NullString a string ("" si es nulo)
func NullToStr(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// NullToStrOrNil convierte sql.NullString a interface{} (string o nil para JSON)
func NullToStrOrNil(ns sql.NullString) interface{} {
	if ns.Valid {
		return ns.String
	}
	return nil
}

// NullToIntOrNil convierte sql.NullInt64 a interface{} (int64 o nil para JSON)
func NullToIntOrNil(ni sql.NullInt64) interface{} {
	if ni.Valid {
		return ni.Int64
	}
	return nil
}

// NullToFloatOrNil convierte sql.NullFloat64 a interface{} (float64 o nil para JSON)
func NullToFloatOrNil(nf sql.NullFloat64) interface{} {
	if nf.Valid {
		return nf.Float64
	}
	return nil
}

// StrToNull convierte string a sql.NullString ("" se vuelve NULL)
func StrToNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// IntPtrToNull convierte *int a sql.NullInt64 (nil se vuelve NULL)
func IntPtrToNull(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
