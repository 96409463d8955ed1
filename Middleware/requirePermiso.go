package middlewares

import (
	"net/http"
)

// RequirePermiso verifica que las banderas de permisos del JWT incluyan la
// bandera indicada. accesoTotal salta cualquier verificación individual.
func RequirePermiso(permiso string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS headers
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			permisos, ok := r.Context().Value(ContextPermisosKey).(map[string]bool)
			if !ok || (!permisos["accesoTotal"] && !permisos[permiso]) {
				http.Error(w, "No tienes permisos suficientes", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
