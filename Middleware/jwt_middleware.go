package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/CarlosMtz98/logica_pospizzeria/config"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	ID       int             `json:"id"`
	Correo   string          `json:"correo"`
	Permisos map[string]bool `json:"permisos"`
	jwt.RegisteredClaims
}

// Claves para contexto
type contextKey string

const (
	ContextUserIDKey   contextKey = "userID"
	ContextCorreoKey   contextKey = "correo"
	ContextPermisosKey contextKey = "permisos"
)

// Middleware JWT para rutas protegidas
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Token faltante o inválido", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return config.JWTKey(), nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Token inválido o expirado", http.StatusUnauthorized)
			return
		}

		permisos := claims.Permisos
		if permisos == nil {
			permisos = map[string]bool{}
		}

		ctx := context.WithValue(r.Context(), ContextUserIDKey, claims.ID)
		ctx = context.WithValue(ctx, ContextCorreoKey, claims.Correo)
		ctx = context.WithValue(ctx, ContextPermisosKey, permisos)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext recupera los datos del usuario autenticado desde el contexto
func GetUserFromContext(r *http.Request) (id int, correo string, permisos map[string]bool) {
	if val := r.Context().Value(ContextUserIDKey); val != nil {
		id, _ = val.(int)
	}
	if val := r.Context().Value(ContextCorreoKey); val != nil {
		correo, _ = val.(string)
	}
	if val := r.Context().Value(ContextPermisosKey); val != nil {
		permisos, _ = val.(map[string]bool)
	}
	if permisos == nil {
		permisos = map[string]bool{}
	}
	return
}
