package rutas

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	middlewares "github.com/CarlosMtz98/logica_pospizzeria/Middleware"
	"github.com/CarlosMtz98/logica_pospizzeria/config"
	"github.com/CarlosMtz98/logica_pospizzeria/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Correo string `json:"correo"`
	Clave  string `json:"clave"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Función auxiliar para verificar contraseñas
func verificarContraseña(claveHash string, claveIntento string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(claveHash), []byte(claveIntento))
	return err == nil
}

// generarTokens emite el access token (expira a medianoche local) y un
// refresh token opaco que se guarda con hash bcrypt.
func generarTokens(u db.Usuario, permisos map[string]bool) (accessToken string, refreshToken string, err error) {
	loc, err := time.LoadLocation("America/Merida")
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)

	claims := middlewares.Claims{
		ID:       u.IDUsuario,
		Correo:   u.Correo,
		Permisos: permisos,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.NombreCompleto,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(midnight),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err = token.SignedString(config.JWTKey())
	if err != nil {
		return "", "", err
	}

	refreshToken = uuid.NewString()
	return accessToken, refreshToken, nil
}

func guardaRefreshToken(dbc *db.DBConnection, idUsuario int, refreshToken, userAgent, ip string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation("America/Merida")
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)

	_, err = dbc.Local.Exec(`
		INSERT INTO refresh_tokens (usuario_id, token_hash, user_agent, ip_address, expiracion, ultimo_uso, estado)
		VALUES (?, ?, ?, ?, ?, ?, 'activo')`,
		idUsuario, string(hash), userAgent, ip,
		midnight.Format(formatoFecha), now.Format(formatoFecha))
	return err
}

// ---------------------------
// ENDPOINT: Login
// ---------------------------
func LoginUsuario(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}

		var u db.Usuario
		query := `SELECT id_usuario, id_perfil, nombre_completo, correo, clave, permisos, estatus
				  FROM usuarios WHERE correo = ? LIMIT 1`
		err := dbc.Local.QueryRow(query, req.Correo).Scan(
			&u.IDUsuario, &u.IDPerfil, &u.NombreCompleto, &u.Correo, &u.Clave, &u.Permisos, &u.Estatus,
		)
		if err == sql.ErrNoRows {
			writeErrorResponse(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos", "")
			return
		} else if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error de base de datos", err.Error())
			return
		}

		if !verificarContraseña(u.Clave, req.Clave) {
			writeErrorResponse(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos", "")
			return
		}
		if u.Estatus != "activo" {
			writeErrorResponse(w, http.StatusUnauthorized, "Usuario inactivo o suspendido", "")
			return
		}

		permisos := map[string]bool{}
		if len(u.Permisos) > 0 {
			if err := json.Unmarshal(u.Permisos, &permisos); err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Permisos del usuario ilegibles", err.Error())
				return
			}
		}

		accessToken, refreshToken, err := generarTokens(u, permisos)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error generando tokens", err.Error())
			return
		}
		if err := guardaRefreshToken(dbc, u.IDUsuario, refreshToken, r.Header.Get("User-Agent"), r.RemoteAddr); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error guardando refresh token", err.Error())
			return
		}

		_, _ = dbc.Local.Exec("UPDATE usuarios SET ultimo_acceso = ? WHERE id_usuario = ?", ahoraStr(), u.IDUsuario)

		writeSuccessResponse(w, "Login exitoso", map[string]interface{}{
			"usuario": map[string]interface{}{
				"id_usuario":      u.IDUsuario,
				"id_perfil":       u.IDPerfil,
				"nombre_completo": u.NombreCompleto,
				"correo":          u.Correo,
				"permisos":        permisos,
			},
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		})
	}
}

// validarRefreshToken busca el token activo cuyo hash corresponda y verifica
// su expiración. Regresa el id del renglón y el usuario dueño.
func validarRefreshToken(dbc *db.DBConnection, refreshToken string) (tokenID int, userID int, err error) {
	rows, err := dbc.Local.Query(`
		SELECT id, usuario_id, token_hash, expiracion
		FROM refresh_tokens WHERE estado = 'activo'
	`)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	var expiracionStr sql.NullString
	found := false
	for rows.Next() {
		var tokenHash string
		if err := rows.Scan(&tokenID, &userID, &tokenHash, &expiracionStr); err != nil {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(refreshToken)) == nil {
			found = true
			break
		}
	}
	if !found {
		return 0, 0, sql.ErrNoRows
	}
	if !expiracionStr.Valid || expiracionStr.String == "" {
		return 0, 0, sql.ErrNoRows
	}
	expiracion, err := time.Parse(formatoFecha, expiracionStr.String)
	if err != nil {
		return 0, 0, err
	}
	if time.Now().After(expiracion) {
		return 0, 0, sql.ErrNoRows
	}
	return tokenID, userID, nil
}

// ---------------------------
// ENDPOINT: Renovar tokens
// ---------------------------
func RefreshTokenEndpoint(dbc *db.DBConnection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Datos inválidos", err.Error())
			return
		}
		if req.RefreshToken == "" {
			writeErrorResponse(w, http.StatusBadRequest, "Falta refresh_token", "")
			return
		}

		tokenID, userID, err := validarRefreshToken(dbc, req.RefreshToken)
		if err != nil {
			writeErrorResponse(w, http.StatusUnauthorized, "Refresh token inválido o expirado", "")
			return
		}

		var u db.Usuario
		err = dbc.Local.QueryRow(`
			SELECT id_usuario, id_perfil, nombre_completo, correo, permisos, estatus
			FROM usuarios WHERE id_usuario = ?
		`, userID).Scan(&u.IDUsuario, &u.IDPerfil, &u.NombreCompleto, &u.Correo, &u.Permisos, &u.Estatus)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error al leer el usuario", err.Error())
			return
		}
		if u.Estatus != "activo" {
			writeErrorResponse(w, http.StatusUnauthorized, "Usuario inactivo o suspendido", "")
			return
		}

		permisos := map[string]bool{}
		if len(u.Permisos) > 0 {
			_ = json.Unmarshal(u.Permisos, &permisos)
		}

		accessToken, newRefreshToken, err := generarTokens(u, permisos)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error generando tokens", err.Error())
			return
		}

		// rotación: se revoca el anterior y se guarda el nuevo
		if _, err := dbc.Local.Exec(`UPDATE refresh_tokens SET estado = 'revocado' WHERE id = ?`, tokenID); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error revocando refresh token anterior", err.Error())
			return
		}
		if err := guardaRefreshToken(dbc, userID, newRefreshToken, r.Header.Get("User-Agent"), r.RemoteAddr); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "Error guardando nuevo refresh token", err.Error())
			return
		}

		writeSuccessResponse(w, "Tokens renovados correctamente", map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": newRefreshToken,
		})
	}
}
