package config

import (
	"fmt"
	"os"
)

type Configuration struct {
	Puerto    string
	JWTSecret string
}

var Config Configuration

// LoadConfig carga la configuración del servidor desde variables de entorno.
// Las variables de base de datos las carga el paquete db junto con el .env.
func LoadConfig() error {
	Config.Puerto = os.Getenv("PORT")
	if Config.Puerto == "" {
		Config.Puerto = "8080"
	}

	Config.JWTSecret = os.Getenv("JWT_SECRET")
	if Config.JWTSecret == "" {
		return fmt.Errorf("falta la variable de entorno JWT_SECRET")
	}

	return nil
}

// JWTKey devuelve la llave de firma para los tokens
func JWTKey() []byte {
	return []byte(Config.JWTSecret)
}
