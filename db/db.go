package db

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
)

type DBConfig struct {
	User     string
	Password string
	DBName   string
	Host     string
	Port     int
}

type DBConnection struct {
	Local *sql.DB
}

var (
	dbConnInstance *DBConnection
	once           sync.Once
)

// LoadConfig carga la configuración de base de datos desde variables de entorno (.env)
func LoadConfig() (*DBConfig, error) {
	// Cargar variables de entorno desde .env
	if err := loadEnvFile(".env"); err != nil {
		return nil, fmt.Errorf("error cargando variables de entorno: %v", err)
	}

	var cfg DBConfig
	var missingVars []string

	cfg.User = os.Getenv("DB_USER")
	if cfg.User == "" {
		missingVars = append(missingVars, "DB_USER")
	}

	cfg.Password = os.Getenv("DB_PASSWORD")
	if cfg.Password == "" {
		missingVars = append(missingVars, "DB_PASSWORD")
	}

	cfg.DBName = os.Getenv("DB_NAME")
	if cfg.DBName == "" {
		missingVars = append(missingVars, "DB_NAME")
	}

	cfg.Host = os.Getenv("DB_HOST")
	if cfg.Host == "" {
		missingVars = append(missingVars, "DB_HOST")
	}

	portStr := os.Getenv("DB_PORT")
	if portStr == "" {
		missingVars = append(missingVars, "DB_PORT")
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("DB_PORT no es un número válido: %v", err)
		}
		cfg.Port = port
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("faltan las siguientes variables de entorno: %s", strings.Join(missingVars, ", "))
	}

	return &cfg, nil
}

// loadEnvFile carga variables desde un archivo .env
func loadEnvFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("no se pudo leer el archivo %s: %v", filename, err)
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		// Ignorar comentarios y líneas vacías
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Dividir por el primer signo igual
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Eliminar comillas si existen
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' ||
			value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}

		// No sobrescribir si ya existe
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}

	return nil
}

// ConnectDB crea y devuelve la conexión a la base de datos usando variables de entorno
func ConnectDB() (*DBConnection, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName)

	localDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("error en conexión a la base de datos: %v", err)
	}

	if err = localDB.Ping(); err != nil {
		localDB.Close()
		return nil, fmt.Errorf("error al verificar la conexión: %v", err)
	}

	// Configurar pool de conexiones
	localDB.SetMaxOpenConns(10)
	localDB.SetMaxIdleConns(5)

	return &DBConnection{
		Local: localDB,
	}, nil
}

// GetDBConnection retorna la instancia singleton de DBConnection
func GetDBConnection() (*DBConnection, error) {
	var err error
	once.Do(func() {
		dbConnInstance, err = ConnectDB()
	})
	return dbConnInstance, err
}

// Close cierra la conexión a la base de datos
func (dbc *DBConnection) Close() {
	if dbc.Local != nil {
		if err := dbc.Local.Close(); err != nil {
			fmt.Printf("Error al cerrar la conexión: %v\n", err)
		}
	}
}

// CheckConnections verifica el estado de la conexión
func (dbc *DBConnection) CheckConnections() error {
	if err := dbc.Local.Ping(); err != nil {
		return fmt.Errorf("error en la conexión a la base de datos: %v", err)
	}
	return nil
}
