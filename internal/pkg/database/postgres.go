package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	// Driver pq para PostgreSQL
	_ "github.com/lib/pq"
)

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
// O ping inicial é repetido com espera fixa: o banco pode subir depois do
// serviço (docker-compose), então o startup bloqueia até conectar ou esgotar
// as tentativas.
func NewPostgresDB(dataSourceName string, retries int, delay time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	if retries < 1 {
		retries = 1
	}

	for attempt := 1; ; attempt++ {
		err = db.Ping()
		if err == nil {
			break
		}
		if attempt >= retries {
			db.Close()
			return nil, fmt.Errorf("falha ao conectar ao DB após %d tentativas: %w", retries, err)
		}
		log.Printf("Erro de conexão com o DB: %v. Nova tentativa em %s... (%d restantes)", err, delay, retries-attempt)
		time.Sleep(delay)
	}

	// Configuração do Connection Pool. Cada requisição pega uma conexão do
	// pool e a devolve ao final; não há sessão compartilhada entre requisições.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	log.Println("Pool de conexões PostgreSQL configurado e pronto.")

	return db, nil
}
