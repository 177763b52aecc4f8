package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func setupLogger() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func createUsersTable(db *sql.DB) {
	log.Println("Criando tabela users...")
	startTime := time.Now()

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			lastname VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT true,
			role_id INTEGER NOT NULL DEFAULT 3,
			avatar_url TEXT,
			deleted BOOLEAN NOT NULL DEFAULT false,
			deleted_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Fatalf("ERRO ao criar tabela users: %v", err)
	}

	log.Printf("Tabela users criada em %v", time.Since(startTime))
}

func seedAdminUser(db *sql.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD não definidos, pulando seed do admin")
		return
	}

	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		log.Fatalf("ERRO ao verificar admin existente: %v", err)
	}
	if exists {
		log.Printf("Admin %s já existe, nada a fazer", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("ERRO ao gerar hash da senha do admin: %v", err)
	}

	_, err = db.Exec(
		`INSERT INTO users (name, lastname, email, password_hash, active, role_id) VALUES ($1, $2, $3, $4, true, 1)`,
		"Admin", "Dashboard", email, string(hash),
	)
	if err != nil {
		log.Fatalf("ERRO ao inserir admin: %v", err)
	}

	log.Printf("Admin %s criado com sucesso", email)
}

func main() {
	setupLogger()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN não definido")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("ERRO ao conectar no banco: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ERRO ao pingar o banco: %v", err)
	}

	createUsersTable(db)
	seedAdminUser(db)

	log.Println("Migração concluída")
}
