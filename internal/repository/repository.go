package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open открывает соединение с PostgreSQL и проверяет его
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("БД недоступна: %w", err)
	}
	return db, nil
}
