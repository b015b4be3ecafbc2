// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS foods (
        position INTEGER PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        prot_g REAL NOT NULL CHECK (prot_g >= 0),
        tot_fat_g REAL NOT NULL CHECK (tot_fat_g >= 0),
        tot_fib_g REAL NOT NULL CHECK (tot_fib_g >= 0),
        carb_g REAL NOT NULL CHECK (carb_g >= 0)
    );

    CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(name);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveDataset replaces the stored foods with the contents of ds, keeping
// source order.
func (s *SQLiteStorage) SaveDataset(ds *dataset.Dataset) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM foods`); err != nil {
		return fmt.Errorf("failed to clear foods: %w", err)
	}

	foodQuery := `
        INSERT INTO foods (position, name, prot_g, tot_fat_g, tot_fib_g, carb_g)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	stmt, err := tx.Prepare(foodQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < ds.Len(); i++ {
		food := ds.At(i)
		_, err = stmt.Exec(i, food.Name, food.ProteinG, food.FatG, food.FiberG, food.CarbG)
		if err != nil {
			return fmt.Errorf("failed to insert food %q: %w", food.Name, err)
		}
	}

	return tx.Commit()
}

// LoadDataset reads the stored foods back into a Dataset.
func (s *SQLiteStorage) LoadDataset() (*dataset.Dataset, error) {
	query := `
        SELECT name, prot_g, tot_fat_g, tot_fib_g, carb_g
        FROM foods
        ORDER BY position
    `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var foods []models.FoodRecord
	for rows.Next() {
		food := models.FoodRecord{}
		err := rows.Scan(&food.Name, &food.ProteinG, &food.FatG, &food.FiberG, &food.CarbG)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read foods: %w", err)
	}

	return dataset.FromRecords(foods), nil
}

// CountFoods returns how many foods are stored.
func (s *SQLiteStorage) CountFoods() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return n, nil
}
