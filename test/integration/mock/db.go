package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database migrated with the application models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	// order lists tables children first so rows can be cleared without tripping foreign keys.
	order []string
}

// NewDb opens the shared database once. tables maps table names to models and
// must be given parents first, in migration order.
func NewDb(tables []string, models map[string]any) *Db {
	once.Do(func() {
		db = open(tables, models)
	})
	return db
}

func open(tables []string, models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	modelList := make([]any, 0, len(tables))
	for _, table := range tables {
		model, ok := models[table]
		if !ok {
			panic(fmt.Sprintf("no model registered for table %q", table))
		}
		modelList = append(modelList, model)
	}
	if err := dbConn.AutoMigrate(modelList...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	order := make([]string, len(tables))
	for i, table := range tables {
		order[len(tables)-1-i] = table
	}

	return &Db{
		DbConn: dbConn,
		models: models,
		order:  order,
	}
}

// ClearDB deletes every row of every registered table.
func (d *Db) ClearDB() error {
	for _, table := range d.order {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
