package models

import (
	"fmt"
	"testing"
	"time"
)

func TestOpenDBZeroPoolKeepsMemoryDatabase(t *testing.T) {
	dsn := fmt.Sprintf("file:models_db_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := OpenDB("sqlite", dsn, DBPoolConfig{}, false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	defer sqlDB.Close()

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	for _, table := range []string{"cart_items", "orders", "order_items"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("table %s missing after migrate", table)
		}
	}
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenDB("oracle", "", DBPoolConfig{}, false); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
