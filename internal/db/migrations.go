package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_status') THEN
			CREATE TYPE order_status AS ENUM ('open', 'closed');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_priority') THEN
			CREATE TYPE order_priority AS ENUM ('low', 'normal', 'high');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name TEXT NOT NULL,
		tax_id VARCHAR(32) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS equipment (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id),
		brand TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		serial_number TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number BIGSERIAL NOT NULL,
		client_id UUID NOT NULL REFERENCES clients(id),
		equipment_id UUID REFERENCES equipment(id),
		service_type TEXT NOT NULL DEFAULT '',
		priority order_priority NOT NULL DEFAULT 'normal',
		status order_status NOT NULL DEFAULT 'open',
		result TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		budget_requested BOOLEAN NOT NULL DEFAULT FALSE,
		warranty BOOLEAN NOT NULL DEFAULT FALSE,
		needs_parts BOOLEAN NOT NULL DEFAULT FALSE,
		client_signed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		closed_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS work_sessions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		outbound_departure VARCHAR(5) NOT NULL DEFAULT '',
		outbound_arrival VARCHAR(5) NOT NULL DEFAULT '',
		work_start VARCHAR(5) NOT NULL DEFAULT '',
		work_end VARCHAR(5) NOT NULL DEFAULT '',
		return_departure VARCHAR(5) NOT NULL DEFAULT '',
		return_arrival VARCHAR(5) NOT NULL DEFAULT '',
		pause VARCHAR(8) NOT NULL DEFAULT '',
		outbound_km VARCHAR(16) NOT NULL DEFAULT '',
		return_km VARCHAR(16) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number BIGSERIAL NOT NULL,
		order_id UUID REFERENCES orders(id) ON DELETE SET NULL,
		client_id UUID NOT NULL REFERENCES clients(id),
		client_name TEXT NOT NULL,
		client_tax_id VARCHAR(32) NOT NULL DEFAULT '',
		client_address TEXT NOT NULL DEFAULT '',
		order_number BIGINT,
		equipment TEXT NOT NULL DEFAULT '',
		items JSONB NOT NULL DEFAULT '[]',
		tax_rate NUMERIC(5,2) NOT NULL,
		show_tax BOOLEAN NOT NULL DEFAULT TRUE,
		subtotal NUMERIC(18,2) NOT NULL,
		tax_amount NUMERIC(18,2) NOT NULL,
		total NUMERIC(18,2) NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_by UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_number ON orders (number);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_budgets_number ON budgets (number);`,
	`CREATE INDEX IF NOT EXISTS idx_equipment_client_id ON equipment (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_client_id ON orders (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);`,
	`CREATE INDEX IF NOT EXISTS idx_work_sessions_order_date ON work_sessions (order_id, date);`,
	`CREATE INDEX IF NOT EXISTS idx_budgets_order_id ON budgets (order_id) WHERE order_id IS NOT NULL;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
