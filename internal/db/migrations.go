package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'manual_status') THEN
			CREATE TYPE manual_status AS ENUM ('automatic', 'executed', 'rescinded');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'amendment_kind') THEN
			CREATE TYPE amendment_kind AS ENUM ('term-extension', 'value-change');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'duration_unit') THEN
			CREATE TYPE duration_unit AS ENUM ('days', 'months', 'years');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'report_status') THEN
			CREATE TYPE report_status AS ENUM ('pending_technical', 'pending_administrative', 'pending_manager', 'completed');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS agreements (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number VARCHAR(64) NOT NULL,
		category VARCHAR(255) NOT NULL,
		department VARCHAR(255) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		manual_status manual_status NOT NULL DEFAULT 'automatic',
		is_emergency BOOLEAN NOT NULL DEFAULT FALSE,
		manager_name VARCHAR(255) NOT NULL DEFAULT '',
		manager_user_id UUID,
		technical_name VARCHAR(255) NOT NULL DEFAULT '',
		technical_user_id UUID,
		administrative_name VARCHAR(255) NOT NULL DEFAULT '',
		administrative_user_id UUID,
		requires_administrative BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_agreements_number ON agreements (number);`,
	`CREATE INDEX IF NOT EXISTS idx_agreements_department ON agreements (department);`,
	`CREATE TABLE IF NOT EXISTS amendments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		agreement_id UUID NOT NULL REFERENCES agreements(id) ON DELETE CASCADE,
		kind amendment_kind NOT NULL,
		duration INTEGER NOT NULL DEFAULT 0,
		duration_unit duration_unit NOT NULL DEFAULT 'months',
		entry_date DATE NOT NULL,
		status_label VARCHAR(255) NOT NULL DEFAULT '',
		term_drafted BOOLEAN NOT NULL DEFAULT FALSE,
		legal_review BOOLEAN NOT NULL DEFAULT FALSE,
		budget_commitment BOOLEAN NOT NULL DEFAULT FALSE,
		management_approval BOOLEAN NOT NULL DEFAULT FALSE,
		parties_notified BOOLEAN NOT NULL DEFAULT FALSE,
		gazette_published BOOLEAN NOT NULL DEFAULT FALSE,
		counterpart_signed BOOLEAN NOT NULL DEFAULT FALSE,
		witness_signed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_amendments_agreement_entry ON amendments (agreement_id, entry_date);`,
	`CREATE TABLE IF NOT EXISTS fiscalization_reports (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		agreement_id UUID NOT NULL REFERENCES agreements(id) ON DELETE CASCADE,
		ref_month CHAR(7) NOT NULL,
		template VARCHAR(64) NOT NULL,
		status report_status NOT NULL DEFAULT 'pending_technical',
		admin_required BOOLEAN NOT NULL,
		content JSONB NOT NULL DEFAULT '[]'::jsonb,
		technical_user_id UUID,
		technical_name VARCHAR(255) NOT NULL DEFAULT '',
		technical_signed_at TIMESTAMPTZ,
		administrative_user_id UUID,
		administrative_name VARCHAR(255) NOT NULL DEFAULT '',
		administrative_signed_at TIMESTAMPTZ,
		manager_user_id UUID,
		manager_name VARCHAR(255) NOT NULL DEFAULT '',
		manager_signed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reports_agreement_month ON fiscalization_reports (agreement_id, ref_month);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_status ON fiscalization_reports (status);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
