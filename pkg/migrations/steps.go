package migrations

import "gorm.io/gorm"

// Steps returns the registered schema evolution steps in application order.
// Append only; never reorder or rename a shipped step.
func Steps() []Step {
	return []Step{
		{
			Name: "m001_create_users_table",
			Up: func(tx *gorm.DB) error {
				return execAll(tx,
					`CREATE TABLE IF NOT EXISTS users (
						id SERIAL PRIMARY KEY,
						first_name VARCHAR(255) NOT NULL,
						last_name VARCHAR(255) NOT NULL,
						email VARCHAR(255) NOT NULL UNIQUE,
						password VARCHAR(255) NOT NULL,
						created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
						updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
					)`,
					`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
				)
			},
			Down: func(tx *gorm.DB) error {
				return execAll(tx, `DROP TABLE IF EXISTS users`)
			},
		},
		{
			Name: "m002_create_permissions_table",
			Up: func(tx *gorm.DB) error {
				return execAll(tx,
					`CREATE TABLE IF NOT EXISTS permissions (
						id SERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL UNIQUE,
						resource VARCHAR(255),
						action VARCHAR(255) NOT NULL,
						created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
						updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
					)`,
					`CREATE INDEX IF NOT EXISTS idx_permissions_name ON permissions(name)`,
					`CREATE INDEX IF NOT EXISTS idx_permissions_resource_action ON permissions(resource, action)`,
				)
			},
			Down: func(tx *gorm.DB) error {
				return execAll(tx, `DROP TABLE IF EXISTS permissions`)
			},
		},
		{
			Name: "m003_create_roles_table",
			Up: func(tx *gorm.DB) error {
				return execAll(tx,
					`CREATE TABLE IF NOT EXISTS roles (
						id SERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL UNIQUE,
						description TEXT,
						created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
						updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
					)`,
					`CREATE TABLE IF NOT EXISTS role_permissions (
						id SERIAL PRIMARY KEY,
						role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
						permission_id INTEGER NOT NULL REFERENCES permissions(id) ON DELETE CASCADE,
						created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
						UNIQUE(role_id, permission_id)
					)`,
					`CREATE INDEX IF NOT EXISTS idx_roles_name ON roles(name)`,
					`CREATE INDEX IF NOT EXISTS idx_role_permissions_role_id ON role_permissions(role_id)`,
					`CREATE INDEX IF NOT EXISTS idx_role_permissions_permission_id ON role_permissions(permission_id)`,
				)
			},
			Down: func(tx *gorm.DB) error {
				return execAll(tx,
					`DROP TABLE IF EXISTS role_permissions`,
					`DROP TABLE IF EXISTS roles`,
				)
			},
		},
		{
			Name: "m004_create_user_roles_table",
			Up: func(tx *gorm.DB) error {
				return execAll(tx,
					`CREATE TABLE IF NOT EXISTS user_roles (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
						created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
						UNIQUE(user_id, role_id)
					)`,
					`CREATE INDEX IF NOT EXISTS idx_user_roles_user_id ON user_roles(user_id)`,
					`CREATE INDEX IF NOT EXISTS idx_user_roles_role_id ON user_roles(role_id)`,
				)
			},
			Down: func(tx *gorm.DB) error {
				return execAll(tx, `DROP TABLE IF EXISTS user_roles`)
			},
		},
	}
}

func execAll(tx *gorm.DB, statements ...string) error {
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
