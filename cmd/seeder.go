package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			tables := []string{
				"ticket_transfers", "tickets", "kb_items", "activity_logs",
				"user_permissions", "user_roles", "user_bins", "user_teams",
				"teams", "bins", "users", "roles", "permission_definitions", "accounts",
			}
			for _, table := range tables {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedAccount(db, "backoffice", "Back Office")
		seedAccount(db, "demo", "Demo Workspace")

		definitions := []struct {
			Key       string
			Label     string
			ValueType string
			Position  int
		}{
			{"all", "Superadmin", "boolean", 1},
			{"all_users", "Manage users", "boolean", 2},
			{"all_bins", "Manage bins", "boolean", 3},
			{"transfer_tickets", "Transfer tickets", "boolean", 4},
			{"bins_assigned", "Assigned bins", "array", 5},
		}
		for _, d := range definitions {
			var exists int
			if err := db.Raw("SELECT 1 FROM permission_definitions WHERE permission_key = ?", d.Key).Row().Scan(&exists); err == nil {
				continue
			}
			err := db.Exec(
				"INSERT INTO permission_definitions (permission_key, display_name, value_type, display_order, is_active, created_time) VALUES (?, ?, ?, ?, true, now())",
				d.Key, d.Label, d.ValueType, d.Position).Error
			if err != nil {
				log.Fatalf("failed to insert permission definition %s: %v", d.Key, err)
			}
		}

		roles := []struct {
			Name        string
			DisplayName string
			Permissions string
		}{
			{"superadmin", "Superadmin", `["all"]`},
			{"admin", "Administrator", `["all_users","all_bins","transfer_tickets"]`},
			{"support", "Support Agent", `["transfer_tickets"]`},
		}
		for _, r := range roles {
			var exists int
			if err := db.Raw("SELECT 1 FROM roles WHERE name = ?", r.Name).Row().Scan(&exists); err == nil {
				continue
			}
			err := db.Exec(
				"INSERT INTO roles (name, display_name, permissions, created_time) VALUES (?, ?, ?::jsonb, now())",
				r.Name, r.DisplayName, r.Permissions).Error
			if err != nil {
				log.Fatalf("failed to insert role %s: %v", r.Name, err)
			}
		}

		backofficeID := accountID(db, "backoffice")
		demoID := accountID(db, "demo")

		hash, _ := bcrypt.GenerateFromPassword([]byte("Change!me1"), bcrypt.DefaultCost)
		seedUser(db, "root@ticketdesk.local", "Root", "Admin", string(hash), "admin", backofficeID)
		seedUser(db, "agent@demo.local", "Demo", "Agent", string(hash), "user", demoID)

		assignRole(db, "root@ticketdesk.local", "superadmin", nil)
		assignRole(db, "agent@demo.local", "support", nil)

		for _, name := range []string{"support", "billing"} {
			var exists int
			if err := db.Raw("SELECT 1 FROM bins WHERE name = ? AND account_id = ?", name, demoID).Row().Scan(&exists); err == nil {
				continue
			}
			err := db.Exec(
				"INSERT INTO bins (name, color, account_id, is_active, created_time) VALUES (?, '#6B7280', ?, true, now())",
				name, demoID).Error
			if err != nil {
				log.Fatalf("failed to insert bin %s: %v", name, err)
			}
		}

		fmt.Println("Seed data applied")
	},
}

func seedAccount(db *gorm.DB, name, displayName string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM accounts WHERE name = ?", name).Row().Scan(&exists); err == nil {
		return
	}
	err := db.Exec(
		"INSERT INTO accounts (name, display_name, is_active, created_time) VALUES (?, ?, true, now())",
		name, displayName).Error
	if err != nil {
		log.Fatalf("failed to insert account %s: %v", name, err)
	}
	fmt.Println("Seeded account:", name)
}

func accountID(db *gorm.DB, name string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM accounts WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup account %s: %v", name, err)
	}
	return id
}

func seedUser(db *gorm.DB, email, first, last, hash, role string, accountID int64) {
	var exists int
	if err := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row().Scan(&exists); err == nil {
		return
	}
	err := db.Exec(
		"INSERT INTO users (email, firstname, lastname, password_hash, role, account_id, is_active, created_time, updated_time) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
		email, first, last, hash, role, accountID).Error
	if err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}

func assignRole(db *gorm.DB, email, roleName string, binID *int64) {
	var userID, roleID int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&userID); err != nil {
		log.Fatalf("failed to lookup user %s: %v", email, err)
	}
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", roleName).Row().Scan(&roleID); err != nil {
		log.Fatalf("failed to lookup role %s: %v", roleName, err)
	}

	var exists int
	if err := db.Raw(
		"SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ? AND bin_id IS NOT DISTINCT FROM ?",
		userID, roleID, binID).Row().Scan(&exists); err == nil {
		return
	}
	err := db.Exec(
		"INSERT INTO user_roles (user_id, role_id, bin_id, created_time) VALUES (?, ?, ?, now())",
		userID, roleID, binID).Error
	if err != nil {
		log.Fatalf("failed to assign role %s to %s: %v", roleName, email, err)
	}
	fmt.Printf("Assigned role %s to %s\n", roleName, email)
}
