// cmd/atriumctl/main.go
package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/dangerclosesec/atrium/internal/auth"
	"github.com/spf13/cobra"

	_ "github.com/lib/pq"
)

var (
	dbConnString string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	seedCmd.Flags().StringVar(&seedEmail, "email", "founder@example.com", "Seed user email")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "Seed user password")
	seedCmd.Flags().StringVar(&seedOrgName, "org", "Acme Inc", "Seed organization name")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "atriumctl",
	Short: "atriumctl manages Atrium deployments",
	Long:  `atriumctl applies the database schema and seeds development data for the Atrium API.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Apply the full Atrium schema. Statements are idempotent, so re-running is safe.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpen()
		defer db.Close()

		for i, stmt := range schemaStatements {
			if verbose {
				log.Printf("applying statement %d/%d", i+1, len(schemaStatements))
			}
			if _, err := db.Exec(stmt); err != nil {
				log.Fatalf("Failed applying schema statement %d: %v", i+1, err)
			}
		}

		fmt.Println("Schema applied successfully")
	},
}

var (
	seedEmail    string
	seedPassword string
	seedOrgName  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a development user, organization, and agent",
	Run: func(cmd *cobra.Command, args []string) {
		if seedPassword == "" {
			log.Fatal("A seed password is required (--password)")
		}

		db := mustOpen()
		defer db.Close()

		hasher := auth.NewPasswordHasher()
		hash, err := hasher.Hash(seedPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("Failed to begin transaction: %v", err)
		}
		defer tx.Rollback()

		var userID string
		err = tx.QueryRow(`
			INSERT INTO users (email, first_name, last_name, password_hash, status)
			VALUES ($1, 'Seed', 'User', $2, 'active')
			ON CONFLICT (email) DO UPDATE SET updated_at = now()
			RETURNING id`,
			seedEmail, hash,
		).Scan(&userID)
		if err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}

		var orgID string
		err = tx.QueryRow(`
			INSERT INTO organizations (name, slug, owner_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET updated_at = now()
			RETURNING id`,
			seedOrgName, slugify(seedOrgName), userID,
		).Scan(&orgID)
		if err != nil {
			log.Fatalf("Failed to seed organization: %v", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO organization_members (organization_id, user_id, role, status, joined_at)
			VALUES ($1, $2, 'owner', 'active', now())
			ON CONFLICT (organization_id, user_id) DO NOTHING`,
			orgID, userID,
		); err != nil {
			log.Fatalf("Failed to seed membership: %v", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO agents (organization_id, name, description, model_name, system_prompt)
			SELECT $1, 'General Assistant', 'Default seeded agent', 'gpt-4o', 'You are a helpful assistant.'
			WHERE NOT EXISTS (SELECT 1 FROM agents WHERE organization_id = $1 AND name = 'General Assistant')`,
			orgID,
		); err != nil {
			log.Fatalf("Failed to seed agent: %v", err)
		}

		if err := tx.Commit(); err != nil {
			log.Fatalf("Failed to commit seed data: %v", err)
		}

		fmt.Printf("Seeded user %s in organization %q\n", seedEmail, seedOrgName)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the atriumctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("atriumctl v0.3.0")
	},
}

func mustOpen() *sql.DB {
	if dbConnString == "" {
		log.Fatal("Database connection string is required (--db)")
	}

	db, err := sql.Open("postgres", dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	return db
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
