package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Green254/TaskPulse/internal/models/db_models"
	"github.com/Green254/TaskPulse/pkg/utils"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}

// Prepare migrates the schema and seeds the fixed rows the system needs
// before it can serve traffic. Safe to run on every boot.
func Prepare(db *gorm.DB) {
	if err := Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := Seed(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Department{},
		&db_models.Role{},
		&db_models.User{},
		&db_models.AccessToken{},
		&db_models.ManagerSubordinate{},
		&db_models.Project{},
		&db_models.Task{},
		&db_models.Announcement{},
		&db_models.SystemTheme{},
	)
}

var seedDepartments = []string{"Management", "Security", "Kitchen", "Staff"}

// Seed is idempotent: departments and roles are created on first boot only,
// and the bootstrap admin exists so the last-active-admin floor holds from
// the very first request.
func Seed(db *gorm.DB) error {
	for _, name := range seedDepartments {
		var department db_models.Department
		if err := db.Where(db_models.Department{Name: name}).FirstOrCreate(&department).Error; err != nil {
			return err
		}
	}

	for _, name := range db_models.ManagedRoles {
		var role db_models.Role
		if err := db.Where(db_models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}

	return seedAdmin(db)
}

func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	var count int64
	if err := db.Model(&db_models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password"
		log.Println("ADMIN_PASSWORD not set, seeding bootstrap admin with the default password")
	}
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	var management db_models.Department
	if err := db.Where(db_models.Department{Name: "Management"}).FirstOrCreate(&management).Error; err != nil {
		return err
	}

	admin := db_models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: passwordHash,
		DepartmentID: &management.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	var adminRole db_models.Role
	if err := db.Where(db_models.Role{Name: db_models.RoleAdmin}).FirstOrCreate(&adminRole).Error; err != nil {
		return err
	}
	return db.Model(&admin).Association("Roles").Append(&adminRole)
}
