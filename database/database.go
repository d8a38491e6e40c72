package database

import (
	"fmt"
	"log"

	"ctfrange/config"
	"ctfrange/models"
	"ctfrange/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var DefaultPassword = "admin"

var defaultCategories = []string{"Web", "Crypto", "Forensics", "Pwn", "Misc"}

// InitDB initializes the database connection and migrates the models and populates the database with default values if needed
func InitDB() {
    dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC", config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

    var err error
    DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
    if err != nil {
        log.Fatal("failed to connect database: ", err)
    }

    err = DB.AutoMigrate(
        &models.User{},
        &models.Group{},
        &models.Category{},
        &models.Challenge{},
        &models.Attempt{},
        &models.Solve{},
        &models.LessonSettings{},
        &models.LessonTemplate{},
    )
    if err != nil {
        log.Fatal("failed to migrate database: ", err)
    }

    Populate()
}

// Populate populates the database with default values if needed
func Populate() {
    var countGroup, countUser int64
    var mentors models.Group

    // Check if there is no group and no user in the database
    DB.Model(&models.Group{}).Count(&countGroup)
    DB.Model(&models.User{}).Count(&countUser)
    if countGroup == 0 && countUser == 0 {
        // Create the Mentors group used for mentor tooling access
        mentors = models.Group{Name: models.MentorsGroup}
        DB.Create(&mentors)
        log.Println("Default group Mentors created")

        // Create default superuser with a password either from the .env file or the DefaultPassword constant
        password := DefaultPassword
        if config.DefaultPassword != "" {
            password = config.DefaultPassword
        }

        password, err := utils.HashPassword(password)
        if err != nil {
            panic(err)
        }

        user := models.User{
            Username:      "admin",
            Email:         "admin@admin.com",
            Password:      password,
            IsSuperuser:   true,
            LastConnected: nil,
            Groups:        []*models.Group{&mentors},
        }
        DB.Create(&user)
        log.Println("Default user admin created")
    }

    // Seed the default challenge categories once
    var countCategory int64
    DB.Model(&models.Category{}).Count(&countCategory)
    if countCategory == 0 {
        for _, name := range defaultCategories {
            DB.Create(&models.Category{Name: name})
            log.Println("Default category created: ", name)
        }
    }
}
