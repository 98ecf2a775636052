package main

import (
	"log"

	"maktab/app/config"
	"maktab/app/database"
)

func main() {
	log.Println("Starting manual migration...")

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	log.Println("Manual migration completed successfully!")
}
