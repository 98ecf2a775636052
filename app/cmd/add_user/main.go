package main

import (
	"flag"
	"fmt"

	"maktab/app/config"
	"maktab/app/database"
)

func main() {
	email := flag.String("email", "", "user email")
	password := flag.String("password", "", "user password")
	firstName := flag.String("first", "", "first name")
	lastName := flag.String("last", "", "last name")
	role := flag.String("role", "staff", "user role (admin|staff)")
	flag.Parse()

	if *email == "" || *password == "" || *firstName == "" || *lastName == "" {
		fmt.Println("Usage: add_user -email ... -password ... -first ... -last ... [-role admin]")
		return
	}

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	user, err := database.CreateUser(db, *email, *password, *firstName, *lastName, *role)
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
