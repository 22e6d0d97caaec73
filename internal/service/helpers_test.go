package service_test

import "github.com/garnizeh/skillswap/internal/models"

func modelsUser(email string) models.User {
	return models.User{Email: email, PasswordHash: "x", FirstName: "Test"}
}

func strPtr(s string) *string { return &s }
