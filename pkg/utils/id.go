package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID cria um identificador curto usado como identidade de snapshot
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
