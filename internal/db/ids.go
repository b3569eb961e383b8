package db

import (
	"encoding/hex"

	"github.com/google/uuid"
)

func GenerateID(prefix string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return prefix + "_" + hex.EncodeToString(id[:]), nil
}
