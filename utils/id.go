package utils

import (
	"github.com/google/uuid"
)

// GenerateID 生成记录ID，由存储层在创建时分配
func GenerateID() string {
	return uuid.New().String()
}
