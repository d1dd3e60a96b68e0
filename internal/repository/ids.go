package repository

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/haconeco/task-tracker/internal/domain"
)

// IDGenerator は新しいエンティティIDを返す。
type IDGenerator func() domain.ID

// NewRandomID はランダムUUID(v4)の先頭64bitから正の整数IDを生成する。
func NewRandomID() domain.ID {
	for {
		u := uuid.New()
		v := binary.BigEndian.Uint64(u[:8]) &^ (1 << 63)
		if v != 0 {
			return domain.ID(v)
		}
	}
}
