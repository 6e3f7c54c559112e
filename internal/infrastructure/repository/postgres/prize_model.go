package postgres

import (
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/prize"
)

type prizeTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Stock     int       `db:"stock"`
	Threshold int       `db:"threshold"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m prizeTableModel) toDomain() prize.Prize {
	return prize.Prize{
		ID:        m.ID,
		Name:      m.Name,
		Stock:     m.Stock,
		Threshold: m.Threshold,
	}
}
