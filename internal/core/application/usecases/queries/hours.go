package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// snapshot runs fn in a read-only repeatable-read transaction, so entity rows and their hours
// come from the same committed state.
func snapshot(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

// loadHours reads "HH:MM-HH:MM" schedules from an hours table keyed by owner id, keeping the
// stored position order. An empty ownerIDs loads every owner.
func loadHours(ctx context.Context, db *gorm.DB, table, ownerColumn string, ownerIDs []int64) (map[int64][]string, error) {
	query := "SELECT " + ownerColumn + ", start_minute, end_minute FROM " + table
	var args []any
	if len(ownerIDs) > 0 {
		query += " WHERE " + ownerColumn + " IN ?"
		args = append(args, ownerIDs)
	}
	query += " ORDER BY " + ownerColumn + ", position"

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(map[int64][]string)
	for rows.Next() {
		var ownerID int64
		var start, end kernel.Minute
		if err = rows.Scan(&ownerID, &start, &end); err != nil {
			return nil, err
		}

		ti, tiErr := kernel.NewTimeInterval(start, end)
		if tiErr != nil {
			return nil, tiErr
		}
		hours[ownerID] = append(hours[ownerID], ti.String())
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return hours, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
