package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// nextDocumentNumber generates the next sequential document number for a
// table. Numbers are formatted PREFIX-YYYY-NNNNN and restart at 00001 each
// year. The scan over existing numbers is ordered descending so the newest
// one drives the sequence.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, table, column, prefix string) (string, error) {
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, time.Now().Year())

	var last string
	err := db.WithContext(ctx).
		Table(table).
		Select(column).
		Where(column+" LIKE ?", yearPrefix+"%").
		Order(column + " DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if last != "" {
		parts := strings.Split(last, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", yearPrefix, nextNum), nil
}
