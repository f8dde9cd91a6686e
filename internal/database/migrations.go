package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes the hot read paths depend on:
// listing columns of a board and tasks of a column, both sorted by
// order. "order" is a reserved word, so it is quoted per dialect.
func AddIndexes(db *gorm.DB) error {
	quote := func(ident string) string {
		if db.Dialector.Name() == "mysql" {
			return "`" + ident + "`"
		}
		return `"` + ident + `"`
	}

	indexes := []struct {
		table   string
		name    string
		columns []string
	}{
		{"columns", "idx_columns_board_order", []string{"board_id", quote("order")}},
		{"tasks", "idx_tasks_column_order", []string{"column_id", quote("order")}},
		{"tasks", "idx_tasks_assignee_id", []string{"assignee_id"}},
		{"comments", "idx_comments_task_created", []string{"task_id", "created_at"}},
		{"user_teams", "idx_user_teams_team_id", []string{"team_id"}},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		cols := idx.columns[0]
		for _, c := range idx.columns[1:] {
			cols += ", " + c
		}
		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, cols)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.WithFields(logrus.Fields{
			"index": idx.name,
			"table": idx.table,
		}).Info("created index")
	}

	return nil
}
